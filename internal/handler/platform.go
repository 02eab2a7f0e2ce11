package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/content-analytics/internal/service"
)

// PlatformHandler serves /api/platforms. It is also the HTTP face of the
// platform directory the linkctl CLI ingests against.
type PlatformHandler struct {
	platforms *service.PlatformService
	contents  *service.ContentService
	logger    *slog.Logger
}

func NewPlatformHandler(platforms *service.PlatformService, contents *service.ContentService, logger *slog.Logger) *PlatformHandler {
	return &PlatformHandler{platforms: platforms, contents: contents, logger: logger}
}

type createPlatformRequest struct {
	PlatformName string `json:"platformName"`
	URL          string `json:"url"`
}

// HandleList returns the caller's platforms.
//
// HTTP: GET /api/platforms
func (h *PlatformHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	platforms, err := h.platforms.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, platforms)
}

// HandleCreate connects a platform.
//
// HTTP: POST /api/platforms
// BODY: {"platformName": "TikTok", "url": "https://www.tiktok.com/@me/video/1"}
// 201 with the platform JSON, whose numeric "id" the ingest resolver reads.
func (h *PlatformHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createPlatformRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.platforms.Create(r.Context(), userID, req.PlatformName, req.URL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleGetByName returns the caller's first platform with that name (any case).
//
// HTTP: GET /api/platforms/byName/{name}
func (h *PlatformHandler) HandleGetByName(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.platforms.GetByName(r.Context(), userID, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleStats returns {"YouTube": {"contentCount": 3}, ...}.
//
// HTTP: GET /api/platforms/stats
func (h *PlatformHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	stats, err := h.platforms.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleGet returns one platform.
//
// HTTP: GET /api/platforms/{id}
func (h *PlatformHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.platforms.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleDelete removes a platform and its content.
//
// HTTP: DELETE /api/platforms/{id} → 204
func (h *PlatformHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.platforms.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleContents lists content tracked under a platform.
//
// HTTP: GET /api/platforms/{id}/content
func (h *PlatformHandler) HandleContents(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	contents, err := h.contents.ListByPlatform(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contents)
}
