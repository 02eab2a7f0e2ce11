package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/content-analytics/internal/service"
)

// ContentHandler serves /api/content, the content catalog.
type ContentHandler struct {
	contents *service.ContentService
	logger   *slog.Logger
}

func NewContentHandler(contents *service.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{contents: contents, logger: logger}
}

// HandleCreate records one piece of content.
//
// HTTP: POST /api/content
// BODY: {"platformId": 5, "platformContentId": "abc123", "contentType": "VIDEO",
//
//	"url": "https://...", "title": "..."}
func (h *ContentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.CreateContentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.contents.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// HandleList pages through the caller's content, newest first.
//
// HTTP: GET /api/content?limit=50&offset=0
func (h *ContentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, err)
		return
	}

	contents, err := h.contents.List(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contents)
}

// HandleListByPlatform lists the content under one platform.
//
// HTTP: GET /api/content/platform/{platformId}
func (h *ContentHandler) HandleListByPlatform(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "platformId")
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
