package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/content-analytics/internal/apperror"
	"github.com/sakif/content-analytics/internal/ingest"
	"github.com/sakif/content-analytics/internal/model"
	"github.com/sakif/content-analytics/internal/service"
)

// IngestHandler runs the link ingestion pipeline in-process for the caller.
type IngestHandler struct {
	platforms *service.PlatformService
	contents  *service.ContentService
	gate      *ingest.Gate
	logger    *slog.Logger
	now       func() time.Time
}

func NewIngestHandler(platforms *service.PlatformService, contents *service.ContentService, gate *ingest.Gate, logger *slog.Logger) *IngestHandler {
	return &IngestHandler{
		platforms: platforms,
		contents:  contents,
		gate:      gate,
		logger:    logger,
		now:       time.Now,
	}
}

type ingestRequest struct {
	URL string `json:"url"`
}

// IngestResponse is the body of a successful POST /api/ingest. Platforms is
// the caller's platform list re-read after the run, so clients can redraw
// without another round trip.
type IngestResponse struct {
	*ingest.Result
	Platforms []model.Platform `json:"platforms"`
}

// HandleIngest classifies a pasted link, resolves (or creates) its platform
// and records the content.
//
// HTTP: POST /api/ingest
// BODY: {"url": "https://www.youtube.com/watch?v=abc123"}
//
// One run per user at a time: a second submission while the first is still
// running gets 409. Failures are reported by writeIngestError.
func (h *IngestHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req ingestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	release, ok := h.gate.TryAcquire(userID)
	if !ok {
		writeError(w, apperror.Conflict("ingest", "a submission is already running for this user"))
		return
	}
	defer release()

	var refreshed []model.Platform
	refresh := func(ownerID string, _ *ingest.Result) {
		platforms, err := h.platforms.List(context.WithoutCancel(r.Context()), ownerID)
		if err != nil {
			h.logger.Warn("refreshing platforms after ingest", slog.String("error", err.Error()))
			return
		}
		refreshed = platforms
	}

	orch := ingest.New(
		service.NewPlatformDirectory(h.platforms, userID),
		service.NewContentCatalog(h.contents, userID),
		h.logger,
		ingest.WithClock(h.now),
		ingest.WithRefresh(refresh),
	)

	res, err := orch.Ingest(r.Context(), ingest.Submission{OwnerID: userID, URL: req.URL})
	if err != nil {
		writeIngestError(w, res, err)
		return
	}
	if refreshed == nil {
		refreshed = []model.Platform{}
	}
	writeJSON(w, http.StatusCreated, IngestResponse{Result: res, Platforms: refreshed})
}

// ClassifyResponse previews what ingesting a link would record.
type ClassifyResponse struct {
	ingest.Classification
	Title string `json:"title"`
	Valid bool   `json:"valid"`
}

// HandleClassify runs the classifier only. Nothing is written.
//
// HTTP: GET /api/classify?url=...
func (h *IngestHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		writeError(w, apperror.ValidationFailed("url", "url query parameter is required"))
		return
	}

	c := ingest.Classify(raw)
	writeJSON(w, http.StatusOK, ClassifyResponse{
		Classification: c,
		Title:          ingest.SynthesizeTitle(c.PlatformName, c.ContentType, h.now()),
		Valid:          c.ContentID != "",
	})
}
