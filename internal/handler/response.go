package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON / writeError so the API has one
// error shape:
//
//	{"error": "not_found", "message": "platform not found with id 42"}
//
// Pipeline failures from POST /api/ingest go through writeIngestError, which
// adds the failure kind and whatever the run produced before it stopped.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/content-analytics/internal/apperror"
	"github.com/sakif/content-analytics/internal/auth"
	"github.com/sakif/content-analytics/internal/ingest"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse is the standard error body returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`           // machine-readable type, e.g. "not_found"
	Message string `json:"message"`         // human-readable description
	Field   string `json:"field,omitempty"` // set for validation errors
}

// writeJSON sets the header and status before encoding; anything set after
// the first body write is silently dropped.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status.
// Errors that are not *apperror.AppError become an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	status := http.StatusInternalServerError
	errorType := "internal_error"
	switch {
	case errors.Is(err, apperror.ErrValidation):
		status, errorType = http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrUnauthorized):
		status, errorType = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperror.ErrForbidden):
		status, errorType = http.StatusForbidden, "forbidden"
	case errors.Is(err, apperror.ErrNotFound):
		status, errorType = http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrConflict):
		status, errorType = http.StatusConflict, "conflict"
	}

	writeJSON(w, status, ErrorResponse{
		Error:   errorType,
		Message: appErr.Message,
		Field:   appErr.Field,
	})
}

// IngestErrorResponse is the body of a failed POST /api/ingest.
type IngestErrorResponse struct {
	ErrorResponse
	Failure    ingest.FailureKind      `json:"failure"`
	Reason     ingest.ResolutionReason `json:"reason,omitempty"`
	PlatformID int64                   `json:"platformId,omitempty"`
	Result     *ingest.Result          `json:"result,omitempty"`
}

// writeIngestError reports a failed pipeline run.
//
//	InvalidLink   → 422, nothing was written
//	PlatformError → 502, a platform may or may not have been created
//	ContentError  → 502, the platform exists without the new content
func writeIngestError(w http.ResponseWriter, res *ingest.Result, err error) {
	body := IngestErrorResponse{
		ErrorResponse: ErrorResponse{Message: err.Error()},
		Failure:       ingest.FailureOf(err),
		Result:        res,
	}

	var (
		status = http.StatusInternalServerError
		perr   *ingest.PlatformResolutionError
		cerr   *ingest.ContentRegistrationError
	)
	switch {
	case errors.Is(err, ingest.ErrInvalidLink):
		status, body.Error = http.StatusUnprocessableEntity, "invalid_link"
	case errors.As(err, &perr):
		status, body.Error = http.StatusBadGateway, "platform_error"
		body.Reason = perr.Reason
	case errors.As(err, &cerr):
		status, body.Error = http.StatusBadGateway, "content_error"
		body.PlatformID = cerr.PlatformID
	default:
		body.Error = "internal_error"
	}

	writeJSON(w, status, body)
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.ValidationFailed("body", "request body is empty")
		}
		return apperror.ValidationFailed("body", fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}

// pathID parses a positive integer chi URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed(name, "must be a positive integer")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperror.ValidationFailed(name, "must be a non-negative integer")
	}
	return n, nil
}

// currentUser returns the authenticated user ID set by auth.RequireAuth.
func currentUser(r *http.Request) (string, error) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return "", apperror.Unauthorized("valid authentication required")
	}
	return id, nil
}
