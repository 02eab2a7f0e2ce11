package ingest

import (
	"context"
	"log/slog"

	"github.com/sakif/content-analytics/internal/model"
)

// ContentRequest is the body of a content create call.
type ContentRequest struct {
	PlatformID        int64             `json:"platformId"`
	PlatformContentID string            `json:"platformContentId"`
	ContentType       model.ContentType `json:"contentType"`
	URL               string            `json:"url"`
	Title             string            `json:"title"`
}

// ContentCatalog is the service that owns content records.
type ContentCatalog interface {
	CreateContent(ctx context.Context, req ContentRequest) (*model.Content, error)
}

// Registrar records a classified link as content under a platform.
type Registrar struct {
	catalog ContentCatalog
	logger  *slog.Logger
}

func NewRegistrar(catalog ContentCatalog, logger *slog.Logger) *Registrar {
	return &Registrar{catalog: catalog, logger: logger}
}

// Register makes exactly one create call. There is no existence check and no
// retry, so registering the same link twice yields two records.
func (r *Registrar) Register(ctx context.Context, platformID int64, c Classification, title, rawURL string) (*model.Content, error) {
	content, err := r.catalog.CreateContent(ctx, ContentRequest{
		PlatformID:        platformID,
		PlatformContentID: c.ContentID,
		ContentType:       c.ContentType,
		URL:               rawURL,
		Title:             title,
	})
	if err != nil {
		return nil, &ContentRegistrationError{PlatformID: platformID, Cause: err}
	}

	r.logger.Info("content registered",
		"content_id", content.ID,
		"platform_id", platformID,
		"platform_content_id", c.ContentID,
	)
	return content, nil
}
