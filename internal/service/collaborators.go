package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sakif/content-analytics/internal/apperror"
	"github.com/sakif/content-analytics/internal/ingest"
	"github.com/sakif/content-analytics/internal/model"
)

// PlatformDirectory adapts PlatformService to ingest.PlatformDirectory for
// one user. The HTTP ingest handler builds one per request.
type PlatformDirectory struct {
	platforms *PlatformService
	ownerID   string
}

var _ ingest.PlatformDirectory = (*PlatformDirectory)(nil)

func NewPlatformDirectory(platforms *PlatformService, ownerID string) *PlatformDirectory {
	return &PlatformDirectory{platforms: platforms, ownerID: ownerID}
}

func (d *PlatformDirectory) ListPlatforms(ctx context.Context, ownerID string) ([]model.Platform, error) {
	if ownerID != d.ownerID {
		return nil, apperror.Forbidden("cannot list another user's platforms")
	}
	return d.platforms.List(ctx, ownerID)
}

// CreatePlatform returns the new platform as JSON, the same payload
// POST /api/platforms answers with.
func (d *PlatformDirectory) CreatePlatform(ctx context.Context, name model.PlatformName, url string) ([]byte, error) {
	p, err := d.platforms.Create(ctx, d.ownerID, string(name), url)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding platform %d: %w", p.ID, err)
	}
	return payload, nil
}

// ContentCatalog adapts ContentService to ingest.ContentCatalog for one user.
type ContentCatalog struct {
	contents *ContentService
	ownerID  string
}

var _ ingest.ContentCatalog = (*ContentCatalog)(nil)

func NewContentCatalog(contents *ContentService, ownerID string) *ContentCatalog {
	return &ContentCatalog{contents: contents, ownerID: ownerID}
}

func (c *ContentCatalog) CreateContent(ctx context.Context, req ingest.ContentRequest) (*model.Content, error) {
	return c.contents.Create(ctx, c.ownerID, CreateContentInput{
		PlatformID:        req.PlatformID,
		PlatformContentID: req.PlatformContentID,
		ContentType:       string(req.ContentType),
		URL:               req.URL,
		Title:             req.Title,
	})
}
