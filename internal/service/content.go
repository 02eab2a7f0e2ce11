package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/content-analytics/internal/apperror"
	"github.com/sakif/content-analytics/internal/ingest"
	"github.com/sakif/content-analytics/internal/model"
	"github.com/sakif/content-analytics/internal/repository"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// CreateContentInput is the body of POST /api/content.
type CreateContentInput struct {
	PlatformID        int64  `json:"platformId"`
	PlatformContentID string `json:"platformContentId"`
	ContentType       string `json:"contentType"`
	URL               string `json:"url"`
	Title             string `json:"title"`
}

// ContentService records content under a user's platforms.
type ContentService struct {
	contents  repository.ContentRepository
	platforms *PlatformService
	logger    *slog.Logger
	now       func() time.Time
}

func NewContentService(contents repository.ContentRepository, platforms *PlatformService, logger *slog.Logger) *ContentService {
	return &ContentService{
		contents:  contents,
		platforms: platforms,
		logger:    logger,
		now:       time.Now,
	}
}

// Create validates in and stores a new content record for ownerID.
//
//   - platformContentId is required
//   - contentType defaults to VIDEO when empty; unknown values are rejected
//   - an empty title (or the literal "null" some clients send) gets
//     "<platform> Content - <date>"
//   - the platform must belong to ownerID
//
// Identical requests create identical but separate records.
func (s *ContentService) Create(ctx context.Context, ownerID string, in CreateContentInput) (*model.Content, error) {
	if in.PlatformID <= 0 {
		return nil, apperror.ValidationFailed("platformId", "platform id is required")
	}
	externalID := strings.TrimSpace(in.PlatformContentID)
	if externalID == "" {
		return nil, apperror.ValidationFailed("platformContentId", "platform content id is required")
	}

	contentType := model.ContentVideo
	if strings.TrimSpace(in.ContentType) != "" {
		ct, err := model.ParseContentType(in.ContentType)
		if err != nil {
			return nil, apperror.ValidationFailed("contentType", err.Error())
		}
		contentType = ct
	}

	platform, err := s.platforms.Get(ctx, ownerID, in.PlatformID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	title := strings.TrimSpace(in.Title)
	if title == "" || title == "null" {
		title = fmt.Sprintf("%s Content - %s", platform.PlatformName, now.Format(ingest.TitleDateLayout))
	}

	c := &model.Content{
		PlatformID:        platform.ID,
		OwnerID:           ownerID,
		PlatformContentID: externalID,
		ContentType:       contentType,
		Title:             title,
		URL:               strings.TrimSpace(in.URL),
		PublishedDate:     &now,
	}
	if err := s.contents.CreateContent(ctx, c); err != nil {
		return nil, fmt.Errorf("creating content: %w", err)
	}

	s.logger.Info("content created",
		slog.Int64("id", c.ID),
		slog.Int64("platformID", c.PlatformID),
		slog.String("contentType", string(c.ContentType)),
	)
	return c, nil
}

// List pages through ownerID's content, newest first.
func (s *ContentService) List(ctx context.Context, ownerID string, limit, offset int) ([]model.Content, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	offset = max(offset, 0)

	contents, err := s.contents.ListContents(ctx, ownerID, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("listing contents: %w", err)
	}
	return contents, nil
}

// ListByPlatform returns the content under one of ownerID's platforms.
func (s *ContentService) ListByPlatform(ctx context.Context, ownerID string, platformID int64) ([]model.Content, error) {
	if _, err := s.platforms.Get(ctx, ownerID, platformID); err != nil {
		return nil, err
	}
	contents, err := s.contents.ListContentsByPlatform(ctx, platformID)
	if err != nil {
		return nil, fmt.Errorf("listing contents for platform %d: %w", platformID, err)
	}
	return contents, nil
}
