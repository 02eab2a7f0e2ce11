package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/content-analytics/internal/apperror"
	"github.com/sakif/content-analytics/internal/model"
	"github.com/sakif/content-analytics/internal/repository"
)

// PlatformService manages the platform accounts a user has connected.
type PlatformService struct {
	repo   repository.PlatformRepository
	logger *slog.Logger
}

func NewPlatformService(repo repository.PlatformRepository, logger *slog.Logger) *PlatformService {
	return &PlatformService{repo: repo, logger: logger}
}

// List returns every platform owned by ownerID.
func (s *PlatformService) List(ctx context.Context, ownerID string) ([]model.Platform, error) {
	platforms, err := s.repo.ListPlatforms(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing platforms: %w", err)
	}
	return platforms, nil
}

// Create connects a new platform for ownerID. name must be one of
// model.PlatformNames (any case); rawURL is only used to derive a display
// username and may be empty.
//
// Create never checks for an existing platform with the same name.
func (s *PlatformService) Create(ctx context.Context, ownerID, name, rawURL string) (*model.Platform, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.ValidationFailed("platformName", "platform name is required")
	}
	platformName, err := model.ParsePlatformName(name)
	if err != nil {
		return nil, apperror.ValidationFailed("platformName", err.Error())
	}

	p := &model.Platform{
		OwnerID:          ownerID,
		PlatformName:     platformName,
		PlatformUsername: ExtractPlatformUsername(rawURL, platformName),
	}
	if err := s.repo.CreatePlatform(ctx, p); err != nil {
		s.logger.Error("failed to create platform",
			slog.String("platform", string(platformName)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating platform: %w", err)
	}

	s.logger.Info("platform created",
		slog.Int64("id", p.ID),
		slog.String("platform", string(p.PlatformName)),
		slog.String("ownerID", ownerID),
	)
	return p, nil
}

// Get returns the platform if ownerID owns it.
func (s *PlatformService) Get(ctx context.Context, ownerID string, id int64) (*model.Platform, error) {
	p, err := s.repo.GetPlatform(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, apperror.Forbidden("platform belongs to another user")
	}
	return p, nil
}

// GetByName returns the owner's first platform whose name matches,
// ignoring case.
func (s *PlatformService) GetByName(ctx context.Context, ownerID, name string) (*model.Platform, error) {
	platforms, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range platforms {
		if strings.EqualFold(string(platforms[i].PlatformName), strings.TrimSpace(name)) {
			return &platforms[i], nil
		}
	}
	return nil, apperror.NotFound("platform", name)
}

// Delete removes the platform and all content tracked under it.
func (s *PlatformService) Delete(ctx context.Context, ownerID string, id int64) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.DeletePlatform(ctx, id); err != nil {
		return err
	}
	s.logger.Info("platform deleted", slog.Int64("id", id), slog.String("ownerID", ownerID))
	return nil
}

// Stats counts content per platform name for ownerID.
func (s *PlatformService) Stats(ctx context.Context, ownerID string) (map[model.PlatformName]model.PlatformStats, error) {
	stats, err := s.repo.PlatformStats(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("platform stats: %w", err)
	}
	return stats, nil
}

// ExtractPlatformUsername derives a display handle from a content or
// profile URL. It never fails; unknown shapes fall back to "<name> User".
//
//	youtube.com/...                → "YouTube Channel"
//	instagram.com/<user>/...       → "<user>"
//	tiktok.com/@<user>/...         → "@<user>"
func ExtractPlatformUsername(rawURL string, name model.PlatformName) string {
	fallback := string(name) + " User"
	if rawURL == "" {
		return fallback
	}

	switch {
	case strings.Contains(rawURL, "youtube.com") || strings.Contains(rawURL, "youtu.be"):
		return "YouTube Channel"
	case strings.Contains(rawURL, "instagram.com"):
		_, after, _ := strings.Cut(rawURL, "instagram.com/")
		if user, _, ok := strings.Cut(after, "/"); ok && user != "" {
			return user
		}
		return "Instagram User"
	case strings.Contains(rawURL, "tiktok.com"):
		_, after, found := strings.Cut(rawURL, "@")
		if user, _, ok := strings.Cut(after, "/"); found && ok && user != "" {
			return "@" + user
		}
		return "TikTok User"
	}
	return fallback
}
