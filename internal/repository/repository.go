// Package repository defines the storage interfaces the service layer depends on.
//
// The interfaces live here, away from any driver, so services can be tested
// with in-memory fakes and the SQLite implementation (package sqlite) can be
// swapped without touching business logic.
package repository

import (
	"context"

	"github.com/sakif/content-analytics/internal/model"
)

// ListOptions pages through a list query. Zero values mean "use the default".
type ListOptions struct {
	Limit  int
	Offset int
}

// UserRepository stores accounts.
type UserRepository interface {
	// CreateUser assigns ID and timestamps. A taken username yields apperror.ErrConflict.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// PlatformRepository stores connected platform accounts.
type PlatformRepository interface {
	CreatePlatform(ctx context.Context, platform *model.Platform) error
	GetPlatform(ctx context.Context, id int64) (*model.Platform, error)
	// ListPlatforms returns the owner's platforms, oldest first.
	ListPlatforms(ctx context.Context, ownerID string) ([]model.Platform, error)
	// DeletePlatform removes the platform and, by cascade, its content.
	DeletePlatform(ctx context.Context, id int64) error
	// PlatformStats counts the owner's content per platform name.
	PlatformStats(ctx context.Context, ownerID string) (map[model.PlatformName]model.PlatformStats, error)
}

// ContentRepository stores tracked content. It never deduplicates.
type ContentRepository interface {
	CreateContent(ctx context.Context, content *model.Content) error
	// ListContents returns the owner's content, newest first.
	ListContents(ctx context.Context, ownerID string, opts ListOptions) ([]model.Content, error)
	ListContentsByPlatform(ctx context.Context, platformID int64) ([]model.Content, error)
}
