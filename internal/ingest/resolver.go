package ingest

import (
	"context"
	"log/slog"

	"github.com/sakif/content-analytics/internal/model"
)

// PlatformDirectory is the service that owns platform records.
//
// CreatePlatform returns the raw response payload; the resolver decodes the
// new id itself with DecodePlatformID because deployments disagree on the
// response shape.
type PlatformDirectory interface {
	ListPlatforms(ctx context.Context, ownerID string) ([]model.Platform, error)
	CreatePlatform(ctx context.Context, name model.PlatformName, url string) ([]byte, error)
}

// Resolution is the platform a run will register content under.
type Resolution struct {
	PlatformID int64
	Created    bool // true when this call created the platform
}

// Resolver finds or creates the platform record for a classified link.
type Resolver struct {
	directory PlatformDirectory
	logger    *slog.Logger
}

func NewResolver(directory PlatformDirectory, logger *slog.Logger) *Resolver {
	return &Resolver{directory: directory, logger: logger}
}

// Resolve returns the id of the first platform in existing whose name equals
// name. When none matches it makes exactly one create call.
//
// existing is a snapshot taken before the call. Two concurrent runs for the
// same user and platform can both miss and both create; duplicates are not
// detected here.
func (r *Resolver) Resolve(ctx context.Context, name model.PlatformName, rawURL string, existing []model.Platform) (Resolution, error) {
	for _, p := range existing {
		if p.PlatformName != name {
			continue
		}
		if p.ID <= 0 {
			return Resolution{}, &PlatformResolutionError{Reason: ReasonLookupInconsistent, PlatformName: name}
		}
		r.logger.Debug("platform found", "platform", name, "platform_id", p.ID)
		return Resolution{PlatformID: p.ID}, nil
	}

	payload, err := r.directory.CreatePlatform(ctx, name, rawURL)
	if err != nil {
		return Resolution{}, &PlatformResolutionError{Reason: ReasonCreateRejected, PlatformName: name, Cause: err}
	}

	id, ok := DecodePlatformID(payload).ID()
	if !ok {
		// The platform probably exists now; we just can't tell its id.
		r.logger.Warn("platform created but id unreadable", "platform", name, "payload_bytes", len(payload))
		return Resolution{}, &PlatformResolutionError{Reason: ReasonIDUndecodable, PlatformName: name}
	}

	r.logger.Info("platform created", "platform", name, "platform_id", id)
	return Resolution{PlatformID: id, Created: true}, nil
}
