package ingest

import (
	"errors"
	"fmt"

	"github.com/sakif/content-analytics/internal/model"
)

// Sentinels for errors.Is. Every pipeline error matches exactly one of them.
var (
	ErrInvalidLink         = errors.New("ingest: invalid link")
	ErrPlatformResolution  = errors.New("ingest: platform resolution failed")
	ErrContentRegistration = errors.New("ingest: content registration failed")
)

// InvalidLinkError means classification produced no content id, so the
// pipeline stopped before any collaborator was called.
type InvalidLinkError struct {
	URL            string
	Classification Classification
}

func (e *InvalidLinkError) Error() string {
	if e.URL == "" {
		return "content link is empty"
	}
	return fmt.Sprintf("could not detect content id from link %q", e.URL)
}

func (e *InvalidLinkError) Is(target error) bool { return target == ErrInvalidLink }

// ResolutionReason distinguishes the ways platform resolution can fail.
type ResolutionReason string

const (
	// ReasonCreateRejected: the directory refused or failed the create call.
	ReasonCreateRejected ResolutionReason = "create_rejected"
	// ReasonIDUndecodable: the create call answered, but no integer id could be
	// decoded from the payload. The platform may exist server-side.
	ReasonIDUndecodable ResolutionReason = "id_undecodable"
	// ReasonLookupInconsistent: an existing platform matched by name but its
	// stored record has no usable id.
	ReasonLookupInconsistent ResolutionReason = "lookup_inconsistent"
	// ReasonLookupFailed: the snapshot of the user's platforms could not be listed.
	ReasonLookupFailed ResolutionReason = "lookup_failed"
)

// PlatformResolutionError reports a failed Resolving stage.
type PlatformResolutionError struct {
	Reason       ResolutionReason
	PlatformName model.PlatformName
	Cause        error
}

func (e *PlatformResolutionError) Error() string {
	var msg string
	switch e.Reason {
	case ReasonCreateRejected:
		msg = fmt.Sprintf("platform creation failed for %s", e.PlatformName)
	case ReasonIDUndecodable:
		msg = fmt.Sprintf("could not find platform id in %s creation response", e.PlatformName)
	case ReasonLookupInconsistent:
		msg = fmt.Sprintf("existing %s platform has no usable id", e.PlatformName)
	case ReasonLookupFailed:
		msg = "could not list existing platforms"
	default:
		msg = fmt.Sprintf("platform resolution failed for %s", e.PlatformName)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *PlatformResolutionError) Is(target error) bool { return target == ErrPlatformResolution }

func (e *PlatformResolutionError) Unwrap() error { return e.Cause }

// ContentRegistrationError reports a failed Registering stage. PlatformID is
// the platform the content was meant for, which is how an orphan platform
// left behind by this run can be tracked down later.
type ContentRegistrationError struct {
	PlatformID int64
	Cause      error
}

func (e *ContentRegistrationError) Error() string {
	return fmt.Sprintf("content registration failed for platform %d: %v", e.PlatformID, e.Cause)
}

func (e *ContentRegistrationError) Is(target error) bool { return target == ErrContentRegistration }

func (e *ContentRegistrationError) Unwrap() error { return e.Cause }
