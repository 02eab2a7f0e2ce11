package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/content-analytics/internal/model"
)

// State is a step of a pipeline run.
type State int

const (
	StateIdle State = iota
	StateClassifying
	StateResolving
	StateRegistering
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateClassifying:
		return "classifying"
	case StateResolving:
		return "resolving"
	case StateRegistering:
		return "registering"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts the names produced by MarshalText, so remote
// clients can decode a Result.
func (s *State) UnmarshalText(text []byte) error {
	for st := StateIdle; st <= StateFailed; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("ingest: unknown state %q", text)
}

// FailureKind names the stage a failed run stopped in.
type FailureKind string

const (
	FailureNone        FailureKind = ""
	FailureInvalidLink FailureKind = "InvalidLink"
	FailurePlatform    FailureKind = "PlatformError"
	FailureContent     FailureKind = "ContentError"
)

// FailureOf maps a pipeline error to its FailureKind.
func FailureOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrInvalidLink):
		return FailureInvalidLink
	case errors.Is(err, ErrPlatformResolution):
		return FailurePlatform
	case errors.Is(err, ErrContentRegistration):
		return FailureContent
	}
	return FailureNone
}

// Submission is one user request to ingest a link.
type Submission struct {
	OwnerID string
	URL     string
}

// Result describes a finished run. On failure the fields reached before the
// failing stage are still filled in.
type Result struct {
	Classification  Classification `json:"classification"`
	Title           string         `json:"title,omitempty"`
	PlatformID      int64          `json:"platformId,omitempty"`
	PlatformCreated bool           `json:"platformCreated"`
	Content         *model.Content `json:"content,omitempty"`
	State           State          `json:"state"`
	Failure         FailureKind    `json:"failure,omitempty"`
	Trace           []State        `json:"trace"`
}

// RefreshFunc is called after a run reaches Done, so views listing the
// owner's platforms and content can reload.
type RefreshFunc func(ownerID string, res *Result)

// Orchestrator runs the ingestion pipeline.
type Orchestrator struct {
	directory PlatformDirectory
	resolver  *Resolver
	registrar *Registrar
	logger    *slog.Logger
	now       func() time.Time
	refresh   RefreshFunc
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the time source used for synthesized titles.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithRefresh registers the hook called when a run completes.
func WithRefresh(fn RefreshFunc) Option {
	return func(o *Orchestrator) { o.refresh = fn }
}

func New(directory PlatformDirectory, catalog ContentCatalog, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		directory: directory,
		resolver:  NewResolver(directory, logger),
		registrar: NewRegistrar(catalog, logger),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run tracks the state of a single submission.
type run struct {
	res    *Result
	logger *slog.Logger
}

func (r *run) enter(s State) {
	r.res.State = s
	r.res.Trace = append(r.res.Trace, s)
	r.logger.Debug("ingest state", "state", s)
}

func (r *run) fail(err error) (*Result, error) {
	r.res.Failure = FailureOf(err)
	r.enter(StateFailed)
	r.logger.Warn("ingest failed", "failure", r.res.Failure, "error", err)
	return r.res, err
}

// Ingest runs one submission to completion.
//
// The run is detached from ctx cancellation: once started, it finishes
// (or fails) on its own. There is no rollback. A platform created during
// Resolving stays even when Registering fails. The submitted URL is scoped to
// the call; a finished Result holds it only as Content.URL.
func (o *Orchestrator) Ingest(ctx context.Context, sub Submission) (*Result, error) {
	ctx = context.WithoutCancel(ctx)

	input := strings.TrimSpace(sub.URL)
	r := &run{
		res:    &Result{},
		logger: o.logger.With("owner_id", sub.OwnerID),
	}
	r.enter(StateIdle)

	r.enter(StateClassifying)
	c := Classify(input)
	r.res.Classification = c
	if input == "" || c.ContentID == "" {
		return r.fail(&InvalidLinkError{URL: input, Classification: c})
	}
	r.res.Title = SynthesizeTitle(c.PlatformName, c.ContentType, o.now())

	r.enter(StateResolving)
	existing, err := o.directory.ListPlatforms(ctx, sub.OwnerID)
	if err != nil {
		return r.fail(&PlatformResolutionError{Reason: ReasonLookupFailed, PlatformName: c.PlatformName, Cause: err})
	}
	resolution, err := o.resolver.Resolve(ctx, c.PlatformName, input, existing)
	if err != nil {
		return r.fail(err)
	}
	r.res.PlatformID = resolution.PlatformID
	r.res.PlatformCreated = resolution.Created

	r.enter(StateRegistering)
	content, err := o.registrar.Register(ctx, resolution.PlatformID, c, r.res.Title, input)
	if err != nil {
		if resolution.Created {
			r.logger.Warn("platform left without content", "platform_id", resolution.PlatformID)
		}
		return r.fail(err)
	}
	r.res.Content = content

	r.enter(StateDone)
	if o.refresh != nil {
		o.refresh(sub.OwnerID, r.res)
	}
	return r.res, nil
}
