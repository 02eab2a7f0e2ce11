package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinels(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrValidation, ErrConflict, ErrForbidden, ErrUnauthorized}

	tests := []struct {
		err  *AppError
		want error
	}{
		{NotFound("platform", "42"), ErrNotFound},
		{ValidationFailed("url", "url is required"), ErrValidation},
		{Conflict("user", "alice"), ErrConflict},
		{Forbidden("platform belongs to another user"), ErrForbidden},
		{Unauthorized("invalid username or password"), ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.want.Error(), func(t *testing.T) {
			for _, s := range sentinels {
				if got := errors.Is(tt.err, s); got != (s == tt.want) {
					t.Errorf("errors.Is(%q, %v) = %v", tt.err, s, got)
				}
			}
		})
	}
}

// Services wrap repository errors with context; the sentinel and the
// client message must both survive.
func TestSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("listing contents for platform %d: %w", 42, NotFound("platform", "42"))

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("errors.Is(wrapped, ErrNotFound) = false")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("errors.As(wrapped, *AppError) = false")
	}
	if appErr.Message != "platform not found with id 42" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestMessages(t *testing.T) {
	tests := map[string]struct {
		err       *AppError
		wantMsg   string
		wantField string
	}{
		"not found": {NotFound("platform", "42"), "platform not found with id 42", ""},
		"conflict":  {Conflict("user", "alice"), "user already exists: alice", ""},
		"validation": {
			ValidationFailed("platformContentId", "platform content id is required"),
			"platform content id is required",
			"platformContentId",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if tt.err.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", tt.err.Field, tt.wantField)
			}
		})
	}
}
