// Package apperror defines the domain errors shared by the repository,
// service and handler layers. Handlers map them onto HTTP status codes;
// nothing below the handler knows about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every *AppError wraps exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError carries a client-safe message alongside its sentinel.
type AppError struct {
	Err     error  // one of the sentinels above
	Message string // shown to API clients as-is
	Field   string // request field at fault, validation errors only
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Err }

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, key string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already exists: %s", resource, key),
	}
}

// Forbidden is for an authenticated caller touching another user's record.
func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}

// Unauthorized signals bad or missing credentials. Login uses the same
// message for unknown users and wrong passwords.
func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Message: message}
}
