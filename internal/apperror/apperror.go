// Package apperror defines the application's error taxonomy.
//
// Services return these errors; the HTTP layer maps them to status codes in
// exactly one place (handler.writeError). The sentinels below are the full
// set of failure classes the API distinguishes:
//
//   - ErrValidation      → 400 (weak password, duplicate username, bad input)
//   - ErrUnauthenticated → 401 (missing, malformed, or mis-signed token)
//   - ErrUnauthorized    → 401 (follow gate or ownership check failed)
//   - ErrNotFound        → 404 (internal use only — see below)
//   - ErrConflict        → 409 (storage-level uniqueness violation)
//
// "Not found" is deliberately never surfaced for tweet-scoped endpoints:
// a nonexistent tweet and a tweet the caller may not see produce the same
// ErrUnauthorized, so responses do not leak whether a tweet ID exists.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
)

// AppError pairs a sentinel with a caller-safe message.
//
// Message is what the API returns verbatim, so it must never contain query
// text, file paths, or other internal detail. Wrap internal causes with %w
// around the AppError instead.
type AppError struct {
	Err     error  // sentinel classifying the failure
	Message string // stable, caller-safe description
	Field   string // optional: input field that failed validation
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing record. Internal use: tweet-scoped handlers
// convert it to Unauthorized before it reaches the wire.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// ValidationFailed reports invalid input on a named field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a storage-level uniqueness violation.
func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Unauthenticated reports a missing or invalid session token.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// Unauthorized reports a failed access check with the fixed generic message.
// Every authorization failure — not followed, not the owner, no such tweet —
// reads identically on the wire.
func Unauthorized() *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: "invalid request",
	}
}
