// Package apperror defines the domain error taxonomy shared by the service
// and handler layers.
//
// Services return these errors; the HTTP layer translates them to status
// codes in exactly one place (handler/response.go). Anything that is not an
// AppError is treated as an infrastructure failure and surfaced as a
// generic 500 — database error details are logged, never echoed to clients.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError pairs a sentinel with a human-readable message. errors.Is
// matches the sentinel through Unwrap; errors.As recovers the message
// and field at the HTTP boundary.
type AppError struct {
	Err     error  // sentinel, matched with errors.Is
	Message string // human-readable error message
	Field   string // optional: the request field that caused the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Unauthorized covers both missing sessions and failed credential checks.
// The message is deliberately the same for "unknown email" and "wrong
// password" so responses don't reveal which accounts exist.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

func Conflict(resource string, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s: %s", resource, message),
	}
}
