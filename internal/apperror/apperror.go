// Package apperror defines the error taxonomy shared by stores, services and handlers.
//
// Stores and services return *AppError values wrapping one of the sentinels below;
// the HTTP layer maps the sentinel to a status code with errors.Is. Anything that is
// not an *AppError is treated as an internal error.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// AppError is a domain failure with a message that is safe to show a client.
type AppError struct {
	Err     error  // one of the sentinels above
	Message string // client-facing
	Field   string // request field at fault, validation errors only
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Err }

// Code is the machine-readable name of err's category, as sent in the
// "error" field of API responses. Errors outside the taxonomy are
// "internal_error".
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal_error"
	}
}

// ValidationFailed rejects bad input on field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message, Field: field}
}

// Unauthorized is for bad or missing credentials.
func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Message: message}
}

// Forbidden is for a caller who is known but not allowed.
func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}

// NotFound reports a missing record, e.g. NotFound("letter", id).
func NotFound(resource, key string) *AppError {
	return &AppError{Err: ErrNotFound, Message: fmt.Sprintf("%s %s not found", resource, key)}
}

// Conflict reports a record that already exists, e.g. Conflict("user", email).
func Conflict(resource, key string) *AppError {
	return &AppError{Err: ErrConflict, Message: fmt.Sprintf("%s %s already exists", resource, key)}
}
