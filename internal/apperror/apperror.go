// Package apperror defines the application's error taxonomy so that
// repositories can report failures without knowing about HTTP, and
// handlers can map them to status codes in one place.
package apperror

import (
	"fmt"
	"net/http"
)

// ErrorType classifies an application error
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// ValidationError represents malformed or missing required input
	ValidationError
	// AuthError represents a credential mismatch or missing credential
	AuthError
	// ForbiddenError represents insufficient permissions
	ForbiddenError
	// NotFoundError represents a resource that does not exist
	NotFoundError
	// ConflictError represents a uniqueness violation, e.g. duplicate email
	ConflictError
	// DatabaseError represents an error originating from the store
	DatabaseError
)

// AppError carries the error type, a message, an optional field-keyed
// detail map for validation failures, and an optional wrapped cause.
type AppError struct {
	Type    ErrorType
	Message string
	Fields  map[string]string
	Err     error
}

// Error satisfies the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError, ConflictError:
		return http.StatusBadRequest
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new AppError wrapping an underlying error
func New(t ErrorType, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

// Validation creates a ValidationError keyed by the offending field
func Validation(field, message string) *AppError {
	return &AppError{
		Type:    ValidationError,
		Message: message,
		Fields:  map[string]string{field: message},
	}
}

// NotFound creates a NotFoundError for the named resource
func NotFound(resource string) *AppError {
	return &AppError{Type: NotFoundError, Message: resource + " not found"}
}
