package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnsupported  = errors.New("unsupported")
	ErrInsufficient = errors.New("insufficient input")
)

type AppError struct {
	Err     error  // sentinel error for errors.Is checks
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already exists: %s", resource, id),
	}
}

// Unauthorized returns an AppError for failed authentication.
// HTTP handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Unsupported returns an AppError for an upload of a kind the extractor
// cannot handle. HTTP handlers map this to 415 Unsupported Media Type.
func Unsupported(message string) *AppError {
	return &AppError{
		Err:     ErrUnsupported,
		Message: message,
	}
}

// Insufficient returns an AppError for input that is present but too small
// to process reliably. This is a usable negative outcome, not a generic
// failure; HTTP handlers map it to 422.
func Insufficient(message string) *AppError {
	return &AppError{
		Err:     ErrInsufficient,
		Message: message,
	}
}
