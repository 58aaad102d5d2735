// Package apperror defines the application's error taxonomy and its
// mapping to HTTP status codes. Every error that crosses the handler
// boundary is either an *AppError or gets wrapped into one, so API
// clients always see the same {"error": "..."} shape.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes application errors.
type ErrorType int

const (
	// UnknownError is for unclassified errors.
	UnknownError ErrorType = iota
	// ValidationError represents bad input shape or length.
	ValidationError
	// DuplicateError represents a uniqueness collision, e.g. a taken username.
	DuplicateError
	// AuthenticationError represents bad credentials or a bad/missing/malformed token.
	AuthenticationError
	// NotFoundError represents a missing resource or a dangling reference.
	NotFoundError
	// DatabaseError represents an error originating from the database.
	DatabaseError
	// ConfigError represents an error in application configuration.
	ConfigError
	// InternalError represents a generic internal server error.
	InternalError
)

// AppError carries a user-facing message, an error type, and an
// optional underlying error kept for server-side logging only.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying error to errors.Is/errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for the error type.
// Duplicate registrations are reported as 400, matching the public API
// contract rather than the more conventional 409.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError, DuplicateError:
		return http.StatusBadRequest
	case AuthenticationError:
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	case DatabaseError, ConfigError, InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates an AppError of an arbitrary type.
func NewAppError(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string, underlying error) *AppError {
	return NewAppError(ValidationError, message, underlying)
}

// NewDuplicateError creates a DuplicateError.
func NewDuplicateError(message string, underlying error) *AppError {
	return NewAppError(DuplicateError, message, underlying)
}

// NewAuthenticationError creates an AuthenticationError.
func NewAuthenticationError(message string, underlying error) *AppError {
	return NewAppError(AuthenticationError, message, underlying)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(message string, underlying error) *AppError {
	return NewAppError(NotFoundError, message, underlying)
}

// NewDatabaseError creates a DatabaseError.
func NewDatabaseError(message string, underlying error) *AppError {
	return NewAppError(DatabaseError, message, underlying)
}

// NewConfigError creates a ConfigError.
func NewConfigError(message string, underlying error) *AppError {
	return NewAppError(ConfigError, message, underlying)
}

// NewInternalError creates an InternalError.
func NewInternalError(message string, underlying error) *AppError {
	return NewAppError(InternalError, message, underlying)
}

// ErrorResponse is the JSON body for every error the API returns.
type ErrorResponse struct {
	Error string `json:"error" example:"a description of the error"`
}

// ToResponse converts an AppError into its API representation. Only the
// user-facing message is exposed; the underlying error stays internal.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// FromError attempts to interpret err as an *AppError.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsDuplicate reports whether err is a DuplicateError.
func IsDuplicate(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == DuplicateError
}

// IsAuthentication reports whether err is an AuthenticationError.
func IsAuthentication(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthenticationError
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}
