package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"finderid-api/internal/domain"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeUnauthorized  ErrorType = "unauthorized"
	ErrorTypeForbidden     ErrorType = "forbidden"
	ErrorTypeQuotaExceeded ErrorType = "quota_exceeded"
	ErrorTypeInternal      ErrorType = "internal"
	ErrorTypeUnavailable   ErrorType = "unavailable"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewQuotaExceededError creates an error for a plan limit that blocks the action
func NewQuotaExceededError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeQuotaExceeded,
		Message:    message,
		StatusCode: http.StatusForbidden,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewUnavailableError creates an error for a backing store that could not be reached
func NewUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// FromDomain maps a service error onto an AppError. Errors it does not
// recognise become a 503 so that the caller blocks the action.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var validationErr *domain.ValidationError
	switch {
	case stderrors.As(err, &validationErr):
		return NewValidationError(validationErr.Error())
	case stderrors.Is(err, domain.ErrStatusQuotaExceeded), stderrors.Is(err, domain.ErrProductQuotaExceeded):
		return NewQuotaExceededError(err.Error(), err)
	case stderrors.Is(err, domain.ErrCardNotFound):
		return NewNotFoundError("Card not found")
	case stderrors.Is(err, domain.ErrStatusNotFound):
		return NewNotFoundError("Status not found")
	case stderrors.Is(err, domain.ErrProductNotFound):
		return NewNotFoundError("Product not found")
	case stderrors.Is(err, domain.ErrAccessDenied):
		return NewForbiddenError("Access denied")
	case stderrors.Is(err, domain.ErrInvalidToken):
		return NewUnauthorizedError("Invalid token")
	case stderrors.Is(err, domain.ErrUnknownPlan):
		return NewValidationError("Unknown plan")
	case stderrors.Is(err, context.Canceled):
		return NewInternalError("Request canceled", err)
	default:
		return NewUnavailableError("Unable to verify plan limits, please retry", err)
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
