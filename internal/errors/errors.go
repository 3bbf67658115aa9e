package errors

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/404Health/universal-dataCleaner/internal/cleaning"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrNotFound         = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrPayloadTooLarge  = New(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Uploaded file exceeds the size limit")
	ErrInternalServer   = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// NotFoundError creates a not found error for a named resource
func NotFoundError(resource string) *APIError {
	return NewWithDetails(http.StatusNotFound, "NOT_FOUND", resource+" not found", resource)
}

// FromCleaning maps a pipeline error onto the API error taxonomy:
// empty input and unsupported configuration are client errors, anything
// else is internal.
func FromCleaning(err error) *APIError {
	switch {
	case errors.Is(err, cleaning.ErrEmptyTable):
		return NewWithDetails(http.StatusBadRequest, "EMPTY_TABLE", "The uploaded file is empty", err.Error())
	case errors.Is(err, cleaning.ErrUnsupportedConfig):
		return NewWithDetails(http.StatusBadRequest, "UNSUPPORTED_CONFIGURATION", "Unsupported cleaning configuration", err.Error())
	case errors.Is(err, cleaning.ErrColumnCollision):
		return NewWithDetails(http.StatusUnprocessableEntity, "COLUMN_COLLISION", "Column names collide after normalization", err.Error())
	default:
		return NewWithDetails(http.StatusInternalServerError, "CLEANING_FAILED", "Cleaning pipeline failed", err.Error())
	}
}
