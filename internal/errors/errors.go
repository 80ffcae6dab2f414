// Package errors provides the structured API error type and the centralized
// handler that turns any failure into the service's JSON error shape:
// {"success": false, "error": ..., "traceback": ...}. A raw stack trace or
// thrown panic never reaches the transport layer.
package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// New creates a new APIError with the given parameters.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Predefined error types for common scenarios.
var (
	// 400 Bad Request
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrZipCodeRequired  = New(http.StatusBadRequest, "ZIP_CODE_REQUIRED", "ZIP code is required")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")

	// 502 Bad Gateway
	ErrCollaborator = New(http.StatusBadGateway, "COLLABORATOR_ERROR", "Analytics provider call failed")
)

// ValidationError creates a 400 error describing one invalid field.
func ValidationError(field, message string) *APIError {
	return New(http.StatusBadRequest, "VALIDATION_FAILED", field+": "+message)
}

// CollaboratorError creates a 502 error carrying the provider's original
// message.
func CollaboratorError(err error) *APIError {
	return New(http.StatusBadGateway, "COLLABORATOR_ERROR", err.Error())
}

// ErrorResponse is the wire shape of every user-visible failure.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Traceback string `json:"traceback,omitempty"`

	status int
}

// NewErrorResponse creates an error response for the given APIError.
func NewErrorResponse(err *APIError, traceback string) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     err.Message,
		Traceback: traceback,
		status:    err.StatusCode,
	}
}

// Render implements the render.Renderer interface for chi/render.
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.status)
	return nil
}
