// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import "net/http"

// ErrorResponse is the error envelope for every non-2xx JSON response.
type ErrorResponse struct {
	// Error is a short title, e.g. "Not Found" or "Quote not found".
	Error string `json:"error"`

	// Message is a human-readable description.
	Message string `json:"message"`

	RequestID string `json:"requestId"`
	TraceID   string `json:"traceId,omitempty"`

	// AvailableEndpoints is only set by the route catch-all.
	AvailableEndpoints []string `json:"availableEndpoints,omitempty"`
}

// Error titles.
const (
	ErrorNotFound           = "Not Found"
	ErrorInternal           = "Internal Server Error"
	ErrorServiceUnavailable = "Service Unavailable"
	ErrorBadRequest         = "Bad Request"
)

// MessageInternal is the only message clients see for unexpected failures.
const MessageInternal = "an internal error occurred"

// NewErrorResponse creates an error response with the given title and message.
func NewErrorResponse(title, message string) *ErrorResponse {
	return &ErrorResponse{
		Error:   title,
		Message: message,
	}
}

// NewInternalErrorResponse creates the generic 500 response.
func NewInternalErrorResponse() *ErrorResponse {
	return NewErrorResponse(ErrorInternal, MessageInternal)
}

// WithRequestID sets the request id.
func (e *ErrorResponse) WithRequestID(requestID string) *ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// WithAvailableEndpoints lists the routes a client can call instead.
func (e *ErrorResponse) WithAvailableEndpoints(endpoints []string) *ErrorResponse {
	e.AvailableEndpoints = endpoints
	return e
}

// TitleForStatus returns the default title for status. Every 5xx maps to
// ErrorInternal.
func TitleForStatus(status int) string {
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		return ErrorInternal
	}
	return http.StatusText(status)
}
