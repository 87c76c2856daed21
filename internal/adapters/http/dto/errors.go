// Package dto holds the JSON shapes of the web host's API.
package dto

import "net/http"

// ErrorResponse is the envelope every API error is written in.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail carries a machine-readable code and a message for people.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes. Each maps to exactly one HTTP status.
const (
	ErrorCodeNotFound    = "NOT_FOUND"
	ErrorCodeConflict    = "CONFLICT" // refresh already in flight
	ErrorCodeRateLimited = "RATE_LIMITED"
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE" // widget not active
	ErrorCodeTimeout     = "TIMEOUT"
	ErrorCodeInternal    = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	ErrorCodeNotFound:    http.StatusNotFound,
	ErrorCodeConflict:    http.StatusConflict,
	ErrorCodeRateLimited: http.StatusTooManyRequests,
	ErrorCodeUnavailable: http.StatusServiceUnavailable,
	ErrorCodeTimeout:     http.StatusGatewayTimeout,
	ErrorCodeInternal:    http.StatusInternalServerError,
}

// NewErrorResponse builds an envelope for code.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// WithTraceID sets the trace ID and returns e.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// Status returns the HTTP status for e's code.
func (e *ErrorResponse) Status() int {
	return HTTPStatusFromCode(e.Error.Code)
}

// HTTPStatusFromCode maps code to its HTTP status; unknown codes are 500.
func HTTPStatusFromCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}
