package domain

// Domain errors describe why a quote could not be obtained, not how the
// failure looks on the wire. Adapters classify their failures into these
// kinds; hosts never see them, the widget only reports them.

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrTransport indicates the request could not be sent or no response arrived.
	ErrTransport = errors.New("transport failure")

	// ErrStatus indicates a response arrived with a non-success status code.
	ErrStatus = errors.New("unexpected status")

	// ErrParse indicates the response body is not valid JSON or lacks required fields.
	ErrParse = errors.New("malformed response")
)

// Error kinds used as stable labels in logs and metrics.
const (
	KindTransport = "transport"
	KindStatus    = "status"
	KindParse     = "parse"
	KindUnknown   = "unknown"
)

// TransportError provides context for transport failures.
type TransportError struct {
	Service string
	Cause   error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("service %q unreachable: %v", e.Service, e.Cause)
	}

	return fmt.Sprintf("service %q unreachable", e.Service)
}

// Unwrap returns the sentinel and the underlying cause.
func (e *TransportError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransport}
	}

	return []error{ErrTransport, e.Cause}
}

// NewTransportError creates a transport error with context.
func NewTransportError(service string, cause error) error {
	return &TransportError{Service: service, Cause: cause}
}

// StatusError provides context for non-success responses.
type StatusError struct {
	Service    string
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("service %q responded with HTTP %d", e.Service, e.StatusCode)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *StatusError) Unwrap() error {
	return ErrStatus
}

// NewStatusError creates a status error with context.
func NewStatusError(service string, statusCode int) error {
	return &StatusError{Service: service, StatusCode: statusCode}
}

// ParseError provides context for undecodable or incomplete response bodies.
type ParseError struct {
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Cause)
	}

	return "malformed response: " + e.Reason
}

// Unwrap returns the sentinel and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrParse}
	}

	return []error{ErrParse, e.Cause}
}

// NewParseError creates a parse error with context.
func NewParseError(reason string, cause error) error {
	return &ParseError{Reason: reason, Cause: cause}
}

// IsTransport checks if an error is a transport error.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsStatus checks if an error is a status error.
func IsStatus(err error) bool {
	return errors.Is(err, ErrStatus)
}

// IsParse checks if an error is a parse error.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// ErrorKind returns the label of the error's kind, or KindUnknown.
func ErrorKind(err error) string {
	switch {
	case IsTransport(err):
		return KindTransport
	case IsStatus(err):
		return KindStatus
	case IsParse(err):
		return KindParse
	default:
		return KindUnknown
	}
}
