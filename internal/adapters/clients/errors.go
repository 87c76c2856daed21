// Package clients provides HTTP client adapters for downstream services.
package clients

import "errors"

// Client errors represent failures in the HTTP client layer.
// They are infrastructure failures that the acl package translates into
// domain errors.
var (
	// ErrRequestFailed is returned when no HTTP response was received:
	// DNS or connection failure, timeout, or cancellation. The underlying
	// error is wrapped as well.
	ErrRequestFailed = errors.New("request failed")
)
