// Package acl provides the Anti-Corruption Layer between the remote quote API
// and the domain.
//
// External DTOs never leave this package. Every outcome of a provider call
// maps onto exactly one domain error:
//
//   - no HTTP response (DNS, connect, timeout, cancel) → [domain.TransportError]
//   - any non-2xx status → [domain.StatusError]
//   - body over [MaxResponseBytes], malformed JSON, missing or mistyped
//     fields → [domain.ParseError]
//
// [DecodeResponse] validates DTOs with go-playground/validator tags before
// [Translate] hands them to a translation function.
package acl
