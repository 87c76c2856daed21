// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error kinds (ErrTransport, ErrStatus, ErrParse)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-widget/internal/domain"
)

// QuoteProvider fetches a random quotation from a remote source.
//
// Key considerations for implementations:
//   - One unauthenticated request per call, no retries
//   - Respect context deadlines and cancellation
//   - Classify every failure as a domain transport, status or parse error
type QuoteProvider interface {
	// RandomQuote returns a freshly fetched quotation.
	RandomQuote(ctx context.Context) (*domain.Quotation, error)
}
