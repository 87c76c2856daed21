package ports

import (
	"context"

	"github.com/jsamuelsen/quote-widget/internal/domain"
)

// Diagnostics is the out-of-band channel the quote widget reports through.
// Nothing reported here is shown in the rendered widget; hosts plug in
// implementations to surface failures (logs, metrics, alerts).
type Diagnostics interface {
	// RefreshSucceeded is called after a fetched quotation was applied.
	RefreshSucceeded(ctx context.Context, quote *domain.Quotation)

	// RefreshFailed is called when a fetch failed; the prior quote is kept.
	RefreshFailed(ctx context.Context, err error)

	// RefreshDiscarded is called when a response arrived after it was
	// superseded by a newer request or after the widget was torn down.
	RefreshDiscarded(ctx context.Context, reason string)
}

// Reasons passed to Diagnostics.RefreshDiscarded.
const (
	// DiscardSuperseded marks a response to a request that is no longer the
	// latest one issued.
	DiscardSuperseded = "superseded"

	// DiscardInactive marks a response that arrived after teardown.
	DiscardInactive = "inactive"
)

// MultiDiagnostics fans every report out to each of its members in order.
type MultiDiagnostics []Diagnostics

// NewMultiDiagnostics combines reporters, skipping nil entries.
func NewMultiDiagnostics(reporters ...Diagnostics) MultiDiagnostics {
	out := make(MultiDiagnostics, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}

	return out
}

// RefreshSucceeded implements Diagnostics.
func (m MultiDiagnostics) RefreshSucceeded(ctx context.Context, quote *domain.Quotation) {
	for _, r := range m {
		r.RefreshSucceeded(ctx, quote)
	}
}

// RefreshFailed implements Diagnostics.
func (m MultiDiagnostics) RefreshFailed(ctx context.Context, err error) {
	for _, r := range m {
		r.RefreshFailed(ctx, err)
	}
}

// RefreshDiscarded implements Diagnostics.
func (m MultiDiagnostics) RefreshDiscarded(ctx context.Context, reason string) {
	for _, r := range m {
		r.RefreshDiscarded(ctx, reason)
	}
}
