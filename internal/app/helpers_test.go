package app

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-widget/internal/domain"
	"github.com/jsamuelsen/quote-widget/internal/ports"
)

const waitTimeout = 2 * time.Second

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTicker is driven by the test instead of the clock.
type fakeTicker struct {
	ch       chan time.Time
	interval time.Duration
	stopped  atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() { f.stopped.Store(true) }

// fire delivers one tick and waits until the timer goroutine has taken it.
func (f *fakeTicker) fire(t *testing.T) {
	t.Helper()

	select {
	case f.ch <- time.Now():
	case <-time.After(waitTimeout):
		require.FailNow(t, "timer goroutine did not take the tick")
	}
}

type fetchResult struct {
	quote *domain.Quotation
	err   error
}

// pendingFetch is one provider call held open until the test replies.
type pendingFetch struct {
	ctx   context.Context
	reply chan fetchResult
}

func (p pendingFetch) succeed(q *domain.Quotation) { p.reply <- fetchResult{quote: q} }

func (p pendingFetch) fail(err error) { p.reply <- fetchResult{err: err} }

// gatedProvider hands every call to the test and blocks until answered.
type gatedProvider struct {
	calls chan pendingFetch

	// ignoreCancel makes calls wait for a reply even after their context
	// ends, simulating a provider that answers late.
	ignoreCancel bool
}

func newGatedProvider() *gatedProvider {
	return &gatedProvider{calls: make(chan pendingFetch)}
}

func (p *gatedProvider) RandomQuote(ctx context.Context) (*domain.Quotation, error) {
	f := pendingFetch{ctx: ctx, reply: make(chan fetchResult, 1)}

	if p.ignoreCancel {
		p.calls <- f
		r := <-f.reply
		return r.quote, r.err
	}

	select {
	case p.calls <- f:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case r := <-f.reply:
		return r.quote, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// await returns the next provider call.
func (p *gatedProvider) await(t *testing.T) pendingFetch {
	t.Helper()

	select {
	case f := <-p.calls:
		return f
	case <-time.After(waitTimeout):
		require.FailNow(t, "expected a provider call")
		return pendingFetch{}
	}
}

// assertNoCall fails if the provider is called within d.
func (p *gatedProvider) assertNoCall(t *testing.T, d time.Duration) {
	t.Helper()

	select {
	case <-p.calls:
		require.FailNow(t, "unexpected provider call")
	case <-time.After(d):
	}
}

type diagEvent struct {
	kind   string
	quote  *domain.Quotation
	err    error
	reason string
}

// recordingDiagnostics queues every reported outcome.
type recordingDiagnostics struct {
	events chan diagEvent
}

var _ ports.Diagnostics = (*recordingDiagnostics)(nil)

func newRecordingDiagnostics() *recordingDiagnostics {
	return &recordingDiagnostics{events: make(chan diagEvent, 64)}
}

func (r *recordingDiagnostics) RefreshSucceeded(_ context.Context, q *domain.Quotation) {
	r.events <- diagEvent{kind: "succeeded", quote: q}
}

func (r *recordingDiagnostics) RefreshFailed(_ context.Context, err error) {
	r.events <- diagEvent{kind: "failed", err: err}
}

func (r *recordingDiagnostics) RefreshDiscarded(_ context.Context, reason string) {
	r.events <- diagEvent{kind: "discarded", reason: reason}
}

// next returns the next reported outcome.
func (r *recordingDiagnostics) next(t *testing.T) diagEvent {
	t.Helper()

	select {
	case e := <-r.events:
		return e
	case <-time.After(waitTimeout):
		require.FailNow(t, "expected a diagnostics event")
		return diagEvent{}
	}
}

type testWidget struct {
	*QuoteWidget
	ticker *fakeTicker
	diag   *recordingDiagnostics
}

// newTestWidget builds a widget on a fake ticker. The widget is deactivated
// when the test ends.
func newTestWidget(t *testing.T, provider ports.QuoteProvider, opts ...func(*WidgetConfig)) *testWidget {
	t.Helper()

	diag := newRecordingDiagnostics()
	cfg := WidgetConfig{
		Provider:    provider,
		Diagnostics: diag,
		Logger:      discardLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	w := NewQuoteWidget(cfg)
	ticker := &fakeTicker{ch: make(chan time.Time, 1)}
	w.newTicker = func(d time.Duration) Ticker {
		ticker.interval = d
		return ticker
	}

	t.Cleanup(w.Deactivate)

	return &testWidget{QuoteWidget: w, ticker: ticker, diag: diag}
}

func quote(content, author string) *domain.Quotation {
	return &domain.Quotation{Content: content, Author: author}
}
