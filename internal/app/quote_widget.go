// Package app contains the quote widget: the framework-independent state
// machine that hosts embed and render.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quote-widget/internal/domain"
	"github.com/jsamuelsen/quote-widget/internal/platform/logging"
	"github.com/jsamuelsen/quote-widget/internal/ports"
)

// DefaultRefreshInterval is the period between automatic refreshes.
const DefaultRefreshInterval = 30 * time.Second

// Widget lifecycle and refresh control errors.
var (
	// ErrWidgetActive is returned by Activate on an active widget.
	ErrWidgetActive = errors.New("widget already active")

	// ErrWidgetInactive is returned by RequestRefresh before Activate or
	// after Deactivate.
	ErrWidgetInactive = errors.New("widget not active")

	// ErrRefreshInProgress is returned by RequestRefresh while loading.
	ErrRefreshInProgress = errors.New("refresh already in progress")
)

// WidgetConfig contains the widget's dependencies and timing.
type WidgetConfig struct {
	// Provider fetches quotations. Required.
	Provider ports.QuoteProvider

	// Diagnostics receives refresh outcomes. Defaults to a LogDiagnostics
	// writing to Logger.
	Diagnostics ports.Diagnostics

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger

	// RefreshInterval is the automatic refresh period. Defaults to
	// DefaultRefreshInterval.
	RefreshInterval time.Duration

	// RequestTimeout bounds each fetch. Zero leaves fetches bounded only by
	// the provider and teardown.
	RequestTimeout time.Duration
}

// requestToken identifies one fetch. A response is applied only while its
// token is the latest issued in the current activation.
type requestToken struct {
	generation uint64
	seq        uint64
}

// activation holds what one Activate call owns.
type activation struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// QuoteWidget periodically fetches a random quotation and exposes the state
// renderers need: the current quote and whether a fetch is in flight.
//
// All methods are safe for concurrent use. Fetches run outside the lock;
// state changes happen in short critical sections and are published to
// subscribers while the lock is held, so subscribers observe them in order.
type QuoteWidget struct {
	provider       ports.QuoteProvider
	diagnostics    ports.Diagnostics
	logger         *slog.Logger
	interval       time.Duration
	requestTimeout time.Duration

	// newTicker is overridden in tests to drive simulated time.
	newTicker func(d time.Duration) Ticker

	mu         sync.Mutex
	quote      *domain.Quotation
	loading    bool
	act        *activation
	generation uint64
	seq        uint64
	subs       map[int]chan WidgetState
	nextSub    int
}

// NewQuoteWidget creates an inactive widget with empty state.
// Panics if Provider is nil.
func NewQuoteWidget(cfg WidgetConfig) *QuoteWidget {
	if cfg.Provider == nil {
		panic("QuoteWidget: Provider is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "app.QuoteWidget"))

	diagnostics := cfg.Diagnostics
	if diagnostics == nil {
		diagnostics = NewLogDiagnostics(logger)
	}

	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	return &QuoteWidget{
		provider:       cfg.Provider,
		diagnostics:    diagnostics,
		logger:         logger,
		interval:       interval,
		requestTimeout: cfg.RequestTimeout,
		newTicker:      newTimeTicker,
		subs:           make(map[int]chan WidgetState),
	}
}

// RefreshInterval returns the automatic refresh period.
func (w *QuoteWidget) RefreshInterval() time.Duration {
	return w.interval
}

// Activate resets the widget to empty, starts an immediate fetch in the
// background and starts the periodic timer. Loading is already true when
// Activate returns.
//
// The activation keeps ctx's values but not its cancellation; it ends only
// with Deactivate.
func (w *QuoteWidget) Activate(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.act != nil {
		return ErrWidgetActive
	}

	actCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	act := &activation{ctx: actCtx, cancel: cancel, done: make(chan struct{})}

	w.act = act
	w.generation++
	w.seq = 0
	w.quote = nil
	w.loading = false

	token := w.issueLocked()
	ticker := w.newTicker(w.interval)

	w.logger.DebugContext(ctx, "widget activated",
		slog.Duration("refresh_interval", w.interval),
		slog.Uint64("generation", w.generation),
	)

	go w.fetch(act.ctx, token)
	go w.runTimer(act, ticker)

	return nil
}

// Deactivate tears the widget down: it stops the timer, cancels in-flight
// fetches and waits for the timer goroutine to exit. Responses that arrive
// afterwards are discarded. Calling Deactivate on an inactive widget is a
// no-op.
func (w *QuoteWidget) Deactivate() {
	w.mu.Lock()
	act := w.act
	if act == nil {
		w.mu.Unlock()
		return
	}

	w.act = nil
	w.generation++
	w.loading = false
	w.publishLocked()
	w.mu.Unlock()

	act.cancel()
	<-act.done

	w.logger.DebugContext(act.ctx, "widget deactivated")
}

// Active reports whether the widget is between Activate and Deactivate.
func (w *QuoteWidget) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.act != nil
}

// Refresh fetches a new quotation and blocks until the attempt concludes.
// On success the quote is replaced; on failure it is kept and the error is
// reported to Diagnostics only. Refresh on an inactive widget is a no-op.
func (w *QuoteWidget) Refresh(ctx context.Context) {
	w.mu.Lock()
	act := w.act
	if act == nil {
		w.mu.Unlock()
		return
	}
	token := w.issueLocked()
	w.mu.Unlock()

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := context.AfterFunc(act.ctx, cancel)
	defer stop()

	w.fetch(fetchCtx, token)
}

// RequestRefresh is the manual refresh control. It starts a background
// fetch and returns nil, or refuses with ErrRefreshInProgress while loading
// and ErrWidgetInactive when the widget is not active. The request token is
// issued before RequestRefresh returns, so rapid repeated calls cannot stack.
func (w *QuoteWidget) RequestRefresh() error {
	w.mu.Lock()
	act := w.act
	if act == nil {
		w.mu.Unlock()
		return ErrWidgetInactive
	}
	if w.loading {
		w.mu.Unlock()
		return ErrRefreshInProgress
	}
	token := w.issueLocked()
	w.mu.Unlock()

	go w.fetch(act.ctx, token)

	return nil
}

// TriggerRefresh is RequestRefresh reporting only whether it was accepted.
func (w *QuoteWidget) TriggerRefresh() bool {
	return w.RequestRefresh() == nil
}

// Snapshot returns the current state.
func (w *QuoteWidget) Snapshot() WidgetState {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.stateLocked()
}

// Subscribe returns a channel that receives the latest state after every
// change, and a function that ends the subscription. The channel holds one
// state; a slow reader sees only the most recent one.
func (w *QuoteWidget) Subscribe() (<-chan WidgetState, func()) {
	ch := make(chan WidgetState, 1)

	w.mu.Lock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = ch
	w.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
		})
	}

	return ch, unsubscribe
}

// runTimer spawns a background refresh on every tick until act ends.
func (w *QuoteWidget) runTimer(act *activation, ticker Ticker) {
	defer close(act.done)
	defer ticker.Stop()

	for {
		select {
		case <-act.ctx.Done():
			return
		case <-ticker.C():
			w.tick(act)
		}
	}
}

// tick issues a token for act and fetches in the background. Ticks ignore
// the loading flag; overlapping fetches are resolved by their tokens.
func (w *QuoteWidget) tick(act *activation) {
	w.mu.Lock()
	if w.act != act {
		w.mu.Unlock()
		return
	}
	token := w.issueLocked()
	w.mu.Unlock()

	w.logger.Log(act.ctx, logging.LevelTrace, "refresh timer fired")

	go w.fetch(act.ctx, token)
}

// fetch performs one provider call for token and applies the outcome.
func (w *QuoteWidget) fetch(ctx context.Context, token requestToken) {
	ctx = logging.WithRefreshID(logging.WithContext(ctx, w.logger), uuid.NewString())

	if w.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.requestTimeout)
		defer cancel()
	}

	logger := logging.FromContext(ctx)
	logger.Log(ctx, logging.LevelTrace, "refresh started",
		slog.Uint64("generation", token.generation),
		slog.Uint64("seq", token.seq),
	)

	quote, err := w.provider.RandomQuote(ctx)
	if err == nil && quote == nil {
		err = domain.NewParseError("provider returned no quotation", nil)
	}

	w.complete(ctx, token, quote, err)
}

// complete applies a fetch outcome if token is still current and reports it.
func (w *QuoteWidget) complete(ctx context.Context, token requestToken, quote *domain.Quotation, err error) {
	w.mu.Lock()
	reason := w.discardReasonLocked(token)
	if reason == "" {
		if err == nil {
			applied := *quote
			w.quote = &applied
		}
		w.loading = false
		w.publishLocked()
	}
	w.mu.Unlock()

	logger := logging.FromContext(ctx)

	switch {
	case reason != "":
		logger.Log(ctx, logging.LevelTrace, "refresh response discarded",
			slog.String("reason", reason),
			slog.Bool("failed", err != nil),
		)
		w.diagnostics.RefreshDiscarded(ctx, reason)
	case err != nil:
		w.diagnostics.RefreshFailed(ctx, err)
	default:
		w.diagnostics.RefreshSucceeded(ctx, quote)
	}
}

// discardReasonLocked returns "" when token is the latest issued token of
// the active generation.
func (w *QuoteWidget) discardReasonLocked(token requestToken) string {
	switch {
	case w.act == nil || token.generation != w.generation:
		return ports.DiscardInactive
	case token.seq != w.seq:
		return ports.DiscardSuperseded
	default:
		return ""
	}
}

// issueLocked issues the next token and marks the widget as loading.
func (w *QuoteWidget) issueLocked() requestToken {
	w.seq++
	w.loading = true
	w.publishLocked()

	return requestToken{generation: w.generation, seq: w.seq}
}

func (w *QuoteWidget) stateLocked() WidgetState {
	state := WidgetState{Loading: w.loading}
	if w.quote != nil {
		q := *w.quote
		state.Quote = &q
	}

	return state
}

// publishLocked replaces whatever each subscriber has not read yet with the
// current state. It never blocks.
func (w *QuoteWidget) publishLocked() {
	if len(w.subs) == 0 {
		return
	}

	state := w.stateLocked()
	for _, ch := range w.subs {
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}
