//go:build integration

package integration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	httpserver "github.com/jsamuelsen/quote-widget/internal/adapters/http"
	"github.com/jsamuelsen/quote-widget/internal/adapters/clients"
	"github.com/jsamuelsen/quote-widget/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-widget/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-widget/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-widget/internal/app"
	"github.com/jsamuelsen/quote-widget/internal/platform/config"
	"github.com/jsamuelsen/quote-widget/internal/ports"
)

const settleTimeout = 3 * time.Second

// fakeQuoteAPI stands in for the remote quote service. Responses can be
// switched between calls and held open until released.
type fakeQuoteAPI struct {
	server *httptest.Server
	calls  atomic.Int32

	mu     sync.Mutex
	status int
	body   string
	gate   chan struct{}
}

func newFakeQuoteAPI() *fakeQuoteAPI {
	f := &fakeQuoteAPI{status: http.StatusOK, body: `{"content":"Stay hungry.","author":"Stewart Brand"}`}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

func (f *fakeQuoteAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)

	f.mu.Lock()
	status, body, gate := f.status, f.body, f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (f *fakeQuoteAPI) respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

// hold makes every following request wait until release is called.
func (f *fakeQuoteAPI) hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
}

func (f *fakeQuoteAPI) release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gate != nil {
		close(f.gate)
		f.gate = nil
	}
}

func (f *fakeQuoteAPI) close() {
	f.release()
	f.server.Close()
}

// stack is the web host wired the way the serve command wires it, minus the
// listener.
type stack struct {
	widget *app.QuoteWidget
	engine *gin.Engine
}

func newQuoteClient(baseURL string) (*acl.QuoteClient, error) {
	client, err := clients.New(&clients.Config{
		BaseURL:     baseURL,
		ServiceName: "quote-service",
		Timeout:     2 * time.Second,
		Transport: config.TransportConfig{
			MaxIdleConns:        config.DefaultTransportMaxIdleConns,
			MaxIdleConnsPerHost: config.DefaultTransportMaxIdleConnsPerHost,
			IdleConnTimeout:     30 * time.Second,
		},
		Logger: discardLogger(),
	})
	if err != nil {
		return nil, err
	}

	return acl.NewQuoteClient(acl.QuoteClientConfig{
		Client: client,
		Path:   config.DefaultQuotePath,
		Logger: discardLogger(),
	}), nil
}

func newStack(baseURL string, limiter *middleware.RateLimiter) (*stack, error) {
	provider, err := newQuoteClient(baseURL)
	if err != nil {
		return nil, err
	}

	widget := app.NewQuoteWidget(app.WidgetConfig{
		Provider:        provider,
		Logger:          discardLogger(),
		RefreshInterval: time.Hour,
	})

	health := ports.NewHealthRegistry(ports.WithCheckTimeout(time.Second))
	for _, checker := range []ports.HealthChecker{provider, widget} {
		if err := health.Register(checker); err != nil {
			return nil, err
		}
	}

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	httpserver.SetupRouter(engine, httpserver.RouterConfig{
		ServiceName:   "quote-widget-it",
		HealthHandler: handlers.NewHealthHandler(health, handlers.NewBuildInfo("it", "none", "now")),
		WidgetHandler: handlers.NewWidgetHandler(widget),
		RateLimiter:   limiter,
		Timeout:       5 * time.Second,
	})

	return &stack{widget: widget, engine: engine}, nil
}

func (s *stack) do(method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, http.NoBody)
	s.engine.ServeHTTP(w, req)
	return w
}

var errNotSettled = errors.New("widget did not finish loading")

// awaitIdle waits until the widget has no fetch in flight.
func awaitIdle(w *app.QuoteWidget) (app.WidgetState, error) {
	return awaitState(w, func(s app.WidgetState) bool { return !s.Loading })
}

func awaitState(w *app.QuoteWidget, done func(app.WidgetState) bool) (app.WidgetState, error) {
	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()

	updates, unsubscribe := w.Subscribe()
	defer unsubscribe()

	state := w.Snapshot()
	for !done(state) {
		select {
		case state = <-updates:
		case <-ctx.Done():
			return state, errNotSettled
		}
	}

	return state, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
