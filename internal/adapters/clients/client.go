package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-widget/internal/platform/config"
	"github.com/jsamuelsen/quote-widget/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quote-widget/internal/adapters/clients"

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "quote-widget"
)

// Config configures a Client.
type Config struct {
	// BaseURL prefixes every request path, e.g. "https://api.quotable.io".
	BaseURL string

	// ServiceName names the downstream in logs, spans and metrics. Required.
	ServiceName string

	// Timeout bounds one request including the body read.
	Timeout time.Duration

	// Transport sets connection pool limits. Zero values keep net/http's.
	Transport config.TransportConfig

	UserAgent string
	Logger    *slog.Logger

	// MeterProvider and TracerProvider default to the otel globals.
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

// Client is an instrumented HTTP client for one downstream service. Every
// call is a single attempt; callers decide whether to try again.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	logger      *slog.Logger
}

// New builds a Client from cfg.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mp := cfg.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	rt, err := newInstrumentedTransport(pooledTransport(cfg.Transport), cfg.ServiceName, userAgent, mp, tp)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:        &http.Client{Timeout: timeout, Transport: rt},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
		logger:      logger.With(slog.String("component", "clients.Client"), slog.String("downstream", cfg.ServiceName)),
	}, nil
}

// pooledTransport clones the default transport, keeping its proxy and TLS
// settings, and applies the pool limits.
func pooledTransport(cfg config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.MaxIdleConns > 0 {
		t.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}
	if cfg.IdleConnTimeout > 0 {
		t.IdleConnTimeout = cfg.IdleConnTimeout
	}

	return t
}

// Do sends req. Failures without a response wrap ErrRequestFailed; every
// response, non-2xx included, goes back to the caller to classify.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logging.FromContextOr(ctx, c.logger).WarnContext(ctx, "downstream request failed",
			slog.String("downstream", c.serviceName),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	logging.FromContextOr(ctx, c.logger).Log(ctx, logging.LevelTrace, "downstream request completed",
		slog.String("downstream", c.serviceName),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	return resp, nil
}

// Get sends a JSON GET for path relative to the base URL.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return c.Do(req)
}

// ServiceName returns the downstream's name.
func (c *Client) ServiceName() string {
	return c.serviceName
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}
