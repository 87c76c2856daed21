package acl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quote-widget/internal/adapters/clients"
	"github.com/jsamuelsen/quote-widget/internal/domain"
	"github.com/jsamuelsen/quote-widget/internal/platform/logging"
)

// DefaultQuotePath is the random-quote endpoint of quotable.io.
const DefaultQuotePath = "/random"

// QuoteClientConfig contains configuration for the quote client.
type QuoteClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the quote API endpoint.
	Client *clients.Client

	// Path is the random-quote endpoint. Defaults to DefaultQuotePath.
	Path string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuoteClient implements ports.QuoteProvider using the quotable.io API.
type QuoteClient struct {
	client *clients.Client
	path   string
	logger *slog.Logger
}

// NewQuoteClient creates a new quote client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	path := cfg.Path
	if path == "" {
		path = DefaultQuotePath
	}

	return &QuoteClient{
		client: cfg.Client,
		path:   path,
		logger: logger,
	}
}

// quotableResponse is the external DTO from the quotable.io API.
// Pointers distinguish a missing key from an empty string; author may be
// empty but must be present. Other fields are ignored.
type quotableResponse struct {
	Content *string `json:"content" validate:"required,min=1"`
	Author  *string `json:"author"  validate:"required"`
}

// RandomQuote fetches a random quote from the external API.
// Implements ports.QuoteProvider.
func (c *QuoteClient) RandomQuote(ctx context.Context) (*domain.Quotation, error) {
	service := c.client.ServiceName()
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", c.path))

	resp, err := c.client.Get(ctx, c.path)
	if mapped := MapHTTPError(resp, err, service); mapped != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return nil, mapped
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", c.path),
		slog.Int("status", resp.StatusCode))

	data, err := ReadBody(resp.Body, service)
	if err != nil {
		return nil, err
	}

	quote, err := Translate(data, translateQuote)
	if err != nil {
		c.logger.DebugContext(ctx, "rejected quote response", slog.Any("error", err))
		return nil, err
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated external DTO to domain",
		slog.Int("content_length", len(quote.Content)),
		slog.String("author", quote.Author))

	return quote, nil
}

// translateQuote converts the validated external response to a Quotation.
func translateQuote(ext *quotableResponse) *domain.Quotation {
	return &domain.Quotation{
		Content: *ext.Content,
		Author:  *ext.Author,
	}
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.client.ServiceName()
}

// Check reports whether the quote API answers with a 2xx status.
// Implements ports.HealthChecker.
func (c *QuoteClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, c.path)
	if mapped := MapHTTPError(resp, err, c.client.ServiceName()); mapped != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return fmt.Errorf("quote API unhealthy: %w", mapped)
	}

	return resp.Body.Close()
}
