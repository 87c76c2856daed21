package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quote-widget/internal/domain"
	"github.com/jsamuelsen/quote-widget/internal/platform/logging"
)

// LogDiagnostics reports refresh outcomes as structured log records.
// Records go to the logger in the context when there is one, so they carry
// the refresh ID.
type LogDiagnostics struct {
	fallback *slog.Logger
}

// NewLogDiagnostics creates a reporter that logs to logger when the context
// carries none.
func NewLogDiagnostics(logger *slog.Logger) *LogDiagnostics {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogDiagnostics{fallback: logger}
}

// RefreshSucceeded implements ports.Diagnostics.
func (d *LogDiagnostics) RefreshSucceeded(ctx context.Context, quote *domain.Quotation) {
	d.logger(ctx).InfoContext(ctx, "quote refreshed",
		slog.String("author", quote.Author),
		slog.Int("content_length", len(quote.Content)),
	)
}

// RefreshFailed implements ports.Diagnostics.
func (d *LogDiagnostics) RefreshFailed(ctx context.Context, err error) {
	d.logger(ctx).ErrorContext(ctx, "quote refresh failed",
		slog.String("error_kind", domain.ErrorKind(err)),
		slog.Any("error", err),
	)
}

// RefreshDiscarded implements ports.Diagnostics.
func (d *LogDiagnostics) RefreshDiscarded(ctx context.Context, reason string) {
	d.logger(ctx).DebugContext(ctx, "quote refresh discarded",
		slog.String("reason", reason),
	)
}

func (d *LogDiagnostics) logger(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, d.fallback)
}
