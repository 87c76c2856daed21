package middleware

import (
	"context"

	"github.com/jsamuelsen/quote-widget/internal/platform/logging"
)

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// ContextWithRequestID stores the inbound request ID in ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithCorrelationID stores the inbound correlation ID in ctx.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// RequestIDFromContext returns the inbound request ID, or "" when ctx did not
// pass through RequestID.
func RequestIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, requestIDKey)
}

// CorrelationIDFromContext returns the inbound correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, correlationIDKey)
}

// OutboundRequestID is the X-Request-ID sent to the quote API. Timer-driven
// refreshes have no inbound request, so the refresh ID stands in.
func OutboundRequestID(ctx context.Context) string {
	if id := RequestIDFromContext(ctx); id != "" {
		return id
	}

	return logging.RefreshIDFromContext(ctx)
}

func idFromContext(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)
	return id
}
