package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-widget/internal/adapters/http/middleware"
)

// instrumentedTransport stamps identity headers on every outbound request,
// wraps it in a client span and records its duration and outcome.
type instrumentedTransport struct {
	next      http.RoundTripper
	service   string
	userAgent string

	tracer   trace.Tracer
	duration metric.Float64Histogram
	total    metric.Int64Counter
}

func newInstrumentedTransport(
	next http.RoundTripper,
	service, userAgent string,
	mp metric.MeterProvider,
	tp trace.TracerProvider,
) (*instrumentedTransport, error) {
	meter := mp.Meter(instrumentationName)

	duration, err := meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of quote provider requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	total, err := meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Quote provider requests by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &instrumentedTransport{
		next:      next,
		service:   service,
		userAgent: userAgent,
		tracer:    tp.Tracer(instrumentationName),
		duration:  duration,
		total:     total,
	}, nil
}

// RoundTrip implements http.RoundTripper. The caller's request is cloned
// before headers are added.
func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	ctx, span := t.tracer.Start(req.Context(), "HTTP "+req.Method+" "+t.service,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", t.service),
		),
	)
	defer span.End()

	out := req.Clone(ctx)
	t.stamp(ctx, out.Header)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out.Header))

	resp, err := t.next.RoundTrip(out)
	attrs := []attribute.KeyValue{
		attribute.String("http.method", req.Method),
		attribute.String("peer.service", t.service),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.record(ctx, start, append(attrs, attribute.String("result", failureResult(err))))
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(resp.StatusCode))
	}

	t.record(ctx, start, append(attrs,
		attribute.String("result", strconv.Itoa(resp.StatusCode/100)+"xx"),
		attribute.Int("http.status_code", resp.StatusCode),
	))

	return resp, nil
}

// stamp sets the user agent and forwards the request and correlation IDs.
// A timer-driven refresh has no inbound request, so its refresh ID stands in
// for the request ID.
func (t *instrumentedTransport) stamp(ctx context.Context, h http.Header) {
	h.Set("User-Agent", t.userAgent)

	if id := middleware.OutboundRequestID(ctx); id != "" {
		h.Set(middleware.HeaderRequestID, id)
	}
	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		h.Set(middleware.HeaderCorrelationID, id)
	}
}

func (t *instrumentedTransport) record(ctx context.Context, start time.Time, attrs []attribute.KeyValue) {
	opt := metric.WithAttributes(attrs...)
	t.duration.Record(ctx, time.Since(start).Seconds(), opt)
	t.total.Add(ctx, 1, opt)
}

func failureResult(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "context_canceled"
	}
	return "error"
}
