package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/quote-widget/telemetry"

// HeaderTraceID echoes the active trace to web host clients.
const HeaderTraceID = "X-Trace-ID"

// Metrics holds the web host's request instruments.
type Metrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
}

// NewMetrics creates the request instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(instrumentationName)

	duration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	total, err := meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	active, err := meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{duration: duration, total: total, active: active}, nil
}

// Handler records request metrics and sets X-Trace-ID when the request is
// traced. Run it after TracingMiddleware.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		route := attribute.String("http.route", c.FullPath())
		method := attribute.String("http.method", c.Request.Method)

		m.active.Add(ctx, 1, metric.WithAttributes(method, route))
		defer m.active.Add(ctx, -1, metric.WithAttributes(method, route))

		c.Next()

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		attrs := metric.WithAttributes(method, route, attribute.Int("http.status_code", c.Writer.Status()))
		m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
		m.total.Add(ctx, 1, attrs)
	}
}

// Middleware is Metrics.Handler on the global meter provider. If the
// instruments cannot be created the error goes to otel.Handle and requests
// pass through unmeasured.
func Middleware() gin.HandlerFunc {
	m, err := NewMetrics(otel.GetMeterProvider())
	if err != nil {
		otel.Handle(err)
		return func(c *gin.Context) { c.Next() }
	}

	return m.Handler()
}

// TracingMiddleware returns the otelgin tracing middleware.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}
