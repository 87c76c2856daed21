package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNew_Disabled(t *testing.T) {
	provider, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.NotNil(t, provider.MeterProvider())
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func newMeteredRouter(t *testing.T, reader sdkmetric.Reader, pre ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m, err := NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)

	router := gin.New()
	router.Use(pre...)
	router.Use(m.Handler())
	router.GET("/api/v1/widget", func(c *gin.Context) {
		c.String(http.StatusTeapot, "ok")
	})

	return router
}

func TestMetrics_RecordsRequests(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	router := newMeteredRouter(t, reader)

	for range 3 {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/widget", http.NoBody))
		assert.Equal(t, http.StatusTeapot, w.Code)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := map[string]metricdata.Metrics{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}

	total, ok := byName["http.server.request.total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, total.DataPoints, 1)
	assert.Equal(t, int64(3), total.DataPoints[0].Value)

	status, ok := total.DataPoints[0].Attributes.Value("http.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusTeapot), status.AsInt64())

	active, ok := byName["http.server.active_requests"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, active.DataPoints, 1)
	assert.Zero(t, active.DataPoints[0].Value)

	assert.Contains(t, byName, "http.server.request.duration")
}

func TestMetrics_TraceIDHeader(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var traceID string
	startSpan := func(c *gin.Context) {
		ctx, span := tp.Tracer("test").Start(c.Request.Context(), "request")
		defer span.End()
		traceID = span.SpanContext().TraceID().String()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}

	router := newMeteredRouter(t, sdkmetric.NewManualReader(), startSpan)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/widget", http.NoBody))

	assert.Equal(t, traceID, w.Header().Get(HeaderTraceID))
}

func TestMiddleware_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(TracingMiddleware("quote-widget"), Middleware())
	router.GET("/api/v1/widget", func(c *gin.Context) {
		c.String(http.StatusTeapot, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/widget", http.NoBody))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Empty(t, w.Header().Get(HeaderTraceID), "global noop tracer yields no trace id")
}
