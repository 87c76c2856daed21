package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-widget/internal/mocks"
	"github.com/jsamuelsen/quote-widget/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newHealthRouter(t *testing.T, result *ports.HealthResult, gatherer prometheus.Gatherer) *gin.Engine {
	t.Helper()

	registry := mocks.NewMockHealthRegistry(t)
	if result != nil {
		registry.EXPECT().CheckAll(mock.Anything).Return(result).Once()
	}

	handler := NewHealthHandler(registry, NewBuildInfo("1.4.0", "9f3c2ab", "2026-03-01T08:00:00Z")).
		WithGatherer(gatherer)

	router := gin.New()
	handler.Routes(router.Group("/-"))

	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthHandler_Liveness(t *testing.T) {
	w := get(newHealthRouter(t, nil, nil), "/-/live")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name   string
		status ports.HealthStatus
		checks map[string]*ports.CheckResult
		code   int
	}{
		{
			name:   "provider and widget healthy",
			status: ports.HealthStatusHealthy,
			checks: map[string]*ports.CheckResult{
				"quote-service": {Status: ports.HealthStatusHealthy},
				"quote-widget":  {Status: ports.HealthStatusHealthy},
			},
			code: http.StatusOK,
		},
		{
			name:   "widget has no quote yet",
			status: ports.HealthStatusDegraded,
			checks: map[string]*ports.CheckResult{
				"quote-service": {Status: ports.HealthStatusHealthy},
				"quote-widget":  {Status: ports.HealthStatusDegraded, Message: "degraded: no quote yet"},
			},
			code: http.StatusOK,
		},
		{
			name:   "quote API down",
			status: ports.HealthStatusUnhealthy,
			checks: map[string]*ports.CheckResult{
				"quote-service": {Status: ports.HealthStatusUnhealthy, Message: "quote API unhealthy: connection refused"},
			},
			code: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newHealthRouter(t, &ports.HealthResult{Status: tt.status, Checks: tt.checks}, nil)

			w := get(router, "/-/ready")

			assert.Equal(t, tt.code, w.Code)

			var got ports.HealthResult
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.status, got.Status)
			assert.Len(t, got.Checks, len(tt.checks))
		})
	}
}

func TestHealthHandler_Build(t *testing.T) {
	w := get(newHealthRouter(t, nil, nil), "/-/build")

	require.Equal(t, http.StatusOK, w.Code)

	var got BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, BuildInfo{
		Version:   "1.4.0",
		Commit:    "9f3c2ab",
		BuildTime: "2026-03-01T08:00:00Z",
		GoVersion: runtime.Version(),
	}, got)
}

func TestHealthHandler_Metrics(t *testing.T) {
	t.Run("default registry", func(t *testing.T) {
		w := get(newHealthRouter(t, nil, nil), "/-/metrics")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("custom gatherer", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		refreshes := prometheus.NewCounter(prometheus.CounterOpts{Name: "quote_widget_refreshes_total", Help: "test"})
		reg.MustRegister(refreshes)
		refreshes.Add(3)

		w := get(newHealthRouter(t, nil, reg), "/-/metrics")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "quote_widget_refreshes_total 3")
	})
}
