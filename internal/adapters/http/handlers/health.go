// Package handlers provides the web host's HTTP handlers: the widget page,
// its JSON API, and the /-/ operational endpoints.
package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/quote-widget/internal/ports"
)

// BuildInfo describes the running binary. Version, Commit and BuildTime are
// injected with ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo fills GoVersion from the runtime.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthHandler serves the /-/ operational endpoints.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	metrics   http.Handler
}

// NewHealthHandler creates a handler reporting registry's checks. Metrics are
// served from the default Prometheus registry until WithGatherer is called.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo) *HealthHandler {
	return &HealthHandler{
		registry:  registry,
		buildInfo: buildInfo,
		metrics:   promhttp.Handler(),
	}
}

// WithGatherer serves /-/metrics from g.
func (h *HealthHandler) WithGatherer(g prometheus.Gatherer) *HealthHandler {
	if g != nil {
		h.metrics = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	return h
}

// Routes registers live, ready, build and metrics on rg, normally the /-
// group.
func (h *HealthHandler) Routes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.Build)
	rg.GET("/metrics", gin.WrapH(h.metrics))
}

// Liveness answers 200 while the process runs.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness runs every registered check. A degraded widget, one still
// showing the placeholder, stays ready; any unhealthy check answers 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	status := http.StatusOK
	if !result.Status.Ready() {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, result)
}

// Build returns the build information.
func (h *HealthHandler) Build(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}
