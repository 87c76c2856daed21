package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-widget/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-widget/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-widget/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-widget/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// ServiceName names the otelgin tracer.
	ServiceName string

	// HealthHandler handles the /-/ endpoints.
	HealthHandler *handlers.HealthHandler

	// WidgetHandler handles the widget page and API.
	WidgetHandler *handlers.WidgetHandler

	// RateLimiter limits manual refreshes per client. Nil disables limiting.
	RateLimiter *middleware.RateLimiter

	// Timeout is the deadline for /api/v1 requests.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//
// Route groups:
//   - /-/ (internal): health, build info and metrics
//   - / (page): the widget page and its refresh form
//   - /api/v1/ (public API): widget state and refresh, with a deadline
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging("/-/live", "/-/ready", "/-/metrics"),
	)

	engine.NoRoute(func(c *gin.Context) {
		handlers.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "route not found")
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.Routes(engine.Group("/-"))
	}

	if cfg.WidgetHandler == nil {
		return
	}

	var refresh []gin.HandlerFunc
	if cfg.RateLimiter != nil {
		refresh = append(refresh, cfg.RateLimiter.Middleware())
	}

	cfg.WidgetHandler.RegisterPageRoutes(&engine.RouterGroup, refresh...)

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	cfg.WidgetHandler.RegisterAPIRoutes(apiV1, refresh...)
}
