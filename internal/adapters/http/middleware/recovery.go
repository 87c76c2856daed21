package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-widget/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-widget/internal/platform/logging"
)

// Recovery turns a panic into a 500 INTERNAL_ERROR envelope carrying the
// trace ID, and logs the panic with its stack. The panic value never reaches
// the client. Install it first.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctx := c.Request.Context()
			sc := trace.SpanContextFromContext(ctx)

			logging.FromContext(ctx).ErrorContext(ctx, "panic recovered",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			resp := dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred")
			if sc.HasTraceID() {
				resp = resp.WithTraceID(sc.TraceID().String())
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
		}()

		c.Next()
	}
}
