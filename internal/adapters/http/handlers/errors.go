package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-widget/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-widget/internal/app"
	"github.com/jsamuelsen/quote-widget/internal/platform/logging"
)

// MapError maps a widget error to its HTTP status and envelope. Unknown
// errors become a generic 500 so internals do not leak. A nil error is
// 200 with no envelope.
func MapError(err error) (int, *dto.ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	var resp *dto.ErrorResponse

	switch {
	case errors.Is(err, app.ErrRefreshInProgress):
		resp = dto.NewErrorResponse(dto.ErrorCodeConflict, err.Error())
	case errors.Is(err, app.ErrWidgetInactive):
		resp = dto.NewErrorResponse(dto.ErrorCodeUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		resp = dto.NewErrorResponse(dto.ErrorCodeTimeout, "request timed out")
	default:
		resp = dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred")
	}

	return resp.Status(), resp
}

// RespondWithError writes err's envelope with the active trace ID. Internal
// errors are logged in full.
func RespondWithError(c *gin.Context, err error) {
	status, resp := MapError(err)
	resp.WithTraceID(traceID(c))

	if resp.Error.Code == dto.ErrorCodeInternal {
		ctx := c.Request.Context()
		logging.FromContext(ctx).ErrorContext(ctx, "internal error",
			slog.Any("error", err),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(status, resp)
}

// RespondWithErrorCode writes an envelope for a code raised by the HTTP
// layer itself, such as NOT_FOUND or RATE_LIMITED.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	resp := dto.NewErrorResponse(code, message).WithTraceID(traceID(c))
	c.JSON(resp.Status(), resp)
}

func traceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}
