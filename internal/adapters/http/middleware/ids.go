// Package middleware provides the web host's Gin middleware.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quote-widget/internal/platform/logging"
)

// Propagated ID headers. The request ID names one HTTP exchange; the
// correlation ID spans every exchange a client groups together.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// maxIDLength bounds inbound IDs echoed into headers and logs.
const maxIDLength = 128

// RequestID accepts a sane inbound X-Request-ID or generates a UUID, echoes
// it on the response and stores it on the request context and its logger.
// The quote client forwards it upstream.
func RequestID() gin.HandlerFunc {
	return propagateID(HeaderRequestID, func(ctx context.Context, id string) context.Context {
		return logging.WithRequestID(ContextWithRequestID(ctx, id), id)
	})
}

// CorrelationID is RequestID for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return propagateID(HeaderCorrelationID, func(ctx context.Context, id string) context.Context {
		return logging.WithCorrelationID(ContextWithCorrelationID(ctx, id), id)
	})
}

func propagateID(header string, store func(context.Context, string) context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if !validID(id) {
			id = uuid.NewString()
		}

		c.Header(header, id)
		c.Request = c.Request.WithContext(store(c.Request.Context(), id))

		c.Next()
	}
}

// validID accepts non-empty printable ASCII without spaces.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}

	return true
}
