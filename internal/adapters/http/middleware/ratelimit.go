package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen/quote-widget/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-widget/internal/platform/logging"
)

const (
	// rateLimitIdleTTL is how long an idle client's limiter is kept.
	rateLimitIdleTTL = 5 * time.Minute

	// rateLimitSweepInterval is how often idle limiters are removed.
	rateLimitSweepInterval = time.Minute
)

// visitor is the limiter state of one client IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

// NewRateLimiter creates a per-client limiter allowing rps sustained
// requests per second with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Allow reports whether the client may make a request now.
func (l *RateLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	v, ok := l.visitors[clientIP]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[clientIP] = v
	}
	now := l.now()
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Sweep removes limiters idle for longer than rateLimitIdleTTL.
func (l *RateLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	cutoff := l.now().Add(-rateLimitIdleTTL)
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
			removed++
		}
	}

	return removed
}

// Run sweeps idle limiters until ctx is cancelled.
func (l *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rateLimitSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if l.Allow(ip) {
			c.Next()
			return
		}

		logging.FromContext(c.Request.Context()).Warn("rate limit exceeded",
			slog.String("client_ip", ip),
			slog.String("path", c.Request.URL.Path),
		)

		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			dto.NewErrorResponse(dto.ErrorCodeRateLimited, "too many refresh requests"))
	}
}
