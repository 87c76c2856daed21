package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 2)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, limiter.Allow("10.0.0.2"), "clients are limited independently")

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"), "one token refilled after a second")
	assert.False(t, limiter.Allow("10.0.0.1"))
}

func TestRateLimiter_Sweep(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	limiter.Allow("idle")
	now = now.Add(rateLimitIdleTTL - time.Minute)
	limiter.Allow("active")
	now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, limiter.Sweep())
	assert.Len(t, limiter.visitors, 1)
	assert.Contains(t, limiter.visitors, "active")
}

func TestRateLimiter_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		NewRateLimiter(1, 1).Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(0.001, 1)

	router := gin.New()
	router.POST("/refresh", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/refresh", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/refresh", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}
