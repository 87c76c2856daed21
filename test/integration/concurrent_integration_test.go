//go:build integration

package integration

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-widget/internal/adapters/http/middleware"
)

// TestConcurrent_RefreshRequests verifies that of many simultaneous manual
// refreshes only one is accepted while a fetch is in flight.
func TestConcurrent_RefreshRequests(t *testing.T) {
	api := newFakeQuoteAPI()
	defer api.close()

	s, err := newStack(api.server.URL, nil)
	require.NoError(t, err)
	defer s.widget.Deactivate()

	require.NoError(t, s.widget.Activate(context.Background()))
	_, err = awaitIdle(s.widget)
	require.NoError(t, err)

	api.hold()

	const numGoroutines = 50
	var accepted, conflicts atomic.Int32
	var wg sync.WaitGroup

	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch s.do(http.MethodPost, "/api/v1/widget/refresh").Code {
			case http.StatusAccepted:
				accepted.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.EqualValues(t, 1, accepted.Load())
	assert.EqualValues(t, numGoroutines-1, conflicts.Load())

	api.release()
	state, err := awaitIdle(s.widget)
	require.NoError(t, err)
	assert.NotNil(t, state.Quote)
	assert.EqualValues(t, 2, api.calls.Load())
}

// TestConcurrent_ReadsDuringRefresh verifies that readers never observe a
// half-applied state while refreshes complete.
func TestConcurrent_ReadsDuringRefresh(t *testing.T) {
	api := newFakeQuoteAPI()
	defer api.close()

	s, err := newStack(api.server.URL, nil)
	require.NoError(t, err)
	defer s.widget.Deactivate()

	require.NoError(t, s.widget.Activate(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				state := s.widget.Snapshot()
				if state.Quote != nil {
					assert.NotEmpty(t, state.Quote.Content)
				}
				assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/widget").Code)
			}
		}()
	}

	for range 10 {
		_, err = awaitIdle(s.widget)
		require.NoError(t, err)
		s.widget.Refresh(context.Background())
	}

	cancel()
	wg.Wait()

	state := s.widget.Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, "Stay hungry.", state.Quote.Content)
}

// TestConcurrent_ActivationCycles verifies that repeated start and stop
// cycles leave no fetch applied to a later lifetime.
func TestConcurrent_ActivationCycles(t *testing.T) {
	api := newFakeQuoteAPI()
	defer api.close()
	api.hold()

	s, err := newStack(api.server.URL, nil)
	require.NoError(t, err)

	for range 20 {
		require.NoError(t, s.widget.Activate(context.Background()))
		assert.True(t, s.widget.Snapshot().Loading)
		s.widget.Deactivate()

		state := s.widget.Snapshot()
		assert.False(t, state.Loading)
		assert.Nil(t, state.Quote)
	}

	api.release()
	assert.False(t, s.widget.Active())
	assert.Nil(t, s.widget.Snapshot().Quote)
}

// TestConcurrent_RateLimitedRefresh verifies the per-client limit on the
// refresh endpoint under parallel load.
func TestConcurrent_RateLimitedRefresh(t *testing.T) {
	api := newFakeQuoteAPI()
	defer api.close()

	s, err := newStack(api.server.URL, middleware.NewRateLimiter(0.001, 2))
	require.NoError(t, err)

	const numGoroutines = 20
	var limited atomic.Int32
	var wg sync.WaitGroup

	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.do(http.MethodPost, "/api/v1/widget/refresh").Code == http.StatusTooManyRequests {
				limited.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.EqualValues(t, numGoroutines-2, limited.Load())
}
