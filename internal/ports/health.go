package ports

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

var (
	// ErrDuplicateChecker is returned by Register for a name already in use.
	ErrDuplicateChecker = errors.New("duplicate health checker")

	// ErrDegraded marks a check failure that does not make the service
	// unready. Wrap it to report a degraded check.
	ErrDegraded = errors.New("degraded")
)

// DefaultCheckTimeout bounds each check when the caller's context has no
// tighter deadline.
const DefaultCheckTimeout = 5 * time.Second

// HealthChecker is implemented by components that report their health. The
// quote provider reports whether the remote API answers; the widget reports
// whether it is running and has a quote to show.
type HealthChecker interface {
	// Name returns a unique identifier for this check.
	Name() string

	// Check returns nil when healthy, an error wrapping ErrDegraded when
	// degraded, and any other error when unhealthy.
	Check(ctx context.Context) error
}

// HealthRegistry aggregates health checks.
type HealthRegistry interface {
	Register(checker HealthChecker) error
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus is the state of one check or of the whole registry.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// severity orders statuses so the aggregate is the worst check.
func (s HealthStatus) severity() int {
	switch s {
	case HealthStatusUnhealthy:
		return 2
	case HealthStatusDegraded:
		return 1
	default:
		return 0
	}
}

// Ready reports whether the status should pass a readiness probe.
func (s HealthStatus) Ready() bool {
	return s != HealthStatusUnhealthy
}

// HealthResult is the outcome of CheckAll.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Status   HealthStatus  `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// DefaultHealthRegistry runs registered checks concurrently. Safe for
// concurrent use.
type DefaultHealthRegistry struct {
	timeout time.Duration

	mu       sync.RWMutex
	checkers []HealthChecker
}

// HealthRegistryOption configures a DefaultHealthRegistry.
type HealthRegistryOption func(*DefaultHealthRegistry)

// WithCheckTimeout sets the per-check timeout. Non-positive values keep the
// default.
func WithCheckTimeout(d time.Duration) HealthRegistryOption {
	return func(r *DefaultHealthRegistry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewHealthRegistry creates an empty registry.
func NewHealthRegistry(opts ...HealthRegistryOption) *DefaultHealthRegistry {
	r := &DefaultHealthRegistry{timeout: DefaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds checker. Names must be unique.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	if slices.ContainsFunc(r.checkers, func(c HealthChecker) bool { return c.Name() == name }) {
		return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
	}

	r.checkers = append(r.checkers, checker)

	return nil
}

// CheckAll runs every check concurrently and reports the worst status.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	checkers := slices.Clone(r.checkers)
	r.mu.RUnlock()

	result := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checkers)),
		Timestamp: time.Now(),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, checker := range checkers {
		wg.Go(func() {
			res := r.run(ctx, checker)

			mu.Lock()
			defer mu.Unlock()

			result.Checks[checker.Name()] = res
			if res.Status.severity() > result.Status.severity() {
				result.Status = res.Status
			}
		})
	}

	wg.Wait()

	return result
}

func (r *DefaultHealthRegistry) run(ctx context.Context, checker HealthChecker) *CheckResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	err := checker.Check(ctx)
	res := &CheckResult{Status: HealthStatusHealthy, Duration: time.Since(start)}

	switch {
	case err == nil:
	case errors.Is(err, ErrDegraded):
		res.Status = HealthStatusDegraded
		res.Message = err.Error()
	default:
		res.Status = HealthStatusUnhealthy
		res.Message = err.Error()
	}

	return res
}
