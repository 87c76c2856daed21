package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-widget/internal/domain"
	"github.com/jsamuelsen/quote-widget/internal/ports"
)

const namespace = "quote_widget"

// Outcome label values.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDiscarded = "discarded"
)

// Prometheus records refresh outcomes as Prometheus metrics.
type Prometheus struct {
	refreshes   *prometheus.CounterVec
	discards    *prometheus.CounterVec
	lastSuccess prometheus.Gauge

	now func() time.Time
}

var _ ports.Diagnostics = (*Prometheus)(nil)

// NewPrometheus creates the collectors and registers them with reg.
// Collectors already registered by an earlier call are reused, so building
// the web host twice in one process works.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_total",
		Help:      "Completed quote refreshes by outcome and error kind.",
	}, []string{"outcome", "kind"})

	discards := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_discarded_total",
		Help:      "Quote responses dropped because a newer request or teardown superseded them.",
	}, []string{"reason"})

	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last applied quote.",
	})

	var err error
	if refreshes, err = register(reg, refreshes); err != nil {
		return nil, err
	}
	if discards, err = register(reg, discards); err != nil {
		return nil, err
	}
	if lastSuccess, err = register(reg, lastSuccess); err != nil {
		return nil, err
	}

	return &Prometheus{
		refreshes:   refreshes,
		discards:    discards,
		lastSuccess: lastSuccess,
		now:         time.Now,
	}, nil
}

// RefreshSucceeded implements ports.Diagnostics.
func (p *Prometheus) RefreshSucceeded(_ context.Context, _ *domain.Quotation) {
	p.refreshes.WithLabelValues(OutcomeSuccess, "").Inc()
	p.lastSuccess.Set(float64(p.now().Unix()))
}

// RefreshFailed implements ports.Diagnostics.
func (p *Prometheus) RefreshFailed(_ context.Context, err error) {
	p.refreshes.WithLabelValues(OutcomeFailure, domain.ErrorKind(err)).Inc()
}

// RefreshDiscarded implements ports.Diagnostics.
func (p *Prometheus) RefreshDiscarded(_ context.Context, reason string) {
	p.refreshes.WithLabelValues(OutcomeDiscarded, "").Inc()
	p.discards.WithLabelValues(reason).Inc()
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		var zero C
		return zero, fmt.Errorf("registering collector: %w", err)
	}

	return c, nil
}
