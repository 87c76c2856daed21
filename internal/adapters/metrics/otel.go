package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen/quote-widget/internal/domain"
	"github.com/jsamuelsen/quote-widget/internal/ports"
)

const instrumentationName = "github.com/jsamuelsen/quote-widget/internal/adapters/metrics"

// OTel records refresh outcomes as OpenTelemetry metrics.
type OTel struct {
	refreshes metric.Int64Counter
}

var _ ports.Diagnostics = (*OTel)(nil)

// NewOTel creates the instruments on mp, or on the global provider when mp
// is nil.
func NewOTel(mp metric.MeterProvider) (*OTel, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	refreshes, err := mp.Meter(instrumentationName).Int64Counter(
		"quote_widget.refresh.total",
		metric.WithDescription("Completed quote refreshes by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating refresh counter: %w", err)
	}

	return &OTel{refreshes: refreshes}, nil
}

// RefreshSucceeded implements ports.Diagnostics.
func (o *OTel) RefreshSucceeded(ctx context.Context, _ *domain.Quotation) {
	o.refreshes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", OutcomeSuccess),
	))
}

// RefreshFailed implements ports.Diagnostics.
func (o *OTel) RefreshFailed(ctx context.Context, err error) {
	o.refreshes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", OutcomeFailure),
		attribute.String("error.kind", domain.ErrorKind(err)),
	))
}

// RefreshDiscarded implements ports.Diagnostics.
func (o *OTel) RefreshDiscarded(ctx context.Context, reason string) {
	o.refreshes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", OutcomeDiscarded),
		attribute.String("reason", reason),
	))
}
