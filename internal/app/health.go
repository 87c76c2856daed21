package app

import (
	"context"
	"fmt"

	"github.com/jsamuelsen/quote-widget/internal/ports"
)

// HealthCheckName is the name the widget registers its health check under.
const HealthCheckName = "quote-widget"

// Name implements ports.HealthChecker.
func (w *QuoteWidget) Name() string {
	return HealthCheckName
}

// Check implements ports.HealthChecker. An inactive widget is unhealthy; an
// active one without a quote yet is degraded, since it still renders the
// placeholder.
func (w *QuoteWidget) Check(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.act == nil:
		return ErrWidgetInactive
	case w.quote == nil:
		return fmt.Errorf("%w: no quote yet", ports.ErrDegraded)
	default:
		return nil
	}
}
