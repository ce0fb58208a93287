package telemetry

import (
	"context"

	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
)

// BusinessMetricsHandler turns committed domain events into counters.
type BusinessMetricsHandler struct {
	metrics *Metrics
}

// NewBusinessMetricsHandler creates an event handler feeding metrics.
func NewBusinessMetricsHandler(metrics *Metrics) *BusinessMetricsHandler {
	return &BusinessMetricsHandler{metrics: metrics}
}

// EventTypes returns the event types this handler counts.
func (h *BusinessMetricsHandler) EventTypes() []string {
	return []string{
		identity.EventTypeUserRegistered,
		trade.EventTypeOrderCheckedOut,
		trade.EventTypeOrderStateChanged,
		catalog.EventTypeCatalogImported,
	}
}

// Handle increments the counter matching the event.
func (h *BusinessMetricsHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *identity.UserRegisteredEvent:
		h.metrics.usersRegistered.Inc()
	case *trade.OrderCheckedOutEvent:
		h.metrics.ordersCheckedOut.Inc()
	case *trade.OrderStateChangedEvent:
		h.metrics.orderTransitions.WithLabelValues(e.To.String()).Inc()
	case *catalog.CatalogImportedEvent:
		h.metrics.catalogImports.Inc()
		h.metrics.importedListings.WithLabelValues("added").Add(float64(e.ProductInfosAdded))
		h.metrics.importedListings.WithLabelValues("updated").Add(float64(e.ProductInfosUpdated))
	}
	return nil
}

var _ shared.EventHandler = (*BusinessMetricsHandler)(nil)
