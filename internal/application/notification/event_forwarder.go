package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// Envelope is the wire format of a forwarded event
type Envelope struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID uint64          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// EventForwarder publishes order events to an external sink keyed by order id,
// so all events of one order land on the same partition.
type EventForwarder struct {
	sink   EventSink
	logger *zap.Logger
}

// NewEventForwarder creates a new EventForwarder
func NewEventForwarder(sink EventSink, logger *zap.Logger) *EventForwarder {
	return &EventForwarder{sink: sink, logger: logger}
}

// EventTypes returns the event types this handler forwards
func (f *EventForwarder) EventTypes() []string {
	return []string{trade.EventTypeOrderCheckedOut, trade.EventTypeOrderStateChanged}
}

// Handle serializes the event and writes it to the sink
func (f *EventForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.EventType(), err)
	}
	envelope, err := json.Marshal(Envelope{
		ID:          event.EventID().String(),
		Type:        event.EventType(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     payload,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	key := strconv.FormatUint(event.AggregateID(), 10)
	if err := f.sink.Write(ctx, key, envelope); err != nil {
		return fmt.Errorf("forward %s: %w", event.EventType(), err)
	}

	f.logger.Debug("Event forwarded",
		zap.String("event_type", event.EventType()),
		zap.String("key", key))
	return nil
}

var _ shared.EventHandler = (*EventForwarder)(nil)
