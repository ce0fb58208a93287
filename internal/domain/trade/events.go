package trade

import "github.com/shopapi/backend/internal/domain/shared"

// Aggregate type constant for Order
const AggregateTypeOrder = "Order"

// Order domain event types
const (
	EventTypeOrderCheckedOut   = "OrderCheckedOut"
	EventTypeOrderStateChanged = "OrderStateChanged"
)

// OrderCheckedOutEvent is published once per successful basket -> new
// transition, after the transaction has committed.
type OrderCheckedOutEvent struct {
	shared.BaseDomainEvent
	OrderID   uint64 `json:"order_id"`
	UserID    uint64 `json:"user_id"`
	ContactID uint64 `json:"contact_id"`
	Total     string `json:"total"`
}

// NewOrderCheckedOutEvent creates a new OrderCheckedOutEvent
func NewOrderCheckedOutEvent(o *Order) *OrderCheckedOutEvent {
	var contactID uint64
	if o.ContactID != nil {
		contactID = *o.ContactID
	}
	return &OrderCheckedOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCheckedOut, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		ContactID:       contactID,
		Total:           o.Total().StringFixed(2),
	}
}

// OrderStateChangedEvent is published when a placed order changes state
type OrderStateChangedEvent struct {
	shared.BaseDomainEvent
	OrderID uint64     `json:"order_id"`
	UserID  uint64     `json:"user_id"`
	From    OrderState `json:"from"`
	To      OrderState `json:"to"`
}

// NewOrderStateChangedEvent creates a new OrderStateChangedEvent
func NewOrderStateChangedEvent(o *Order, from, to OrderState) *OrderStateChangedEvent {
	return &OrderStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStateChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		From:            from,
		To:              to,
	}
}
