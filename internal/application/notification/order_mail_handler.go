package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderMailHandler confirms a placed order to its buyer
type OrderMailHandler struct {
	mailer Mailer
	users  identity.UserRepository
	orders trade.OrderRepository
	logger *zap.Logger
}

// NewOrderMailHandler creates a new OrderMailHandler
func NewOrderMailHandler(
	mailer Mailer,
	users identity.UserRepository,
	orders trade.OrderRepository,
	logger *zap.Logger,
) *OrderMailHandler {
	return &OrderMailHandler{
		mailer: mailer,
		users:  users,
		orders: orders,
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderMailHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderCheckedOut}
}

// Handle mails the order summary for an OrderCheckedOut event
func (h *OrderMailHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*trade.OrderCheckedOutEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	user, err := h.users.FindByID(ctx, e.UserID)
	if err != nil {
		return fmt.Errorf("load buyer %d: %w", e.UserID, err)
	}
	order, err := h.orders.FindByID(ctx, e.OrderID)
	if err != nil {
		return fmt.Errorf("load order %d: %w", e.OrderID, err)
	}

	msg := Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Order #%d placed", order.ID),
		Text:    orderSummary(user, order),
	}
	if err := h.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send order mail: %w", err)
	}

	h.logger.Info("Order confirmation mail sent",
		zap.Uint64("order_id", order.ID),
		zap.Uint64("user_id", user.ID))
	return nil
}

func orderSummary(user *identity.User, order *trade.Order) string {
	var b strings.Builder
	name := user.FirstName
	if name == "" {
		name = user.Username
	}
	fmt.Fprintf(&b, "Hello %s,\n\nThank you for your order #%d.\n\n", name, order.ID)
	for i := range order.Items {
		item := &order.Items[i]
		fmt.Fprintf(&b, "  %s x %d = %s\n", item.ProductName, item.Quantity, item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", order.Total().StringFixed(2))
	return b.String()
}

var _ shared.EventHandler = (*OrderMailHandler)(nil)
