package trade

import (
	"context"

	"github.com/shopapi/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence.
// Loaded orders carry their items with the listing price, product name and shop.
type OrderRepository interface {
	// Create inserts the order. A second basket for the same user is not
	// inserted and ErrBasketExists is returned instead.
	Create(ctx context.Context, order *Order) error
	// Delete removes the order and its items
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*Order, error)
	// FindBasket returns the user's basket or ErrBasketNotFound
	FindBasket(ctx context.Context, userID uint64) (*Order, error)
	// FindPlaced lists orders that have left the basket state
	FindPlaced(ctx context.Context, filter OrderFilter) ([]*Order, int64, error)

	CreateItems(ctx context.Context, items []*OrderItem) error
	UpdateItemQuantity(ctx context.Context, itemID uint64, quantity int) error

	// MarkCheckedOut applies basket -> new with contact binding, guarded by
	// the current state. It returns ErrBasketNotFound when no row matched.
	MarkCheckedOut(ctx context.Context, orderID, userID, contactID uint64) error
	// UpdateState moves an order from one state to another, guarded by from
	UpdateState(ctx context.Context, orderID uint64, from, to OrderState) error
}

// OrderFilter contains filter options for listing placed orders
type OrderFilter struct {
	shared.Filter
	UserID uint64
	ShopID uint64
	State  OrderState
}
