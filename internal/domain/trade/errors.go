package trade

import "github.com/shopapi/backend/internal/domain/shared"

// Trade errors
var (
	ErrBasketNotFound = shared.NewDomainError("BASKET_NOT_FOUND", "Basket not found")
	ErrItemNotFound   = shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	ErrOrderNotFound  = shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	// ErrBasketExists is returned when a concurrent request created the user's basket first
	ErrBasketExists      = shared.NewDomainError("BASKET_EXISTS", "User already has a basket")
	ErrInvalidQuantity   = shared.NewDomainError("INVALID_QUANTITY", "Invalid item quantity")
	ErrEmptyBasket       = shared.NewDomainError("EMPTY_BASKET", "Basket has no items")
	ErrInvalidTransition = shared.NewDomainError("INVALID_STATE", "Order state transition not allowed")
)
