package trade

import (
	"fmt"

	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderState represents the lifecycle state of an order
type OrderState string

const (
	OrderStateBasket    OrderState = "basket"
	OrderStateNew       OrderState = "new"
	OrderStateConfirmed OrderState = "confirmed"
	OrderStateAssembled OrderState = "assembled"
	OrderStateSent      OrderState = "sent"
	OrderStateDelivered OrderState = "delivered"
	OrderStateCanceled  OrderState = "canceled"
)

// Item quantity bounds, inclusive
const (
	MinItemQuantity = 1
	MaxItemQuantity = 100
)

// IsValid checks if the state is a known OrderState
func (s OrderState) IsValid() bool {
	switch s {
	case OrderStateBasket, OrderStateNew, OrderStateConfirmed, OrderStateAssembled,
		OrderStateSent, OrderStateDelivered, OrderStateCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderState
func (s OrderState) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible
func (s OrderState) IsTerminal() bool {
	return s == OrderStateDelivered || s == OrderStateCanceled
}

// CanTransitionTo checks if the state can move to target.
// basket -> new happens only through checkout.
func (s OrderState) CanTransitionTo(target OrderState) bool {
	switch s {
	case OrderStateBasket:
		return target == OrderStateNew
	case OrderStateNew:
		return target == OrderStateConfirmed || target == OrderStateCanceled
	case OrderStateConfirmed:
		return target == OrderStateAssembled || target == OrderStateCanceled
	case OrderStateAssembled:
		return target == OrderStateSent || target == OrderStateCanceled
	case OrderStateSent:
		return target == OrderStateDelivered || target == OrderStateCanceled
	}
	return false
}

// OrderItem is one line of an order
type OrderItem struct {
	ID            uint64
	OrderID       uint64
	ProductInfoID uint64
	Quantity      int

	// Populated from the referenced listing by read queries
	Price       decimal.Decimal
	ProductName string
	ShopID      uint64
}

// Subtotal returns quantity × price for the line
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a user's order. In state basket it is the user's open cart.
type Order struct {
	shared.BaseAggregateRoot
	UserID    uint64
	State     OrderState
	ContactID *uint64
	Items     []OrderItem
}

// NewBasket creates an empty basket for the user
func NewBasket(userID uint64) (*Order, error) {
	if userID == 0 {
		return nil, shared.NewValidationError("user", "User is required")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		State:             OrderStateBasket,
		Items:             make([]OrderItem, 0),
	}, nil
}

// IsBasket reports whether the order is still an open basket
func (o *Order) IsBasket() bool {
	return o.State == OrderStateBasket
}

// FindItem returns the line with the given id
func (o *Order) FindItem(itemID uint64) (*OrderItem, bool) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], true
		}
	}
	return nil, false
}

// FindItemByProductInfo returns the line referencing the listing
func (o *Order) FindItemByProductInfo(productInfoID uint64) (*OrderItem, bool) {
	for i := range o.Items {
		if o.Items[i].ProductInfoID == productInfoID {
			return &o.Items[i], true
		}
	}
	return nil, false
}

// AddItem puts a listing into the basket. Adding a listing that is already
// present increases that line's quantity; the result must stay within bounds.
// The returned bool is true when a new line was created.
func (o *Order) AddItem(productInfoID uint64, quantity int, price decimal.Decimal) (*OrderItem, bool, error) {
	if !o.IsBasket() {
		return nil, false, ErrBasketNotFound
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, false, err
	}
	if existing, ok := o.FindItemByProductInfo(productInfoID); ok {
		total := existing.Quantity + quantity
		if err := ValidateQuantity(total); err != nil {
			return nil, false, err
		}
		existing.Quantity = total
		existing.Price = price
		return existing, false, nil
	}

	o.Items = append(o.Items, OrderItem{
		OrderID:       o.ID,
		ProductInfoID: productInfoID,
		Quantity:      quantity,
		Price:         price,
	})
	return &o.Items[len(o.Items)-1], true, nil
}

// UpdateItemQuantity overwrites the quantity of a line in the basket
func (o *Order) UpdateItemQuantity(itemID uint64, quantity int) (*OrderItem, error) {
	if !o.IsBasket() {
		return nil, ErrBasketNotFound
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	item, ok := o.FindItem(itemID)
	if !ok {
		return nil, ErrItemNotFound.WithMessage(fmt.Sprintf("Order item %d not found in basket", itemID))
	}
	item.Quantity = quantity
	return item, nil
}

// Total returns Σ quantity × price over the order lines. It is derived on
// every call and never stored.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	return total
}

// Checkout moves the basket to state new and binds the delivery contact.
// The store applies the same transition with a state-guarded update.
func (o *Order) Checkout(contactID uint64) error {
	if !o.IsBasket() {
		return ErrBasketNotFound
	}
	if contactID == 0 {
		return shared.NewValidationError("contact", "Contact is required")
	}
	if len(o.Items) == 0 {
		return ErrEmptyBasket
	}
	o.State = OrderStateNew
	o.ContactID = &contactID
	o.Touch()
	o.AddDomainEvent(NewOrderCheckedOutEvent(o))
	return nil
}

// TransitionTo advances a placed order through its lifecycle
func (o *Order) TransitionTo(target OrderState) error {
	if !target.IsValid() {
		return shared.NewValidationError("state", fmt.Sprintf("Unknown order state %q", target))
	}
	if o.IsBasket() || !o.State.CanTransitionTo(target) {
		return ErrInvalidTransition.WithMessage(
			fmt.Sprintf("Cannot move order from %s to %s", o.State, target))
	}
	from := o.State
	o.State = target
	o.Touch()
	o.AddDomainEvent(NewOrderStateChangedEvent(o, from, target))
	return nil
}

// HasShop reports whether any line belongs to the given shop
func (o *Order) HasShop(shopID uint64) bool {
	for i := range o.Items {
		if o.Items[i].ShopID == shopID {
			return true
		}
	}
	return false
}

// ValidateQuantity checks an item quantity against [MinItemQuantity, MaxItemQuantity]
func ValidateQuantity(quantity int) error {
	if quantity < MinItemQuantity || quantity > MaxItemQuantity {
		return ErrInvalidQuantity.WithDetails(shared.FieldError{
			Field:   "quantity",
			Message: fmt.Sprintf("Quantity must be between %d and %d", MinItemQuantity, MaxItemQuantity),
		})
	}
	return nil
}
