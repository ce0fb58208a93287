package trade

import (
	"errors"
	"testing"

	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBasket(t *testing.T) *Order {
	t.Helper()
	basket, err := NewBasket(7)
	require.NoError(t, err)
	basket.ID = 1
	return basket
}

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantErr  bool
	}{
		{"lower bound", 1, false},
		{"upper bound", 100, false},
		{"middle", 42, false},
		{"zero", 0, true},
		{"negative", -3, true},
		{"above upper bound", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuantity(tt.quantity)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidQuantity))
				var de *shared.DomainError
				require.ErrorAs(t, err, &de)
				require.Len(t, de.Details, 1)
				assert.Equal(t, "quantity", de.Details[0].Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewBasket(t *testing.T) {
	t.Run("creates empty basket", func(t *testing.T) {
		basket, err := NewBasket(7)
		require.NoError(t, err)
		assert.Equal(t, OrderStateBasket, basket.State)
		assert.Equal(t, uint64(7), basket.UserID)
		assert.Nil(t, basket.ContactID)
		assert.Empty(t, basket.Items)
		assert.True(t, basket.Total().IsZero())
	})

	t.Run("requires user", func(t *testing.T) {
		_, err := NewBasket(0)
		assert.Error(t, err)
	})
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("adds new line", func(t *testing.T) {
		basket := newTestBasket(t)
		item, created, err := basket.AddItem(10, 3, decimal.RequireFromString("9.99"))
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, uint64(10), item.ProductInfoID)
		assert.Equal(t, 3, item.Quantity)
		assert.Equal(t, uint64(1), item.OrderID)
	})

	t.Run("merges same listing", func(t *testing.T) {
		basket := newTestBasket(t)
		_, _, err := basket.AddItem(10, 3, decimal.RequireFromString("9.99"))
		require.NoError(t, err)
		item, created, err := basket.AddItem(10, 4, decimal.RequireFromString("9.99"))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, 7, item.Quantity)
		assert.Len(t, basket.Items, 1)
	})

	t.Run("rejects merge above max", func(t *testing.T) {
		basket := newTestBasket(t)
		_, _, err := basket.AddItem(10, 60, decimal.NewFromInt(1))
		require.NoError(t, err)
		_, _, err = basket.AddItem(10, 41, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, 60, basket.Items[0].Quantity)
	})

	t.Run("rejects out of range quantity", func(t *testing.T) {
		basket := newTestBasket(t)
		for _, q := range []int{0, -1, 101} {
			_, _, err := basket.AddItem(10, q, decimal.NewFromInt(1))
			assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", q)
		}
		assert.Empty(t, basket.Items)
	})

	t.Run("rejects placed order", func(t *testing.T) {
		basket := newTestBasket(t)
		basket.State = OrderStateNew
		_, _, err := basket.AddItem(10, 1, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, ErrBasketNotFound)
	})
}

func TestOrder_UpdateItemQuantity(t *testing.T) {
	basket := newTestBasket(t)
	basket.Items = []OrderItem{{ID: 5, ProductInfoID: 10, Quantity: 2, Price: decimal.NewFromInt(3)}}

	t.Run("overwrites quantity", func(t *testing.T) {
		item, err := basket.UpdateItemQuantity(5, 100)
		require.NoError(t, err)
		assert.Equal(t, 100, item.Quantity)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := basket.UpdateItemQuantity(6, 1)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		_, err := basket.UpdateItemQuantity(5, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestOrder_Total(t *testing.T) {
	basket := newTestBasket(t)
	_, _, err := basket.AddItem(1, 2, decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	_, _, err = basket.AddItem(2, 3, decimal.RequireFromString("0.10"))
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("20.28").Equal(basket.Total()))

	basket.Items[0].Quantity = 1
	assert.True(t, decimal.RequireFromString("10.29").Equal(basket.Total()), "total is recomputed from items")
}

func TestOrder_Checkout(t *testing.T) {
	t.Run("moves basket to new and records event", func(t *testing.T) {
		basket := newTestBasket(t)
		_, _, err := basket.AddItem(1, 2, decimal.NewFromInt(5))
		require.NoError(t, err)

		require.NoError(t, basket.Checkout(3))
		assert.Equal(t, OrderStateNew, basket.State)
		require.NotNil(t, basket.ContactID)
		assert.Equal(t, uint64(3), *basket.ContactID)

		events := basket.GetDomainEvents()
		require.Len(t, events, 1)
		ev, ok := events[0].(*OrderCheckedOutEvent)
		require.True(t, ok)
		assert.Equal(t, uint64(7), ev.UserID)
		assert.Equal(t, uint64(1), ev.OrderID)
		assert.Equal(t, "10.00", ev.Total)
	})

	t.Run("requires contact", func(t *testing.T) {
		basket := newTestBasket(t)
		_, _, _ = basket.AddItem(1, 1, decimal.NewFromInt(5))
		err := basket.Checkout(0)
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Equal(t, OrderStateBasket, basket.State)
	})

	t.Run("rejects empty basket", func(t *testing.T) {
		basket := newTestBasket(t)
		assert.ErrorIs(t, basket.Checkout(3), ErrEmptyBasket)
	})

	t.Run("second checkout fails", func(t *testing.T) {
		basket := newTestBasket(t)
		_, _, _ = basket.AddItem(1, 1, decimal.NewFromInt(5))
		require.NoError(t, basket.Checkout(3))
		assert.ErrorIs(t, basket.Checkout(3), ErrBasketNotFound)
	})
}

func TestOrderState_Transitions(t *testing.T) {
	assert.True(t, OrderStateBasket.CanTransitionTo(OrderStateNew))
	assert.False(t, OrderStateBasket.CanTransitionTo(OrderStateCanceled))
	assert.True(t, OrderStateNew.CanTransitionTo(OrderStateConfirmed))
	assert.True(t, OrderStateSent.CanTransitionTo(OrderStateCanceled))
	assert.False(t, OrderStateDelivered.CanTransitionTo(OrderStateCanceled))
	assert.False(t, OrderStateCanceled.CanTransitionTo(OrderStateNew))
	assert.True(t, OrderStateDelivered.IsTerminal())
	assert.False(t, OrderState("lost").IsValid())
}

func TestOrder_TransitionTo(t *testing.T) {
	order := newTestBasket(t)
	order.State = OrderStateNew

	require.NoError(t, order.TransitionTo(OrderStateConfirmed))
	assert.Equal(t, OrderStateConfirmed, order.State)

	err := order.TransitionTo(OrderStateDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = order.TransitionTo(OrderState("lost"))
	assert.ErrorIs(t, err, shared.ErrValidation)

	basket := newTestBasket(t)
	assert.ErrorIs(t, basket.TransitionTo(OrderStateNew), ErrInvalidTransition)
}
