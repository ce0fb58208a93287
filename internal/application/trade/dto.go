package trade

import (
	"time"

	"github.com/shopapi/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// BasketItemRequest puts a listing into the basket
type BasketItemRequest struct {
	ProductInfoID uint64 `json:"product_info" binding:"required"`
	Quantity      int    `json:"quantity"`
}

// AddItemsRequest represents a request to add listings to the basket
type AddItemsRequest struct {
	Items []BasketItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateItemRequest overwrites the quantity of a basket line
type UpdateItemRequest struct {
	ID       uint64 `json:"id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// UpdateItemsRequest represents a request to change basket line quantities
type UpdateItemsRequest struct {
	Items []UpdateItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CheckoutRequest places the basket with a delivery contact
type CheckoutRequest struct {
	ID        uint64 `json:"id" binding:"required"`
	ContactID uint64 `json:"contact" binding:"required"`
}

// UpdateOrderStateRequest advances a placed order
type UpdateOrderStateRequest struct {
	State string `json:"state" binding:"required,oneof=confirmed assembled sent delivered canceled"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	State    string `form:"state" binding:"omitempty,oneof=new confirmed assembled sent delivered canceled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID            uint64          `json:"id"`
	ProductInfoID uint64          `json:"product_info"`
	ProductName   string          `json:"product_name"`
	ShopID        uint64          `json:"shop"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Sum           decimal.Decimal `json:"sum"`
}

// OrderResponse represents an order or basket in API responses
type OrderResponse struct {
	ID        uint64              `json:"id"`
	UserID    uint64              `json:"user"`
	State     string              `json:"state"`
	ContactID *uint64             `json:"contact"`
	Items     []OrderItemResponse `json:"ordered_items"`
	Total     decimal.Decimal     `json:"total_sum"`
	CreatedAt time.Time           `json:"dt"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse.
// The total is computed from the current lines.
func ToOrderResponse(o *trade.Order) OrderResponse {
	resp := OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		State:     o.State.String(),
		ContactID: o.ContactID,
		Items:     make([]OrderItemResponse, len(o.Items)),
		Total:     o.Total(),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	for i := range o.Items {
		item := &o.Items[i]
		resp.Items[i] = OrderItemResponse{
			ID:            item.ID,
			ProductInfoID: item.ProductInfoID,
			ProductName:   item.ProductName,
			ShopID:        item.ShopID,
			Quantity:      item.Quantity,
			Price:         item.Price,
			Sum:           item.Subtotal(),
		}
	}
	return resp
}

// emptyBasket is returned when the user has not put anything into a basket yet
func emptyBasket(userID uint64) OrderResponse {
	return OrderResponse{
		UserID: userID,
		State:  trade.OrderStateBasket.String(),
		Items:  []OrderItemResponse{},
		Total:  decimal.Zero,
	}
}
