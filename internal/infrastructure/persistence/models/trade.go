package models

import (
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
)

// OrderModel is the persistence model for the Order aggregate.
// The partial unique index keeps a single basket per user.
type OrderModel struct {
	BaseModel
	UserID    uint64           `gorm:"not null;index;uniqueIndex:idx_orders_one_basket,where:state = 'basket'"`
	State     trade.OrderState `gorm:"type:varchar(15);not null;default:'basket';index"`
	ContactID *uint64          `gorm:"index"`

	User    *UserModel       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Contact *ContactModel    `gorm:"foreignKey:ContactID;constraint:OnDelete:SET NULL"`
	Items   []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order including its items
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		UserID:            m.UserID,
		State:             m.State,
		ContactID:         m.ContactID,
		Items:             make([]trade.OrderItem, 0, len(m.Items)),
	}
	for i := range m.Items {
		order.Items = append(order.Items, m.Items[i].ToDomain())
	}
	return order
}

// OrderModelFromDomain creates a persistence model from a domain Order, without items
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		UserID:    o.UserID,
		State:     o.State,
		ContactID: o.ContactID,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	return m
}

// OrderItemModel is the persistence model for an order line.
type OrderItemModel struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	OrderID       uint64 `gorm:"not null;uniqueIndex:idx_order_items_order_info,priority:1"`
	ProductInfoID uint64 `gorm:"not null;uniqueIndex:idx_order_items_order_info,priority:2;index"`
	Quantity      int    `gorm:"not null;check:quantity BETWEEN 1 AND 100"`

	Order       *OrderModel       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ProductInfo *ProductInfoModel `gorm:"foreignKey:ProductInfoID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem. Price,
// product name and shop come from the preloaded listing when present.
func (m *OrderItemModel) ToDomain() trade.OrderItem {
	item := trade.OrderItem{
		ID:            m.ID,
		OrderID:       m.OrderID,
		ProductInfoID: m.ProductInfoID,
		Quantity:      m.Quantity,
	}
	if info := m.ProductInfo; info != nil {
		item.Price = info.Price
		item.ShopID = info.ShopID
		if info.Product != nil {
			item.ProductName = info.Product.Name
		}
	}
	return item
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem
func OrderItemModelFromDomain(i *trade.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:            i.ID,
		OrderID:       i.OrderID,
		ProductInfoID: i.ProductInfoID,
		Quantity:      i.Quantity,
	}
}
