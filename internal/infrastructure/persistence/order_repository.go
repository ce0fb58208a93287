package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
	"github.com/shopapi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order. Baskets are inserted with ON CONFLICT DO NOTHING
// against the one-basket-per-user index so a losing racer does not abort the
// surrounding transaction.
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	query := r.db.WithContext(ctx)
	if order.IsBasket() {
		query = query.Clauses(clause.OnConflict{DoNothing: true})
	}
	result := query.Omit(clause.Associations).Create(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return trade.ErrBasketExists
	}
	order.ID = model.ID
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	return nil
}

// Delete removes the order; its items cascade
func (r *GormOrderRepository) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Delete(&models.OrderItemModel{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return trade.ErrOrderNotFound
	}
	return nil
}

// FindByID loads an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uint64) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.withItems(ctx).First(&model, "orders.id = ?", id).Error; err != nil {
		return nil, mapNotFound(err, trade.ErrOrderNotFound)
	}
	return model.ToDomain(), nil
}

// FindBasket loads the user's basket with its items
func (r *GormOrderRepository) FindBasket(ctx context.Context, userID uint64) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.withItems(ctx).
		Where("user_id = ? AND state = ?", userID, trade.OrderStateBasket).
		First(&model).Error; err != nil {
		return nil, mapNotFound(err, trade.ErrBasketNotFound)
	}
	return model.ToDomain(), nil
}

// FindPlaced returns a page of orders that have left the basket state
func (r *GormOrderRepository) FindPlaced(ctx context.Context, filter trade.OrderFilter) ([]*trade.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("orders.state <> ?", trade.OrderStateBasket)
	if filter.UserID != 0 {
		query = query.Where("orders.user_id = ?", filter.UserID)
	}
	if filter.State != "" {
		query = query.Where("orders.state = ?", filter.State)
	}
	if filter.ShopID != 0 {
		query = query.Where("orders.id IN (?)",
			r.db.Model(&models.OrderItemModel{}).
				Select("order_items.order_id").
				Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
				Where("product_infos.shop_id = ?", filter.ShopID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	if err := query.
		Preload("Items", orderItemsByID).
		Preload("Items.ProductInfo.Product").
		Order(orderClause(filter.OrderBy, filter.OrderDir, OrderSortFields, "orders.id")).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*trade.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain()
	}
	return orders, total, nil
}

// CreateItems inserts new order lines and assigns their IDs
func (r *GormOrderRepository) CreateItems(ctx context.Context, items []*trade.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]*models.OrderItemModel, len(items))
	for i, item := range items {
		rows[i] = models.OrderItemModelFromDomain(item)
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rows).Error; err != nil {
		if isDuplicateKey(err) {
			return shared.ErrAlreadyExists.WithMessage("Listing is already in the basket")
		}
		return err
	}
	for i, item := range items {
		item.ID = rows[i].ID
	}
	return nil
}

// UpdateItemQuantity overwrites the quantity of one line
func (r *GormOrderRepository) UpdateItemQuantity(ctx context.Context, itemID uint64, quantity int) error {
	result := r.db.WithContext(ctx).Model(&models.OrderItemModel{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return trade.ErrItemNotFound.WithMessage(fmt.Sprintf("Order item %d not found in basket", itemID))
	}
	return nil
}

// MarkCheckedOut moves the user's basket to state new and binds the contact.
// The update is conditional on the basket state so that of two concurrent
// checkouts only one matches a row.
func (r *GormOrderRepository) MarkCheckedOut(ctx context.Context, orderID, userID, contactID uint64) error {
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ? AND user_id = ? AND state = ?", orderID, userID, trade.OrderStateBasket).
		Updates(map[string]any{
			"state":      trade.OrderStateNew,
			"contact_id": contactID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return trade.ErrBasketNotFound
	}
	return nil
}

// UpdateState moves an order from one state to another, guarded by from
func (r *GormOrderRepository) UpdateState(ctx context.Context, orderID uint64, from, to trade.OrderState) error {
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ? AND state = ?", orderID, from).
		Updates(map[string]any{"state": to, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return trade.ErrInvalidTransition.WithMessage(
			fmt.Sprintf("Order %d is no longer in state %s", orderID, from))
	}
	return nil
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		Preload("Items.ProductInfo.Product")
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id")
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
