package persistence

import (
	"context"
	"strings"

	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShopRepository implements catalog.ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// Create inserts the shop. The owner may hold a single shop; a second one
// is rejected with ErrDuplicateShop.
func (r *GormShopRepository) Create(ctx context.Context, shop *catalog.Shop) error {
	model := models.ShopModelFromDomain(shop)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return catalog.ErrDuplicateShop
		}
		return err
	}
	shop.ID = model.ID
	return nil
}

// Update saves name, url and state
func (r *GormShopRepository) Update(ctx context.Context, shop *catalog.Shop) error {
	result := r.db.WithContext(ctx).Model(&models.ShopModel{}).
		Where("id = ?", shop.ID).
		Updates(map[string]any{
			"name":       shop.Name,
			"url":        shop.URL,
			"state":      shop.State,
			"updated_at": shop.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrShopNotFound
	}
	return nil
}

// FindByID finds a shop by ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uint64) (*catalog.Shop, error) {
	var model models.ShopModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err, catalog.ErrShopNotFound)
	}
	return model.ToDomain(), nil
}

// FindByUser finds the shop owned by the user
func (r *GormShopRepository) FindByUser(ctx context.Context, userID uint64) (*catalog.Shop, error) {
	var model models.ShopModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, mapNotFound(err, catalog.ErrShopNotFound)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of shops and the total count
func (r *GormShopRepository) FindAll(ctx context.Context, filter catalog.ShopFilter) ([]*catalog.Shop, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ShopModel{})
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("LOWER(shops.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if filter.State != nil {
		query = query.Where("shops.state = ?", *filter.State)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ShopModel
	if err := query.
		Order(orderClause(filter.OrderBy, filter.OrderDir, ShopSortFields, "shops.id")).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	shops := make([]*catalog.Shop, len(rows))
	for i := range rows {
		shops[i] = rows[i].ToDomain()
	}
	return shops, total, nil
}

var _ catalog.ShopRepository = (*GormShopRepository)(nil)
