package persistence

import (
	"context"

	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts the product and assigns its ID
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	product.ID = model.ID
	return nil
}

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uint64) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err, catalog.ErrProductNotFound)
	}
	return model.ToDomain(), nil
}

// FindByNameAndCategory finds a product by its natural key
func (r *GormProductRepository) FindByNameAndCategory(ctx context.Context, name string, categoryID uint64) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("name = ? AND category_id = ?", name, categoryID).
		First(&model).Error; err != nil {
		return nil, mapNotFound(err, catalog.ErrProductNotFound)
	}
	return model.ToDomain(), nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
