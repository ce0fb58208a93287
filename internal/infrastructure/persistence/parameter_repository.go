package persistence

import (
	"context"

	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormParameterRepository implements catalog.ParameterRepository using GORM
type GormParameterRepository struct {
	db *gorm.DB
}

// NewGormParameterRepository creates a new GormParameterRepository
func NewGormParameterRepository(db *gorm.DB) *GormParameterRepository {
	return &GormParameterRepository{db: db}
}

// Create inserts the parameter and assigns its ID
func (r *GormParameterRepository) Create(ctx context.Context, parameter *catalog.Parameter) error {
	model := &models.ParameterModel{Name: parameter.Name}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	parameter.ID = model.ID
	return nil
}

// FindByName finds a parameter by exact name
func (r *GormParameterRepository) FindByName(ctx context.Context, name string) (*catalog.Parameter, error) {
	var model models.ParameterModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, mapNotFound(err, catalog.ErrParameterNotFound)
	}
	return model.ToDomain(), nil
}

// GormProductParameterRepository implements catalog.ProductParameterRepository using GORM
type GormProductParameterRepository struct {
	db *gorm.DB
}

// NewGormProductParameterRepository creates a new GormProductParameterRepository
func NewGormProductParameterRepository(db *gorm.DB) *GormProductParameterRepository {
	return &GormProductParameterRepository{db: db}
}

// CreateBatch inserts parameter values in batches and assigns their IDs
func (r *GormProductParameterRepository) CreateBatch(ctx context.Context, params []*catalog.ProductParameter) error {
	if len(params) == 0 {
		return nil
	}
	rows := make([]*models.ProductParameterModel, len(params))
	for i, p := range params {
		rows[i] = models.ProductParameterModelFromDomain(p)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return err
	}
	for i, p := range params {
		p.ID = rows[i].ID
	}
	return nil
}

// UpdateValue overwrites the value of an existing parameter row
func (r *GormProductParameterRepository) UpdateValue(ctx context.Context, id uint64, value string) error {
	return r.db.WithContext(ctx).Model(&models.ProductParameterModel{}).
		Where("id = ?", id).
		Update("value", value).Error
}

// FindByProductInfo lists the parameter values of a listing
func (r *GormProductParameterRepository) FindByProductInfo(ctx context.Context, productInfoID uint64) ([]catalog.ProductParameter, error) {
	var rows []models.ProductParameterModel
	if err := r.db.WithContext(ctx).
		Preload("Parameter").
		Where("product_info_id = ?", productInfoID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	params := make([]catalog.ProductParameter, len(rows))
	for i := range rows {
		params[i] = rows[i].ToDomain()
	}
	return params, nil
}

var (
	_ catalog.ParameterRepository        = (*GormParameterRepository)(nil)
	_ catalog.ProductParameterRepository = (*GormProductParameterRepository)(nil)
)
