package persistence

import (
	"context"
	"strings"

	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const insertBatchSize = 200

// GormProductInfoRepository implements catalog.ProductInfoRepository using GORM
type GormProductInfoRepository struct {
	db *gorm.DB
}

// NewGormProductInfoRepository creates a new GormProductInfoRepository
func NewGormProductInfoRepository(db *gorm.DB) *GormProductInfoRepository {
	return &GormProductInfoRepository{db: db}
}

// CreateBatch inserts all listings in batches and writes the generated IDs
// back to the domain objects.
func (r *GormProductInfoRepository) CreateBatch(ctx context.Context, infos []*catalog.ProductInfo) error {
	if len(infos) == 0 {
		return nil
	}
	rows := make([]*models.ProductInfoModel, len(infos))
	for i, info := range infos {
		rows[i] = models.ProductInfoModelFromDomain(info)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error; err != nil {
		if isDuplicateKey(err) {
			return catalog.ErrDuplicateProductInfo
		}
		return err
	}
	for i, info := range infos {
		info.ID = rows[i].ID
	}
	return nil
}

// Update saves price, recommended price and quantity
func (r *GormProductInfoRepository) Update(ctx context.Context, info *catalog.ProductInfo) error {
	result := r.db.WithContext(ctx).Model(&models.ProductInfoModel{}).
		Where("id = ?", info.ID).
		Updates(map[string]any{
			"price":      info.Price,
			"price_rrc":  info.PriceRRC,
			"quantity":   info.Quantity,
			"updated_at": info.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductInfoNotFound
	}
	return nil
}

// Delete removes a listing; its parameters and basket lines cascade
func (r *GormProductInfoRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductInfoModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductInfoNotFound
	}
	return nil
}

// FindByID loads a listing with product, shop and parameters
func (r *GormProductInfoRepository) FindByID(ctx context.Context, id uint64) (*catalog.ProductInfo, error) {
	var model models.ProductInfoModel
	if err := r.preloaded(ctx).First(&model, "product_infos.id = ?", id).Error; err != nil {
		return nil, mapNotFound(err, catalog.ErrProductInfoNotFound)
	}
	return model.ToDomain(), nil
}

// FindByIDs loads listings with their product and shop, keyed by ID.
// Missing IDs are simply absent from the result.
func (r *GormProductInfoRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]*catalog.ProductInfo, error) {
	result := make(map[uint64]*catalog.ProductInfo, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rows []models.ProductInfoModel
	if err := r.db.WithContext(ctx).
		Preload("Product").Preload("Shop").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].ID] = rows[i].ToDomain()
	}
	return result, nil
}

// FindByProductAndShop finds the listing for a (product, shop) pair with its parameters
func (r *GormProductInfoRepository) FindByProductAndShop(ctx context.Context, productID, shopID uint64) (*catalog.ProductInfo, error) {
	var model models.ProductInfoModel
	if err := r.db.WithContext(ctx).
		Preload("Parameters.Parameter").
		Where("product_id = ? AND shop_id = ?", productID, shopID).
		First(&model).Error; err != nil {
		return nil, mapNotFound(err, catalog.ErrProductInfoNotFound)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of listings and the total count
func (r *GormProductInfoRepository) FindAll(ctx context.Context, filter catalog.ProductInfoFilter) ([]*catalog.ProductInfo, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductInfoModel{}).
		Joins("JOIN products ON products.id = product_infos.product_id").
		Joins("JOIN shops ON shops.id = product_infos.shop_id")

	if filter.OnlyOpenShops {
		query = query.Where("shops.state = ?", true)
	}
	if filter.ShopID != 0 {
		query = query.Where("product_infos.shop_id = ?", filter.ShopID)
	}
	if name := strings.TrimSpace(filter.ShopName); name != "" {
		query = query.Where("LOWER(shops.name) = ?", strings.ToLower(name))
	}
	if name := strings.TrimSpace(filter.ProductName); name != "" {
		query = query.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if filter.CategoryID != 0 {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.PriceMin != nil {
		query = query.Where("product_infos.price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("product_infos.price <= ?", *filter.PriceMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductInfoModel
	if err := query.
		Preload("Product").Preload("Shop").Preload("Parameters.Parameter").
		Order(orderClause(filter.OrderBy, filter.OrderDir, ProductInfoSortFields, "product_infos.id")).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	infos := make([]*catalog.ProductInfo, len(rows))
	for i := range rows {
		infos[i] = rows[i].ToDomain()
	}
	return infos, total, nil
}

func (r *GormProductInfoRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Product").
		Preload("Shop").
		Preload("Parameters", func(db *gorm.DB) *gorm.DB { return db.Order("product_parameters.id") }).
		Preload("Parameters.Parameter")
}

var _ catalog.ProductInfoRepository = (*GormProductInfoRepository)(nil)
