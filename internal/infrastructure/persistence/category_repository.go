package persistence

import (
	"context"

	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errCategoryNameTaken = shared.ErrAlreadyExists.WithMessage("A category with this name already exists")

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create inserts the category together with its shop links
func (r *GormCategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	model := models.CategoryModelFromDomain(category)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return errCategoryNameTaken
		}
		return err
	}
	category.ID = model.ID
	for _, shopID := range category.ShopIDs {
		if err := r.AttachShop(ctx, category.ID, shopID); err != nil {
			return err
		}
	}
	return nil
}

// Update renames the category
func (r *GormCategoryRepository) Update(ctx context.Context, category *catalog.Category) error {
	result := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{"name": category.Name, "updated_at": category.UpdatedAt})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return errCategoryNameTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

// Delete removes the category; its products and their listings cascade
func (r *GormCategoryRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

// FindByID finds a category by ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uint64) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err, catalog.ErrCategoryNotFound)
	}
	return r.withShops(ctx, &model)
}

// FindByName finds a category by exact name
func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, mapNotFound(err, catalog.ErrCategoryNotFound)
	}
	return r.withShops(ctx, &model)
}

// FindAll returns a page of categories and the total count
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter catalog.CategoryFilter) ([]*catalog.Category, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CategoryModel{})
	if filter.ShopID != 0 {
		query = query.Where("categories.id IN (?)",
			r.db.Model(&models.CategoryShopModel{}).Select("category_id").Where("shop_id = ?", filter.ShopID))
	}
	if filter.Search != "" {
		query = query.Where("LOWER(categories.name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CategoryModel
	if err := query.
		Order(orderClause(filter.OrderBy, filter.OrderDir, CategorySortFields, "categories.id")).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	ids := make([]uint64, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	links, err := r.shopLinks(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	categories := make([]*catalog.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToDomain(links[rows[i].ID])
	}
	return categories, total, nil
}

// AttachShop links the category to the shop, ignoring an existing link
func (r *GormCategoryRepository) AttachShop(ctx context.Context, categoryID, shopID uint64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CategoryShopModel{CategoryID: categoryID, ShopID: shopID}).Error
}

func (r *GormCategoryRepository) withShops(ctx context.Context, model *models.CategoryModel) (*catalog.Category, error) {
	links, err := r.shopLinks(ctx, []uint64{model.ID})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(links[model.ID]), nil
}

func (r *GormCategoryRepository) shopLinks(ctx context.Context, categoryIDs []uint64) (map[uint64][]uint64, error) {
	links := make(map[uint64][]uint64, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return links, nil
	}
	var rows []models.CategoryShopModel
	if err := r.db.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Order("category_id, shop_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		links[row.CategoryID] = append(links[row.CategoryID], row.ShopID)
	}
	return links, nil
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
