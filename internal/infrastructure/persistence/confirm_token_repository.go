package persistence

import (
	"context"

	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormConfirmTokenRepository implements identity.ConfirmTokenRepository using GORM
type GormConfirmTokenRepository struct {
	db *gorm.DB
}

// NewGormConfirmTokenRepository creates a new GormConfirmTokenRepository
func NewGormConfirmTokenRepository(db *gorm.DB) *GormConfirmTokenRepository {
	return &GormConfirmTokenRepository{db: db}
}

// Create inserts the token. Keys are unique at the store.
func (r *GormConfirmTokenRepository) Create(ctx context.Context, token *identity.ConfirmEmailToken) error {
	model := models.ConfirmEmailTokenModelFromDomain(token)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	token.ID = model.ID
	return nil
}

// FindByKey finds a token by its key
func (r *GormConfirmTokenRepository) FindByKey(ctx context.Context, key string) (*identity.ConfirmEmailToken, error) {
	var model models.ConfirmEmailTokenModel
	if err := r.db.WithContext(ctx).Where(&models.ConfirmEmailTokenModel{Key: key}).First(&model).Error; err != nil {
		return nil, mapNotFound(err, identity.ErrInvalidConfirmKey)
	}
	return model.ToDomain(), nil
}

// Delete removes a token by ID
func (r *GormConfirmTokenRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.ConfirmEmailTokenModel{}, "id = ?", id).Error
}

// DeleteByUser removes every token issued to the user
func (r *GormConfirmTokenRepository) DeleteByUser(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.ConfirmEmailTokenModel{}).Error
}

var _ identity.ConfirmTokenRepository = (*GormConfirmTokenRepository)(nil)
