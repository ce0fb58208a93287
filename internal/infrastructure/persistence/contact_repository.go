package persistence

import (
	"context"

	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormContactRepository implements identity.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create inserts the contact and assigns its ID
func (r *GormContactRepository) Create(ctx context.Context, contact *identity.Contact) error {
	model := models.ContactModelFromDomain(contact)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	contact.ID = model.ID
	return nil
}

// Update saves the contact's address fields
func (r *GormContactRepository) Update(ctx context.Context, contact *identity.Contact) error {
	result := r.db.WithContext(ctx).Model(&models.ContactModel{}).
		Where("id = ?", contact.ID).
		Updates(map[string]any{
			"city":       contact.City,
			"street":     contact.Street,
			"house":      contact.House,
			"building":   contact.Building,
			"apartment":  contact.Apartment,
			"phone":      contact.Phone,
			"updated_at": contact.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return identity.ErrContactNotFound
	}
	return nil
}

// Delete removes a contact by ID
func (r *GormContactRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.ContactModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return identity.ErrContactNotFound
	}
	return nil
}

// FindByID finds a contact by ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uint64) (*identity.Contact, error) {
	var model models.ContactModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err, identity.ErrContactNotFound)
	}
	return model.ToDomain(), nil
}

// FindByUser lists the user's contacts
func (r *GormContactRepository) FindByUser(ctx context.Context, userID uint64) ([]*identity.Contact, error) {
	var rows []models.ContactModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	contacts := make([]*identity.Contact, len(rows))
	for i := range rows {
		contacts[i] = rows[i].ToDomain()
	}
	return contacts, nil
}

var _ identity.ContactRepository = (*GormContactRepository)(nil)
