package persistence

import (
	"context"
	"strings"

	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts the user and assigns its ID. Services check email and
// username first; a unique violation here means a concurrent registration.
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateUserUnique(err)
	}
	user.ID = model.ID
	return nil
}

// Update saves all user columns
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", user.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return translateUserUnique(result.Error)
	}
	if result.RowsAffected == 0 {
		return identity.ErrUserNotFound
	}
	return nil
}

// Delete removes the user; contacts, tokens, shop and orders cascade
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return identity.ErrUserNotFound
	}
	return nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err, identity.ErrUserNotFound)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		return nil, mapNotFound(err, identity.ErrUserNotFound)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of users and the total count
func (r *GormUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserModel{})
	if filter.OnlyID != 0 {
		query = query.Where("id = ?", filter.OnlyID)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(username) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.UserModel
	if err := query.
		Order(orderClause(filter.OrderBy, filter.OrderDir, UserSortFields, "users.id")).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*identity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, total, nil
}

// ExistsByEmail checks whether another user already uses the email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("LOWER(email) = ? AND id <> ?", strings.ToLower(strings.TrimSpace(email)), excludeID).
		Count(&count).Error
	return count > 0, err
}

// ExistsByUsername checks whether another user already uses the username
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string, excludeID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func translateUserUnique(err error) error {
	if isDuplicateKey(err) {
		return shared.ErrAlreadyExists.WithMessage("A user with this email or username already exists")
	}
	return err
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
