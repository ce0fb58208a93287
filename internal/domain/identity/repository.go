package identity

import (
	"context"

	"github.com/shopapi/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindAll returns users matching the filter and the total count
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint64) (bool, error)
	ExistsByUsername(ctx context.Context, username string, excludeID uint64) (bool, error)
}

// UserFilter contains filter options for querying users
type UserFilter struct {
	shared.Filter
	// OnlyID restricts the listing to a single user (non-staff listings)
	OnlyID uint64
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*Contact, error)
	FindByUser(ctx context.Context, userID uint64) ([]*Contact, error)
}

// ConfirmTokenRepository defines the interface for confirmation token persistence
type ConfirmTokenRepository interface {
	Create(ctx context.Context, token *ConfirmEmailToken) error
	FindByKey(ctx context.Context, key string) (*ConfirmEmailToken, error)
	Delete(ctx context.Context, id uint64) error
	DeleteByUser(ctx context.Context, userID uint64) error
}
