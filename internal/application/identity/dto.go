package identity

import (
	"time"

	"github.com/shopapi/backend/internal/domain/identity"
)

// RegisterRequest represents a request to create a new account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,max=254"`
	Password  string `json:"password" binding:"required,max=128"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Company   string `json:"company" binding:"max=100"`
	Position  string `json:"position" binding:"max=100"`
	Type      string `json:"type" binding:"omitempty,oneof=shop buyer"`
}

// ConfirmEmailRequest represents a request to activate an account
type ConfirmEmailRequest struct {
	Email string `json:"email" binding:"required"`
	Key   string `json:"key" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LogoutInput identifies the token to revoke
type LogoutInput struct {
	TokenJTI  string
	ExpiresIn time.Duration
}

// UpdateUserRequest represents a partial update of an account
type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,max=254"`
	Username  *string `json:"username" binding:"omitempty,max=150"`
	Password  *string `json:"password" binding:"omitempty,max=128"`
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Company   *string `json:"company" binding:"omitempty,max=100"`
	Position  *string `json:"position" binding:"omitempty,max=100"`
}

// UserListFilter represents filter options for the user list
type UserListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Type      string    `json:"type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactRequest represents a contact create or replace request
type ContactRequest struct {
	City      string `json:"city" binding:"required,max=50"`
	Street    string `json:"street" binding:"required,max=100"`
	House     string `json:"house" binding:"max=15"`
	Building  string `json:"building" binding:"max=15"`
	Apartment string `json:"apartment" binding:"max=15"`
	Phone     string `json:"phone" binding:"required,phone_ru"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"user"`
	City      string `json:"city"`
	Street    string `json:"street"`
	House     string `json:"house"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Company:   u.Company,
		Position:  u.Position,
		Type:      string(u.Type),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ToContactResponse converts a domain Contact to ContactResponse
func ToContactResponse(c *identity.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		City:      c.City,
		Street:    c.Street,
		House:     c.House,
		Building:  c.Building,
		Apartment: c.Apartment,
		Phone:     c.Phone,
	}
}

func (r ContactRequest) toAddress() identity.Address {
	return identity.Address{
		City:      r.City,
		Street:    r.Street,
		House:     r.House,
		Building:  r.Building,
		Apartment: r.Apartment,
		Phone:     r.Phone,
	}
}
