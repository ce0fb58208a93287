package models

import (
	"time"

	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User aggregate.
type UserModel struct {
	BaseModel
	Email        string            `gorm:"type:varchar(254);not null;uniqueIndex"`
	Username     string            `gorm:"type:varchar(150);not null;uniqueIndex"`
	PasswordHash string            `gorm:"type:varchar(255);not null"`
	FirstName    string            `gorm:"type:varchar(150);not null;default:''"`
	LastName     string            `gorm:"type:varchar(150);not null;default:''"`
	Company      string            `gorm:"type:varchar(40);not null;default:''"`
	Position     string            `gorm:"type:varchar(40);not null;default:''"`
	Type         identity.UserType `gorm:"type:varchar(5);not null;default:'buyer'"`
	IsActive     bool              `gorm:"not null;default:false"`
	IsStaff      bool              `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Email:             m.Email,
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Company:           m.Company,
		Position:          m.Position,
		Type:              m.Type,
		IsActive:          m.IsActive,
		IsStaff:           m.IsStaff,
	}
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Company = u.Company
	m.Position = u.Position
	m.Type = u.Type
	m.IsActive = u.IsActive
	m.IsStaff = u.IsStaff
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// ConfirmEmailTokenModel is the persistence model for email confirmation tokens.
type ConfirmEmailTokenModel struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index"`
	Key       string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ConfirmEmailTokenModel) TableName() string {
	return "confirm_email_tokens"
}

// ToDomain converts the persistence model to a domain token
func (m *ConfirmEmailTokenModel) ToDomain() *identity.ConfirmEmailToken {
	return &identity.ConfirmEmailToken{
		ID:        m.ID,
		UserID:    m.UserID,
		Key:       m.Key,
		CreatedAt: m.CreatedAt,
	}
}

// ConfirmEmailTokenModelFromDomain creates a persistence model from a domain token
func ConfirmEmailTokenModelFromDomain(t *identity.ConfirmEmailToken) *ConfirmEmailTokenModel {
	return &ConfirmEmailTokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		Key:       t.Key,
		CreatedAt: t.CreatedAt,
	}
}

// ContactModel is the persistence model for user contacts.
type ContactModel struct {
	BaseModel
	UserID    uint64 `gorm:"not null;index"`
	City      string `gorm:"type:varchar(50);not null"`
	Street    string `gorm:"type:varchar(100);not null"`
	House     string `gorm:"type:varchar(15);not null;default:''"`
	Building  string `gorm:"type:varchar(15);not null;default:''"`
	Apartment string `gorm:"type:varchar(15);not null;default:''"`
	Phone     string `gorm:"type:varchar(20);not null"`

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact
func (m *ContactModel) ToDomain() *identity.Contact {
	return &identity.Contact{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		City:       m.City,
		Street:     m.Street,
		House:      m.House,
		Building:   m.Building,
		Apartment:  m.Apartment,
		Phone:      m.Phone,
	}
}

// ContactModelFromDomain creates a persistence model from a domain Contact
func ContactModelFromDomain(c *identity.Contact) *ContactModel {
	m := &ContactModel{
		UserID:    c.UserID,
		City:      c.City,
		Street:    c.Street,
		House:     c.House,
		Building:  c.Building,
		Apartment: c.Apartment,
		Phone:     c.Phone,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
