package catalog

import (
	"net/url"
	"strings"

	"github.com/shopapi/backend/internal/domain/shared"
)

// Shop is a partner storefront. Each shop user owns at most one shop.
type Shop struct {
	shared.BaseEntity
	Name   string
	URL    string
	UserID uint64
	// State is true while the shop accepts orders
	State bool
}

// NewShop creates an open shop owned by userID
func NewShop(name string, userID uint64) (*Shop, error) {
	name = strings.TrimSpace(name)
	if err := validateShopName(name); err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, shared.NewValidationError("user", "Shop owner is required")
	}
	return &Shop{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		UserID:     userID,
		State:      true,
	}, nil
}

// Update changes the shop's name and site URL
func (s *Shop) Update(name, siteURL string) error {
	name = strings.TrimSpace(name)
	if err := validateShopName(name); err != nil {
		return err
	}
	siteURL = strings.TrimSpace(siteURL)
	if siteURL != "" {
		if u, err := url.ParseRequestURI(siteURL); err != nil || u.Host == "" {
			return shared.NewValidationError("url", "Enter a valid URL")
		}
	}
	s.Name = name
	s.URL = siteURL
	s.Touch()
	return nil
}

// SetState opens or closes the shop for orders
func (s *Shop) SetState(open bool) {
	s.State = open
	s.Touch()
}

// AcceptsOrders reports whether listings of this shop can be put into a basket
func (s *Shop) AcceptsOrders() bool {
	return s.State
}

// IsOwnedBy reports whether userID owns the shop
func (s *Shop) IsOwnedBy(userID uint64) bool {
	return s.UserID == userID
}

func validateShopName(name string) error {
	if name == "" {
		return shared.NewValidationError("shop", "Shop name cannot be empty")
	}
	if len(name) > 50 {
		return shared.NewValidationError("shop", "Shop name cannot exceed 50 characters")
	}
	return nil
}
