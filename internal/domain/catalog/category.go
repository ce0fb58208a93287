package catalog

import (
	"slices"
	"strings"

	"github.com/shopapi/backend/internal/domain/shared"
)

// Category groups products. A category is shared between the shops that list it.
type Category struct {
	shared.BaseEntity
	Name    string
	ShopIDs []uint64
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		ShopIDs:    make([]uint64, 0),
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

// AttachShop links a shop to the category. Attaching twice is a no-op.
func (c *Category) AttachShop(shopID uint64) bool {
	if c.HasShop(shopID) {
		return false
	}
	c.ShopIDs = append(c.ShopIDs, shopID)
	return true
}

// HasShop reports whether the shop lists this category
func (c *Category) HasShop(shopID uint64) bool {
	return slices.Contains(c.ShopIDs, shopID)
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "Category name cannot be empty")
	}
	if len(name) > 40 {
		return shared.NewValidationError("name", "Category name cannot exceed 40 characters")
	}
	return nil
}
