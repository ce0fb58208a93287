package catalog

import (
	"strings"

	"github.com/shopapi/backend/internal/domain/shared"
)

// Product is a shop-independent article identified by name within a category
type Product struct {
	shared.BaseEntity
	Name       string
	CategoryID uint64
}

// NewProduct creates a new product
func NewProduct(name string, categoryID uint64) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("name", "Product name cannot be empty")
	}
	if len(name) > 80 {
		return nil, shared.NewValidationError("name", "Product name cannot exceed 80 characters")
	}
	if categoryID == 0 {
		return nil, shared.NewValidationError("category", "Category is required")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CategoryID: categoryID,
	}, nil
}
