package catalog

import (
	"strings"

	"github.com/shopapi/backend/internal/domain/shared"
)

// Parameter is a named product attribute such as "weight" or "color"
type Parameter struct {
	ID   uint64
	Name string
}

// NewParameter creates a new parameter
func NewParameter(name string) (*Parameter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("parameters", "Parameter name cannot be empty")
	}
	if len(name) > 40 {
		return nil, shared.NewValidationError("parameters", "Parameter name cannot exceed 40 characters")
	}
	return &Parameter{Name: name}, nil
}

// ProductParameter is the value of a parameter on one listing
type ProductParameter struct {
	ID            uint64
	ProductInfoID uint64
	ParameterID   uint64
	ParameterName string
	Value         string
}
