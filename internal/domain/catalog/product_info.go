package catalog

import (
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// maxPrice is the exclusive upper bound of a decimal(10,2) column
var maxPrice = decimal.New(1, 8)

// ProductInfo is a shop's listing of a product: price, recommended retail
// price and stock. A (product, shop) pair has at most one listing.
type ProductInfo struct {
	shared.BaseEntity
	ProductID  uint64
	ShopID     uint64
	Price      decimal.Decimal
	PriceRRC   decimal.Decimal
	Quantity   int
	Parameters []ProductParameter

	// Populated by read queries only
	Product *Product
	Shop    *Shop
}

// Listing groups the mutable commercial attributes of a ProductInfo
type Listing struct {
	Price    decimal.Decimal
	PriceRRC decimal.Decimal
	Quantity int
}

// NewProductInfo creates a new listing
func NewProductInfo(productID, shopID uint64, listing Listing) (*ProductInfo, error) {
	if productID == 0 {
		return nil, shared.NewValidationError("product", "Product is required")
	}
	if shopID == 0 {
		return nil, shared.NewValidationError("shop", "Shop is required")
	}
	if err := listing.Validate(); err != nil {
		return nil, err
	}
	return &ProductInfo{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		ShopID:     shopID,
		Price:      listing.Price,
		PriceRRC:   listing.PriceRRC,
		Quantity:   listing.Quantity,
		Parameters: make([]ProductParameter, 0),
	}, nil
}

// UpdateListing overwrites price, recommended price and quantity
func (p *ProductInfo) UpdateListing(listing Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}
	p.Price = listing.Price
	p.PriceRRC = listing.PriceRRC
	p.Quantity = listing.Quantity
	p.Touch()
	return nil
}

// SetParameter sets the value of a parameter on this listing, replacing any
// previous value. It returns the parameter row and whether it is new.
func (p *ProductInfo) SetParameter(param *Parameter, value string) (*ProductParameter, bool) {
	for i := range p.Parameters {
		if p.Parameters[i].ParameterID == param.ID {
			p.Parameters[i].Value = value
			p.Parameters[i].ParameterName = param.Name
			return &p.Parameters[i], false
		}
	}
	p.Parameters = append(p.Parameters, ProductParameter{
		ProductInfoID: p.ID,
		ParameterID:   param.ID,
		ParameterName: param.Name,
		Value:         value,
	})
	return &p.Parameters[len(p.Parameters)-1], true
}

// Validate checks the decimal(10,2) price bounds and non-negative stock
func (l Listing) Validate() error {
	var details []shared.FieldError
	if msg := validatePrice(l.Price); msg != "" {
		details = append(details, shared.FieldError{Field: "price", Message: msg})
	}
	if msg := validatePrice(l.PriceRRC); msg != "" {
		details = append(details, shared.FieldError{Field: "price_rrc", Message: msg})
	}
	if l.Quantity < 0 {
		details = append(details, shared.FieldError{Field: "quantity", Message: "Quantity cannot be negative"})
	}
	if len(details) > 0 {
		return shared.ErrValidation.WithDetails(details...)
	}
	return nil
}

func validatePrice(p decimal.Decimal) string {
	switch {
	case p.IsNegative():
		return "Price cannot be negative"
	case !p.Equal(p.Truncate(2)):
		return "Price cannot have more than 2 decimal places"
	case p.GreaterThanOrEqual(maxPrice):
		return "Price cannot have more than 10 digits"
	}
	return ""
}
