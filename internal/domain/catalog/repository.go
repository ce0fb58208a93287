package catalog

import (
	"context"

	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	Create(ctx context.Context, shop *Shop) error
	Update(ctx context.Context, shop *Shop) error
	FindByID(ctx context.Context, id uint64) (*Shop, error)
	// FindByUser returns the shop owned by userID or ErrShopNotFound
	FindByUser(ctx context.Context, userID uint64) (*Shop, error)
	FindAll(ctx context.Context, filter ShopFilter) ([]*Shop, int64, error)
}

// ShopFilter contains filter options for listing shops
type ShopFilter struct {
	shared.Filter
	Name  string
	State *bool
}

// CategoryRepository defines the interface for category persistence.
// Returned categories carry their ShopIDs.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context, filter CategoryFilter) ([]*Category, int64, error)
	// AttachShop adds the (category, shop) link if it is not there yet
	AttachShop(ctx context.Context, categoryID, shopID uint64) error
}

// CategoryFilter contains filter options for listing categories
type CategoryFilter struct {
	shared.Filter
	ShopID uint64
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint64) (*Product, error)
	FindByNameAndCategory(ctx context.Context, name string, categoryID uint64) (*Product, error)
}

// ProductInfoRepository defines the interface for listing persistence
type ProductInfoRepository interface {
	// CreateBatch inserts listings in one statement batch and assigns their IDs
	CreateBatch(ctx context.Context, infos []*ProductInfo) error
	Update(ctx context.Context, info *ProductInfo) error
	Delete(ctx context.Context, id uint64) error
	// FindByID loads the listing with its product, shop and parameters
	FindByID(ctx context.Context, id uint64) (*ProductInfo, error)
	// FindByIDs loads listings with their shops, keyed by ID
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]*ProductInfo, error)
	FindByProductAndShop(ctx context.Context, productID, shopID uint64) (*ProductInfo, error)
	FindAll(ctx context.Context, filter ProductInfoFilter) ([]*ProductInfo, int64, error)
}

// ProductInfoFilter contains filter options for listing product infos
type ProductInfoFilter struct {
	shared.Filter
	ShopID      uint64
	ShopName    string
	ProductName string
	CategoryID  uint64
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	// OnlyOpenShops hides listings of shops that do not accept orders
	OnlyOpenShops bool
}

// ParameterRepository defines the interface for parameter persistence
type ParameterRepository interface {
	Create(ctx context.Context, parameter *Parameter) error
	FindByName(ctx context.Context, name string) (*Parameter, error)
}

// ProductParameterRepository persists listing parameter values
type ProductParameterRepository interface {
	// CreateBatch inserts parameter values in one statement batch
	CreateBatch(ctx context.Context, params []*ProductParameter) error
	UpdateValue(ctx context.Context, id uint64, value string) error
	FindByProductInfo(ctx context.Context, productInfoID uint64) ([]ProductParameter, error)
}
