package catalog

import "github.com/shopapi/backend/internal/domain/shared"

// Catalog errors
var (
	ErrShopNotFound        = shared.NewDomainError("SHOP_NOT_FOUND", "Shop not found")
	ErrCategoryNotFound    = shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
	ErrProductNotFound     = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	ErrProductInfoNotFound = shared.NewDomainError("PRODUCT_INFO_NOT_FOUND", "Product info not found")
	ErrParameterNotFound   = shared.NewDomainError("PARAMETER_NOT_FOUND", "Parameter not found")
	// ErrDuplicateShop is returned when a user who already owns a shop imports under another name
	ErrDuplicateShop        = shared.NewDomainError("DUPLICATE_SHOP", "User already owns a different shop")
	ErrDuplicateProductInfo = shared.NewDomainError("DUPLICATE_PRODUCT_INFO", "Product is already listed by this shop")
	ErrShopClosed           = shared.NewDomainError("SHOP_CLOSED", "Shop is not accepting orders")
)
