package catalog

import (
	"time"

	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ImportResult summarises a committed catalog import
type ImportResult struct {
	ShopID              uint64 `json:"shop_id"`
	Shop                string `json:"shop"`
	Categories          int    `json:"categories"`
	ProductsCreated     int    `json:"products_created"`
	ProductInfosAdded   int    `json:"product_infos_added"`
	ProductInfosUpdated int    `json:"product_infos_updated"`
	Parameters          int    `json:"parameters"`
	ArchiveKey          string `json:"archive_key,omitempty"`
}

// UpdateShopRequest represents a request to change a shop's name and site
type UpdateShopRequest struct {
	Name string `json:"name" binding:"required,max=50"`
	URL  string `json:"url" binding:"omitempty,url"`
}

// UpdateShopStateRequest opens or closes a shop for orders
type UpdateShopStateRequest struct {
	State *bool `json:"state" binding:"required"`
}

// ShopListFilter represents filter options for the shop list
type ShopListFilter struct {
	Name     string `form:"name"`
	State    *bool  `form:"state"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ShopResponse represents a shop in API responses
type ShopResponse struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	UserID uint64 `json:"user"`
	State  bool   `json:"state"`
}

// UpdateCategoryRequest renames a category
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=40"`
}

// CategoryListFilter represents filter options for the category list
type CategoryListFilter struct {
	ShopID   uint64 `form:"shop_id"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID    uint64   `json:"id"`
	Name  string   `json:"name"`
	Shops []uint64 `json:"shops"`
}

// ProductListFilter represents filter options for the public product listing
type ProductListFilter struct {
	Shop       string `form:"shop"`
	Product    string `form:"product"`
	CategoryID uint64 `form:"category"`
	PriceMin   string `form:"price_min"`
	PriceMax   string `form:"price_max"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UpdateProductInfoRequest changes a partner's listing
type UpdateProductInfoRequest struct {
	Price    *decimal.Decimal `json:"price" binding:"required"`
	PriceRRC *decimal.Decimal `json:"price_rrc" binding:"required"`
	Quantity *int             `json:"quantity" binding:"required,min=0"`
}

// ProductResponse is the shop-independent product part of a listing
type ProductResponse struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	CategoryID uint64 `json:"category"`
}

// ProductParameterResponse is a parameter value of a listing
type ProductParameterResponse struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
}

// ProductInfoResponse represents a listing in API responses
type ProductInfoResponse struct {
	ID         uint64                     `json:"id"`
	Product    ProductResponse            `json:"product"`
	Shop       *ShopResponse              `json:"shop,omitempty"`
	Price      decimal.Decimal            `json:"price"`
	PriceRRC   decimal.Decimal            `json:"price_rrc"`
	Quantity   int                        `json:"quantity"`
	Parameters []ProductParameterResponse `json:"product_parameters"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// ToShopResponse converts a domain Shop to ShopResponse
func ToShopResponse(s *catalog.Shop) ShopResponse {
	return ShopResponse{
		ID:     s.ID,
		Name:   s.Name,
		URL:    s.URL,
		UserID: s.UserID,
		State:  s.State,
	}
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	shops := c.ShopIDs
	if shops == nil {
		shops = []uint64{}
	}
	return CategoryResponse{
		ID:    c.ID,
		Name:  c.Name,
		Shops: shops,
	}
}

// ToProductInfoResponse converts a domain ProductInfo to ProductInfoResponse
func ToProductInfoResponse(p *catalog.ProductInfo) ProductInfoResponse {
	resp := ProductInfoResponse{
		ID:         p.ID,
		Product:    ProductResponse{ID: p.ProductID},
		Price:      p.Price,
		PriceRRC:   p.PriceRRC,
		Quantity:   p.Quantity,
		Parameters: make([]ProductParameterResponse, len(p.Parameters)),
		UpdatedAt:  p.UpdatedAt,
	}
	if p.Product != nil {
		resp.Product.Name = p.Product.Name
		resp.Product.CategoryID = p.Product.CategoryID
	}
	if p.Shop != nil {
		shop := ToShopResponse(p.Shop)
		resp.Shop = &shop
	}
	for i, param := range p.Parameters {
		resp.Parameters[i] = ProductParameterResponse{
			Parameter: param.ParameterName,
			Value:     param.Value,
		}
	}
	return resp
}
