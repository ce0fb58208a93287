package models

import (
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ShopModel is the persistence model for the Shop entity.
// The unique user index enforces one shop per user.
type ShopModel struct {
	BaseModel
	Name   string `gorm:"type:varchar(50);not null"`
	URL    string `gorm:"type:varchar(200);not null;default:''"`
	UserID uint64 `gorm:"not null;uniqueIndex"`
	State  bool   `gorm:"not null;default:true"`

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ShopModel) TableName() string {
	return "shops"
}

// ToDomain converts the persistence model to a domain Shop
func (m *ShopModel) ToDomain() *catalog.Shop {
	return &catalog.Shop{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		URL:        m.URL,
		UserID:     m.UserID,
		State:      m.State,
	}
}

// ShopModelFromDomain creates a persistence model from a domain Shop
func ShopModelFromDomain(s *catalog.Shop) *ShopModel {
	m := &ShopModel{
		Name:   s.Name,
		URL:    s.URL,
		UserID: s.UserID,
		State:  s.State,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// CategoryModel is the persistence model for the Category entity.
type CategoryModel struct {
	BaseModel
	Name string `gorm:"type:varchar(40);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category with the given shop links
func (m *CategoryModel) ToDomain(shopIDs []uint64) *catalog.Category {
	if shopIDs == nil {
		shopIDs = []uint64{}
	}
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		ShopIDs:    shopIDs,
	}
}

// CategoryModelFromDomain creates a persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{Name: c.Name}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// CategoryShopModel links categories and shops.
type CategoryShopModel struct {
	CategoryID uint64 `gorm:"primaryKey"`
	ShopID     uint64 `gorm:"primaryKey;index"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Shop     *ShopModel     `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CategoryShopModel) TableName() string {
	return "category_shops"
}

// ProductModel is the persistence model for the Product entity.
type ProductModel struct {
	BaseModel
	Name       string `gorm:"type:varchar(80);not null;uniqueIndex:idx_products_name_category,priority:1"`
	CategoryID uint64 `gorm:"not null;uniqueIndex:idx_products_name_category,priority:2"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		CategoryID: m.CategoryID,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{Name: p.Name, CategoryID: p.CategoryID}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ProductInfoModel is the persistence model for a shop's product listing.
type ProductInfoModel struct {
	BaseModel
	ProductID uint64          `gorm:"not null;uniqueIndex:idx_product_infos_product_shop,priority:1"`
	ShopID    uint64          `gorm:"not null;uniqueIndex:idx_product_infos_product_shop,priority:2;index"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PriceRRC  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null;default:0;check:quantity >= 0"`

	Product    *ProductModel           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Shop       *ShopModel              `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	Parameters []ProductParameterModel `gorm:"foreignKey:ProductInfoID"`
}

// TableName returns the table name for GORM
func (ProductInfoModel) TableName() string {
	return "product_infos"
}

// ToDomain converts the persistence model to a domain ProductInfo,
// including any preloaded associations.
func (m *ProductInfoModel) ToDomain() *catalog.ProductInfo {
	info := &catalog.ProductInfo{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		ShopID:     m.ShopID,
		Price:      m.Price,
		PriceRRC:   m.PriceRRC,
		Quantity:   m.Quantity,
		Parameters: make([]catalog.ProductParameter, 0, len(m.Parameters)),
	}
	if m.Product != nil {
		info.Product = m.Product.ToDomain()
	}
	if m.Shop != nil {
		info.Shop = m.Shop.ToDomain()
	}
	for i := range m.Parameters {
		info.Parameters = append(info.Parameters, m.Parameters[i].ToDomain())
	}
	return info
}

// ProductInfoModelFromDomain creates a persistence model from a domain ProductInfo
func ProductInfoModelFromDomain(p *catalog.ProductInfo) *ProductInfoModel {
	m := &ProductInfoModel{
		ProductID: p.ProductID,
		ShopID:    p.ShopID,
		Price:     p.Price,
		PriceRRC:  p.PriceRRC,
		Quantity:  p.Quantity,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ParameterModel is the persistence model for a parameter name.
type ParameterModel struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(40);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (ParameterModel) TableName() string {
	return "parameters"
}

// ToDomain converts the persistence model to a domain Parameter
func (m *ParameterModel) ToDomain() *catalog.Parameter {
	return &catalog.Parameter{ID: m.ID, Name: m.Name}
}

// ProductParameterModel is the persistence model for a listing's parameter value.
type ProductParameterModel struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	ProductInfoID uint64 `gorm:"not null;uniqueIndex:idx_product_parameters_info_param,priority:1"`
	ParameterID   uint64 `gorm:"not null;uniqueIndex:idx_product_parameters_info_param,priority:2"`
	Value         string `gorm:"type:varchar(100);not null"`

	Parameter *ParameterModel `gorm:"foreignKey:ParameterID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductParameterModel) TableName() string {
	return "product_parameters"
}

// ToDomain converts the persistence model to a domain ProductParameter
func (m *ProductParameterModel) ToDomain() catalog.ProductParameter {
	pp := catalog.ProductParameter{
		ID:            m.ID,
		ProductInfoID: m.ProductInfoID,
		ParameterID:   m.ParameterID,
		Value:         m.Value,
	}
	if m.Parameter != nil {
		pp.ParameterName = m.Parameter.Name
	}
	return pp
}

// ProductParameterModelFromDomain creates a persistence model from a domain ProductParameter
func ProductParameterModelFromDomain(p *catalog.ProductParameter) *ProductParameterModel {
	return &ProductParameterModel{
		ID:            p.ID,
		ProductInfoID: p.ProductInfoID,
		ParameterID:   p.ParameterID,
		Value:         p.Value,
	}
}
