package catalog

import "github.com/shopapi/backend/internal/domain/shared"

// Aggregate type constant for Shop
const AggregateTypeShop = "Shop"

// EventTypeCatalogImported is emitted after an import transaction commits
const EventTypeCatalogImported = "CatalogImported"

// CatalogImportedEvent summarises a committed catalog import
type CatalogImportedEvent struct {
	shared.BaseDomainEvent
	ShopID              uint64 `json:"shop_id"`
	UserID              uint64 `json:"user_id"`
	Categories          int    `json:"categories"`
	ProductInfosAdded   int    `json:"product_infos_added"`
	ProductInfosUpdated int    `json:"product_infos_updated"`
}

// NewCatalogImportedEvent creates a new CatalogImportedEvent
func NewCatalogImportedEvent(shop *Shop, categories, added, updated int) *CatalogImportedEvent {
	return &CatalogImportedEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypeCatalogImported, AggregateTypeShop, shop.ID),
		ShopID:              shop.ID,
		UserID:              shop.UserID,
		Categories:          categories,
		ProductInfosAdded:   added,
		ProductInfosUpdated: updated,
	}
}
