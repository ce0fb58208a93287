package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "ASC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "desc") {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]string, defaultField string) string {
	if column, ok := allowedFields[strings.TrimSpace(sortField)]; ok {
		return column
	}
	return defaultField
}

// orderClause builds a safe ORDER BY clause from user input
func orderClause(orderBy, orderDir string, allowed map[string]string, defaultColumn string) string {
	return ValidateSortField(orderBy, allowed, defaultColumn) + " " + ValidateSortOrder(orderDir)
}

// Allowed sort fields map API names to qualified columns.

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]string{
	"id":         "users.id",
	"email":      "users.email",
	"username":   "users.username",
	"created_at": "users.created_at",
}

// ShopSortFields contains allowed sort fields for shops
var ShopSortFields = map[string]string{
	"id":   "shops.id",
	"name": "shops.name",
}

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]string{
	"id":   "categories.id",
	"name": "categories.name",
}

// ProductInfoSortFields contains allowed sort fields for product listings
var ProductInfoSortFields = map[string]string{
	"id":       "product_infos.id",
	"price":    "product_infos.price",
	"quantity": "product_infos.quantity",
	"name":     "products.name",
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]string{
	"id":         "orders.id",
	"created_at": "orders.created_at",
	"state":      "orders.state",
}
