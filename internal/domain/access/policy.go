// Package access holds the ownership predicates that gate mutating requests.
// Every predicate is pure: it looks only at the actor and the resource passed in.
package access

import (
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/trade"
)

// Actor is the authenticated caller
type Actor struct {
	UserID  uint64
	IsStaff bool
	// Partner is true for users of type shop
	Partner bool
	// ShopID is the shop owned by the actor, zero when there is none
	ShopID uint64
}

// IsSelfOrAdmin allows a user to act on their own account
func IsSelfOrAdmin(actor Actor, target *identity.User) bool {
	if target == nil {
		return false
	}
	return actor.IsStaff || target.ID == actor.UserID
}

// IsShopOwnerOrAdmin allows the shop's owner
func IsShopOwnerOrAdmin(actor Actor, shop *catalog.Shop) bool {
	if shop == nil {
		return false
	}
	return actor.IsStaff || shop.IsOwnedBy(actor.UserID)
}

// IsCategoryOwnerOrAdmin allows any owner of a shop that lists the category
func IsCategoryOwnerOrAdmin(actor Actor, category *catalog.Category) bool {
	if category == nil {
		return false
	}
	if actor.IsStaff {
		return true
	}
	return actor.ShopID != 0 && category.HasShop(actor.ShopID)
}

// IsProductInfoOwnerOrAdmin allows the owner of the listing's shop
func IsProductInfoOwnerOrAdmin(actor Actor, info *catalog.ProductInfo) bool {
	if info == nil {
		return false
	}
	if actor.IsStaff {
		return true
	}
	if info.Shop != nil {
		return info.Shop.IsOwnedBy(actor.UserID)
	}
	return actor.ShopID != 0 && info.ShopID == actor.ShopID
}

// IsContactOwnerOrAdmin allows the contact's user
func IsContactOwnerOrAdmin(actor Actor, contact *identity.Contact) bool {
	if contact == nil {
		return false
	}
	return actor.IsStaff || contact.UserID == actor.UserID
}

// IsOrderOwnerOrAdmin allows the buyer who owns the order
func IsOrderOwnerOrAdmin(actor Actor, order *trade.Order) bool {
	if order == nil {
		return false
	}
	return actor.IsStaff || order.UserID == actor.UserID
}

// IsOrderPartnerOrAdmin allows a shop owner whose listings are in the order
func IsOrderPartnerOrAdmin(actor Actor, order *trade.Order) bool {
	if order == nil {
		return false
	}
	if actor.IsStaff {
		return true
	}
	return actor.ShopID != 0 && order.HasShop(actor.ShopID)
}

// CanModify dispatches to the predicate for the resource's type.
// Unknown resource types are denied.
func CanModify(actor Actor, resource any) bool {
	switch r := resource.(type) {
	case *identity.User:
		return IsSelfOrAdmin(actor, r)
	case *identity.Contact:
		return IsContactOwnerOrAdmin(actor, r)
	case *catalog.Shop:
		return IsShopOwnerOrAdmin(actor, r)
	case *catalog.Category:
		return IsCategoryOwnerOrAdmin(actor, r)
	case *catalog.ProductInfo:
		return IsProductInfoOwnerOrAdmin(actor, r)
	case *trade.Order:
		return IsOrderOwnerOrAdmin(actor, r)
	}
	return false
}
