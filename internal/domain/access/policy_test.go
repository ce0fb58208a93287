package access

import (
	"testing"

	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
)

var (
	owner    = Actor{UserID: 1, ShopID: 10}
	stranger = Actor{UserID: 2, ShopID: 20}
	admin    = Actor{UserID: 3, IsStaff: true}
	buyer    = Actor{UserID: 4}
)

func TestIsSelfOrAdmin(t *testing.T) {
	u := &identity.User{}
	u.ID = 1

	assert.True(t, IsSelfOrAdmin(owner, u))
	assert.False(t, IsSelfOrAdmin(stranger, u))
	assert.True(t, IsSelfOrAdmin(admin, u))
	assert.False(t, IsSelfOrAdmin(owner, nil))
}

func TestIsShopOwnerOrAdmin(t *testing.T) {
	shop := &catalog.Shop{UserID: 1}
	shop.ID = 10

	assert.True(t, IsShopOwnerOrAdmin(owner, shop))
	assert.False(t, IsShopOwnerOrAdmin(stranger, shop))
	assert.True(t, IsShopOwnerOrAdmin(admin, shop))
}

func TestIsCategoryOwnerOrAdmin(t *testing.T) {
	category := &catalog.Category{Name: "Tools", ShopIDs: []uint64{30, 10}}

	assert.True(t, IsCategoryOwnerOrAdmin(owner, category))
	assert.False(t, IsCategoryOwnerOrAdmin(stranger, category))
	assert.False(t, IsCategoryOwnerOrAdmin(buyer, category), "actor without a shop never owns a category")
	assert.True(t, IsCategoryOwnerOrAdmin(admin, category))
	assert.False(t, IsCategoryOwnerOrAdmin(owner, &catalog.Category{}))
}

func TestIsProductInfoOwnerOrAdmin(t *testing.T) {
	t.Run("via loaded shop", func(t *testing.T) {
		info := &catalog.ProductInfo{ShopID: 10, Shop: &catalog.Shop{UserID: 1}}
		assert.True(t, IsProductInfoOwnerOrAdmin(owner, info))
		assert.False(t, IsProductInfoOwnerOrAdmin(stranger, info))
	})

	t.Run("via shop id", func(t *testing.T) {
		info := &catalog.ProductInfo{ShopID: 20}
		assert.False(t, IsProductInfoOwnerOrAdmin(owner, info))
		assert.True(t, IsProductInfoOwnerOrAdmin(stranger, info))
		assert.True(t, IsProductInfoOwnerOrAdmin(admin, info))
		assert.False(t, IsProductInfoOwnerOrAdmin(buyer, &catalog.ProductInfo{}))
	})
}

func TestIsContactAndOrderOwnerOrAdmin(t *testing.T) {
	contact := &identity.Contact{UserID: 4}
	order := &trade.Order{UserID: 4}

	assert.True(t, IsContactOwnerOrAdmin(buyer, contact))
	assert.False(t, IsContactOwnerOrAdmin(owner, contact))
	assert.True(t, IsContactOwnerOrAdmin(admin, contact))

	assert.True(t, IsOrderOwnerOrAdmin(buyer, order))
	assert.False(t, IsOrderOwnerOrAdmin(owner, order))
	assert.True(t, IsOrderOwnerOrAdmin(admin, order))
}

func TestIsOrderPartnerOrAdmin(t *testing.T) {
	order := &trade.Order{UserID: 4, Items: []trade.OrderItem{{ShopID: 10}}}

	assert.True(t, IsOrderPartnerOrAdmin(owner, order))
	assert.False(t, IsOrderPartnerOrAdmin(stranger, order))
	assert.False(t, IsOrderPartnerOrAdmin(buyer, order))
	assert.True(t, IsOrderPartnerOrAdmin(admin, order))
}

func TestCanModify(t *testing.T) {
	shop := &catalog.Shop{UserID: 1}
	contact := &identity.Contact{UserID: 4}

	assert.True(t, CanModify(owner, shop))
	assert.False(t, CanModify(owner, contact))
	assert.True(t, CanModify(buyer, contact))
	assert.False(t, CanModify(admin, "not a resource"))
}
