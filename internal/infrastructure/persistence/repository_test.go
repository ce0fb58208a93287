package persistence_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
	"github.com/shopapi/backend/internal/infrastructure/persistence"
	"github.com/shopapi/backend/internal/infrastructure/persistence/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type seed struct {
	db       *gorm.DB
	owner    *identity.User
	shop     *catalog.Shop
	category *catalog.Category
	listing  *catalog.ProductInfo
}

func newSeed(t *testing.T) *seed {
	t.Helper()
	ctx := context.Background()
	db := testdb.New(t)
	s := &seed{db: db}

	s.owner = newUser(t, db, identity.UserTypeShop)
	shop, err := catalog.NewShop("Acme", s.owner.ID)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormShopRepository(db).Create(ctx, shop))
	s.shop = shop

	category, err := catalog.NewCategory("Tools")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCategoryRepository(db).Create(ctx, category))
	s.category = category

	s.listing = newListing(t, db, "Hammer", category.ID, shop.ID, "9.99")
	return s
}

func newUser(t *testing.T, db *gorm.DB, userType identity.UserType) *identity.User {
	t.Helper()
	user, err := identity.NewUser(gofakeit.Email(), gofakeit.Username(), "secret123", userType)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormUserRepository(db).Create(context.Background(), user))
	return user
}

func newListing(t *testing.T, db *gorm.DB, name string, categoryID, shopID uint64, price string) *catalog.ProductInfo {
	t.Helper()
	ctx := context.Background()
	product, err := catalog.NewProduct(name, categoryID)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductRepository(db).Create(ctx, product))

	p := decimal.RequireFromString(price)
	info, err := catalog.NewProductInfo(product.ID, shopID, catalog.Listing{Price: p, PriceRRC: p, Quantity: 5})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductInfoRepository(db).CreateBatch(ctx, []*catalog.ProductInfo{info}))
	return info
}

func newContact(t *testing.T, db *gorm.DB, userID uint64) *identity.Contact {
	t.Helper()
	contact, err := identity.NewContact(userID, identity.Address{
		City:   gofakeit.City(),
		Street: gofakeit.Street(),
		Phone:  "+7" + gofakeit.Numerify("##########"),
	})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormContactRepository(db).Create(context.Background(), contact))
	return contact
}

func TestOrderRepository_OneBasketPerUser(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	repo := persistence.NewGormOrderRepository(s.db)
	buyer := newUser(t, s.db, identity.UserTypeBuyer)

	first, err := trade.NewBasket(buyer.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)

	second, err := trade.NewBasket(buyer.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, second), trade.ErrBasketExists)

	found, err := repo.FindBasket(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.FindBasket(ctx, s.owner.ID)
	assert.ErrorIs(t, err, trade.ErrBasketNotFound)
}

func TestOrderRepository_ItemsAndCheckout(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	repo := persistence.NewGormOrderRepository(s.db)
	buyer := newUser(t, s.db, identity.UserTypeBuyer)
	contact := newContact(t, s.db, buyer.ID)

	basket, err := trade.NewBasket(buyer.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, basket))

	item := &trade.OrderItem{OrderID: basket.ID, ProductInfoID: s.listing.ID, Quantity: 2}
	require.NoError(t, repo.CreateItems(ctx, []*trade.OrderItem{item}))
	assert.NotZero(t, item.ID)

	dup := &trade.OrderItem{OrderID: basket.ID, ProductInfoID: s.listing.ID, Quantity: 1}
	assert.ErrorIs(t, repo.CreateItems(ctx, []*trade.OrderItem{dup}), shared.ErrAlreadyExists)

	require.NoError(t, repo.UpdateItemQuantity(ctx, item.ID, 3))
	assert.ErrorIs(t, repo.UpdateItemQuantity(ctx, item.ID+100, 1), trade.ErrItemNotFound)

	loaded, err := repo.FindByID(ctx, basket.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 3, loaded.Items[0].Quantity)
	assert.Equal(t, "Hammer", loaded.Items[0].ProductName)
	assert.Equal(t, s.shop.ID, loaded.Items[0].ShopID)
	assert.True(t, loaded.Total().Equal(decimal.RequireFromString("29.97")))

	require.NoError(t, repo.MarkCheckedOut(ctx, basket.ID, buyer.ID, contact.ID))
	assert.ErrorIs(t, repo.MarkCheckedOut(ctx, basket.ID, buyer.ID, contact.ID), trade.ErrBasketNotFound)

	placed, err := repo.FindByID(ctx, basket.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStateNew, placed.State)
	require.NotNil(t, placed.ContactID)
	assert.Equal(t, contact.ID, *placed.ContactID)

	// With the basket placed, a new one may be opened
	next, err := trade.NewBasket(buyer.ID)
	require.NoError(t, err)
	assert.NoError(t, repo.Create(ctx, next))
}

func TestOrderRepository_UpdateStateIsGuarded(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	repo := persistence.NewGormOrderRepository(s.db)
	buyer := newUser(t, s.db, identity.UserTypeBuyer)
	contact := newContact(t, s.db, buyer.ID)

	basket, err := trade.NewBasket(buyer.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, basket))
	require.NoError(t, repo.MarkCheckedOut(ctx, basket.ID, buyer.ID, contact.ID))

	require.NoError(t, repo.UpdateState(ctx, basket.ID, trade.OrderStateNew, trade.OrderStateConfirmed))
	err = repo.UpdateState(ctx, basket.ID, trade.OrderStateNew, trade.OrderStateCanceled)
	assert.ErrorIs(t, err, trade.ErrInvalidTransition)
}

func TestOrderRepository_FindPlaced(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	repo := persistence.NewGormOrderRepository(s.db)

	otherOwner := newUser(t, s.db, identity.UserTypeShop)
	otherShop, err := catalog.NewShop("Other", otherOwner.ID)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormShopRepository(s.db).Create(ctx, otherShop))
	foreign := newListing(t, s.db, "Saw", s.category.ID, otherShop.ID, "15.00")

	place := func(listingID uint64) *trade.Order {
		buyer := newUser(t, s.db, identity.UserTypeBuyer)
		contact := newContact(t, s.db, buyer.ID)
		o, err := trade.NewBasket(buyer.ID)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, o))
		require.NoError(t, repo.CreateItems(ctx, []*trade.OrderItem{{OrderID: o.ID, ProductInfoID: listingID, Quantity: 1}}))
		require.NoError(t, repo.MarkCheckedOut(ctx, o.ID, buyer.ID, contact.ID))
		return o
	}
	mine := place(s.listing.ID)
	theirs := place(foreign.ID)

	// An open basket never shows up
	open, err := trade.NewBasket(newUser(t, s.db, identity.UserTypeBuyer).ID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, open))

	all, total, err := repo.FindPlaced(ctx, trade.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	byShop, total, err := repo.FindPlaced(ctx, trade.OrderFilter{ShopID: s.shop.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, mine.ID, byShop[0].ID)

	byUser, _, err := repo.FindPlaced(ctx, trade.OrderFilter{UserID: theirs.UserID})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, theirs.ID, byUser[0].ID)

	_, total, err = repo.FindPlaced(ctx, trade.OrderFilter{State: trade.OrderStateSent})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestOrderRepository_Delete(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	repo := persistence.NewGormOrderRepository(s.db)
	buyer := newUser(t, s.db, identity.UserTypeBuyer)

	basket, err := trade.NewBasket(buyer.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, basket))
	require.NoError(t, repo.CreateItems(ctx, []*trade.OrderItem{{OrderID: basket.ID, ProductInfoID: s.listing.ID, Quantity: 1}}))

	require.NoError(t, repo.Delete(ctx, basket.ID))
	assert.ErrorIs(t, repo.Delete(ctx, basket.ID), trade.ErrOrderNotFound)
	_, err = repo.FindByID(ctx, basket.ID)
	assert.ErrorIs(t, err, trade.ErrOrderNotFound)
}

func TestUserRepository_Uniqueness(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	repo := persistence.NewGormUserRepository(db)
	user := newUser(t, db, identity.UserTypeBuyer)

	exists, err := repo.ExistsByEmail(ctx, user.Email, 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, user.Email, user.ID)
	require.NoError(t, err)
	assert.False(t, exists, "a user's own email does not count")

	exists, err = repo.ExistsByUsername(ctx, user.Username, 0)
	require.NoError(t, err)
	assert.True(t, exists)

	clone, err := identity.NewUser(user.Email, gofakeit.Username(), "secret123", identity.UserTypeBuyer)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, clone), shared.ErrAlreadyExists)

	found, err := repo.FindByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUserRepository_FindAll(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	repo := persistence.NewGormUserRepository(db)
	first := newUser(t, db, identity.UserTypeBuyer)
	newUser(t, db, identity.UserTypeShop)

	users, total, err := repo.FindAll(ctx, identity.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	users, total, err = repo.FindAll(ctx, identity.UserFilter{OnlyID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, first.Email, users[0].Email)
}

func TestCategoryRepository_AttachShop(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	repo := persistence.NewGormCategoryRepository(s.db)

	require.NoError(t, repo.AttachShop(ctx, s.category.ID, s.shop.ID))
	require.NoError(t, repo.AttachShop(ctx, s.category.ID, s.shop.ID))

	found, err := repo.FindByName(ctx, "Tools")
	require.NoError(t, err)
	assert.Equal(t, []uint64{s.shop.ID}, found.ShopIDs)

	byShop, total, err := repo.FindAll(ctx, catalog.CategoryFilter{ShopID: s.shop.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, s.category.ID, byShop[0].ID)
}

func TestProductInfoRepository_FindAll(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	repo := persistence.NewGormProductInfoRepository(s.db)
	newListing(t, s.db, "Claw Hammer", s.category.ID, s.shop.ID, "25.00")

	infos, total, err := repo.FindAll(ctx, catalog.ProductInfoFilter{ProductName: "hammer"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, infos, 2)

	limit := decimal.RequireFromString("10")
	infos, total, err = repo.FindAll(ctx, catalog.ProductInfoFilter{PriceMax: &limit})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, s.listing.ID, infos[0].ID)
	require.NotNil(t, infos[0].Shop)
	assert.Equal(t, "Acme", infos[0].Shop.Name)

	s.shop.SetState(false)
	require.NoError(t, persistence.NewGormShopRepository(s.db).Update(ctx, s.shop))

	_, total, err = repo.FindAll(ctx, catalog.ProductInfoFilter{OnlyOpenShops: true})
	require.NoError(t, err)
	assert.Zero(t, total)
}
