package catalog_test

import (
	"context"
	"testing"

	appcatalog "github.com/shopapi/backend/internal/application/catalog"
	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// seedShop imports the Acme document for a fresh shop user and returns the
// owner as an actor together with the import result.
func seedShop(t *testing.T, f *importFixture) (access.Actor, *appcatalog.ImportResult) {
	t.Helper()
	user := createUser(t, f.db, identity.UserTypeShop)
	result, err := f.service.Import(context.Background(), partner(user), []byte(acmeDocument))
	require.NoError(t, err)
	actor := partner(user)
	actor.ShopID = result.ShopID
	return actor, result
}

func newShopService(f *importFixture) *appcatalog.ShopService {
	return appcatalog.NewShopService(
		persistence.NewGormTransactionScope(f.db).Catalog(),
		persistence.NewGormShopRepository(f.db),
		zap.NewNop(),
	)
}

func TestShopService_Update(t *testing.T) {
	f := newImportFixture(t)
	owner, seeded := seedShop(t, f)
	svc := newShopService(f)
	ctx := context.Background()

	t.Run("owner renames the shop", func(t *testing.T) {
		resp, err := svc.Update(ctx, owner, seeded.ShopID, appcatalog.UpdateShopRequest{
			Name: "Acme Tools",
			URL:  "https://acme.example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme Tools", resp.Name)
		assert.Equal(t, "https://acme.example.com", resp.URL)
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		stranger := createUser(t, f.db, identity.UserTypeShop)

		_, err := svc.Update(ctx, partner(stranger), seeded.ShopID, appcatalog.UpdateShopRequest{Name: "Mine"})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("staff may update any shop", func(t *testing.T) {
		resp, err := svc.Update(ctx, access.Actor{UserID: 999, IsStaff: true}, seeded.ShopID,
			appcatalog.UpdateShopRequest{Name: "Acme"})

		require.NoError(t, err)
		assert.Equal(t, "Acme", resp.Name)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, seeded.ShopID, appcatalog.UpdateShopRequest{Name: "Acme", URL: "not a url"})

		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("unknown shop", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, 424242, appcatalog.UpdateShopRequest{Name: "Acme"})

		assert.ErrorIs(t, err, catalog.ErrShopNotFound)
	})
}

func TestShopService_SetStateAndList(t *testing.T) {
	f := newImportFixture(t)
	owner, seeded := seedShop(t, f)
	svc := newShopService(f)
	ctx := context.Background()

	closed := false
	resp, err := svc.SetState(ctx, owner, seeded.ShopID, appcatalog.UpdateShopStateRequest{State: &closed})
	require.NoError(t, err)
	assert.False(t, resp.State)

	open := true
	shops, total, err := svc.List(ctx, appcatalog.ShopListFilter{State: &open})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, shops)

	shops, total, err = svc.List(ctx, appcatalog.ShopListFilter{Name: "acm"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, seeded.ShopID, shops[0].ID)

	got, err := svc.GetByID(ctx, seeded.ShopID)
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, got.UserID)
}
