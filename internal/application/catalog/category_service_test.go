package catalog_test

import (
	"context"
	"testing"

	appcatalog "github.com/shopapi/backend/internal/application/catalog"
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/infrastructure/persistence"
	"github.com/shopapi/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCategoryService(f *importFixture) *appcatalog.CategoryService {
	return appcatalog.NewCategoryService(
		persistence.NewGormTransactionScope(f.db).Catalog(),
		persistence.NewGormCategoryRepository(f.db),
		zap.NewNop(),
	)
}

func toolsID(t *testing.T, f *importFixture) uint64 {
	t.Helper()
	c, err := persistence.NewGormCategoryRepository(f.db).FindByName(context.Background(), "Tools")
	require.NoError(t, err)
	return c.ID
}

func TestCategoryService_ListByShop(t *testing.T) {
	f := newImportFixture(t)
	_, seeded := seedShop(t, f)
	svc := newCategoryService(f)

	categories, total, err := svc.List(context.Background(), appcatalog.CategoryListFilter{ShopID: seeded.ShopID})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Tools", categories[0].Name)
	assert.Equal(t, []uint64{seeded.ShopID}, categories[0].Shops)

	categories, _, err = svc.List(context.Background(), appcatalog.CategoryListFilter{ShopID: seeded.ShopID + 1})
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCategoryService_Rename(t *testing.T) {
	f := newImportFixture(t)
	owner, _ := seedShop(t, f)
	svc := newCategoryService(f)
	ctx := context.Background()
	id := toolsID(t, f)

	t.Run("owner of a listing shop", func(t *testing.T) {
		resp, err := svc.Rename(ctx, owner, id, appcatalog.UpdateCategoryRequest{Name: "Hand tools"})

		require.NoError(t, err)
		assert.Equal(t, "Hand tools", resp.Name)
	})

	t.Run("shop that does not list it", func(t *testing.T) {
		other := createUser(t, f.db, identity.UserTypeShop)
		actor := partner(other)
		actor.ShopID = 777

		_, err := svc.Rename(ctx, actor, id, appcatalog.UpdateCategoryRequest{Name: "Stolen"})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("name in use", func(t *testing.T) {
		other, err := catalog.NewCategory("Garden")
		require.NoError(t, err)
		require.NoError(t, persistence.NewGormCategoryRepository(f.db).Create(ctx, other))

		_, err = svc.Rename(ctx, owner, id, appcatalog.UpdateCategoryRequest{Name: "Garden"})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestCategoryService_DeleteCascades(t *testing.T) {
	f := newImportFixture(t)
	owner, _ := seedShop(t, f)
	svc := newCategoryService(f)
	id := toolsID(t, f)

	require.NoError(t, svc.Delete(context.Background(), owner, id))

	_, err := svc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
	assert.Equal(t, int64(0), count(t, f.db, &models.ProductModel{}))
	assert.Equal(t, int64(0), count(t, f.db, &models.ProductInfoModel{}))
}
