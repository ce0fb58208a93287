package identity_test

import (
	"context"
	"testing"

	appidentity "github.com/shopapi/backend/internal/application/identity"
	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserService_ListAndGet(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	alice, _ := f.activeUser(t, "buyer")
	bob, _ := f.activeUser(t, "shop")

	users, total, err := f.users.List(ctx, access.Actor{UserID: alice.ID}, appidentity.UserListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, alice.ID, users[0].ID)

	_, total, err = f.users.List(ctx, access.Actor{UserID: alice.ID, IsStaff: true}, appidentity.UserListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	got, err := f.users.GetByID(ctx, access.Actor{UserID: alice.ID}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, got.Email)

	_, err = f.users.GetByID(ctx, access.Actor{UserID: alice.ID}, bob.ID)
	assert.ErrorIs(t, err, identity.ErrUserNotFound)
}

func TestUserService_Update(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	alice, login := f.activeUser(t, "buyer")
	bob, _ := f.activeUser(t, "buyer")
	self := access.Actor{UserID: alice.ID}

	t.Run("foreign account is forbidden", func(t *testing.T) {
		_, err := f.users.Update(ctx, self, bob.ID, appidentity.UpdateUserRequest{Company: strPtr("Evil Corp")})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("profile fields", func(t *testing.T) {
		resp, err := f.users.Update(ctx, self, alice.ID, appidentity.UpdateUserRequest{
			Company:  strPtr("Acme"),
			Position: strPtr("Buyer"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme", resp.Company)
		assert.Equal(t, "Buyer", resp.Position)
		assert.Equal(t, alice.FirstName, resp.FirstName)
	})

	t.Run("email held by another user", func(t *testing.T) {
		_, err := f.users.Update(ctx, self, alice.ID, appidentity.UpdateUserRequest{Email: strPtr(bob.Email)})

		assert.ErrorIs(t, err, identity.ErrEmailTaken)
	})

	t.Run("password change revokes issued tokens", func(t *testing.T) {
		_, _, err := f.auth.Authenticate(ctx, login.Token)
		require.NoError(t, err)

		_, err = f.users.Update(ctx, self, alice.ID, appidentity.UpdateUserRequest{Password: strPtr("n3w-passphrase")})
		require.NoError(t, err)

		_, _, err = f.auth.Authenticate(ctx, login.Token)
		assert.ErrorIs(t, err, shared.ErrAuthFailed)

		_, err = f.auth.Login(ctx, appidentity.LoginRequest{Email: alice.Email, Password: "hunter2hunter"})
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
		_, err = f.auth.Login(ctx, appidentity.LoginRequest{Email: alice.Email, Password: "n3w-passphrase"})
		assert.NoError(t, err)
	})
}

func TestUserService_Delete(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()
	alice, _ := f.activeUser(t, "buyer")
	bob, _ := f.activeUser(t, "buyer")

	err := f.users.Delete(ctx, access.Actor{UserID: bob.ID}, alice.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	require.NoError(t, f.users.Delete(ctx, access.Actor{UserID: alice.ID}, alice.ID))

	_, err = f.users.GetByID(ctx, access.Actor{UserID: alice.ID, IsStaff: true}, alice.ID)
	assert.ErrorIs(t, err, identity.ErrUserNotFound)

	err = f.users.Delete(ctx, access.Actor{UserID: bob.ID, IsStaff: true}, alice.ID)
	assert.ErrorIs(t, err, identity.ErrUserNotFound)
}
