package identity

import (
	"testing"

	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

func TestNewUser(t *testing.T) {
	t.Run("creates inactive buyer by default", func(t *testing.T) {
		user, err := NewUser("  Jane@Example.COM ", "jane", "secret123", "")

		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, "jane", user.Username)
		assert.Equal(t, UserTypeBuyer, user.Type)
		assert.False(t, user.IsActive)
		assert.False(t, user.CanLogin())
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.True(t, user.VerifyPassword("secret123"))
		assert.False(t, user.VerifyPassword("secret124"))
	})

	t.Run("creates shop user", func(t *testing.T) {
		user, err := NewUser("shop@example.com", "acme", "secret123", UserTypeShop)
		require.NoError(t, err)
		assert.True(t, user.IsShop())
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewUser("shop@example.com", "acme", "secret123", UserType("admin"))
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "acme", "secret123", UserTypeBuyer)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "email", de.Details[0].Field)
	})

	t.Run("rejects invalid username", func(t *testing.T) {
		_, err := NewUser("a@example.com", "bad name", "secret123", UserTypeBuyer)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"secret123", true},
		{"12345678a", true},
		{"short1", false},
		{"onlyletters", false},
		{"1234567890", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, shared.ErrValidation)
			}
		})
	}
}

func TestUser_Activate(t *testing.T) {
	user, err := NewUser("jane@example.com", "jane", "secret123", UserTypeBuyer)
	require.NoError(t, err)
	user.ID = 5

	user.Activate()
	assert.True(t, user.IsActive)
	assert.True(t, user.CanLogin())
	require.Len(t, user.GetDomainEvents(), 1)

	user.Activate()
	assert.Len(t, user.GetDomainEvents(), 1, "activating twice records one event")
}

func TestUser_MarkRegistered(t *testing.T) {
	user, err := NewUser("jane@example.com", "jane", "secret123", UserTypeBuyer)
	require.NoError(t, err)
	user.ID = 9

	token, err := NewConfirmEmailToken(user.ID)
	require.NoError(t, err)
	user.MarkRegistered(token)

	events := user.GetDomainEvents()
	require.Len(t, events, 1)
	ev, ok := events[0].(*UserRegisteredEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(9), ev.UserID)
	assert.Equal(t, token.Key, ev.ConfirmKey)
	assert.Equal(t, EventTypeUserRegistered, ev.EventType())
}

func TestUser_SetProfile(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetProfile(Profile{FirstName: " Jane ", Company: "Acme"}))
	assert.Equal(t, "Jane", user.FirstName)
	assert.Equal(t, "Acme", user.Company)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	assert.Error(t, user.SetProfile(Profile{Position: string(long)}))
}

func TestGenerateConfirmKey(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := GenerateConfirmKey()
		require.NoError(t, err)
		assert.Len(t, key, ConfirmKeyLength)
		assert.False(t, seen[key])
		seen[key] = true
	}
}
