package identity

import (
	"testing"

	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() Address {
	return Address{
		City:      "Moscow",
		Street:    "Tverskaya",
		House:     "1",
		Apartment: "12",
		Phone:     "+79991234567",
	}
}

func TestNewContact(t *testing.T) {
	t.Run("valid contact", func(t *testing.T) {
		c, err := NewContact(3, validAddress())
		require.NoError(t, err)
		assert.Equal(t, uint64(3), c.UserID)
		assert.Equal(t, "Moscow", c.City)
		assert.Equal(t, "+79991234567", c.Phone)
	})

	t.Run("requires user", func(t *testing.T) {
		_, err := NewContact(0, validAddress())
		assert.Error(t, err)
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		addr := validAddress()
		addr.City = ""
		addr.Phone = "89991234567"

		_, err := NewContact(3, addr)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		fields := make([]string, 0, len(de.Details))
		for _, d := range de.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"city", "phone"}, fields)
	})
}

func TestPhonePattern(t *testing.T) {
	assert.True(t, PhonePattern.MatchString("+71234567890"))
	assert.False(t, PhonePattern.MatchString("+7123456789"))
	assert.False(t, PhonePattern.MatchString("+712345678901"))
	assert.False(t, PhonePattern.MatchString("+81234567890"))
	assert.False(t, PhonePattern.MatchString("+7123456789a"))
}

func TestContact_Update(t *testing.T) {
	c, err := NewContact(3, validAddress())
	require.NoError(t, err)

	addr := validAddress()
	addr.City = "Kazan"
	require.NoError(t, c.Update(addr))
	assert.Equal(t, "Kazan", c.City)

	addr.Phone = "bad"
	assert.Error(t, c.Update(addr))
	assert.Equal(t, "+79991234567", c.Phone, "failed update leaves contact unchanged")
}
