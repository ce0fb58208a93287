package identity

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// ConfirmKeyLength is the length of a confirmation key in characters
const ConfirmKeyLength = 64

// ConfirmEmailToken is a single-use key that activates a user account
type ConfirmEmailToken struct {
	ID        uint64
	UserID    uint64
	Key       string
	CreatedAt time.Time
}

// NewConfirmEmailToken issues a fresh token for the user
func NewConfirmEmailToken(userID uint64) (*ConfirmEmailToken, error) {
	key, err := GenerateConfirmKey()
	if err != nil {
		return nil, err
	}
	return &ConfirmEmailToken{
		UserID:    userID,
		Key:       key,
		CreatedAt: time.Now(),
	}, nil
}

// GenerateConfirmKey returns 64 hex characters drawn from crypto/rand
func GenerateConfirmKey() (string, error) {
	buf := make([]byte, ConfirmKeyLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
