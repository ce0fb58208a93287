package persistence

import (
	"errors"

	"gorm.io/gorm"
)

// mapNotFound replaces gorm.ErrRecordNotFound with the entity's domain error
func mapNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// isDuplicateKey reports whether err is a translated unique constraint violation
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
