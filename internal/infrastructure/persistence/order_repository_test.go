package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopapi/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository over a mocked postgres connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

const checkoutUpdate = `UPDATE "orders" SET "contact_id"=\$1,"state"=\$2,"updated_at"=\$3 ` +
	`WHERE id = \$4 AND user_id = \$5 AND state = \$6`

func TestGormOrderRepository_MarkCheckedOut(t *testing.T) {
	t.Run("guards on the basket state", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(checkoutUpdate).
			WithArgs(7, "new", sqlmock.AnyArg(), 42, 3, "basket").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkCheckedOut(context.Background(), 42, 3, 7)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("losing a race reports the basket as gone", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(checkoutUpdate).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkCheckedOut(context.Background(), 42, 3, 7)

		assert.ErrorIs(t, err, trade.ErrBasketNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates driver errors", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(checkoutUpdate).
			WillReturnError(errors.New("connection reset"))

		err := repo.MarkCheckedOut(context.Background(), 42, 3, 7)

		assert.ErrorContains(t, err, "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_UpdateState(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	mock.ExpectExec(`UPDATE "orders" SET "state"=\$1,"updated_at"=\$2 WHERE id = \$3 AND state = \$4`).
		WithArgs("confirmed", sqlmock.AnyArg(), 42, "new").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateState(context.Background(), 42, trade.OrderStateNew, trade.OrderStateConfirmed)

	assert.ErrorIs(t, err, trade.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}
