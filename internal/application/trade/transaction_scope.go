package trade

import (
	"context"

	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories used by
// basket and order operations.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to one transaction
type TransactionalRepositories interface {
	OrderRepo() trade.OrderRepository
	ProductInfoRepo() catalog.ProductInfoRepository
	ContactRepo() identity.ContactRepository
}
