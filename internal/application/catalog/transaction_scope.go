package catalog

import (
	"context"

	"github.com/shopapi/backend/internal/domain/catalog"
)

// TransactionScope provides transactional access to catalog repositories.
// All repository operations executed inside fn are committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the catalog repositories bound to one transaction
type TransactionalRepositories interface {
	ShopRepo() catalog.ShopRepository
	CategoryRepo() catalog.CategoryRepository
	ProductRepo() catalog.ProductRepository
	ProductInfoRepo() catalog.ProductInfoRepository
	ParameterRepo() catalog.ParameterRepository
	ProductParameterRepo() catalog.ProductParameterRepository
}
