package persistence

import (
	"context"

	appcatalog "github.com/shopapi/backend/internal/application/catalog"
	appidentity "github.com/shopapi/backend/internal/application/identity"
	apptrade "github.com/shopapi/backend/internal/application/trade"
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope runs a unit of work inside one GORM transaction.
// The same scope serves the identity, catalog and trade services through
// the typed adapters below.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// run opens the transaction. If fn returns an error, the transaction is rolled back.
func (s *GormTransactionScope) run(ctx context.Context, fn func(repos *gormTransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// Identity returns the scope as an identity TransactionScope
func (s *GormTransactionScope) Identity() appidentity.TransactionScope {
	return identityScope{s}
}

// Catalog returns the scope as a catalog TransactionScope
func (s *GormTransactionScope) Catalog() appcatalog.TransactionScope {
	return catalogScope{s}
}

// Trade returns the scope as a trade TransactionScope
func (s *GormTransactionScope) Trade() apptrade.TransactionScope {
	return tradeScope{s}
}

type identityScope struct{ s *GormTransactionScope }

func (i identityScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return i.s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

type catalogScope struct{ s *GormTransactionScope }

func (c catalogScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return c.s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

type tradeScope struct{ s *GormTransactionScope }

func (t tradeScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return t.s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

// gormTransactionalRepositories provides access to all repositories within a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// UserRepo returns the user repository scoped to the current transaction
func (r *gormTransactionalRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

// ContactRepo returns the contact repository scoped to the current transaction
func (r *gormTransactionalRepositories) ContactRepo() identity.ContactRepository {
	return NewGormContactRepository(r.tx)
}

// ConfirmTokenRepo returns the confirmation token repository scoped to the current transaction
func (r *gormTransactionalRepositories) ConfirmTokenRepo() identity.ConfirmTokenRepository {
	return NewGormConfirmTokenRepository(r.tx)
}

// ShopRepo returns the shop repository scoped to the current transaction
func (r *gormTransactionalRepositories) ShopRepo() catalog.ShopRepository {
	return NewGormShopRepository(r.tx)
}

// CategoryRepo returns the category repository scoped to the current transaction
func (r *gormTransactionalRepositories) CategoryRepo() catalog.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// ProductInfoRepo returns the listing repository scoped to the current transaction
func (r *gormTransactionalRepositories) ProductInfoRepo() catalog.ProductInfoRepository {
	return NewGormProductInfoRepository(r.tx)
}

// ParameterRepo returns the parameter repository scoped to the current transaction
func (r *gormTransactionalRepositories) ParameterRepo() catalog.ParameterRepository {
	return NewGormParameterRepository(r.tx)
}

// ProductParameterRepo returns the listing parameter repository scoped to the current transaction
func (r *gormTransactionalRepositories) ProductParameterRepo() catalog.ProductParameterRepository {
	return NewGormProductParameterRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormTransactionalRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

var (
	_ appidentity.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
	_ appcatalog.TransactionalRepositories  = (*gormTransactionalRepositories)(nil)
	_ apptrade.TransactionalRepositories    = (*gormTransactionalRepositories)(nil)
)
