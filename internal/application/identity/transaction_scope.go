package identity

import (
	"context"

	"github.com/shopapi/backend/internal/domain/identity"
)

// TransactionScope provides transactional access to identity repositories.
// All repository operations executed inside fn are committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the identity repositories bound to one transaction
type TransactionalRepositories interface {
	UserRepo() identity.UserRepository
	ContactRepo() identity.ContactRepository
	ConfirmTokenRepo() identity.ConfirmTokenRepository
}
