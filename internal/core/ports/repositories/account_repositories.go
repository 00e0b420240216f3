package repositories

import (
	"context"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByHolderName retrieves the account bound to a holder.
	FindAccountByHolderName(ctx context.Context, holderName string) (*domain.Account, error)

	// AccountExists reports whether an account id is already taken.
	AccountExists(ctx context.Context, accountID int64) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A taken id or holder returns apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that support account transactions
type AccountTransactionSupport interface {
	// FindAccountByIDInTx reads an account inside tx without locking it.
	FindAccountByIDInTx(ctx context.Context, tx pgx.Tx, accountID int64) (*domain.Account, error)

	// LockAccountForUpdate reads an account and holds its row lock until tx ends.
	LockAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID int64) (*domain.Account, error)

	// UpdateAccountInTx persists balance and last update time, bumps the version by one
	// and returns the stored row. The caller must hold the row lock.
	UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
