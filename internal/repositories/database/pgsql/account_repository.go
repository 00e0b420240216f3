package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/money_transfer_engine/internal/apperrors"
	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_engine/internal/core/ports/repositories"
	"github.com/SscSPs/money_transfer_engine/internal/models"
	"github.com/SscSPs/money_transfer_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, holder_name, balance, status, version, last_updated`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	if err := row.Scan(&m.AccountID, &m.HolderName, &m.Balance, &m.Status, &m.Version, &m.LastUpdated); err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// findOne runs an account lookup and maps no rows to apperrors.ErrAccountNotFound.
func findOne(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, op string, query string, args ...any) (*domain.Account, error) {
	acc, err := scanAccount(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, classifyError(err, op)
	}
	return acc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.AccountID, m.HolderName, m.Balance, m.Status, m.Version, m.LastUpdated)
	if err != nil {
		return classifyError(err, fmt.Sprintf("save account %d", m.AccountID))
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return findOne(ctx, r.Pool, "find account", query, accountID)
}

// FindAccountByHolderName retrieves the account owned by holderName.
func (r *PgxAccountRepository) FindAccountByHolderName(ctx context.Context, holderName string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE holder_name = $1;`
	return findOne(ctx, r.Pool, "find account by holder", query, holderName)
}

// AccountExists reports whether accountID is taken.
func (r *PgxAccountRepository) AccountExists(ctx context.Context, accountID int64) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1);`, accountID).Scan(&exists)
	if err != nil {
		return false, classifyError(err, "check account existence")
	}
	return exists, nil
}

// FindAccountByIDInTx reads an account without taking its row lock.
func (r *PgxAccountRepository) FindAccountByIDInTx(ctx context.Context, tx pgx.Tx, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return findOne(ctx, tx, "find account in transaction", query, accountID)
}

// LockAccountForUpdate reads an account and locks its row until tx ends.
// Must be called within a transaction.
func (r *PgxAccountRepository) LockAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	return findOne(ctx, tx, "lock account", query, accountID)
}

// UpdateAccountInTx writes balance and last_updated and increments version by exactly one.
func (r *PgxAccountRepository) UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET balance = $2, last_updated = $3, version = version + 1
		WHERE account_id = $1
		RETURNING ` + accountColumns + `;
	`
	return findOne(ctx, tx, "update account", query, m.AccountID, m.Balance, m.LastUpdated)
}
