package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/money_transfer_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx repositories over one pool.
// lockTimeout bounds row lock waits in every transaction the repositories begin.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool, lockTimeout),
		TransferRepo: newPgxTransferRecordRepository(dbPool, lockTimeout),
	}
}
