package repositories

import (
	"context"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransferLedger is the durable idempotency ledger written inside a transfer transaction.
type TransferLedger interface {
	// Reserve claims key inside tx. If another transaction already committed an outcome
	// for key, that outcome is returned as Existing. A concurrent reserver of the same key
	// blocks until the holder ends.
	Reserve(ctx context.Context, tx pgx.Tx, key string) (domain.Reservation, error)

	// Finalize writes the outcome onto the row reserved by tx and assigns its transaction id.
	Finalize(ctx context.Context, tx pgx.Tx, record domain.TransferRecord) (*domain.TransferRecord, error)
}

// TransferRecordReader defines read operations over committed transfer outcomes.
type TransferRecordReader interface {
	// FindByIdempotencyKey returns the committed outcome for key.
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.TransferRecord, error)

	// ListByAccountID returns outcomes involving accountID, newest first.
	// nextToken continues a previous page; the returned token is nil on the last page.
	ListByAccountID(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.TransferRecord, *string, error)

	// CountByStatus counts committed outcomes with the given status.
	CountByStatus(ctx context.Context, status domain.TransferStatus) (int64, error)
}

// TransferRecordRepositoryFacade combines ledger writes and reads.
type TransferRecordRepositoryFacade interface {
	TransferLedger
	TransferRecordReader
}

// TransferRecordRepositoryWithTx extends TransferRecordRepositoryFacade with transaction capabilities
type TransferRecordRepositoryWithTx interface {
	TransferRecordRepositoryFacade
	TransactionManager
}
