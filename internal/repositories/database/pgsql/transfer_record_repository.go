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
	"github.com/SscSPs/money_transfer_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transferRecordColumns = `idempotency_key, transaction_id, from_account_id, to_account_id, amount, status, failure_code, failure_reason, created_on`

type PgxTransferRecordRepository struct {
	BaseRepository
}

// newPgxTransferRecordRepository creates a new repository for the idempotency ledger.
func newPgxTransferRecordRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.TransferRecordRepositoryWithTx {
	return &PgxTransferRecordRepository{BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout}}
}

var _ portsrepo.TransferRecordRepositoryWithTx = (*PgxTransferRecordRepository)(nil)

func scanTransferRecord(row pgx.Row) (*domain.TransferRecord, error) {
	var m models.TransferRecord
	err := row.Scan(
		&m.IdempotencyKey,
		&m.TransactionID,
		&m.FromAccountID,
		&m.ToAccountID,
		&m.Amount,
		&m.Status,
		&m.FailureCode,
		&m.FailureReason,
		&m.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	rec := mapping.ToDomainTransferRecord(m)
	return &rec, nil
}

// Reserve inserts a PENDING row for key. On a unique conflict the statement waits for the
// conflicting transaction; once it has committed, its final row is read back and returned.
func (r *PgxTransferRecordRepository) Reserve(ctx context.Context, tx pgx.Tx, key string) (domain.Reservation, error) {
	insert := `
		INSERT INTO transfer_records (idempotency_key, status, created_on)
		VALUES ($1, $2, $3)
		ON CONFLICT (idempotency_key) DO NOTHING;
	`
	tag, err := tx.Exec(ctx, insert, key, string(domain.TransferPending), time.Now().UTC())
	if err != nil {
		return domain.Reservation{}, classifyError(err, "reserve idempotency key")
	}
	if tag.RowsAffected() == 1 {
		return domain.Reservation{Fresh: true}, nil
	}

	query := `SELECT ` + transferRecordColumns + ` FROM transfer_records WHERE idempotency_key = $1;`
	existing, err := scanTransferRecord(tx.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conflicting row vanished between the two statements; the caller may retry.
			return domain.Reservation{}, fmt.Errorf("%w: reservation for key %q disappeared", apperrors.ErrTransient, key)
		}
		return domain.Reservation{}, classifyError(err, "read reserved key")
	}
	if existing.Status == domain.TransferPending {
		return domain.Reservation{}, apperrors.NewAppError(500, fmt.Sprintf("uncommitted reservation visible for key %q", key), nil)
	}
	return domain.Reservation{Existing: existing}, nil
}

// Finalize writes the outcome onto the PENDING row reserved by tx.
func (r *PgxTransferRecordRepository) Finalize(ctx context.Context, tx pgx.Tx, record domain.TransferRecord) (*domain.TransferRecord, error) {
	if record.Status != domain.TransferSuccess && record.Status != domain.TransferFailed {
		return nil, fmt.Errorf("%w: cannot finalize transfer with status %q", apperrors.ErrValidation, record.Status)
	}
	m := mapping.ToModelTransferRecord(record)
	query := `
		UPDATE transfer_records
		SET transaction_id = nextval('transfer_transaction_id_seq'),
			from_account_id = $2,
			to_account_id = $3,
			amount = $4,
			status = $5,
			failure_code = $6,
			failure_reason = $7
		WHERE idempotency_key = $1 AND status = 'PENDING'
		RETURNING ` + transferRecordColumns + `;
	`
	rec, err := scanTransferRecord(tx.QueryRow(ctx, query,
		m.IdempotencyKey,
		m.FromAccountID,
		m.ToAccountID,
		m.Amount,
		m.Status,
		m.FailureCode,
		m.FailureReason,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(500, fmt.Sprintf("no reservation held for key %q", record.IdempotencyKey), err)
		}
		return nil, classifyError(err, "finalize transfer record")
	}
	return rec, nil
}

// FindByIdempotencyKey returns the committed outcome for key.
func (r *PgxTransferRecordRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.TransferRecord, error) {
	query := `SELECT ` + transferRecordColumns + ` FROM transfer_records WHERE idempotency_key = $1 AND status <> 'PENDING';`
	rec, err := scanTransferRecord(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, classifyError(err, "find transfer record")
	}
	return rec, nil
}

// ListByAccountID pages through outcomes involving accountID, newest first.
// Pages are keyed on (created_on, transaction_id) so concurrent inserts do not shift them.
func (r *PgxTransferRecordRepository) ListByAccountID(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.TransferRecord, *string, error) {
	if limit <= 0 {
		return nil, nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrValidation)
	}

	args := []any{accountID, limit + 1}
	cursor := ""
	if nextToken != nil && *nextToken != "" {
		createdOn, txnID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		cursor = `AND (created_on, transaction_id) < ($3, $4)`
		args = append(args, createdOn, txnID)
	}

	query := `
		SELECT ` + transferRecordColumns + `
		FROM transfer_records
		WHERE (from_account_id = $1 OR to_account_id = $1)
			AND status <> 'PENDING'
			` + cursor + `
		ORDER BY created_on DESC, transaction_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, classifyError(err, "list transfer records")
	}
	defer rows.Close()

	records := make([]domain.TransferRecord, 0, limit)
	for rows.Next() {
		rec, err := scanTransferRecord(rows)
		if err != nil {
			return nil, nil, classifyError(err, "scan transfer record")
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, classifyError(err, "iterate transfer records")
	}

	if len(records) <= limit {
		return records, nil, nil
	}
	records = records[:limit]
	last := records[limit-1]
	token := pagination.EncodeToken(last.CreatedOn, last.TransactionID)
	return records, &token, nil
}

// CountByStatus counts committed outcomes with status.
func (r *PgxTransferRecordRepository) CountByStatus(ctx context.Context, status domain.TransferStatus) (int64, error) {
	var n int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transfer_records WHERE status = $1;`, string(status)).Scan(&n)
	if err != nil {
		return 0, classifyError(err, "count transfer records")
	}
	return n, nil
}
