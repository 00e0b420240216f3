package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TransferRecord is the row shape of the transfer_records table.
// Columns other than the key, status and created_on are NULL while a row is reserved.
type TransferRecord struct {
	IdempotencyKey string              `db:"idempotency_key"`
	TransactionID  sql.NullInt64       `db:"transaction_id"`
	FromAccountID  sql.NullInt64       `db:"from_account_id"`
	ToAccountID    sql.NullInt64       `db:"to_account_id"`
	Amount         decimal.NullDecimal `db:"amount"`
	Status         string              `db:"status"`
	FailureCode    sql.NullString      `db:"failure_code"`
	FailureReason  sql.NullString      `db:"failure_reason"`
	CreatedOn      time.Time           `db:"created_on"`
}
