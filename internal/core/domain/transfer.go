package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus is the outcome recorded for an idempotency key.
type TransferStatus string

const (
	TransferSuccess TransferStatus = "SUCCESS"
	TransferFailed  TransferStatus = "FAILED"
	// TransferPending marks a reserved row that has not been finalized yet.
	// It only exists inside the reserving database transaction.
	TransferPending TransferStatus = "PENDING"
)

// FailureCode identifies the business rule that rejected a recorded transfer.
type FailureCode string

const (
	FailureAccountNotActive    FailureCode = "ACCOUNT_NOT_ACTIVE"
	FailureInsufficientBalance FailureCode = "INSUFFICIENT_BALANCE"
)

// MaxIdempotencyKeyLength bounds client supplied keys.
const MaxIdempotencyKeyLength = 255

// TransferCommand is a validated-shape request to move Amount between two accounts.
type TransferCommand struct {
	FromAccountID  int64
	ToAccountID    int64
	Amount         decimal.Decimal
	IdempotencyKey string
}

// TransferRecord is the immutable outcome of one transfer attempt, keyed by IdempotencyKey.
type TransferRecord struct {
	TransactionID  int64           `json:"transactionId"`
	IdempotencyKey string          `json:"idempotencyKey"`
	FromAccountID  int64           `json:"fromAccountId"`
	ToAccountID    int64           `json:"toAccountId"`
	Amount         decimal.Decimal `json:"amount"`
	Status         TransferStatus  `json:"status"`
	FailureCode    FailureCode     `json:"failureCode,omitempty"`
	FailureReason  string          `json:"failureReason,omitempty"`
	CreatedOn      time.Time       `json:"createdOn"`
}

// Succeeded reports whether the record is a committed successful transfer.
func (r *TransferRecord) Succeeded() bool {
	return r.Status == TransferSuccess
}

// Involves reports whether accountID is the source or the destination of the transfer.
func (r *TransferRecord) Involves(accountID int64) bool {
	return r.FromAccountID == accountID || r.ToAccountID == accountID
}

// Reservation is the result of claiming an idempotency key.
// Exactly one of Fresh or Existing is set.
type Reservation struct {
	Fresh    bool
	Existing *TransferRecord
}
