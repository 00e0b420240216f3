package apperrors

import (
	"errors"
	"fmt"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
)

// TransferFailedError is returned when a transfer was rejected by a business rule
// and its FAILED outcome has been committed under the idempotency key.
type TransferFailedError struct {
	Record domain.TransferRecord
	Err    error
}

func (e *TransferFailedError) Error() string {
	if e.Record.FailureReason != "" {
		return fmt.Sprintf("transfer %s failed: %s", e.Record.IdempotencyKey, e.Record.FailureReason)
	}
	return fmt.Sprintf("transfer %s failed: %v", e.Record.IdempotencyKey, e.Err)
}

func (e *TransferFailedError) Unwrap() error {
	return e.Err
}

// FailureCodeFor returns the recorded failure code for a business rule error.
func FailureCodeFor(err error) (domain.FailureCode, bool) {
	switch {
	case errors.Is(err, ErrAccountNotActive):
		return domain.FailureAccountNotActive, true
	case errors.Is(err, ErrInsufficientBalance):
		return domain.FailureInsufficientBalance, true
	}
	return "", false
}

// NewTransferFailedError rebuilds the typed error of a committed FAILED record.
func NewTransferFailedError(record domain.TransferRecord) *TransferFailedError {
	var err error
	switch record.FailureCode {
	case domain.FailureAccountNotActive:
		err = ErrAccountNotActive
	case domain.FailureInsufficientBalance:
		err = ErrInsufficientBalance
	default:
		err = fmt.Errorf("unrecognised failure code %q", record.FailureCode)
	}
	return &TransferFailedError{Record: record, Err: err}
}
