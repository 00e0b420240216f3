package dto

import (
	"time"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IdempotencyKeyHeader supplies the idempotency key when the body does not.
const IdempotencyKeyHeader = "X-Idempotency-Key"

// TransferRequest defines the data needed to move money between two accounts.
type TransferRequest struct {
	FromAccountID  int64            `json:"fromAccountId" binding:"required" example:"10000001"`
	ToAccountID    int64            `json:"toAccountId" binding:"required" example:"10000002"`
	Amount         *decimal.Decimal `json:"amount" binding:"required,money" swaggertype:"string" example:"100.00"`
	IdempotencyKey string           `json:"idempotencyKey,omitempty" example:"9b2f6d0e-5a4c-4d8e-9a51-0c3f6e1d2b7a"`
}

// ToCommand converts the request into a transfer command using key as the idempotency key.
func (r TransferRequest) ToCommand(key string) domain.TransferCommand {
	cmd := domain.TransferCommand{
		FromAccountID:  r.FromAccountID,
		ToAccountID:    r.ToAccountID,
		IdempotencyKey: key,
	}
	if r.Amount != nil {
		cmd.Amount = *r.Amount
	}
	return cmd
}

// TransferResponse is returned for the first execution of a transfer and for every replay.
type TransferResponse struct {
	TransactionID  int64                 `json:"transactionId" example:"1001"`
	FromAccountID  int64                 `json:"fromAccountId" example:"10000001"`
	ToAccountID    int64                 `json:"toAccountId" example:"10000002"`
	Amount         string                `json:"amount" example:"100.00"`
	Status         domain.TransferStatus `json:"status" example:"SUCCESS"`
	IdempotencyKey string                `json:"idempotencyKey"`
}

// TransferRecordResponse is a committed transfer outcome including failure details.
type TransferRecordResponse struct {
	TransferResponse
	FailureCode   domain.FailureCode `json:"failureCode,omitempty"`
	FailureReason string             `json:"failureReason,omitempty"`
	CreatedOn     time.Time          `json:"createdOn"`
}

// ListTransactionsParams defines query parameters for transfer history.
type ListTransactionsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is one page of transfer history, newest first.
type ListTransactionsResponse struct {
	Transactions []TransferRecordResponse `json:"transactions"`
	NextToken    *string                  `json:"nextToken,omitempty"`
}

// ToTransferResponse converts a domain.TransferRecord to TransferResponse DTO.
// The amount always carries two decimals so replays serialize identically.
func ToTransferResponse(r domain.TransferRecord) TransferResponse {
	return TransferResponse{
		TransactionID:  r.TransactionID,
		FromAccountID:  r.FromAccountID,
		ToAccountID:    r.ToAccountID,
		Amount:         domain.FormatMoney(r.Amount),
		Status:         r.Status,
		IdempotencyKey: r.IdempotencyKey,
	}
}

// ToTransferRecordResponse converts a domain.TransferRecord to TransferRecordResponse DTO
func ToTransferRecordResponse(r domain.TransferRecord) TransferRecordResponse {
	return TransferRecordResponse{
		TransferResponse: ToTransferResponse(r),
		FailureCode:      r.FailureCode,
		FailureReason:    r.FailureReason,
		CreatedOn:        r.CreatedOn,
	}
}

// ToListTransactionsResponse converts a page of records.
func ToListTransactionsResponse(records []domain.TransferRecord, nextToken *string) ListTransactionsResponse {
	out := make([]TransferRecordResponse, len(records))
	for i, r := range records {
		out[i] = ToTransferRecordResponse(r)
	}
	return ListTransactionsResponse{Transactions: out, NextToken: nextToken}
}
