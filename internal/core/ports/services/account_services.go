package services

import (
	"context"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data.
// Every read is scoped to the account's holder.
type AccountReaderSvc interface {
	// GetAccount retrieves an account owned by actingUsername.
	GetAccount(ctx context.Context, accountID int64, actingUsername string) (*domain.Account, error)

	// GetAccountByHolder retrieves the account bound to actingUsername.
	GetAccountByHolder(ctx context.Context, actingUsername string) (*domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// OpenAccount creates the ACTIVE account of holderName with the starting balance.
	OpenAccount(ctx context.Context, holderName string) (*domain.Account, error)
}

// AccountHistorySvc lists transfer outcomes involving an account.
type AccountHistorySvc interface {
	ListTransactions(ctx context.Context, accountID int64, actingUsername string, limit int, nextToken *string) ([]domain.TransferRecord, *string, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountHistorySvc
}
