package services

import (
	"context"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
)

// TransferSvc moves money between two accounts exactly once per idempotency key.
type TransferSvc interface {
	// Transfer executes cmd on behalf of actingUsername, or returns the outcome already
	// committed for its idempotency key. An empty key is replaced by a generated one.
	// A committed business rule failure is returned as *apperrors.TransferFailedError.
	Transfer(ctx context.Context, cmd domain.TransferCommand, actingUsername string) (*domain.TransferRecord, error)
}

// TransferQuerySvc reads committed transfer outcomes.
type TransferQuerySvc interface {
	// GetTransfer returns the outcome for key if actingUsername holds one of its accounts.
	GetTransfer(ctx context.Context, key string, actingUsername string) (*domain.TransferRecord, error)
}

// TransferSvcFacade combines transfer execution and lookup.
type TransferSvcFacade interface {
	TransferSvc
	TransferQuerySvc
}
