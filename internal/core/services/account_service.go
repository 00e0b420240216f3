package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/money_transfer_engine/internal/apperrors"
	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_transfer_engine/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_engine/internal/utils"
	"github.com/shopspring/decimal"
)

const (
	maxAccountNumberAttempts = 5
	// MaxHistoryPageSize caps ListTransactions pages.
	MaxHistoryPageSize = 100
)

// DefaultStartingBalance is credited to every newly opened account.
var DefaultStartingBalance = decimal.RequireFromString("5000.00")

type accountService struct {
	BaseService
	accountRepo      portsrepo.AccountRepositoryFacade
	ledger           portsrepo.TransferRecordReader
	startingBalance  decimal.Decimal
	now              func() time.Time
	newAccountNumber func() (int64, error)
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithStartingBalance sets the balance of newly opened accounts.
func WithStartingBalance(balance decimal.Decimal) AccountServiceOption {
	return func(s *accountService) {
		s.startingBalance = balance
	}
}

// WithAccountNumberGenerator replaces the random account number source.
func WithAccountNumberGenerator(gen func() (int64, error)) AccountServiceOption {
	return func(s *accountService) {
		s.newAccountNumber = gen
	}
}

// WithAccountClock replaces the clock used for lastUpdated stamps.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledger portsrepo.TransferRecordReader, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo:      accountRepo,
		ledger:           ledger,
		startingBalance:  DefaultStartingBalance,
		now:              func() time.Time { return time.Now().UTC() },
		newAccountNumber: utils.GenerateAccountNumber,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// OpenAccount creates the holder's account under a random unused account number.
func (s *accountService) OpenAccount(ctx context.Context, holderName string) (*domain.Account, error) {
	if strings.TrimSpace(holderName) == "" {
		return nil, fmt.Errorf("%w: holder name is required", apperrors.ErrValidation)
	}
	if err := s.ensureNoAccount(ctx, holderName); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		accountID, err := s.newAccountNumber()
		if err != nil {
			s.LogError(ctx, err, "Failed to generate account number")
			return nil, fmt.Errorf("generate account number: %w", err)
		}

		exists, err := s.accountRepo.AccountExists(ctx, accountID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check account number", slog.Int64("account_id", accountID))
			return nil, err
		}
		if exists {
			continue
		}

		account := domain.Account{
			AccountID:   accountID,
			HolderName:  holderName,
			Balance:     s.startingBalance,
			Status:      domain.AccountActive,
			LastUpdated: s.now(),
		}
		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			accountsOpenedTotal.Inc()
			s.LogInfo(ctx, "Account opened", slog.Int64("account_id", accountID), slog.String("holder_name", holderName))
			return &account, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.Int64("account_id", accountID))
			return nil, err
		}
		// Lost a race either on the number or on the holder.
		if err := s.ensureNoAccount(ctx, holderName); err != nil {
			return nil, err
		}
	}

	err := fmt.Errorf("no free account number after %d attempts", maxAccountNumberAttempts)
	s.LogError(ctx, err, "Failed to open account", slog.String("holder_name", holderName))
	return nil, err
}

func (s *accountService) ensureNoAccount(ctx context.Context, holderName string) error {
	existing, err := s.accountRepo.FindAccountByHolderName(ctx, holderName)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s already holds account %d", apperrors.ErrDuplicate, holderName, existing.AccountID)
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		s.LogError(ctx, err, "Failed to look up holder account", slog.String("holder_name", holderName))
		return err
	}
}

// GetAccount returns accountID when actingUsername holds it.
func (s *accountService) GetAccount(ctx context.Context, accountID int64, actingUsername string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	if account.HolderName != actingUsername {
		return nil, fmt.Errorf("%w: account %d belongs to another holder", apperrors.ErrForbidden, accountID)
	}
	return account, nil
}

// GetAccountByHolder returns the account bound to actingUsername.
func (s *accountService) GetAccountByHolder(ctx context.Context, actingUsername string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByHolderName(ctx, actingUsername)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to get holder account", slog.String("holder_name", actingUsername))
	}
	return account, err
}

// ListTransactions pages through the account's transfer outcomes, newest first.
func (s *accountService) ListTransactions(ctx context.Context, accountID int64, actingUsername string, limit int, nextToken *string) ([]domain.TransferRecord, *string, error) {
	if limit < 1 || limit > MaxHistoryPageSize {
		return nil, nil, fmt.Errorf("%w: limit must be between 1 and %d", apperrors.ErrValidation, MaxHistoryPageSize)
	}
	if _, err := s.GetAccount(ctx, accountID, actingUsername); err != nil {
		return nil, nil, err
	}

	records, next, err := s.ledger.ListByAccountID(ctx, accountID, limit, nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list transactions", slog.Int64("account_id", accountID))
		}
		return nil, nil, err
	}
	return records, next, nil
}
