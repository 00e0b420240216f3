package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/money_transfer_engine/internal/apperrors"
	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_transfer_engine/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_engine/internal/lockorder"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// transferService runs each transfer as one database transaction:
// reserve the key, validate, lock both accounts in ascending id order,
// apply business rules, mutate, record the outcome, commit.
type transferService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	ledger      portsrepo.TransferRecordRepositoryFacade
	timeout     time.Duration
	now         func() time.Time
	newKey      func() string
}

// TransferServiceOption is a functional option for configuring the transfer service
type TransferServiceOption func(*transferService)

// WithTransferTimeout bounds every Transfer call, including lock waits.
func WithTransferTimeout(d time.Duration) TransferServiceOption {
	return func(s *transferService) {
		s.timeout = d
	}
}

// WithTransferClock replaces the clock used for lastUpdated stamps.
func WithTransferClock(now func() time.Time) TransferServiceOption {
	return func(s *transferService) {
		s.now = now
	}
}

// WithKeyGenerator replaces the generator used when the caller supplies no idempotency key.
func WithKeyGenerator(gen func() string) TransferServiceOption {
	return func(s *transferService) {
		s.newKey = gen
	}
}

// NewTransferService creates the transfer orchestrator.
func NewTransferService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	ledger portsrepo.TransferRecordRepositoryFacade,
	options ...TransferServiceOption,
) portssvc.TransferSvcFacade {
	svc := &transferService{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledger:      ledger,
		now:         func() time.Time { return time.Now().UTC() },
		newKey:      uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer moves cmd.Amount from cmd.FromAccountID to cmd.ToAccountID, or returns the
// outcome already recorded for cmd.IdempotencyKey.
func (s *transferService) Transfer(ctx context.Context, cmd domain.TransferCommand, actingUsername string) (*domain.TransferRecord, error) {
	key, err := s.resolveKey(cmd.IdempotencyKey)
	if err != nil {
		s.LogWarn(ctx, err, "Transfer rejected", slog.String("username", actingUsername))
		transfersTotal.WithLabelValues(outcomeRejected).Inc()
		return nil, err
	}
	cmd.IdempotencyKey = key

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	record, replayed, err := s.transferInTx(ctx, cmd, actingUsername)
	outcome := s.logOutcome(ctx, cmd, record, replayed, err)
	transfersTotal.WithLabelValues(outcome).Inc()
	transferDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil && errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, apperrors.ErrTransient) {
		err = fmt.Errorf("%w: %w", apperrors.ErrTransient, err)
	}
	return record, err
}

// resolveKey returns key, or a generated key when key is blank.
func (s *transferService) resolveKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return s.newKey(), nil
	}
	if !utf8.ValidString(key) {
		return "", fmt.Errorf("%w: idempotency key must be valid UTF-8", apperrors.ErrInvalidRequest)
	}
	if utf8.RuneCountInString(key) > domain.MaxIdempotencyKeyLength {
		return "", fmt.Errorf("%w: idempotency key exceeds %d characters", apperrors.ErrInvalidRequest, domain.MaxIdempotencyKeyLength)
	}
	return key, nil
}

func (s *transferService) transferInTx(ctx context.Context, cmd domain.TransferCommand, actingUsername string) (_ *domain.TransferRecord, replayed bool, err error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		// Rollback must run even when ctx is already done, or the row locks outlive the call.
		if rbErr := s.txManager.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back transfer", slog.String("idempotency_key", cmd.IdempotencyKey))
		}
	}()

	reservation, err := s.ledger.Reserve(ctx, tx, cmd.IdempotencyKey)
	if err != nil {
		return nil, false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if !reservation.Fresh {
		existing := *reservation.Existing
		if existing.Succeeded() {
			return &existing, true, nil
		}
		return nil, true, apperrors.NewTransferFailedError(existing)
	}

	if err := s.validate(ctx, tx, cmd, actingUsername); err != nil {
		return nil, false, err
	}

	accounts, err := lockorder.AcquireAll(ctx, func(ctx context.Context, id int64) (*domain.Account, error) {
		return s.accountRepo.LockAccountForUpdate(ctx, tx, id)
	}, cmd.FromAccountID, cmd.ToAccountID)
	if err != nil {
		return nil, false, err
	}
	from, to := accounts[cmd.FromAccountID], accounts[cmd.ToAccountID]

	if ruleErr := checkBusinessRules(from, to, cmd.Amount); ruleErr != nil {
		record, err := s.finalize(ctx, tx, cmd, domain.TransferFailed, ruleErr)
		if err != nil {
			return nil, false, err
		}
		if err := s.txManager.Commit(ctx, tx); err != nil {
			return nil, false, err
		}
		committed = true
		return nil, false, &apperrors.TransferFailedError{Record: *record, Err: ruleErr}
	}

	now := s.now()
	from.Debit(cmd.Amount, now)
	to.Credit(cmd.Amount, now)
	for _, id := range lockorder.Ascending(cmd.FromAccountID, cmd.ToAccountID) {
		if _, err := s.accountRepo.UpdateAccountInTx(ctx, tx, *accounts[id]); err != nil {
			return nil, false, fmt.Errorf("save account %d: %w", id, err)
		}
	}

	record, err := s.finalize(ctx, tx, cmd, domain.TransferSuccess, nil)
	if err != nil {
		return nil, false, err
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, false, err
	}
	committed = true
	return record, false, nil
}

// validate checks the request shape and that actingUsername holds the source account.
// Nothing is locked and nothing is recorded when it fails.
func (s *transferService) validate(ctx context.Context, tx pgx.Tx, cmd domain.TransferCommand, actingUsername string) error {
	if !cmd.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrInvalidRequest)
	}
	if !domain.IsMoneyScale(cmd.Amount) {
		return fmt.Errorf("%w: amount must have at most %d decimal places", apperrors.ErrInvalidRequest, domain.MoneyScale)
	}
	if cmd.FromAccountID == cmd.ToAccountID {
		return fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrInvalidRequest)
	}

	source, err := s.accountRepo.FindAccountByIDInTx(ctx, tx, cmd.FromAccountID)
	if err != nil {
		return err
	}
	if source.HolderName != actingUsername {
		return apperrors.ErrNotAccountHolder
	}
	return nil
}

func checkBusinessRules(from, to *domain.Account, amount decimal.Decimal) error {
	for _, acc := range []*domain.Account{from, to} {
		if !acc.IsActive() {
			return fmt.Errorf("%w: account %d is %s", apperrors.ErrAccountNotActive, acc.AccountID, acc.Status)
		}
	}
	if !from.CanDebit(amount) {
		return fmt.Errorf("%w: account %d cannot cover %s", apperrors.ErrInsufficientBalance, from.AccountID, domain.FormatMoney(amount))
	}
	return nil
}

func (s *transferService) finalize(ctx context.Context, tx pgx.Tx, cmd domain.TransferCommand, status domain.TransferStatus, cause error) (*domain.TransferRecord, error) {
	record := domain.TransferRecord{
		IdempotencyKey: cmd.IdempotencyKey,
		FromAccountID:  cmd.FromAccountID,
		ToAccountID:    cmd.ToAccountID,
		Amount:         cmd.Amount,
		Status:         status,
	}
	if cause != nil {
		record.FailureCode, _ = apperrors.FailureCodeFor(cause)
		record.FailureReason = cause.Error()
	}
	finalized, err := s.ledger.Finalize(ctx, tx, record)
	if err != nil {
		return nil, fmt.Errorf("finalize transfer record: %w", err)
	}
	return finalized, nil
}

// logOutcome logs the result at a level matching its kind and returns its metric label.
func (s *transferService) logOutcome(ctx context.Context, cmd domain.TransferCommand, record *domain.TransferRecord, replayed bool, err error) string {
	attrs := []any{
		slog.String("idempotency_key", cmd.IdempotencyKey),
		slog.Int64("from_account_id", cmd.FromAccountID),
		slog.Int64("to_account_id", cmd.ToAccountID),
		slog.String("amount", cmd.Amount.String()),
	}

	var failed *apperrors.TransferFailedError
	switch {
	case replayed:
		s.LogInfo(ctx, "Transfer replayed from ledger", attrs...)
		return outcomeReplayed
	case err == nil:
		s.LogInfo(ctx, "Transfer completed", append(attrs, slog.Int64("transaction_id", record.TransactionID))...)
		return outcomeSuccess
	case errors.As(err, &failed):
		s.LogWarn(ctx, err, "Transfer failed and was recorded", append(attrs, slog.Int64("transaction_id", failed.Record.TransactionID))...)
		return outcomeFailed
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound):
		s.LogWarn(ctx, err, "Transfer rejected", attrs...)
		return outcomeRejected
	default:
		s.LogError(ctx, err, "Transfer aborted", attrs...)
		return outcomeError
	}
}

// GetTransfer returns the committed outcome for key to a holder of either account.
func (s *transferService) GetTransfer(ctx context.Context, key string, actingUsername string) (*domain.TransferRecord, error) {
	record, err := s.ledger.FindByIdempotencyKey(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transfer", slog.String("idempotency_key", key))
		}
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByHolderName(ctx, actingUsername)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: caller holds no account", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !record.Involves(account.AccountID) {
		return nil, fmt.Errorf("%w: transfer %s does not involve the caller's account", apperrors.ErrForbidden, key)
	}
	return record, nil
}
