package services_test

import (
	"context"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// fakeTx is a stand-in transaction handle; nothing calls its methods.
type fakeTx struct{ pgx.Tx }

// MockTxManager is a mock type for the TransactionManager interface
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func accountOrNil(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	return accountOrNil(m.Called(ctx, accountID))
}

func (m *MockAccountRepository) FindAccountByHolderName(ctx context.Context, holderName string) (*domain.Account, error) {
	return accountOrNil(m.Called(ctx, holderName))
}

func (m *MockAccountRepository) AccountExists(ctx context.Context, accountID int64) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDInTx(ctx context.Context, tx pgx.Tx, accountID int64) (*domain.Account, error) {
	return accountOrNil(m.Called(ctx, tx, accountID))
}

func (m *MockAccountRepository) LockAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID int64) (*domain.Account, error) {
	return accountOrNil(m.Called(ctx, tx, accountID))
}

func (m *MockAccountRepository) UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error) {
	return accountOrNil(m.Called(ctx, tx, account))
}

// MockTransferLedger is a mock type for the TransferRecordRepositoryFacade interface
type MockTransferLedger struct {
	mock.Mock
}

func recordOrNil(args mock.Arguments) (*domain.TransferRecord, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRecord), args.Error(1)
}

func (m *MockTransferLedger) Reserve(ctx context.Context, tx pgx.Tx, key string) (domain.Reservation, error) {
	args := m.Called(ctx, tx, key)
	return args.Get(0).(domain.Reservation), args.Error(1)
}

func (m *MockTransferLedger) Finalize(ctx context.Context, tx pgx.Tx, record domain.TransferRecord) (*domain.TransferRecord, error) {
	return recordOrNil(m.Called(ctx, tx, record))
}

func (m *MockTransferLedger) FindByIdempotencyKey(ctx context.Context, key string) (*domain.TransferRecord, error) {
	return recordOrNil(m.Called(ctx, key))
}

func (m *MockTransferLedger) ListByAccountID(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.TransferRecord, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var records []domain.TransferRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.TransferRecord)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return records, next, args.Error(2)
}

func (m *MockTransferLedger) CountByStatus(ctx context.Context, status domain.TransferStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
