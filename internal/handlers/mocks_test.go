package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	portssvc "github.com/SscSPs/money_transfer_engine/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_engine/internal/utils"
	"github.com/stretchr/testify/mock"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough"
	testIssuer    = "transfer-engine-test"
)

// generateTestToken creates a signed JWT whose subject is username.
func generateTestToken(username string) string {
	signed, err := utils.GenerateAccessToken(username, testJWTSecret, testIssuer, time.Hour)
	if err != nil {
		panic(err)
	}
	return signed
}

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, cmd domain.TransferCommand, actingUsername string) (*domain.TransferRecord, error) {
	args := m.Called(ctx, cmd, actingUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRecord), args.Error(1)
}

func (m *MockTransferService) GetTransfer(ctx context.Context, key string, actingUsername string) (*domain.TransferRecord, error) {
	args := m.Called(ctx, key, actingUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRecord), args.Error(1)
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountID int64, actingUsername string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, actingUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByHolder(ctx context.Context, actingUsername string) (*domain.Account, error) {
	args := m.Called(ctx, actingUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) OpenAccount(ctx context.Context, holderName string) (*domain.Account, error) {
	args := m.Called(ctx, holderName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListTransactions(ctx context.Context, accountID int64, actingUsername string, limit int, nextToken *string) ([]domain.TransferRecord, *string, error) {
	args := m.Called(ctx, accountID, actingUsername, limit, nextToken)
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

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)
