package services_test

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/money_transfer_engine/internal/apperrors"
	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// memTx undoes its writes on rollback.
type memTx struct {
	pgx.Tx
	undo []func()
	done bool
}

// memStore is an in-memory account store, ledger and transaction manager with
// rollback semantics. It serializes everything behind one mutex and is meant for
// sequential scenario tests only.
type memStore struct {
	mu        sync.Mutex
	accounts  map[int64]domain.Account
	records   map[string]domain.TransferRecord
	nextTxnID int64
	locked    []int64
	commits   int
	rollbacks int
}

func newMemStore(accounts ...domain.Account) *memStore {
	s := &memStore{
		accounts:  make(map[int64]domain.Account),
		records:   make(map[string]domain.TransferRecord),
		nextTxnID: 1000,
	}
	for _, a := range accounts {
		s.accounts[a.AccountID] = a
	}
	return s
}

func (s *memStore) account(id int64) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id]
}

func (s *memStore) setStatus(id int64, status domain.AccountStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.accounts[id]
	a.Status = status
	s.accounts[id] = a
}

func (s *memStore) record(key string) (domain.TransferRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[key]
	return r, ok
}

func (s *memStore) totalBalance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, a := range s.accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// TransactionManager

func (s *memStore) Begin(context.Context) (pgx.Tx, error) {
	return &memTx{}, nil
}

func (s *memStore) Commit(_ context.Context, tx pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := tx.(*memTx)
	if t.done {
		return pgx.ErrTxClosed
	}
	t.undo, t.done = nil, true
	s.commits++
	return nil
}

func (s *memStore) Rollback(_ context.Context, tx pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := tx.(*memTx)
	if t.done {
		return nil
	}
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo, t.done = nil, true
	s.rollbacks++
	return nil
}

// Accounts

func (s *memStore) FindAccountByID(_ context.Context, id int64) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return &a, nil
}

func (s *memStore) FindAccountByHolderName(_ context.Context, holder string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.HolderName == holder {
			return &a, nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (s *memStore) AccountExists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[id]
	return ok, nil
}

func (s *memStore) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.AccountID]; ok {
		return apperrors.ErrDuplicate
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *memStore) FindAccountByIDInTx(ctx context.Context, _ pgx.Tx, id int64) (*domain.Account, error) {
	return s.FindAccountByID(ctx, id)
}

func (s *memStore) LockAccountForUpdate(ctx context.Context, _ pgx.Tx, id int64) (*domain.Account, error) {
	s.mu.Lock()
	s.locked = append(s.locked, id)
	s.mu.Unlock()
	return s.FindAccountByID(ctx, id)
}

func (s *memStore) UpdateAccountInTx(_ context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.accounts[account.AccountID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if account.Balance.IsNegative() {
		return nil, fmt.Errorf("balance check violated for %d", account.AccountID)
	}
	next := prev
	next.Balance = account.Balance
	next.LastUpdated = account.LastUpdated
	next.Version++
	s.accounts[account.AccountID] = next
	t := tx.(*memTx)
	t.undo = append(t.undo, func() { s.accounts[prev.AccountID] = prev })
	return &next, nil
}

// Ledger

func (s *memStore) Reserve(_ context.Context, tx pgx.Tx, key string) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[key]; ok {
		if existing.Status == domain.TransferPending {
			return domain.Reservation{}, fmt.Errorf("key %q reserved twice", key)
		}
		return domain.Reservation{Existing: &existing}, nil
	}
	s.records[key] = domain.TransferRecord{IdempotencyKey: key, Status: domain.TransferPending, CreatedOn: time.Now().UTC()}
	t := tx.(*memTx)
	t.undo = append(t.undo, func() { delete(s.records, key) })
	return domain.Reservation{Fresh: true}, nil
}

func (s *memStore) Finalize(_ context.Context, tx pgx.Tx, record domain.TransferRecord) (*domain.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.records[record.IdempotencyKey]
	if !ok || prev.Status != domain.TransferPending {
		return nil, fmt.Errorf("no reservation for %q", record.IdempotencyKey)
	}
	s.nextTxnID++
	record.TransactionID = s.nextTxnID
	record.CreatedOn = prev.CreatedOn
	s.records[record.IdempotencyKey] = record
	t := tx.(*memTx)
	t.undo = append(t.undo, func() { s.records[prev.IdempotencyKey] = prev })
	return &record, nil
}

func (s *memStore) FindByIdempotencyKey(_ context.Context, key string) (*domain.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[key]
	if !ok || r.Status == domain.TransferPending {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (s *memStore) ListByAccountID(_ context.Context, accountID int64, limit int, _ *string) ([]domain.TransferRecord, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TransferRecord
	for _, r := range s.records {
		if r.Status != domain.TransferPending && r.Involves(accountID) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b domain.TransferRecord) int {
		return cmp.Compare(b.TransactionID, a.TransactionID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (s *memStore) CountByStatus(_ context.Context, status domain.TransferStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.records {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}
