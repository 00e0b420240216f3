package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
	AccountClosed   AccountStatus = "CLOSED"
)

// IsValid reports whether s is a known account status.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountActive, AccountInactive, AccountClosed:
		return true
	}
	return false
}

// Account represents a holder's account within the core domain.
type Account struct {
	AccountID   int64           `json:"accountId"`   // Primary Key, never reused
	HolderName  string          `json:"holderName"`  // Owner binding, one account per holder
	Balance     decimal.Decimal `json:"balance"`     // Scale 2, never negative
	Status      AccountStatus   `json:"status"`      // Only ACTIVE accounts take part in transfers
	Version     int64           `json:"version"`     // +1 on every persisted mutation
	LastUpdated time.Time       `json:"lastUpdated"` // Time of last mutation
}

// IsActive reports whether the account may take part in a transfer.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}

// CanDebit reports whether the balance covers amount.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// Debit subtracts amount from the balance. Callers check CanDebit first.
func (a *Account) Debit(amount decimal.Decimal, now time.Time) {
	a.Balance = a.Balance.Sub(amount)
	a.LastUpdated = now
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount decimal.Decimal, now time.Time) {
	a.Balance = a.Balance.Add(amount)
	a.LastUpdated = now
}
