package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus mirrors the CHECK constraint on accounts.status.
type AccountStatus string

// Account is the row shape of the accounts table.
type Account struct {
	AccountID   int64           `db:"account_id"`
	HolderName  string          `db:"holder_name"`
	Balance     decimal.Decimal `db:"balance"`
	Status      AccountStatus   `db:"status"`
	Version     int64           `db:"version"`
	LastUpdated time.Time       `db:"last_updated"`
}
