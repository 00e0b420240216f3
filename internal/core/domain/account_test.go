package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_DebitCredit_ConservesTotal(t *testing.T) {
	now := time.Now()
	from := domain.Account{AccountID: 1, Balance: decimal.RequireFromString("500.00"), Status: domain.AccountActive}
	to := domain.Account{AccountID: 2, Balance: decimal.RequireFromString("100.00"), Status: domain.AccountActive}
	before := from.Balance.Add(to.Balance)
	amount := decimal.RequireFromString("100.00")

	assert.True(t, from.CanDebit(amount))
	from.Debit(amount, now)
	to.Credit(amount, now)

	assert.Equal(t, "400.00", domain.FormatMoney(from.Balance))
	assert.Equal(t, "200.00", domain.FormatMoney(to.Balance))
	assert.True(t, before.Equal(from.Balance.Add(to.Balance)))
	assert.Equal(t, now, from.LastUpdated)
	assert.Equal(t, now, to.LastUpdated)
}

func TestAccount_CanDebit(t *testing.T) {
	acc := domain.Account{Balance: decimal.RequireFromString("50.00")}

	tests := []struct {
		name   string
		amount string
		want   bool
	}{
		{name: "below balance", amount: "10.00", want: true},
		{name: "exact balance", amount: "50.00", want: true},
		{name: "above balance", amount: "50.01", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, acc.CanDebit(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestAccountStatus(t *testing.T) {
	tests := []struct {
		status domain.AccountStatus
		valid  bool
		active bool
	}{
		{status: domain.AccountActive, valid: true, active: true},
		{status: domain.AccountInactive, valid: true, active: false},
		{status: domain.AccountClosed, valid: true, active: false},
		{status: domain.AccountStatus("LOCKED"), valid: false, active: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			acc := domain.Account{Status: tt.status}
			assert.Equal(t, tt.valid, tt.status.IsValid())
			assert.Equal(t, tt.active, acc.IsActive())
		})
	}
}

func TestIsMoneyScale(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{amount: "100", want: true},
		{amount: "100.5", want: true},
		{amount: "100.55", want: true},
		{amount: "100.550", want: true},
		{amount: "100.555", want: false},
		{amount: "0.001", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsMoneyScale(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestTransferRecord_Involves(t *testing.T) {
	rec := domain.TransferRecord{FromAccountID: 1, ToAccountID: 2, Status: domain.TransferSuccess}

	assert.True(t, rec.Involves(1))
	assert.True(t, rec.Involves(2))
	assert.False(t, rec.Involves(3))
	assert.True(t, rec.Succeeded())
}
