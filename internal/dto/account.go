package dto

import (
	"time"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
)

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID   int64                `json:"accountId" example:"10000001"`
	HolderName  string               `json:"holderName" example:"alice"`
	Balance     string               `json:"balance" example:"5000.00"`
	Status      domain.AccountStatus `json:"status" example:"ACTIVE"`
	Version     int64                `json:"version"`
	LastUpdated time.Time            `json:"lastUpdated"`
}

// BalanceResponse defines the data returned for a balance lookup.
type BalanceResponse struct {
	AccountID int64  `json:"accountId" example:"10000001"`
	Balance   string `json:"balance" example:"5000.00"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		HolderName:  acc.HolderName,
		Balance:     domain.FormatMoney(acc.Balance),
		Status:      acc.Status,
		Version:     acc.Version,
		LastUpdated: acc.LastUpdated,
	}
}

// ToBalanceResponse converts a domain.Account to BalanceResponse DTO
func ToBalanceResponse(acc *domain.Account) BalanceResponse {
	return BalanceResponse{AccountID: acc.AccountID, Balance: domain.FormatMoney(acc.Balance)}
}
