package mapping

import (
	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	"github.com/SscSPs/money_transfer_engine/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		HolderName:  d.HolderName,
		Balance:     d.Balance,
		Status:      models.AccountStatus(d.Status),
		Version:     d.Version,
		LastUpdated: d.LastUpdated,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		HolderName:  m.HolderName,
		Balance:     m.Balance,
		Status:      domain.AccountStatus(m.Status),
		Version:     m.Version,
		LastUpdated: m.LastUpdated,
	}
}
