package services

import (
	portsrepo "github.com/SscSPs/money_transfer_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_transfer_engine/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(
			repos.AccountRepo,
			repos.TransferRepo,
			WithStartingBalance(cfg.StartingBalance),
		),
		// Both repositories share one pool, so either can open the transaction.
		Transfer: NewTransferService(
			repos.AccountRepo,
			repos.AccountRepo,
			repos.TransferRepo,
			WithTransferTimeout(cfg.TransferTimeout),
		),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade  = (*accountService)(nil)
	_ portssvc.TransferSvcFacade = (*transferService)(nil)
)
