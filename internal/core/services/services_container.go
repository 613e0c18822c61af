package services

import (
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, locker portssvc.Locker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, WithLineReader(repos.JournalRepo))
	ledger := NewLedgerService(repos.JournalRepo, repos.AccountRepo)
	container.Ledger = ledger

	// Rules, aging and GST all read the same routing
	container.Posting = NewPostingService(repos.AccountRepo, ledger, WithPostingMap(cfg.PostingMap))
	container.Balance = NewBalanceService(repos.AccountRepo, repos.BalanceRepo)
	container.Reporting = NewReportingService(container.Balance, repos.AccountRepo, repos.BalanceRepo,
		WithReportingPostingMap(cfg.PostingMap))
	container.Backfill = NewBackfillService(repos.SourceRepo, ledger, container.Posting, locker,
		WithBackfillLockTTL(cfg.BackfillLockTTL))

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.PostingSvc       = (*postingService)(nil)
	_ portssvc.BalanceSvc       = (*balanceService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
	_ portssvc.BackfillSvc      = (*backfillService)(nil)
)
