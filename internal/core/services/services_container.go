package services

import (
	portsrepo "github.com/finbooks/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_engine/internal/core/ports/services"
	"github.com/finbooks/ledger_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The notifier is passed in because its lifecycle
// (client shutdown) is owned by the caller.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.EntryNotifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The directory comes first since both other services depend on it.
	container.Directory = NewDirectoryService(repos.AccountRepo, cfg.DirectoryTimeout, cfg.DirectoryRetries)
	container.Notifier = notifier

	container.Journal = NewJournalService(repos.JournalRepo, container.Directory, notifier)
	container.Ledger = NewLedgerService(repos.LedgerRepo, container.Directory)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.JournalService   = (*journalService)(nil)
	_ portssvc.LedgerService    = (*ledgerService)(nil)
	_ portssvc.AccountDirectory = (*directoryService)(nil)
)
