package services

// ServiceContainer holds instances of all the application services. It is the
// main entry point for accessing service functionality and is what the
// handlers are wired against.
type ServiceContainer struct {
	Journal   JournalService
	Ledger    LedgerService
	Directory AccountDirectory
	Notifier  EntryNotifier
}
