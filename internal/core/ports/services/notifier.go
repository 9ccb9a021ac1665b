package services

import (
	"context"

	"github.com/finbooks/ledger_engine/internal/core/domain"
)

// EntryNotifier is the hook fired after an entry transitions to POSTED or
// CANCELLED so downstream subsystems (tax, reporting) can react. Delivery is
// best-effort: a failing notifier must not roll back the transition.
type EntryNotifier interface {
	NotifyStatusChange(ctx context.Context, change domain.StatusChange)
}
