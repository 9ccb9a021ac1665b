package repositories

import (
	"context"

	"github.com/finbooks/ledger_engine/internal/core/domain"
)

// JournalRepository persists journal entries and their lines. Every method
// that touches both the header and the line set is atomic: either all rows
// are durably written or none are.
type JournalRepository interface {
	// SaveEntry inserts a new entry header together with its full line set.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// FindEntryByID retrieves an entry header. Returns apperrors.ErrNotFound
	// when absent.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of an entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries returns one page of entry headers matching the filter,
	// ordered by entry_date desc then created_at desc, plus the total match
	// count for page arithmetic.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit, offset int) ([]domain.JournalEntry, int64, error)

	// UpdateEntryWithLines rewrites the entry header and replaces its lines
	// wholesale (delete then recreate) in one transaction. The stored status
	// is re-checked under a row lock; apperrors.ErrConflict is returned when
	// the entry is no longer DRAFT or PENDING.
	UpdateEntryWithLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateEntryState updates the lifecycle columns of an entry (status,
	// validation fields, posting stamps, rejection reason). The header row is
	// locked for the duration of the update and the stored status must still
	// equal expectedStatus; otherwise apperrors.ErrConflict is returned so
	// concurrent transitions cannot both act on a stale read.
	UpdateEntryState(ctx context.Context, entry domain.JournalEntry, expectedStatus domain.EntryStatus) error

	// DeleteEntry removes the lines then the header in one transaction. The
	// stored status is re-checked under a row lock; apperrors.ErrConflict is
	// returned unless the entry is still DRAFT.
	DeleteEntry(ctx context.Context, entryID string) error
}
