package services

import (
	"context"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	"github.com/finbooks/ledger_engine/internal/dto"
)

// JournalService is the journal lifecycle manager: it validates entry data
// against the account directory and the balance invariant, persists entries,
// and drives them through the status state machine.
type JournalService interface {
	// CreateEntry validates and persists a new entry in DRAFT. Debits and
	// credits must balance exactly.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error)

	// ListEntries returns one page of entry headers matching the filter,
	// ordered by date desc then creation time desc.
	ListEntries(ctx context.Context, filter domain.EntryFilter, page, pageSize int) ([]domain.JournalEntry, dto.PageInfo, error)

	// GetEntryByID returns the entry with its lines eagerly loaded.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// UpdateStatus applies one transition of the state machine. Moving to
	// REJECTED requires a non-empty rejection reason; moving to POSTED stamps
	// the posting audit fields and fires the notification hook.
	UpdateStatus(ctx context.Context, entryID string, newStatus domain.EntryStatus, actorID, rejectionReason string) (*domain.JournalEntry, error)

	// UpdateEntry patches a DRAFT/PENDING entry. A supplied line set replaces
	// the stored lines wholesale and re-runs the strict balance check.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.JournalEntry, error)

	// RemoveEntry deletes a DRAFT entry and its lines.
	RemoveEntry(ctx context.Context, entryID, actorID string) error

	// ValidateEntry records the human decision on an agent-sourced entry.
	ValidateEntry(ctx context.Context, entryID string, decision domain.ValidationStatus, actorID, reason string) (*domain.JournalEntry, error)

	// IngestExternalEntry books a transaction reported by another subsystem
	// directly into POSTED, resolving accounts by code and tolerating
	// rounding noise up to the ingestion epsilon.
	IngestExternalEntry(ctx context.Context, req dto.ExternalEntryRequest) (*domain.JournalEntry, error)
}
