package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/ledger_engine/internal/apperrors"
	"github.com/finbooks/ledger_engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_engine/internal/core/ports/services"
	"github.com/finbooks/ledger_engine/internal/dto"
	"github.com/finbooks/ledger_engine/internal/middleware"
	"github.com/finbooks/ledger_engine/internal/utils/accounting"
	"github.com/finbooks/ledger_engine/internal/utils/pagination"
)

// ingestTolerance absorbs rounding noise in amounts reported by external
// subsystems. Manual entries get no tolerance at all.
var ingestTolerance = decimal.RequireFromString("0.001")

// journalService drives journal entries through their lifecycle. All account
// references are resolved through the directory before anything is persisted.
type journalService struct {
	journalRepo portsrepo.JournalRepository
	directory   portssvc.AccountDirectory
	notifier    portssvc.EntryNotifier
}

// NewJournalService creates the journal lifecycle service.
func NewJournalService(journalRepo portsrepo.JournalRepository, directory portssvc.AccountDirectory, notifier portssvc.EntryNotifier) portssvc.JournalService {
	return &journalService{
		journalRepo: journalRepo,
		directory:   directory,
		notifier:    notifier,
	}
}

var _ portssvc.JournalService = (*journalService)(nil)

// resolveLineAccounts checks every distinct account referenced by the lines
// against the directory. Unknown or inactive accounts fail the whole entry.
func (s *journalService) resolveLineAccounts(ctx context.Context, lines []domain.JournalLine) error {
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if seen[line.AccountID] {
			continue
		}
		seen[line.AccountID] = true

		account, err := s.directory.ResolveByID(ctx, line.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, line.AccountID)
			}
			return err
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, line.AccountID)
		}
	}
	return nil
}

func linesFromInput(inputs []dto.LineInput, entryID, actorID string, now time.Time) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(inputs))
	for i, in := range inputs {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   in.AccountID,
			Debit:       in.Debit,
			Credit:      in.Credit,
			Description: in.Description,
			VATCode:     in.VATCode,
			VATAmount:   in.VATAmount,
			Metadata:    in.Metadata,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}
	return lines
}

// CreateEntry validates and persists a new journal entry in DRAFT.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	entryID := uuid.NewString()
	lines := linesFromInput(req.Lines, entryID, actorID, now)

	if err := accounting.ValidateLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := accounting.CheckBalanced(lines, decimal.Zero); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnbalanced, err.Error())
	}
	if err := s.resolveLineAccounts(ctx, lines); err != nil {
		return nil, err
	}

	totalDebit, totalCredit, totalVAT := accounting.LineTotals(lines)

	source := domain.SourceManual
	if req.Source != "" {
		source = domain.EntrySource(req.Source)
	}

	entry := domain.JournalEntry{
		EntryID:      entryID,
		CompanyID:    req.CompanyID,
		FiscalYearID: req.FiscalYearID,
		JournalType:  domain.JournalType(req.JournalType),
		EntryDate:    req.Date,
		Description:  req.Description,
		Reference:    req.Reference,
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
		TotalVAT:     totalVAT,
		Status:       domain.StatusDraft,
		Source:       source,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if source == domain.SourceAgent {
		entry.ValidationStatus = domain.ValidationPending
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entryID),
		slog.String("company_id", req.CompanyID),
		slog.String("source", string(source)),
	)

	entry.Lines = lines
	return &entry, nil
}

// ListEntries returns one page of entry headers matching the filter.
func (s *journalService) ListEntries(ctx context.Context, filter domain.EntryFilter, page, pageSize int) ([]domain.JournalEntry, dto.PageInfo, error) {
	params := pagination.Normalize(page, pageSize)

	entries, total, err := s.journalRepo.ListEntries(ctx, filter, params.PageSize, params.Offset())
	if err != nil {
		return nil, dto.PageInfo{}, err
	}

	pageInfo := dto.PageInfo{
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: total,
		TotalPages: params.TotalPages(total),
	}
	return entries, pageInfo, nil
}

// GetEntryByID returns the entry with its lines eagerly loaded.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// UpdateStatus applies one transition of the entry state machine.
func (s *journalService) UpdateStatus(ctx context.Context, entryID string, newStatus domain.EntryStatus, actorID, rejectionReason string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	oldStatus := entry.Status
	if !domain.CanTransition(oldStatus, newStatus) {
		return nil, fmt.Errorf("%w: cannot move entry from %s to %s", apperrors.ErrInvalidTransition, oldStatus, newStatus)
	}
	if newStatus == domain.StatusRejected && rejectionReason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entry.Status = newStatus
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	switch newStatus {
	case domain.StatusRejected:
		entry.RejectionReason = rejectionReason
	case domain.StatusDraft:
		// REJECTED -> DRAFT reopens the entry for editing.
		entry.RejectionReason = ""
	case domain.StatusPosted:
		entry.PostedBy = &actorID
		entry.PostedAt = &now
	}

	if err := s.journalRepo.UpdateEntryState(ctx, *entry, oldStatus); err != nil {
		logger.Error("Failed to update entry status",
			slog.String("entry_id", entryID),
			slog.String("from", string(oldStatus)),
			slog.String("to", string(newStatus)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.Info("Journal entry status changed",
		slog.String("entry_id", entryID),
		slog.String("from", string(oldStatus)),
		slog.String("to", string(newStatus)),
	)

	if s.notifier != nil && (newStatus == domain.StatusPosted || newStatus == domain.StatusCancelled) {
		s.notifier.NotifyStatusChange(ctx, domain.StatusChange{
			EntryID:   entryID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			ChangedAt: now,
		})
	}

	return entry, nil
}

// UpdateEntry patches a DRAFT or PENDING entry. A supplied line set replaces
// the stored lines wholesale.
func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Status.IsMutable() {
		return nil, fmt.Errorf("%w: entry in status %s cannot be edited", apperrors.ErrConflict, entry.Status)
	}

	now := time.Now().UTC()
	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.JournalType != nil {
		entry.JournalType = domain.JournalType(*req.JournalType)
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
		}
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}

	var lines []domain.JournalLine
	if req.Lines != nil {
		lines = linesFromInput(*req.Lines, entryID, actorID, now)
		if err := accounting.ValidateLines(lines); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		if err := accounting.CheckBalanced(lines, decimal.Zero); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnbalanced, err.Error())
		}
		if err := s.resolveLineAccounts(ctx, lines); err != nil {
			return nil, err
		}
		entry.TotalDebit, entry.TotalCredit, entry.TotalVAT = accounting.LineTotals(lines)
	} else {
		lines, err = s.journalRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, err
		}
	}

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	if err := s.journalRepo.UpdateEntryWithLines(ctx, *entry, lines); err != nil {
		logger.Error("Failed to update journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	entry.Lines = lines
	return entry, nil
}

// RemoveEntry deletes a DRAFT entry and its lines.
func (s *journalService) RemoveEntry(ctx context.Context, entryID, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.StatusDraft {
		return fmt.Errorf("%w: only DRAFT entries can be removed, entry is %s", apperrors.ErrConflict, entry.Status)
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Journal entry removed", slog.String("entry_id", entryID), slog.String("removed_by", actorID))
	return nil
}

// ValidateEntry records the human decision on an agent-sourced entry. A
// validated entry advances to PENDING; a rejected one stays in DRAFT with the
// reason recorded so the agent's proposal can be corrected.
func (s *journalService) ValidateEntry(ctx context.Context, entryID string, decision domain.ValidationStatus, actorID, reason string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Source != domain.SourceAgent {
		return nil, fmt.Errorf("%w: entry %s is not agent-sourced", apperrors.ErrInvalidOperation, entryID)
	}
	if entry.ValidationStatus != domain.ValidationPending {
		return nil, fmt.Errorf("%w: entry %s has already been reviewed", apperrors.ErrInvalidOperation, entryID)
	}
	if decision == domain.ValidationRejected && reason == "" {
		return nil, fmt.Errorf("%w: a reason is required to reject an entry", apperrors.ErrValidation)
	}

	oldStatus := entry.Status
	now := time.Now().UTC()
	entry.ValidationStatus = decision
	entry.ValidatedBy = &actorID
	entry.ValidatedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	if decision == domain.ValidationValidated {
		entry.Status = domain.StatusPending
		entry.RejectionReason = ""
	} else {
		entry.Status = domain.StatusDraft
		entry.RejectionReason = reason
	}

	if err := s.journalRepo.UpdateEntryState(ctx, *entry, oldStatus); err != nil {
		logger.Error("Failed to record validation decision", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Agent entry reviewed",
		slog.String("entry_id", entryID),
		slog.String("decision", string(decision)),
		slog.String("reviewed_by", actorID),
	)
	return entry, nil
}

// IngestExternalEntry books a transaction reported by another subsystem
// directly into POSTED with source IMPORT. Accounts are resolved by
// classification code and small rounding differences are tolerated.
func (s *journalService) IngestExternalEntry(ctx context.Context, req dto.ExternalEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	entryID := uuid.NewString()
	actor := req.SourceSystem

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, in := range req.Lines {
		account, err := s.directory.ResolveByCode(ctx, req.CompanyID, in.AccountCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: code %s", apperrors.ErrAccountNotFound, in.AccountCode)
			}
			return nil, err
		}
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   account.AccountID,
			Debit:       in.Debit,
			Credit:      in.Credit,
			Description: in.Description,
			Metadata:    map[string]string{"sourceSystem": req.SourceSystem},
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor,
				LastUpdatedAt: now,
				LastUpdatedBy: actor,
			},
		}
	}

	if err := accounting.ValidateLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := accounting.CheckBalanced(lines, ingestTolerance); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	totalDebit, totalCredit, totalVAT := accounting.LineTotals(lines)

	entry := domain.JournalEntry{
		EntryID:      entryID,
		CompanyID:    req.CompanyID,
		FiscalYearID: req.FiscalYearID,
		JournalType:  domain.JournalType(req.JournalType),
		EntryDate:    req.Date,
		Description:  req.Description,
		Reference:    req.Reference,
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
		TotalVAT:     totalVAT,
		Status:       domain.StatusPosted,
		Source:       domain.SourceImport,
		PostedBy:     &actor,
		PostedAt:     &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to ingest external entry",
			slog.String("entry_id", entryID),
			slog.String("source_system", req.SourceSystem),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.Info("External entry ingested",
		slog.String("entry_id", entryID),
		slog.String("source_system", req.SourceSystem),
	)

	if s.notifier != nil {
		s.notifier.NotifyStatusChange(ctx, domain.StatusChange{
			EntryID:   entryID,
			NewStatus: domain.StatusPosted,
			ChangedAt: now,
		})
	}

	entry.Lines = lines
	return &entry, nil
}
