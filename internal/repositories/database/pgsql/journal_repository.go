package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/finbooks/ledger_engine/internal/apperrors"
	"github.com/finbooks/ledger_engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_engine/internal/core/ports/repositories"
	"github.com/finbooks/ledger_engine/internal/models"
	"github.com/finbooks/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, company_id, fiscal_year_id, journal_type, entry_date, description, reference,
	total_debit, total_credit, total_vat, status, source, validation_status, rejection_reason,
	posted_by, posted_at, validated_by, validated_at,
	created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, description, vat_code, vat_amount, metadata,
		created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and
// their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	for _, line := range lines {
		m := mapping.ToModelLine(line)
		batch.Queue(insertLineQuery,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.Description,
			m.VATCode,
			m.VATAmount,
			m.Metadata,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// SaveEntry inserts a new entry header with its full line set in one
// transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.CompanyID,
		m.FiscalYearID,
		m.JournalType,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.TotalDebit,
		m.TotalCredit,
		m.TotalVAT,
		m.Status,
		m.Source,
		m.ValidationStatus,
		m.RejectionReason,
		m.PostedBy,
		m.PostedAt,
		m.ValidatedBy,
		m.ValidatedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.FiscalYearID,
		&m.JournalType,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.TotalVAT,
		&m.Status,
		&m.Source,
		&m.ValidationStatus,
		&m.RejectionReason,
		&m.PostedBy,
		&m.PostedAt,
		&m.ValidatedBy,
		&m.ValidatedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainEntry(*m)
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines of an entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit, credit, description, vat_code, vat_amount, metadata,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY created_at ASC, line_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	modelLines := make([]models.JournalLine, 0)
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.VATCode,
			&m.VATAmount,
			&m.Metadata,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows", err)
	}
	return mapping.ToDomainLineSlice(modelLines), nil
}

// entryFilterClauses builds the WHERE fragment and args shared by the list
// and count queries.
func entryFilterClauses(filter domain.EntryFilter) (string, []interface{}) {
	where := ` WHERE 1=1`
	args := make([]interface{}, 0)

	addClause := func(clause string, value interface{}) {
		args = append(args, value)
		where += clause + "$" + strconv.Itoa(len(args))
	}

	if filter.CompanyID != "" {
		addClause(` AND company_id = `, filter.CompanyID)
	}
	if filter.FiscalYearID != "" {
		addClause(` AND fiscal_year_id = `, filter.FiscalYearID)
	}
	if filter.JournalType != nil {
		addClause(` AND journal_type = `, string(*filter.JournalType))
	}
	if filter.Status != nil {
		addClause(` AND status = `, string(*filter.Status))
	}
	if filter.Source != nil {
		addClause(` AND source = `, string(*filter.Source))
	}
	if filter.DateFrom != nil {
		addClause(` AND entry_date >= `, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addClause(` AND entry_date <= `, *filter.DateTo)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (description ILIKE $` + n + ` OR reference ILIKE $` + n + `)`
	}
	return where, args
}

// ListEntries returns one page of entry headers matching the filter plus the
// total match count.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit, offset int) ([]domain.JournalEntry, int64, error) {
	where, args := entryFilterClauses(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM journal_entries` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count journal entries", err)
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`SELECT `+entryColumns+` FROM journal_entries`+where+`
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d;`, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, mapping.ToDomainEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return entries, total, nil
}

// lockEntryStatus takes the row lock on an entry header and returns its
// stored status. Mutating operations call this first so the status they
// checked cannot change under them before the transaction commits.
func lockEntryStatus(ctx context.Context, tx pgx.Tx, entryID string) (domain.EntryStatus, error) {
	var status string
	lockQuery := `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, entryID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to lock entry "+entryID, err)
	}
	return domain.EntryStatus(status), nil
}

// UpdateEntryWithLines rewrites the header and replaces the line set
// wholesale in one transaction. The stored status is re-checked under the row
// lock; a concurrent transition out of DRAFT/PENDING yields
// apperrors.ErrConflict instead of rewriting an immutable entry.
func (r *PgxJournalRepository) UpdateEntryWithLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	currentStatus, err := lockEntryStatus(ctx, tx, entry.EntryID)
	if err != nil {
		return err
	}
	if !currentStatus.IsMutable() {
		return fmt.Errorf("%w: entry %s is %s and can no longer be edited",
			apperrors.ErrConflict, entry.EntryID, currentStatus)
	}

	m := mapping.ToModelEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET journal_type = $2, entry_date = $3, description = $4, reference = $5,
		    total_debit = $6, total_credit = $7, total_vat = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery,
		m.EntryID,
		m.JournalType,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.TotalDebit,
		m.TotalCredit,
		m.TotalVAT,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to reinsert lines for entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateEntryState updates the lifecycle columns of an entry under a row
// lock. The stored status must still equal expectedStatus, otherwise the
// caller acted on a stale read and gets apperrors.ErrConflict.
func (r *PgxJournalRepository) UpdateEntryState(ctx context.Context, entry domain.JournalEntry, expectedStatus domain.EntryStatus) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	currentStatus, err := lockEntryStatus(ctx, tx, entry.EntryID)
	if err != nil {
		return err
	}
	if currentStatus != expectedStatus {
		return fmt.Errorf("%w: entry %s is %s, expected %s",
			apperrors.ErrConflict, entry.EntryID, currentStatus, expectedStatus)
	}

	m := mapping.ToModelEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET status = $2, validation_status = $3, rejection_reason = $4,
		    posted_by = $5, posted_at = $6, validated_by = $7, validated_at = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery,
		m.EntryID,
		m.Status,
		m.ValidationStatus,
		m.RejectionReason,
		m.PostedBy,
		m.PostedAt,
		m.ValidatedBy,
		m.ValidatedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(500, "failed to update state of entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes the lines then the header in one transaction. The
// stored status is re-checked under the row lock; only a DRAFT entry may be
// deleted, anything else yields apperrors.ErrConflict.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	currentStatus, err := lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if currentStatus != domain.StatusDraft {
		return fmt.Errorf("%w: entry %s is %s, only DRAFT entries can be deleted",
			apperrors.ErrConflict, entryID, currentStatus)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entryID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}
