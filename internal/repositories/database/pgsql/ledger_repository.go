package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/finbooks/ledger_engine/internal/apperrors"
	"github.com/finbooks/ledger_engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const movementColumns = `e.entry_id, e.entry_date, e.journal_type, e.reference, e.description, e.status,
	l.line_id, l.account_id, l.debit, l.credit, l.description`

// movementSortColumns whitelists ORDER BY targets so sort input can never
// reach the SQL text directly.
var movementSortColumns = map[domain.MovementSortField]string{
	domain.SortByDate:      "e.entry_date",
	domain.SortByReference: "e.reference",
	domain.SortByAmount:    "(l.debit + l.credit)",
}

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the read-only repository behind the ledger
// query engine.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// AccountBalanceSums totals the posted debits and credits of one account.
func (r *PgxLedgerRepository) AccountBalanceSums(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1 AND e.status = $2
	`
	args := []interface{}{accountID, string(domain.StatusPosted)}
	if asOf != nil {
		args = append(args, *asOf)
		query += ` AND e.entry_date <= $3`
	}
	query += `;`

	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum balance for account "+accountID, err)
	}
	return debit, credit, nil
}

// movementFilterClauses builds the WHERE fragment and args shared by the
// movement list and count queries. Status defaults to POSTED when the filter
// leaves it nil.
func movementFilterClauses(accountID string, filter domain.MovementFilter) (string, []interface{}) {
	args := []interface{}{accountID}
	where := ` WHERE l.account_id = $1`

	addClause := func(clause string, value interface{}) {
		args = append(args, value)
		where += clause + "$" + strconv.Itoa(len(args))
	}

	status := domain.StatusPosted
	if filter.Status != nil {
		status = *filter.Status
	}
	addClause(` AND e.status = `, string(status))

	if filter.DateFrom != nil {
		addClause(` AND e.entry_date >= `, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addClause(` AND e.entry_date <= `, *filter.DateTo)
	}
	if filter.JournalType != nil {
		addClause(` AND e.journal_type = `, string(*filter.JournalType))
	}
	if filter.MinAmount != nil {
		addClause(` AND (l.debit + l.credit) >= `, *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		addClause(` AND (l.debit + l.credit) <= `, *filter.MaxAmount)
	}
	return where, args
}

// ListMovements returns one page of an account's ledger lines joined with
// their entry headers plus the total match count.
func (r *PgxLedgerRepository) ListMovements(ctx context.Context, accountID string, filter domain.MovementFilter, limit, offset int) ([]domain.Movement, int64, error) {
	where, args := movementFilterClauses(accountID, filter)
	from := ` FROM journal_lines l JOIN journal_entries e ON e.entry_id = l.entry_id`

	var total int64
	countQuery := `SELECT COUNT(*)` + from + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count movements for account "+accountID, err)
	}

	sortColumn, ok := movementSortColumns[filter.SortBy]
	if !ok {
		sortColumn = movementSortColumns[domain.SortByDate]
	}
	direction := "DESC"
	if filter.SortAsc {
		direction = "ASC"
	}

	args = append(args, limit, offset)
	listQuery := `SELECT ` + movementColumns + from + where +
		` ORDER BY ` + sortColumn + ` ` + direction + `, l.line_id ASC` +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list movements for account "+accountID, err)
	}
	defer rows.Close()

	movements := make([]domain.Movement, 0, limit)
	for rows.Next() {
		var m domain.Movement
		if err := rows.Scan(
			&m.EntryID,
			&m.EntryDate,
			&m.JournalType,
			&m.Reference,
			&m.Description,
			&m.Status,
			&m.LineID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.LineDescription,
		); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan movement row", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating movement rows", err)
	}
	return movements, total, nil
}

// AccountActivity aggregates posted debit/credit per account within the
// trial balance scope.
func (r *PgxLedgerRepository) AccountActivity(ctx context.Context, filter domain.TrialBalanceFilter) ([]domain.AccountActivity, error) {
	args := []interface{}{filter.CompanyID, string(domain.StatusPosted)}
	where := ` WHERE e.company_id = $1 AND e.status = $2`

	addClause := func(clause string, value interface{}) {
		args = append(args, value)
		where += clause + "$" + strconv.Itoa(len(args))
	}

	if filter.FiscalYearID != "" {
		addClause(` AND e.fiscal_year_id = `, filter.FiscalYearID)
	}
	if filter.StartDate != nil {
		addClause(` AND e.entry_date >= `, *filter.StartDate)
	}
	if filter.EndDate != nil {
		addClause(` AND e.entry_date <= `, *filter.EndDate)
	}
	if filter.AccountNature != nil {
		addClause(` AND a.nature = `, string(*filter.AccountNature))
	}

	query := `
		SELECT l.account_id, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id` + where + `
		GROUP BY l.account_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate account activity", err)
	}
	defer rows.Close()

	activity := make([]domain.AccountActivity, 0)
	for rows.Next() {
		var a domain.AccountActivity
		if err := rows.Scan(&a.AccountID, &a.Debit, &a.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan activity row", err)
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating activity rows", err)
	}
	return activity, nil
}

// SearchLines matches entry description, reference or account name against
// the query and returns one page of matches plus the total count.
func (r *PgxLedgerRepository) SearchLines(ctx context.Context, query string, filter domain.SearchFilter, limit, offset int) ([]domain.SearchMatch, int64, error) {
	args := []interface{}{"%" + query + "%"}
	where := ` WHERE (e.description ILIKE $1 OR e.reference ILIKE $1 OR a.name ILIKE $1)`

	addClause := func(clause string, value interface{}) {
		args = append(args, value)
		where += clause + "$" + strconv.Itoa(len(args))
	}

	status := domain.StatusPosted
	if filter.Status != nil {
		status = *filter.Status
	}
	addClause(` AND e.status = `, string(status))

	if filter.CompanyID != "" {
		addClause(` AND e.company_id = `, filter.CompanyID)
	}
	if filter.DateFrom != nil {
		addClause(` AND e.entry_date >= `, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addClause(` AND e.entry_date <= `, *filter.DateTo)
	}
	if filter.AccountNature != nil {
		addClause(` AND a.nature = `, string(*filter.AccountNature))
	}
	if filter.JournalType != nil {
		addClause(` AND e.journal_type = `, string(*filter.JournalType))
	}

	from := `
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id`

	var total int64
	countQuery := `SELECT COUNT(*)` + from + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count search matches", err)
	}

	args = append(args, limit, offset)
	listQuery := `SELECT ` + movementColumns + `, a.code, a.name` + from + where +
		` ORDER BY e.entry_date DESC, l.line_id ASC` +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to search ledger lines", err)
	}
	defer rows.Close()

	matches := make([]domain.SearchMatch, 0, limit)
	for rows.Next() {
		var m domain.SearchMatch
		if err := rows.Scan(
			&m.EntryID,
			&m.EntryDate,
			&m.JournalType,
			&m.Reference,
			&m.Description,
			&m.Status,
			&m.LineID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.LineDescription,
			&m.AccountCode,
			&m.AccountName,
		); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan search row", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating search rows", err)
	}
	return matches, total, nil
}
