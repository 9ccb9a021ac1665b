package repositories

import (
	"context"
	"time"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository serves the read-only aggregation queries. All methods
// consider POSTED entries only unless the filter says otherwise. None of them
// fail on "no matching rows"; they return empty results.
type LedgerRepository interface {
	// AccountBalanceSums returns the total debit and credit booked against an
	// account across posted entries up to asOf (inclusive) when given.
	AccountBalanceSums(ctx context.Context, accountID string, asOf *time.Time) (debit, credit decimal.Decimal, err error)

	// ListMovements returns one page of an account's ledger lines joined with
	// their entry headers, plus the total match count.
	ListMovements(ctx context.Context, accountID string, filter domain.MovementFilter, limit, offset int) ([]domain.Movement, int64, error)

	// AccountActivity aggregates debit/credit per account over posted entries
	// within the trial balance scope. Accounts without activity are absent
	// from the result.
	AccountActivity(ctx context.Context, filter domain.TrialBalanceFilter) ([]domain.AccountActivity, error)

	// SearchLines matches entry description, reference or account name
	// against the query and returns one page of matches plus the total count.
	SearchLines(ctx context.Context, query string, filter domain.SearchFilter, limit, offset int) ([]domain.SearchMatch, int64, error)
}
