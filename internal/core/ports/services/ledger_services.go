package services

import (
	"context"
	"time"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	"github.com/finbooks/ledger_engine/internal/dto"
)

// LedgerService is the read-only query and aggregation engine over posted
// journal entries.
type LedgerService interface {
	// GetAccountBalance sums posted activity for the account up to asOf
	// (inclusive) when given, applying the nature sign convention.
	GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error)

	// GetAccountMovements returns one page of the account's ledger lines with
	// their entry headers.
	GetAccountMovements(ctx context.Context, accountID string, filter domain.MovementFilter, page, pageSize int) ([]domain.Movement, dto.PageInfo, error)

	// GetTrialBalance computes per-account balances over the filter period,
	// suppressing zero balances unless requested, sorted by code ascending.
	GetTrialBalance(ctx context.Context, filter domain.TrialBalanceFilter) (*domain.TrialBalance, error)

	// GetGeneralLedger expands each trial balance row into its chronological
	// movement detail.
	GetGeneralLedger(ctx context.Context, filter domain.TrialBalanceFilter) (*domain.GeneralLedger, error)

	// SearchLedger free-text matches entry description, reference or account
	// name. An empty query returns an empty page.
	SearchLedger(ctx context.Context, query string, filter domain.SearchFilter, page, pageSize int) ([]domain.SearchMatch, dto.PageInfo, error)
}
