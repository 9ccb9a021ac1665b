package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_engine/internal/core/ports/services"
	"github.com/finbooks/ledger_engine/internal/dto"
	"github.com/finbooks/ledger_engine/internal/middleware"
	"github.com/finbooks/ledger_engine/internal/utils/accounting"
	"github.com/finbooks/ledger_engine/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// generalLedgerLineLimit caps the per-account detail of a general ledger
// report. It is a safety stop, not a page size.
const generalLedgerLineLimit = 100000

// ledgerService answers the read-only aggregation queries over posted
// entries. It never mutates anything.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepository
	directory  portssvc.AccountDirectory
}

// NewLedgerService creates the ledger query service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, directory portssvc.AccountDirectory) portssvc.LedgerService {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		directory:  directory,
	}
}

var _ portssvc.LedgerService = (*ledgerService)(nil)

// GetAccountBalance sums posted activity for the account and applies the
// sign convention for its nature.
func (s *ledgerService) GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error) {
	account, err := s.directory.ResolveByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	debit, credit, err := s.ledgerRepo.AccountBalanceSums(ctx, accountID, asOf)
	if err != nil {
		return nil, err
	}

	return &domain.AccountBalance{
		AccountID: account.AccountID,
		Code:      account.Code,
		Name:      account.Name,
		Nature:    account.Nature,
		Debit:     debit,
		Credit:    credit,
		Balance:   accounting.NatureBalance(account.Nature, debit, credit),
	}, nil
}

// GetAccountMovements returns one page of the account's ledger lines.
func (s *ledgerService) GetAccountMovements(ctx context.Context, accountID string, filter domain.MovementFilter, page, pageSize int) ([]domain.Movement, dto.PageInfo, error) {
	if _, err := s.directory.ResolveByID(ctx, accountID); err != nil {
		return nil, dto.PageInfo{}, err
	}

	params := pagination.Normalize(page, pageSize)
	movements, total, err := s.ledgerRepo.ListMovements(ctx, accountID, filter, params.PageSize, params.Offset())
	if err != nil {
		return nil, dto.PageInfo{}, err
	}

	pageInfo := dto.PageInfo{
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: total,
		TotalPages: params.TotalPages(total),
	}
	return movements, pageInfo, nil
}

// GetTrialBalance merges the company's chart of accounts with the aggregated
// posted activity of the period. Accounts whose debit, credit and balance are
// all zero are suppressed unless the filter asks for them. Rows come back
// sorted by account code ascending.
func (s *ledgerService) GetTrialBalance(ctx context.Context, filter domain.TrialBalanceFilter) (*domain.TrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.directory.ListAccounts(ctx, filter.CompanyID, filter.AccountNature)
	if err != nil {
		return nil, err
	}

	activity, err := s.ledgerRepo.AccountActivity(ctx, filter)
	if err != nil {
		return nil, err
	}
	activityByAccount := make(map[string]domain.AccountActivity, len(activity))
	for _, a := range activity {
		activityByAccount[a.AccountID] = a
	}

	tb := &domain.TrialBalance{
		Entries: make([]domain.TrialBalanceEntry, 0, len(accounts)),
		Totals: domain.TrialBalanceTotals{
			Debit:   decimal.Zero,
			Credit:  decimal.Zero,
			Balance: decimal.Zero,
		},
	}

	addRow := func(account domain.Account, act domain.AccountActivity) {
		debit, credit := act.Debit, act.Credit
		balance := accounting.NatureBalance(account.Nature, debit, credit)

		if !filter.IncludeZeroBalance && debit.IsZero() && credit.IsZero() && balance.IsZero() {
			return
		}

		tb.Entries = append(tb.Entries, domain.TrialBalanceEntry{
			AccountID: account.AccountID,
			Code:      account.Code,
			Name:      account.Name,
			Nature:    account.Nature,
			Debit:     debit,
			Credit:    credit,
			Balance:   balance,
		})
		tb.Totals.Debit = tb.Totals.Debit.Add(debit)
		tb.Totals.Credit = tb.Totals.Credit.Add(credit)
		tb.Totals.Balance = tb.Totals.Balance.Add(balance.Abs())
	}

	for _, account := range accounts {
		addRow(account, activityByAccount[account.AccountID])
		delete(activityByAccount, account.AccountID)
	}

	// Posted activity must be reported even when its account is absent from
	// the directory listing, or the debits==credits cross-check breaks.
	for accountID, act := range activityByAccount {
		account, err := s.directory.ResolveByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		addRow(*account, act)
	}

	sort.Slice(tb.Entries, func(i, j int) bool {
		return tb.Entries[i].Code < tb.Entries[j].Code
	})

	if !tb.Totals.Debit.Equal(tb.Totals.Credit) {
		logger.Warn("Trial balance debits and credits differ",
			slog.String("company_id", filter.CompanyID),
			slog.String("total_debit", tb.Totals.Debit.String()),
			slog.String("total_credit", tb.Totals.Credit.String()),
		)
	}

	return tb, nil
}

// GetGeneralLedger expands each trial balance row into its chronological
// movement detail over the same period.
func (s *ledgerService) GetGeneralLedger(ctx context.Context, filter domain.TrialBalanceFilter) (*domain.GeneralLedger, error) {
	tb, err := s.GetTrialBalance(ctx, filter)
	if err != nil {
		return nil, err
	}

	movementFilter := domain.MovementFilter{
		DateFrom: filter.StartDate,
		DateTo:   filter.EndDate,
		SortBy:   domain.SortByDate,
		SortAsc:  true,
	}

	gl := &domain.GeneralLedger{
		Accounts: make([]domain.GeneralLedgerAccount, len(tb.Entries)),
		Totals:   tb.Totals,
	}
	for i, row := range tb.Entries {
		movements, _, err := s.ledgerRepo.ListMovements(ctx, row.AccountID, movementFilter, generalLedgerLineLimit, 0)
		if err != nil {
			return nil, err
		}
		gl.Accounts[i] = domain.GeneralLedgerAccount{
			TrialBalanceEntry: row,
			Movements:         movements,
		}
	}
	return gl, nil
}

// SearchLedger free-text matches entry description, reference or account
// name. A blank query returns an empty page rather than the whole ledger.
func (s *ledgerService) SearchLedger(ctx context.Context, query string, filter domain.SearchFilter, page, pageSize int) ([]domain.SearchMatch, dto.PageInfo, error) {
	params := pagination.Normalize(page, pageSize)

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchMatch{}, dto.PageInfo{
			Page:     params.Page,
			PageSize: params.PageSize,
		}, nil
	}

	matches, total, err := s.ledgerRepo.SearchLines(ctx, query, filter, params.PageSize, params.Offset())
	if err != nil {
		return nil, dto.PageInfo{}, err
	}

	pageInfo := dto.PageInfo{
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: total,
		TotalPages: params.TotalPages(total),
	}
	return matches, pageInfo, nil
}
