package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	portssvc "github.com/finbooks/ledger_engine/internal/core/ports/services"
	"github.com/finbooks/ledger_engine/internal/dto"
)

// CachingLedgerService decorates a LedgerService with TTL caching of the two
// expensive reports, trial balance and general ledger. Point queries stay
// uncached so balances are always read-your-writes fresh.
type CachingLedgerService struct {
	inner portssvc.LedgerService
	cache *ReportCache
}

// NewCachingLedgerService wraps inner with the given report cache.
func NewCachingLedgerService(inner portssvc.LedgerService, cache *ReportCache) *CachingLedgerService {
	return &CachingLedgerService{inner: inner, cache: cache}
}

var _ portssvc.LedgerService = (*CachingLedgerService)(nil)

func trialBalanceKey(prefix string, f domain.TrialBalanceFilter) string {
	nature := ""
	if f.AccountNature != nil {
		nature = string(*f.AccountNature)
	}
	start, end := "", ""
	if f.StartDate != nil {
		start = f.StartDate.Format(time.RFC3339)
	}
	if f.EndDate != nil {
		end = f.EndDate.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%t", prefix, f.CompanyID, f.FiscalYearID, nature, start, end, f.IncludeZeroBalance)
}

func (s *CachingLedgerService) GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error) {
	return s.inner.GetAccountBalance(ctx, accountID, asOf)
}

func (s *CachingLedgerService) GetAccountMovements(ctx context.Context, accountID string, filter domain.MovementFilter, page, pageSize int) ([]domain.Movement, dto.PageInfo, error) {
	return s.inner.GetAccountMovements(ctx, accountID, filter, page, pageSize)
}

func (s *CachingLedgerService) GetTrialBalance(ctx context.Context, filter domain.TrialBalanceFilter) (*domain.TrialBalance, error) {
	key := trialBalanceKey("tb", filter)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*domain.TrialBalance), nil
	}

	tb, err := s.inner.GetTrialBalance(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, tb)
	return tb, nil
}

func (s *CachingLedgerService) GetGeneralLedger(ctx context.Context, filter domain.TrialBalanceFilter) (*domain.GeneralLedger, error) {
	key := trialBalanceKey("gl", filter)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*domain.GeneralLedger), nil
	}

	gl, err := s.inner.GetGeneralLedger(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, gl)
	return gl, nil
}

func (s *CachingLedgerService) SearchLedger(ctx context.Context, query string, filter domain.SearchFilter, page, pageSize int) ([]domain.SearchMatch, dto.PageInfo, error) {
	return s.inner.SearchLedger(ctx, query, filter, page, pageSize)
}
