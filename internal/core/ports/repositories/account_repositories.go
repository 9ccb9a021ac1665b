package repositories

import (
	"context"

	"github.com/finbooks/ledger_engine/internal/core/domain"
)

// AccountRepository reads directory accounts. The ledger engine never writes
// through this port.
type AccountRepository interface {
	// FindAccountByID returns apperrors.ErrNotFound when absent.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode resolves an account by its classification code within
	// a company. Returns apperrors.ErrNotFound when absent.
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// ListAccounts returns all accounts of a company, deactivated ones
	// included, optionally restricted to one nature, ordered by code
	// ascending.
	ListAccounts(ctx context.Context, companyID string, nature *domain.AccountNature) ([]domain.Account, error)
}
