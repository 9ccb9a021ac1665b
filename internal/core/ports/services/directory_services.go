package services

import (
	"context"

	"github.com/finbooks/ledger_engine/internal/core/domain"
)

// AccountDirectory supplies account identity, code and nature. It is the only
// external collaborator the core blocks on; implementations bound the lookup
// with a timeout and surface apperrors.ErrDirectoryUnavailable on failure
// instead of hanging.
type AccountDirectory interface {
	ResolveByID(ctx context.Context, accountID string) (*domain.Account, error)
	ResolveByCode(ctx context.Context, companyID, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, companyID string, nature *domain.AccountNature) ([]domain.Account, error)
}
