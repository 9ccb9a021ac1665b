package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/ledger_engine/internal/apperrors"
	"github.com/finbooks/ledger_engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_engine/internal/core/ports/services"
	"github.com/finbooks/ledger_engine/internal/middleware"
)

const (
	defaultDirectoryTimeout = 2 * time.Second
	defaultDirectoryRetries = 3
	directoryRetryBackoff   = 100 * time.Millisecond
)

// directoryService adapts the account store into the AccountDirectory port.
// Every lookup is bounded by a timeout and retried a fixed number of times
// with linear backoff; a lookup that still fails surfaces
// apperrors.ErrDirectoryUnavailable so callers never hang on the directory.
type directoryService struct {
	accountRepo portsrepo.AccountRepository
	timeout     time.Duration
	retries     int
}

// NewDirectoryService creates the account directory adapter. Non-positive
// timeout or retries fall back to the defaults.
func NewDirectoryService(accountRepo portsrepo.AccountRepository, timeout time.Duration, retries int) portssvc.AccountDirectory {
	if timeout <= 0 {
		timeout = defaultDirectoryTimeout
	}
	if retries <= 0 {
		retries = defaultDirectoryRetries
	}
	return &directoryService{
		accountRepo: accountRepo,
		timeout:     timeout,
		retries:     retries,
	}
}

var _ portssvc.AccountDirectory = (*directoryService)(nil)

// withRetry runs one lookup attempt per retry budget, each under its own
// timeout. Not-found is a definitive answer and is never retried.
func (s *directoryService) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := fn(attemptCtx)
		cancel()

		if err == nil || errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		lastErr = err

		logger.Warn("Account directory lookup failed",
			slog.String("operation", op),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)

		if attempt < s.retries {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %s", apperrors.ErrDirectoryUnavailable, ctx.Err().Error())
			case <-time.After(time.Duration(attempt) * directoryRetryBackoff):
			}
		}
	}
	return fmt.Errorf("%w: %s: %s", apperrors.ErrDirectoryUnavailable, op, lastErr.Error())
}

func (s *directoryService) ResolveByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var account *domain.Account
	err := s.withRetry(ctx, "resolve_by_id", func(ctx context.Context) error {
		var err error
		account, err = s.accountRepo.FindAccountByID(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *directoryService) ResolveByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	var account *domain.Account
	err := s.withRetry(ctx, "resolve_by_code", func(ctx context.Context) error {
		var err error
		account, err = s.accountRepo.FindAccountByCode(ctx, companyID, code)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *directoryService) ListAccounts(ctx context.Context, companyID string, nature *domain.AccountNature) ([]domain.Account, error) {
	var accounts []domain.Account
	err := s.withRetry(ctx, "list_accounts", func(ctx context.Context) error {
		var err error
		accounts, err = s.accountRepo.ListAccounts(ctx, companyID, nature)
		return err
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
