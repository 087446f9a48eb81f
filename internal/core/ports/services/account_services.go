package services

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts operations.
type AccountSvcFacade interface {
	// CreateAccount registers an account. Registering an existing name with
	// the same type is a no-op; with a different type it is a conflict
	// (types are immutable).
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByName retrieves one account.
	GetAccountByName(ctx context.Context, userID string, name string) (*domain.Account, error)

	// ListAccounts returns the chart of accounts in creation order.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// DeleteAccount removes an account by name.
	DeleteAccount(ctx context.Context, userID string, name string) error
}
