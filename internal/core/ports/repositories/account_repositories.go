package repositories

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
)

// AccountRepository persists the chart of accounts, keyed by user.
type AccountRepository interface {
	// SaveAccount inserts an account. Inserting a name that already exists
	// for the user is a no-op, not an error.
	SaveAccount(ctx context.Context, userID string, account domain.Account) error

	// FindAccountByName retrieves an account by its name.
	// Returns apperrors.ErrNotFound if absent.
	FindAccountByName(ctx context.Context, userID string, name string) (*domain.Account, error)

	// ListAccounts returns every account for the user in creation order.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// DeleteAccount removes an account by name.
	DeleteAccount(ctx context.Context, userID string, name string) error
}
