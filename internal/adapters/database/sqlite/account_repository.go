package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
)

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a SQLite-backed repository for
// chart-of-accounts data.
func NewAccountRepository(db *sql.DB) portsrepo.AccountRepository {
	return &accountRepository{db: db}
}

var _ portsrepo.AccountRepository = (*accountRepository)(nil)

// SaveAccount inserts an account. Re-inserting an existing name is a no-op.
func (r *accountRepository) SaveAccount(ctx context.Context, userID string, account domain.Account) error {
	query := `
		INSERT INTO accounts (user_id, name, account_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, name) DO NOTHING;
	`
	_, err := r.db.ExecContext(ctx, query,
		userID,
		account.Name,
		string(account.AccountType),
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", account.Name, err)
	}
	return nil
}

// FindAccountByName retrieves an account by its name.
func (r *accountRepository) FindAccountByName(ctx context.Context, userID string, name string) (*domain.Account, error) {
	query := `
		SELECT name, account_type, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE user_id = ? AND name = ?;
	`
	var account domain.Account
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(
		&account.Name,
		&account.AccountType,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %q: %w", name, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", name, err)
	}
	return &account, nil
}

// ListAccounts returns the chart of accounts in creation order.
func (r *accountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `
		SELECT name, account_type, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE user_id = ?
		ORDER BY created_at, name;
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.Name,
			&account.AccountType,
			&account.CreatedAt,
			&account.CreatedBy,
			&account.LastUpdatedAt,
			&account.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// DeleteAccount removes an account by name.
func (r *accountRepository) DeleteAccount(ctx context.Context, userID string, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE user_id = ? AND name = ?;`, userID, name)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result for account %s: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("account %q: %w", name, apperrors.ErrNotFound)
	}
	return nil
}
