package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
)

var (
	// ErrEntryUnbalanced is returned when total debits and credits differ by
	// 0.01 or more. The entry is rejected before any mutation.
	ErrEntryUnbalanced = errors.New("journal entry debits and credits do not balance")

	// ErrEntryMinLines is returned for entries with fewer than two lines.
	ErrEntryMinLines = errors.New("journal entry must have at least two lines")

	// ErrNegativeAmount is returned when a line carries a negative debit or
	// credit amount.
	ErrNegativeAmount = errors.New("journal line amounts must be non-negative")
)

// EntryValidator enforces the double-entry invariant and resolves references
// to accounts not yet in the registry. Validation is strictly free of side
// effects; only a successful categorization registers new accounts.
type EntryValidator struct {
	accountSvc portssvc.AccountSvcFacade
}

// NewEntryValidator creates a validator backed by the account registry.
func NewEntryValidator(accountSvc portssvc.AccountSvcFacade) *EntryValidator {
	return &EntryValidator{accountSvc: accountSvc}
}

// ValidateEntry performs the structural checks on a candidate entry: at
// least two lines, non-negative amounts, and debits equal to credits within
// tolerance. It touches no state.
func (v *EntryValidator) ValidateEntry(entry *domain.JournalEntry) error {
	if len(entry.Lines) < 2 {
		return ErrEntryMinLines
	}
	for _, line := range entry.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: account %s", ErrNegativeAmount, line.AccountName)
		}
	}
	if !entry.IsBalanced() {
		return fmt.Errorf("%w: debits %s, credits %s",
			ErrEntryUnbalanced, entry.TotalDebit().String(), entry.TotalCredit().String())
	}
	return nil
}

// FindNewAccounts returns the distinct line account names missing from the
// registry, in first-appearance order.
func (v *EntryValidator) FindNewAccounts(ctx context.Context, userID string, entry *domain.JournalEntry) ([]string, error) {
	registered, err := v.accountSvc.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for new-account detection: %w", err)
	}
	known := make(map[string]struct{}, len(registered))
	for _, account := range registered {
		known[account.Name] = struct{}{}
	}

	var missing []string
	for _, name := range entry.AccountNames() {
		if _, ok := known[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// ResolveNewAccounts detects unregistered account references and asks the
// categorization callback for their types. On a complete answer every new
// account is registered before returning; on cancellation nothing is
// created and the caller must abort posting.
func (v *EntryValidator) ResolveNewAccounts(ctx context.Context, userID string, entry *domain.JournalEntry, resolver portssvc.AccountTypeResolver) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	missing, err := v.FindNewAccounts(ctx, userID, entry)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	if resolver == nil {
		logger.Info("New account categorization cancelled: no resolver supplied")
		return portssvc.ErrCategorizationCancelled
	}

	types, err := resolver(ctx, missing)
	if err != nil {
		return err
	}

	// The answer must cover every unknown name with a valid type before any
	// account is created.
	var uncovered []string
	for _, name := range missing {
		accountType, ok := types[name]
		if !ok {
			uncovered = append(uncovered, name)
			continue
		}
		if !accountType.IsValid() {
			return fmt.Errorf("%w: invalid account type %q for account %s", apperrors.ErrValidation, accountType, name)
		}
	}
	if len(uncovered) > 0 {
		return &portssvc.UnknownAccountsError{Names: uncovered}
	}

	for _, name := range missing {
		if _, err := v.accountSvc.CreateAccount(ctx, userID, dto.CreateAccountRequest{
			Name:        name,
			AccountType: types[name],
		}); err != nil {
			return fmt.Errorf("failed to register new account %s: %w", name, err)
		}
		logger.Info("Registered new account during posting", "account", name, "type", types[name])
	}
	return nil
}
