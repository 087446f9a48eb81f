package services_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// memAccountRepo is an in-memory AccountRepository preserving creation order.
type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[string][]domain.Account
}

var _ portsrepo.AccountRepository = (*memAccountRepo)(nil)

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[string][]domain.Account)}
}

func (r *memAccountRepo) SaveAccount(_ context.Context, userID string, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts[userID] {
		if existing.Name == account.Name {
			return nil
		}
	}
	r.accounts[userID] = append(r.accounts[userID], account)
	return nil
}

func (r *memAccountRepo) FindAccountByName(_ context.Context, userID string, name string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts[userID] {
		if account.Name == name {
			copied := account
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("account %q: %w", name, apperrors.ErrNotFound)
}

func (r *memAccountRepo) ListAccounts(_ context.Context, userID string) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Account, len(r.accounts[userID]))
	copy(out, r.accounts[userID])
	return out, nil
}

func (r *memAccountRepo) DeleteAccount(_ context.Context, userID string, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.accounts[userID]
	for i, account := range list {
		if account.Name == name {
			r.accounts[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("account %q: %w", name, apperrors.ErrNotFound)
}

// memJournalRepo is an in-memory JournalRepository.
type memJournalRepo struct {
	mu      sync.Mutex
	entries map[string][]domain.JournalEntry
}

var _ portsrepo.JournalRepository = (*memJournalRepo)(nil)

func newMemJournalRepo() *memJournalRepo {
	return &memJournalRepo{entries: make(map[string][]domain.JournalEntry)}
}

func (r *memJournalRepo) SaveEntry(_ context.Context, userID string, entry domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.entries[userID] {
		if existing.ID == entry.ID {
			return fmt.Errorf("entry %q: %w", entry.ID, apperrors.ErrDuplicate)
		}
	}
	r.entries[userID] = append(r.entries[userID], entry)
	return nil
}

func (r *memJournalRepo) UpdateEntry(_ context.Context, userID string, entry domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.entries[userID] {
		if existing.ID == entry.ID {
			r.entries[userID][i] = entry
			return nil
		}
	}
	return fmt.Errorf("entry %q: %w", entry.ID, apperrors.ErrNotFound)
}

func (r *memJournalRepo) DeleteEntry(_ context.Context, userID string, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.entries[userID]
	for i, existing := range list {
		if existing.ID == entryID {
			r.entries[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("entry %q: %w", entryID, apperrors.ErrNotFound)
}

func (r *memJournalRepo) FindEntryByID(_ context.Context, userID string, entryID string) (*domain.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.entries[userID] {
		if existing.ID == entryID {
			copied := existing
			copied.Lines = append([]domain.JournalLine(nil), existing.Lines...)
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("entry %q: %w", entryID, apperrors.ErrNotFound)
}

func (r *memJournalRepo) ListEntries(_ context.Context, userID string) ([]domain.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.JournalEntry, len(r.entries[userID]))
	copy(out, r.entries[userID])
	return out, nil
}

func (r *memJournalRepo) CountEntries(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries[userID]), nil
}

// resolverFromMap builds a categorization callback answering from a fixed
// name-to-type map, mirroring how the HTTP layer answers from the request.
func resolverFromMap(types map[string]domain.AccountType) func(context.Context, []string) (map[string]domain.AccountType, error) {
	return func(_ context.Context, names []string) (map[string]domain.AccountType, error) {
		return types, nil
	}
}
