package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// ErrCategorizationCancelled is returned when the caller declines to assign
// types to new accounts referenced by an entry. The operation aborts with no
// side effects: nothing is created and nothing is posted.
var ErrCategorizationCancelled = errors.New("new account categorization cancelled")

// UnknownAccountsError reports line account names that are not in the
// registry and were not covered by the caller's categorization answer.
type UnknownAccountsError struct {
	Names []string
}

func (e *UnknownAccountsError) Error() string {
	return fmt.Sprintf("unknown accounts need a type: %s", strings.Join(e.Names, ", "))
}

// AccountTypeResolver is the new-account categorization callback. It is
// presented with the set of unknown account names and returns either a
// complete name-to-type mapping or an error (ErrCategorizationCancelled to
// abort, or an UnknownAccountsError naming the uncovered accounts).
type AccountTypeResolver func(ctx context.Context, names []string) (map[string]domain.AccountType, error)

// JournalSvcFacade exposes the journal entry lifecycle. All mutations
// validate before touching the ledger; no entry is ever partially posted.
type JournalSvcFacade interface {
	// CreateEntry validates, resolves new accounts via the resolver,
	// persists and posts a new entry.
	CreateEntry(ctx context.Context, userID string, req dto.CreateJournalEntryRequest, resolver AccountTypeResolver) (*domain.JournalEntry, error)

	// UpdateEntry replaces an existing entry: the new version is validated
	// first, then the old one is reversed out of the ledger and the new one
	// posted. On validation failure the old state is untouched.
	UpdateEntry(ctx context.Context, userID string, entryID string, req dto.UpdateJournalEntryRequest, resolver AccountTypeResolver) (*domain.JournalEntry, error)

	// DeleteEntry reverses an entry out of the ledger and removes it from
	// the store, cascading its lines.
	DeleteEntry(ctx context.Context, userID string, entryID string) error

	// GetEntryByID retrieves one entry with its lines.
	GetEntryByID(ctx context.Context, userID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries returns every entry for the user, sorted ascending by date.
	ListEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error)
}
