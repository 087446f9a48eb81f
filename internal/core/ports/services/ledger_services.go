package services

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade owns the in-memory general ledger projection for each user
// session: one LedgerAccount per registered account, populated by replaying
// the user's journal entries. Mutations are serialized per session;
// snapshots see either the pre- or post-mutation state, never a partial one.
type LedgerSvcFacade interface {
	// AccountLedger returns a copy of one account's ledger together with the
	// running balance after each transaction.
	AccountLedger(ctx context.Context, userID string, accountName string) (*domain.LedgerAccount, []decimal.Decimal, error)

	// Snapshot returns copies of every ledger account in registry insertion
	// order. Report generation reads exclusively from this projection.
	Snapshot(ctx context.Context, userID string) ([]domain.LedgerAccount, error)

	// PostEntry appends one ledger transaction per line to the referenced
	// accounts. Lines naming unregistered accounts are dropped silently.
	PostEntry(ctx context.Context, userID string, entry domain.JournalEntry) error

	// ReverseEntry removes every transaction tagged with the entry ID from
	// all accounts. Unknown IDs are a no-op.
	ReverseEntry(ctx context.Context, userID string, entryID string) error

	// ApplyEdit atomically reverses the old entry, posts the new one and
	// restores ascending date order on the touched accounts.
	ApplyEdit(ctx context.Context, userID string, oldEntry, newEntry domain.JournalEntry) error

	// RegisterAccount adds an empty ledger account for a newly created
	// registry account.
	RegisterAccount(ctx context.Context, userID string, account domain.Account) error

	// UnregisterAccount drops an account's ledger projection.
	UnregisterAccount(ctx context.Context, userID string, name string) error
}
