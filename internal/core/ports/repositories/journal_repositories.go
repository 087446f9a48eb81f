package repositories

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
)

// JournalRepository persists journal entries and their lines, keyed by user.
type JournalRepository interface {
	// SaveEntry stores a new entry with all of its lines atomically.
	SaveEntry(ctx context.Context, userID string, entry domain.JournalEntry) error

	// UpdateEntry replaces the stored entry (and its lines) with the same ID.
	UpdateEntry(ctx context.Context, userID string, entry domain.JournalEntry) error

	// DeleteEntry removes the entry and cascades removal of its lines.
	// Returns apperrors.ErrNotFound if no such entry exists.
	DeleteEntry(ctx context.Context, userID string, entryID string) error

	// FindEntryByID retrieves one entry with its lines.
	// Returns apperrors.ErrNotFound if absent.
	FindEntryByID(ctx context.Context, userID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries returns all entries for the user. Order is unspecified;
	// the ledger re-sorts during replay.
	ListEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error)

	// CountEntries returns the number of stored entries, used to derive
	// sequential placeholder descriptions.
	CountEntries(ctx context.Context, userID string) (int, error)
}
