package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
)

type journalRepository struct {
	db *sql.DB
}

// NewJournalRepository creates a SQLite-backed repository for journal entry
// data. Amounts are stored as exact decimal strings.
func NewJournalRepository(db *sql.DB) portsrepo.JournalRepository {
	return &journalRepository{db: db}
}

var _ portsrepo.JournalRepository = (*journalRepository)(nil)

// SaveEntry saves an entry and its lines within a DB transaction.
func (r *journalRepository) SaveEntry(ctx context.Context, userID string, entry domain.JournalEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	entryQuery := `
		INSERT INTO journal_entries (user_id, entry_id, entry_date, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, entryQuery,
		userID,
		entry.ID,
		entry.Date,
		entry.Description,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.ID, err)
	}

	if err := insertLines(ctx, tx, userID, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for entry %s: %w", entry.ID, err)
	}
	return nil
}

// UpdateEntry replaces an entry's row and rewrites its lines within a DB
// transaction.
func (r *journalRepository) UpdateEntry(ctx context.Context, userID string, entry domain.JournalEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateQuery := `
		UPDATE journal_entries
		SET entry_date = ?, description = ?, last_updated_at = ?, last_updated_by = ?
		WHERE user_id = ? AND entry_id = ?;
	`
	result, err := tx.ExecContext(ctx, updateQuery,
		entry.Date,
		entry.Description,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
		userID,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", entry.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result for entry %s: %w", entry.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("entry %q: %w", entry.ID, apperrors.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM journal_lines WHERE user_id = ? AND entry_id = ?;`, userID, entry.ID); err != nil {
		return fmt.Errorf("failed to clear lines for entry %s: %w", entry.ID, err)
	}
	if err := insertLines(ctx, tx, userID, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for entry %s: %w", entry.ID, err)
	}
	return nil
}

func insertLines(ctx context.Context, tx *sql.Tx, userID string, entry domain.JournalEntry) error {
	lineQuery := `
		INSERT INTO journal_lines (user_id, entry_id, line_no, account_name, debit, credit)
		VALUES (?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.PrepareContext(ctx, lineQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare line insert for entry %s: %w", entry.ID, err)
	}
	defer stmt.Close()

	for i, line := range entry.Lines {
		if _, err := stmt.ExecContext(ctx, userID, entry.ID, i, line.AccountName, line.Debit.String(), line.Credit.String()); err != nil {
			return fmt.Errorf("failed to insert line %d for entry %s: %w", i, entry.ID, err)
		}
	}
	return nil
}

// DeleteEntry removes an entry; its lines cascade.
func (r *journalRepository) DeleteEntry(ctx context.Context, userID string, entryID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE user_id = ? AND entry_id = ?;`, userID, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result for entry %s: %w", entryID, err)
	}
	if affected == 0 {
		return fmt.Errorf("entry %q: %w", entryID, apperrors.ErrNotFound)
	}
	return nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *journalRepository) FindEntryByID(ctx context.Context, userID string, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, entry_date, description, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE user_id = ? AND entry_id = ?;
	`
	var entry domain.JournalEntry
	err := r.db.QueryRowContext(ctx, query, userID, entryID).Scan(
		&entry.ID,
		&entry.Date,
		&entry.Description,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("entry %q: %w", entryID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	entry.Lines, err = r.findLines(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *journalRepository) findLines(ctx context.Context, userID string, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT account_name, debit, credit
		FROM journal_lines
		WHERE user_id = ? AND entry_id = ?
		ORDER BY line_no;
	`
	rows, err := r.db.QueryContext(ctx, query, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var (
			line   domain.JournalLine
			debit  string
			credit string
		)
		if err := rows.Scan(&line.AccountName, &debit, &credit); err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		line.Debit, err = decimal.NewFromString(debit)
		if err != nil {
			return nil, fmt.Errorf("invalid debit amount %q for entry %s: %w", debit, entryID, err)
		}
		line.Credit, err = decimal.NewFromString(credit)
		if err != nil {
			return nil, fmt.Errorf("invalid credit amount %q for entry %s: %w", credit, entryID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}
	return lines, nil
}

// ListEntries returns every entry for the user with lines attached, ordered
// by entry date.
func (r *journalRepository) ListEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT entry_id, entry_date, description, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE user_id = ?
		ORDER BY entry_date, entry_id;
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Date,
			&entry.Description,
			&entry.CreatedAt,
			&entry.CreatedBy,
			&entry.LastUpdatedAt,
			&entry.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	for i := range entries {
		entries[i].Lines, err = r.findLines(ctx, userID, entries[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// CountEntries returns the number of entries the user has recorded.
func (r *journalRepository) CountEntries(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries WHERE user_id = ?;`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	return count, nil
}
