package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
)

type journalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new repository for journal entry data.
func NewJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &journalRepository{pool: pool}
}

var _ portsrepo.JournalRepository = (*journalRepository)(nil)

// SaveEntry saves an entry and its lines within a DB transaction.
func (r *journalRepository) SaveEntry(ctx context.Context, userID string, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	entryQuery := `
		INSERT INTO journal_entries (user_id, entry_id, entry_date, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, entryQuery,
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

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for entry %s: %w", entry.ID, err)
	}
	return nil
}

// UpdateEntry replaces an entry's row and rewrites its lines within a DB
// transaction.
func (r *journalRepository) UpdateEntry(ctx context.Context, userID string, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	updateQuery := `
		UPDATE journal_entries
		SET entry_date = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE user_id = $1 AND entry_id = $2;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		userID,
		entry.ID,
		entry.Date,
		entry.Description,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", entry.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %q: %w", entry.ID, apperrors.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE user_id = $1 AND entry_id = $2;`, userID, entry.ID); err != nil {
		return fmt.Errorf("failed to clear lines for entry %s: %w", entry.ID, err)
	}
	if err := insertLines(ctx, tx, userID, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for entry %s: %w", entry.ID, err)
	}
	return nil
}

// insertLines batch-inserts an entry's lines on the given transaction.
func insertLines(ctx context.Context, tx pgx.Tx, userID string, entry domain.JournalEntry) error {
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (user_id, entry_id, line_no, account_name, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for i, line := range entry.Lines {
		batch.Queue(lineQuery, userID, entry.ID, i, line.AccountName, line.Debit, line.Credit)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line batch for entry %s: %w", entry.ID, err)
	}
	return nil
}

// DeleteEntry removes an entry; its lines cascade.
func (r *journalRepository) DeleteEntry(ctx context.Context, userID string, entryID string) error {
	query := `DELETE FROM journal_entries WHERE user_id = $1 AND entry_id = $2;`
	tag, err := r.pool.Exec(ctx, query, userID, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %q: %w", entryID, apperrors.ErrNotFound)
	}
	return nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *journalRepository) FindEntryByID(ctx context.Context, userID string, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, entry_date, description, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE user_id = $1 AND entry_id = $2;
	`
	var entry domain.JournalEntry
	err := r.pool.QueryRow(ctx, query, userID, entryID).Scan(
		&entry.ID,
		&entry.Date,
		&entry.Description,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
		WHERE user_id = $1 AND entry_id = $2
		ORDER BY line_no;
	`
	rows, err := r.pool.Query(ctx, query, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var line domain.JournalLine
		if err := rows.Scan(&line.AccountName, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
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
		WHERE user_id = $1
		ORDER BY entry_date, entry_id;
	`
	rows, err := r.pool.Query(ctx, query, userID)
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
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE user_id = $1;`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	return count, nil
}
