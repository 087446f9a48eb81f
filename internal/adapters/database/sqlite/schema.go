package sqlite

import (
	"database/sql"
	"fmt"
)

// schema mirrors the PostgreSQL migrations with SQLite types. Amounts are
// stored as exact decimal strings.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    user_id         TEXT     NOT NULL,
    name            TEXT     NOT NULL,
    account_type    TEXT     NOT NULL CHECK (account_type IN ('ASSET', 'LIABILITY', 'EQUITY', 'REVENUE', 'EXPENSE')),
    created_at      DATETIME NOT NULL,
    created_by      TEXT     NOT NULL,
    last_updated_at DATETIME NOT NULL,
    last_updated_by TEXT     NOT NULL,
    PRIMARY KEY (user_id, name)
);

CREATE TABLE IF NOT EXISTS journal_entries (
    user_id         TEXT     NOT NULL,
    entry_id        TEXT     NOT NULL,
    entry_date      DATETIME NOT NULL,
    description     TEXT     NOT NULL DEFAULT '',
    created_at      DATETIME NOT NULL,
    created_by      TEXT     NOT NULL,
    last_updated_at DATETIME NOT NULL,
    last_updated_by TEXT     NOT NULL,
    PRIMARY KEY (user_id, entry_id)
);

CREATE TABLE IF NOT EXISTS journal_lines (
    user_id      TEXT    NOT NULL,
    entry_id     TEXT    NOT NULL,
    line_no      INTEGER NOT NULL,
    account_name TEXT    NOT NULL,
    debit        TEXT    NOT NULL DEFAULT '0',
    credit       TEXT    NOT NULL DEFAULT '0',
    PRIMARY KEY (user_id, entry_id, line_no),
    FOREIGN KEY (user_id, entry_id) REFERENCES journal_entries (user_id, entry_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_user_date ON journal_entries (user_id, entry_date);
CREATE INDEX IF NOT EXISTS idx_journal_lines_account ON journal_lines (user_id, account_name);
`

// Migrate creates the schema if it does not exist yet.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply sqlite schema: %w", err)
	}
	return nil
}
