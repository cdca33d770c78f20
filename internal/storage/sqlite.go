package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const slotSchema = `
CREATE TABLE IF NOT EXISTS slots (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`

// SQLiteSlot stores slot values in a single-file SQLite database. Useful
// when the data directory lives on storage where rename atomicity is shaky
// (network shares) or when operators prefer one artifact to back up.
type SQLiteSlot struct {
	db *sql.DB
}

// NewSQLiteSlot opens (creating when absent) the database at path and
// prepares the slots table.
func NewSQLiteSlot(path string) (*SQLiteSlot, error) {
	if path == "" {
		return nil, errors.New("sqlite path must not be empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	// SQLite allows one writer; a single pooled connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(slotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply slot schema: %w", err)
	}

	return &SQLiteSlot{db: db}, nil
}

// Get returns the value stored under key, or found=false when absent.
func (s *SQLiteSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the value under key.
func (s *SQLiteSlot) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteSlot) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
