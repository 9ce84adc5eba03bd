package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite stores documents in the kv table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates a store over an open database. The kv table must exist;
// Open creates it.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Read returns the value stored under key.
// Returns nil, false, nil if the key is absent.
func (s *SQLite) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv read %q: %w", key, err)
	}
	return value, true, nil
}

// Write replaces the value stored under key.
func (s *SQLite) Write(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("kv write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}
