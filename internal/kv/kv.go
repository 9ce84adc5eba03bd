// Package kv provides the key/value persistence layer documents are stored in.
package kv

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmunix/reelist/internal/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens (creating if needed) the sqlite database at path and applies
// the schema. The pool holds a single connection, so a MemoryPath
// database is shared by every caller.
func Open(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(migrations.Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
