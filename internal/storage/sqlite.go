// Package storage provides a SQLite-backed key/value store for the overlay's
// persisted settings, used when no desktop preferences are available.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// opTimeout bounds each synchronous String/SetString call
const opTimeout = 5 * time.Second

// SQLiteStore stores settings as rows of a single table
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (creating if needed) the settings database at path. Use
// ":memory:" for a throwaway store.
func Open(ctx context.Context, path string, log zerolog.Logger) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}

	return &SQLiteStore{
		db:  db,
		log: log.With().Str("component", "sqlite_store").Logger(),
	}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the value for key. The boolean is false when the key is unset.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value for key
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// String implements config.Store. Errors are logged and read as unset.
func (s *SQLiteStore) String(key string) string {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	value, _, err := s.Get(ctx, key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to read setting")
		return ""
	}
	return value
}

// SetString implements config.Store. An empty value removes the key, which
// String reads back as unset. Errors are logged.
func (s *SQLiteStore) SetString(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	write := s.Set
	if value == "" {
		write = func(ctx context.Context, key, _ string) error { return s.Delete(ctx, key) }
	}
	if err := write(ctx, key, value); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to write setting")
	}
}
