// Package incremental persists content hashes of written outputs so
// unchanged files are not rewritten on the next run.
package incremental

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed route → content-hash map.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the store. Use ":memory:" for an ephemeral store.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS artifacts (
		route TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		updated INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Unchanged reports whether the stored hash for route equals hash.
func (s *Store) Unchanged(ctx context.Context, route, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored string
	err := s.db.QueryRowContext(ctx,
		"SELECT hash FROM artifacts WHERE route = ?", route).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query artifact: %w", err)
	}
	return stored == hash, nil
}

// Remember stores the hash for route, replacing any previous value.
func (s *Store) Remember(ctx context.Context, route, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO artifacts (route, hash, updated) VALUES (?, ?, ?)
		 ON CONFLICT(route) DO UPDATE SET hash = excluded.hash, updated = excluded.updated`,
		route, hash, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("store artifact: %w", err)
	}
	return nil
}

// Forget removes the stored hash for route.
func (s *Store) Forget(ctx context.Context, route string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM artifacts WHERE route = ?", route)
	if err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashContent returns the hex sha256 of data.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
