// Package history provides SQLite-backed recording of past results, so a
// card or analysis can be recovered after the terminal session ends.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one completed operation result.
type Record struct {
	ID        string
	Operation string
	CardType  string
	Model     string
	Output    string
	CreatedAt time.Time
}

// Store wraps the SQLite results database.
type Store struct {
	conn *sql.DB
	path string
}

// DefaultPath returns the XDG data path for the history database.
func DefaultPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "cardsmith", "history.db")
}

// Open opens (or creates) the history database at the given path.
// Parent directories are created as needed.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL mode allows reads while a result is being written.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	s := &Store{conn: conn, path: path}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS results (
	id         TEXT PRIMARY KEY,
	operation  TEXT NOT NULL,
	card_type  TEXT NOT NULL,
	model      TEXT NOT NULL,
	output     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_created_at ON results(created_at DESC);
`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Append stores one result record.
func (s *Store) Append(rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.conn.Exec(
		`INSERT INTO results (id, operation, card_type, model, output, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Operation, rec.CardType, rec.Model, rec.Output, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// Recent returns the most recent n records, newest first.
func (s *Store) Recent(n int) ([]Record, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := s.conn.Query(
		`SELECT id, operation, card_type, model, output, created_at
		 FROM results ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Operation, &rec.CardType, &rec.Model, &rec.Output, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
