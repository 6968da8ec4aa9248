// Package history provides the SQLite-backed ledger of migration runs.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultFile is the ledger location in the project root (git-ignored).
const DefaultFile = ".graphplane-history.db"

// Entry records one apply invocation: which environment was targeted, which
// snapshot hash the plan was built from, and how it ended.
type Entry struct {
	ID          int64     `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	Environment string    `json:"environment"`
	SourceHash  string    `json:"source_hash"`
	Executed    int       `json:"executed"`
	Skipped     int       `json:"skipped"`
	Failures    []string  `json:"failures,omitempty"`
}

// Store wraps the SQLite ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER NOT NULL,
			environment TEXT NOT NULL,
			source_hash TEXT NOT NULL,
			executed INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failures TEXT NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating runs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the ledger database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one run to the ledger.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	failures, err := json.Marshal(entry.Failures)
	if err != nil {
		return fmt.Errorf("marshaling failures: %w", err)
	}

	startedAt := entry.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (started_at, environment, source_hash, executed, skipped, failures)
		VALUES (?, ?, ?, ?, ?, ?)`,
		startedAt.Unix(), entry.Environment, entry.SourceHash,
		entry.Executed, entry.Skipped, string(failures))
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 1 {
		limit = 1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, environment, source_hash, executed, skipped, failures
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var startedAt int64
		var failures string
		if err := rows.Scan(&entry.ID, &startedAt, &entry.Environment,
			&entry.SourceHash, &entry.Executed, &entry.Skipped, &failures); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		entry.StartedAt = time.Unix(startedAt, 0)
		if err := json.Unmarshal([]byte(failures), &entry.Failures); err != nil {
			return nil, fmt.Errorf("parsing failures for run %d: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
