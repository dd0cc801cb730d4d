/*
Package sqlite persists computed runs.

PURPOSE:
  Every schedule computation served through the API can be saved as a run:
  the request that produced it and the full result, both as JSON. Runs back
  the saved-scenario endpoints and give the frontend a history to reload
  without recomputing.

KEY TABLE:
  runs: insert-only log of computations (id, kind, request/result JSON,
  created_at). Corrections are new runs, never updates.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL the database's own
  concurrency control would handle this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  the single writer.

USAGE:
  store, err := sqlite.New("./data/mortgage.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// RunKind labels what kind of computation a run holds.
type RunKind string

const (
	RunSchedule   RunKind = "schedule"
	RunComparison RunKind = "comparison"
	RunMulti      RunKind = "multi"
)

// RunRecord is one persisted computation.
type RunRecord struct {
	ID          string
	Kind        RunKind
	Scenario    string // demo scenario id, empty for ad-hoc requests
	RequestJSON string
	ResultJSON  string
	CreatedAt   time.Time
}

// Store implements run persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		scenario TEXT NOT NULL DEFAULT '',
		request_json TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario) WHERE scenario != '';
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun inserts a run. Run ids are caller-assigned; inserting an existing
// id is an error, runs are never overwritten.
func (s *Store) SaveRun(ctx context.Context, run RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, kind, scenario, request_json, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), run.Scenario, run.RequestJSON, run.ResultJSON,
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun loads one run by id. Returns (nil, nil) when the id is unknown.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, scenario, request_json, result_json, created_at
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, scenario, request_json, result_json, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Reset clears all persisted runs. Development and demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var run RunRecord
	var kind, createdAt string
	if err := row.Scan(&run.ID, &kind, &run.Scenario, &run.RequestJSON, &run.ResultJSON, &createdAt); err != nil {
		return nil, err
	}
	run.Kind = RunKind(kind)
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = ts
	return &run, nil
}
