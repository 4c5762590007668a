// Package history keeps a SQLite ledger of property run outcomes.
//
// Only outcomes are stored (status, counts, seed), never generated arguments;
// a failing run is reproduced by replaying its seed.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/nomagicln/propcheck/pkg/property"
)

// Entry is one recorded run.
type Entry struct {
	ID         int64
	Test       string
	Status     string
	Seed       uint64
	Passed     int
	Rejected   int
	Failures   int
	Attempts   int
	Duration   time.Duration
	RecordedAt time.Time
}

// Store persists run outcomes.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens or creates the ledger at path. ":memory:" keeps it in memory.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			test        TEXT    NOT NULL,
			status      TEXT    NOT NULL,
			seed        INTEGER NOT NULL,
			passed      INTEGER NOT NULL,
			rejected    INTEGER NOT NULL,
			failures    INTEGER NOT NULL,
			attempts    INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			recorded_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS runs_test ON runs(test, id);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Record stores the outcome of result.
func (s *Store) Record(result property.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO runs (test, status, seed, passed, rejected, failures, attempts, duration_ns, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		result.Name,
		result.Status.String(),
		int64(result.Seed),
		result.Passed,
		result.Rejected,
		len(result.Failures),
		result.Attempts,
		int64(result.Duration),
		time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run of %s: %w", result.Name, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. An empty test matches every test.
func (s *Store) Recent(test string, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, test, status, seed, passed, rejected, failures, attempts, duration_ns, recorded_at
		FROM runs
		WHERE ? = '' OR test = ?
		ORDER BY id DESC
		LIMIT ?
	`, test, test, limit)
	if err != nil {
		return nil, fmt.Errorf("history query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var seed, duration, recorded int64
		if err := rows.Scan(&e.ID, &e.Test, &e.Status, &seed, &e.Passed, &e.Rejected, &e.Failures, &e.Attempts, &duration, &recorded); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		e.Seed = uint64(seed)
		e.Duration = time.Duration(duration)
		e.RecordedAt = time.Unix(0, recorded)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Recorder records every finished run into a Store.
type Recorder struct {
	property.BaseObserver

	store *Store
	err   error
}

// NewRecorder creates an observer writing to store.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store}
}

func (r *Recorder) RunFinished(result property.Result) {
	if err := r.store.Record(result); err != nil && r.err == nil {
		r.err = err
	}
}

// Err returns the first recording error, if any.
func (r *Recorder) Err() error {
	return r.err
}
