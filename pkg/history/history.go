// Package history persists answered questions to a local SQLite database so
// "inkwell history" can show what was asked, which model answered, and how
// each request ended.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Outcome classifies how an ask finished.
type Outcome string

const (
	OutcomeAnswered  Outcome = "answered"
	OutcomeTruncated Outcome = "truncated"
	OutcomeError     Outcome = "error"
)

// Entry is one recorded question and its result.
type Entry struct {
	ID       string
	Question string
	Answer   string
	Provider string
	// Model is the model the backend reported. Empty when the backend
	// never sent a model marker (e.g. the request failed before routing).
	Model   string
	Outcome Outcome
	AskedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS asks (
	id       TEXT PRIMARY KEY,
	question TEXT NOT NULL,
	answer   TEXT NOT NULL,
	provider TEXT NOT NULL,
	model    TEXT NOT NULL,
	outcome  TEXT NOT NULL,
	asked_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_asks_asked_at ON asks (asked_at DESC);
`

// Store is a SQLite-backed ask history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at dbPath.
// The path can be ":memory:" for tests.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite-specific pragmas
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record inserts a new history entry and returns it with its generated id
// and timestamp filled in.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	e.ID = uuid.NewString()
	if e.AskedAt.IsZero() {
		e.AskedAt = time.Now().UTC()
	}
	if e.Outcome == "" {
		e.Outcome = OutcomeAnswered
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO asks (id, question, answer, provider, model, outcome, asked_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Question, e.Answer, e.Provider, e.Model, string(e.Outcome), e.AskedAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record ask: %w", err)
	}

	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question, answer, provider, model, outcome, asked_at
		 FROM asks ORDER BY asked_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var outcome string
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &e.Provider, &e.Model, &outcome, &e.AskedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Outcome = Outcome(outcome)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return entries, nil
}

// Get returns a single entry by id.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	var e Entry
	var outcome string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, question, answer, provider, model, outcome, asked_at
		 FROM asks WHERE id = ?`, id).
		Scan(&e.ID, &e.Question, &e.Answer, &e.Provider, &e.Model, &outcome, &e.AskedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get history entry %s: %w", id, err)
	}
	e.Outcome = Outcome(outcome)
	return e, nil
}

// Clear deletes all history entries and reports how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM asks`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared history: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
