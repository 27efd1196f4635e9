// Package history keeps a durable record of generation runs in a
// local SQLite database: what was asked, what the provider answered,
// what it cost and whether the pipeline got a model out of it.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Run outcomes recorded in the status column.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Entry is one recorded generation run.
type Entry struct {
	ID           string
	Timestamp    time.Time
	Provider     string
	Model        string
	Description  string
	Prompt       string
	Response     string
	InputTokens  int
	OutputTokens int
	Cost         float64
	Duration     time.Duration
	Status       string
	Error        string
}

// ModelStats aggregates the recorded runs of one provider model.
type ModelStats struct {
	Model        string
	Runs         int
	InputTokens  int
	OutputTokens int
	Cost         float64
}

// Store manages the generation history database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// NewStore creates or opens the history store inside dir.
func NewStore(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "generation_history.db")

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		description TEXT NOT NULL,
		prompt TEXT,
		response TEXT,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		cost REAL NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_model ON runs(model);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run. A missing ID, timestamp or status is filled in
// before the insert.
func (s *Store) Record(e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.Status == "" {
		e.Status = StatusCompleted
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (id, timestamp, provider, model, description, prompt,
			response, input_tokens, output_tokens, cost, duration_ms, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Timestamp, e.Provider, e.Model, e.Description, e.Prompt,
		e.Response, e.InputTokens, e.OutputTokens, e.Cost, e.Duration.Milliseconds(),
		e.Status, e.Error)

	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, timestamp, provider, model, description, prompt, response,
			input_tokens, output_tokens, cost, duration_ms, status, error
		FROM runs
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var prompt, response, errText sql.NullString
		var durationMS int64
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model,
			&e.Description, &prompt, &response, &e.InputTokens, &e.OutputTokens,
			&e.Cost, &durationMS, &e.Status, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		e.Prompt = prompt.String
		e.Response = response.String
		e.Error = errText.String
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats aggregates the recorded runs per model, alphabetically.
func (s *Store) Stats() ([]ModelStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT model, COUNT(*),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(SUM(cost), 0)
		FROM runs
		GROUP BY model
		ORDER BY model
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ModelStats
	for rows.Next() {
		var ms ModelStats
		if err := rows.Scan(&ms.Model, &ms.Runs, &ms.InputTokens,
			&ms.OutputTokens, &ms.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats = append(stats, ms)
	}
	return stats, rows.Err()
}
