package state

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is RFC3339 with fixed-width nanoseconds so that stored
// timestamps sort lexicographically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists run history using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new store instance. It holds no connection
// until Open is called.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteStore{logger: logger}
}

// Open opens the SQLite database at path and initializes the schema.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("ping state database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("initialize state schema: %w", err)
	}
	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRun records the start of an analysis run.
func (s *SQLiteStore) CreateRun(jobs, outDir string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("state database not opened")
	}
	run := &Run{
		ID:        uuid.New().String(),
		Jobs:      jobs,
		OutDir:    outDir,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	s.logger.Debug("recording run", slog.String("id", run.ID), slog.String("jobs", jobs))

	_, err := s.db.Exec(
		`INSERT INTO runs (id, jobs, out_dir, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Jobs, run.OutDir, string(run.Status), run.StartedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run as completed or failed.
func (s *SQLiteStore) CompleteRun(id string, status RunStatus, pairs int, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("state database not opened")
	}
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, pairs = ?, error = ?, completed_at = ? WHERE id = ?`,
		string(status), pairs, errMsg, now.Format(timeLayout), id,
	)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("state database not opened")
	}
	row := s.db.QueryRow(
		`SELECT id, jobs, out_dir, status, pairs, error, started_at, completed_at FROM runs WHERE id = ?`, id,
	)
	run, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	return run, err
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("state database not opened")
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, jobs, out_dir, status, pairs, error, started_at, completed_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanRun(scan func(...any) error) (*Run, error) {
	var run Run
	var status, started, completed string
	if err := scan(&run.ID, &run.Jobs, &run.OutDir, &status, &run.Pairs, &run.Error, &started, &completed); err != nil {
		return nil, err
	}
	run.Status = RunStatus(status)
	ts, err := time.Parse(timeLayout, started)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	run.StartedAt = ts
	if completed != "" {
		tc, err := time.Parse(timeLayout, completed)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		run.CompletedAt = &tc
	}
	return &run, nil
}
