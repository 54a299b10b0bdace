// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a history of ranking runs in a SQLite database so a
// ranking can be reprinted without querying the results pages again.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-rank/internal/report"
	"github.com/pdiddy/scholar-rank/pkg/types"
)

// ErrRunNotFound is returned by Load for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// Run describes one stored ranking run.
type Run struct {
	ID        int64     `json:"id" yaml:"id"`
	Query     string    `json:"query" yaml:"query"`
	Requested int       `json:"requested" yaml:"requested"`
	Records   int       `json:"records" yaml:"records"`
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			requested INTEGER NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			rank INTEGER NOT NULL,
			author TEXT,
			title TEXT,
			citations INTEGER NOT NULL,
			year INTEGER NOT NULL,
			source TEXT,
			PRIMARY KEY (run_id, rank)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_citations ON records(run_id, citations)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores the rank-ordered table t as a new run and returns its ID.
func (s *Store) Save(ctx context.Context, query string, requested int, fetchedAt time.Time, t report.Table) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, requested, fetched_at) VALUES (?, ?, ?)`,
		query, requested, fetchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (run_id, rank, author, title, citations, year, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range t.Rows {
		if _, err := stmt.ExecContext(ctx, runID, r.Rank, r.Author, r.Title, r.Citations, r.Year, r.Source); err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", r.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// List returns all stored runs, newest first.
func (s *Store) List(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.query, r.requested, r.fetched_at, COUNT(rec.rank)
		 FROM runs r LEFT JOIN records rec ON rec.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Load returns run id and its records in rank order.
func (s *Store) Load(ctx context.Context, id int64) (Run, report.Table, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx,
		`SELECT r.id, r.query, r.requested, r.fetched_at,
			(SELECT COUNT(*) FROM records WHERE run_id = r.id)
		 FROM runs r WHERE r.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, report.Table{}, fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, report.Table{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT rank, author, title, citations, year, source
		 FROM records WHERE run_id = ? ORDER BY rank`, id)
	if err != nil {
		return Run{}, report.Table{}, fmt.Errorf("loading records: %w", err)
	}
	defer rows.Close()

	var t report.Table
	for rows.Next() {
		var r types.Record
		if err := rows.Scan(&r.Rank, &r.Author, &r.Title, &r.Citations, &r.Year, &r.Source); err != nil {
			return Run{}, report.Table{}, fmt.Errorf("scanning record: %w", err)
		}
		t.Rows = append(t.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return Run{}, report.Table{}, err
	}
	return run, t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(sc rowScanner) (Run, error) {
	var run Run
	var fetchedAt string
	if err := sc.Scan(&run.ID, &run.Query, &run.Requested, &fetchedAt, &run.Records); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return run, err
		}
		return run, fmt.Errorf("scanning run: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return run, fmt.Errorf("parsing fetched_at %q: %w", fetchedAt, err)
	}
	run.FetchedAt = t
	return run, nil
}
