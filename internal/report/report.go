// Package report persists batch run results in a SQLite database so
// operators can review what was changed after the fact.
package report

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
	"github.com/FocuswithJustin/CedarVerse/core/standardize"
	"github.com/FocuswithJustin/CedarVerse/internal/batch"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	path         TEXT NOT NULL,
	ok           INTEGER NOT NULL,
	err          TEXT NOT NULL DEFAULT '',
	runs_total   INTEGER NOT NULL DEFAULT 0,
	runs_changed INTEGER NOT NULL DEFAULT 0,
	backup_path  TEXT NOT NULL DEFAULT '',
	input_hash   TEXT NOT NULL DEFAULT '',
	output_hash  TEXT NOT NULL DEFAULT '',
	duration_ms  INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS diagnostics (
	run_id  TEXT NOT NULL REFERENCES runs(id),
	span    TEXT NOT NULL,
	message TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_diagnostics_run ON diagnostics(run_id);
`

// Store is a SQLite-backed archive of batch results.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open report database %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create report schema")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record is one persisted batch result.
type Record struct {
	ID          string
	Path        string
	OK          bool
	Err         string
	RunsTotal   int
	RunsChanged int
	BackupPath  string
	InputHash   string
	OutputHash  string
	Duration    time.Duration
	CreatedAt   time.Time
}

// Summary aggregates the whole archive.
type Summary struct {
	Documents   int
	Succeeded   int
	Failed      int
	RunsChanged int
	Diagnostics int
}

// Save stores one result and its diagnostics atomically.
func (s *Store) Save(res batch.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin report transaction")
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, path, ok, err, runs_total, runs_changed, backup_path, input_hash, output_hash, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.Path, boolInt(res.OK), res.Err,
		res.RunsTotal, res.RunsChanged, res.BackupPath,
		res.InputHash, res.OutputHash, res.Duration.Milliseconds(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errors.Wrapf(err, "save run %s", res.ID)
	}
	for _, d := range res.Diagnostics {
		if _, err := tx.Exec(`INSERT INTO diagnostics (run_id, span, message) VALUES (?, ?, ?)`,
			res.ID, d.Span, d.Message); err != nil {
			return errors.Wrapf(err, "save diagnostic for run %s", res.ID)
		}
	}
	return tx.Commit()
}

// SaveAll stores every result, stopping at the first failure.
func (s *Store) SaveAll(results []batch.Result) error {
	for _, res := range results {
		if err := s.Save(res); err != nil {
			return err
		}
	}
	return nil
}

// List returns records newest first. A limit of 0 or less returns
// everything.
func (s *Store) List(limit int) ([]Record, error) {
	query := `SELECT id, path, ok, err, runs_total, runs_changed, backup_path,
		input_hash, output_hash, duration_ms, created_at
		FROM runs ORDER BY created_at DESC, path`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec        Record
			ok         int
			durationMS int64
			createdAt  string
		)
		if err := rows.Scan(&rec.ID, &rec.Path, &ok, &rec.Err,
			&rec.RunsTotal, &rec.RunsChanged, &rec.BackupPath,
			&rec.InputHash, &rec.OutputHash, &durationMS, &createdAt); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		rec.OK = ok != 0
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Diagnostics returns the per-span diagnostics collected for one run.
func (s *Store) Diagnostics(runID string) ([]standardize.Diagnostic, error) {
	rows, err := s.db.Query(`SELECT span, message FROM diagnostics WHERE run_id = ?`, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "list diagnostics for run %s", runID)
	}
	defer rows.Close()

	var diags []standardize.Diagnostic
	for rows.Next() {
		var d standardize.Diagnostic
		if err := rows.Scan(&d.Span, &d.Message); err != nil {
			return nil, errors.Wrap(err, "scan diagnostic")
		}
		diags = append(diags, d)
	}
	return diags, rows.Err()
}

// Summarize aggregates every run in the archive.
func (s *Store) Summarize() (Summary, error) {
	var sum Summary
	err := s.db.QueryRow(`SELECT COUNT(*),
		COALESCE(SUM(ok), 0),
		COALESCE(SUM(runs_changed), 0)
		FROM runs`).Scan(&sum.Documents, &sum.Succeeded, &sum.RunsChanged)
	if err != nil {
		return Summary{}, errors.Wrap(err, "summarize runs")
	}
	sum.Failed = sum.Documents - sum.Succeeded
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM diagnostics`).Scan(&sum.Diagnostics); err != nil {
		return Summary{}, errors.Wrap(err, "count diagnostics")
	}
	return sum, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
