// Package history records generation runs in a local SQLite database.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/Mavwarf/iconize/internal/paths"

	_ "modernc.org/sqlite"
)

// Run is one recorded generation.
type Run struct {
	ID        int64
	Timestamp time.Time
	Source    string
	OutputDir string
	Filter    string
	Files     []string
	Skipped   []string
}

// Store is a SQLite-backed run log.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "sqlite pragma")
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp  TEXT    NOT NULL,
    source     TEXT    NOT NULL,
    output_dir TEXT    NOT NULL,
    filter     TEXT    NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS run_files (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id  INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    seq     INTEGER NOT NULL,
    path    TEXT    NOT NULL,
    skipped INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_run_files_run  ON run_files(run_id, seq);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "sqlite schema")
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts run and its files in one transaction and returns the new
// run ID. A zero Timestamp is replaced with the current time.
func (s *Store) Record(run Run) (int64, error) {
	ts := run.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (timestamp, source, output_dir, filter) VALUES (?, ?, ?, ?)`,
		ts.Format(time.RFC3339Nano), run.Source, run.OutputDir, run.Filter,
	)
	if err != nil {
		return 0, errors.Wrap(err, "insert run")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	seq := 0
	insert := func(path string, skipped bool) error {
		seq++
		skip := 0
		if skipped {
			skip = 1
		}
		_, err := tx.Exec(
			`INSERT INTO run_files (run_id, seq, path, skipped) VALUES (?, ?, ?, ?)`,
			id, seq, path, skip,
		)
		return err
	}
	for _, f := range run.Files {
		if err := insert(f, false); err != nil {
			return 0, errors.Wrap(err, "insert file")
		}
	}
	for _, f := range run.Skipped {
		if err := insert(f, true); err != nil {
			return 0, errors.Wrap(err, "insert skipped")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Recent returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) Recent(limit int) ([]Run, error) {
	q := `SELECT id, timestamp, source, output_dir, filter FROM runs ORDER BY timestamp DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ts string
		if err := rows.Scan(&r.ID, &ts, &r.Source, &r.OutputDir, &r.Filter); err != nil {
			return nil, err
		}
		r.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		if err := s.loadFiles(&runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *Store) loadFiles(r *Run) error {
	rows, err := s.db.Query(`SELECT path, skipped FROM run_files WHERE run_id = ? ORDER BY seq`, r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var p string
		var skipped int
		if err := rows.Scan(&p, &skipped); err != nil {
			return err
		}
		if skipped != 0 {
			r.Skipped = append(r.Skipped, p)
		} else {
			r.Files = append(r.Files, p)
		}
	}
	return rows.Err()
}

// Clear deletes all recorded runs.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM runs`)
	return err
}
