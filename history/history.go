// Package history records bsreshape runs in SQLite so a sheet that has
// already been restructured is not restructured twice.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrAlreadyApplied is returned by Guard when a file's content is the output of a recorded run.
var ErrAlreadyApplied = errors.New("sheet has already been restructured")

// Schema defines the SQL statements to create database tables.
const Schema = `
-- One row per successful rewrite
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file TEXT NOT NULL,                -- absolute path of the rewritten sheet
    checksum TEXT NOT NULL,            -- sha256 of the written content
    rows_appended INTEGER NOT NULL,
    unresolved INTEGER NOT NULL,       -- blank placeholder rows
    ran_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_file_checksum
    ON runs(file, checksum);
`

// Run is a recorded rewrite.
type Run struct {
	ID         int64
	File       string
	Checksum   string
	Rows       int
	Unresolved int
	RanAt      time.Time
}

// Store manages the run history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens (and creates if needed) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Record stores a successful rewrite. A zero RanAt is set to now.
func (s *Store) Record(ctx context.Context, run Run) error {
	file, err := canonical(run.File)
	if err != nil {
		return err
	}
	if run.RanAt.IsZero() {
		run.RanAt = time.Now()
	}

	query := `
		INSERT INTO runs (file, checksum, rows_appended, unresolved, ran_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, file, run.Checksum, run.Rows, run.Unresolved, run.RanAt.UTC()); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Produced reports whether checksum is the output of a recorded run on file.
func (s *Store) Produced(ctx context.Context, file, checksum string) (bool, error) {
	file, err := canonical(file)
	if err != nil {
		return false, err
	}

	var count int
	query := `SELECT COUNT(*) FROM runs WHERE file = ? AND checksum = ?`
	if err := s.db.QueryRowContext(ctx, query, file, checksum).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to look up run: %w", err)
	}
	return count > 0, nil
}

// Guard fails with ErrAlreadyApplied if content is what a recorded run wrote to file.
func (s *Store) Guard(ctx context.Context, file string, content []byte) error {
	produced, err := s.Produced(ctx, file, Checksum(content))
	if err != nil {
		return err
	}
	if produced {
		return fmt.Errorf("%w: %s", ErrAlreadyApplied, file)
	}
	return nil
}

// Runs returns the recorded runs, newest first. An empty file returns runs for every file.
func (s *Store) Runs(ctx context.Context, file string) ([]Run, error) {
	query := `
		SELECT id, file, checksum, rows_appended, unresolved, ran_at
		FROM runs
	`
	var args []any
	if file != "" {
		canon, err := canonical(file)
		if err != nil {
			return nil, err
		}
		query += ` WHERE file = ?`
		args = append(args, canon)
	}
	query += ` ORDER BY ran_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.File, &run.Checksum, &run.Rows, &run.Unresolved, &run.RanAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Checksum returns the hex-encoded SHA-256 of content.
func Checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// canonical makes file paths comparable across working directories.
func canonical(file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", file, err)
	}
	return abs, nil
}
