package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound indicates no run matched the requested identifier.
var ErrRunNotFound = errors.New("run not found")

// ErrAmbiguousRun indicates a run ID prefix matched more than one run.
var ErrAmbiguousRun = errors.New("run id prefix is ambiguous")

// Store manages the run journal backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// BeginRun inserts a new run row and returns it with a fresh identifier.
func (s *Store) BeginRun(ctx context.Context, source, target, scheme string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Source:    source,
		Target:    target,
		Scheme:    scheme,
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, started_at, source, target, scheme) VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.Format(time.RFC3339Nano),
		run.Source,
		run.Target,
		run.Scheme,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordMove journals one file operation against a run.
func (s *Store) RecordMove(ctx context.Context, runID string, move Move) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO moves (run_id, source_path, dest_path, size, mod_time, outcome, error)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		move.SourcePath,
		nullableString(move.DestPath),
		move.Size,
		move.ModTime.UTC().Format(time.RFC3339Nano),
		string(move.Outcome),
		nullableString(move.Error),
	)
	if err != nil {
		return fmt.Errorf("insert move: %w", err)
	}
	return nil
}

// FinishRun stamps the completion time and aggregate counters on a run.
func (s *Store) FinishRun(ctx context.Context, run *Run) error {
	run.FinishedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET finished_at = ?, moved = ?, skipped = ?, failed = ?, bytes_moved = ? WHERE id = ?`,
		run.FinishedAt.Format(time.RFC3339Nano),
		run.Moved,
		run.Skipped,
		run.Failed,
		run.BytesMoved,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit <= 0 returns
// everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, source, target, scheme, moved, skipped, failed, bytes_moved
              FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
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

// FindRun resolves a full run ID or a unique prefix to a run.
func (s *Store) FindRun(ctx context.Context, idOrPrefix string) (*Run, error) {
	prefix := strings.TrimSpace(idOrPrefix)
	if prefix == "" {
		return nil, ErrRunNotFound
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, started_at, finished_at, source, target, scheme, moved, skipped, failed, bytes_moved
         FROM runs WHERE id LIKE ? || '%' LIMIT 2`,
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("find run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, prefix)
	}
}

// RunMoves returns every journaled move of one run in insertion order.
func (s *Store) RunMoves(ctx context.Context, runID string) ([]Move, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, source_path, dest_path, size, mod_time, outcome, error
         FROM moves WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer rows.Close()

	var moves []Move
	for rows.Next() {
		var (
			move     Move
			dest     sql.NullString
			modTime  string
			outcome  string
			errorMsg sql.NullString
		)
		if err := rows.Scan(&move.ID, &move.RunID, &move.SourcePath, &dest, &move.Size, &modTime, &outcome, &errorMsg); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		move.DestPath = dest.String
		move.Outcome = Outcome(outcome)
		move.Error = errorMsg.String
		if parsed, err := time.Parse(time.RFC3339Nano, modTime); err == nil {
			move.ModTime = parsed
		}
		moves = append(moves, move)
	}
	return moves, rows.Err()
}

// Clear removes every run and move from the journal.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Prune deletes runs older than the retention window. A retention of 0 keeps
// everything.
func (s *Store) Prune(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run        Run
		startedAt  string
		finishedAt sql.NullString
	)
	err := row.Scan(
		&run.ID,
		&startedAt,
		&finishedAt,
		&run.Source,
		&run.Target,
		&run.Scheme,
		&run.Moved,
		&run.Skipped,
		&run.Failed,
		&run.BytesMoved,
	)
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	if parsed, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		run.StartedAt = parsed
	}
	if finishedAt.Valid {
		if parsed, err := time.Parse(time.RFC3339Nano, finishedAt.String); err == nil {
			run.FinishedAt = parsed
		}
	}
	return run, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
