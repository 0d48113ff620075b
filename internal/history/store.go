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

	_ "modernc.org/sqlite"
)

// Store manages the run ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// timeLayout is fixed width so that started_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultLimit is the number of runs Recent returns when limit is not positive.
const DefaultLimit = 20

// Open initializes or connects to the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts or replaces a run.
func (s *Store) Record(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is empty")
	}
	if run.Status == "" {
		return errors.New("run status is empty")
	}
	_, err := s.execWithRetry(ctx,
		`INSERT OR REPLACE INTO runs (
            id, input_path, output_path, status, started_at, finished_at,
            threshold_db, min_silence_seconds, padding_seconds,
            duration_seconds, removed_seconds, silence_count, segment_count,
            input_bytes, output_bytes, extract_fallbacks, concat_fallback, error_message
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Input,
		nullableString(run.Output),
		string(run.Status),
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.ThresholdDB,
		run.MinSilenceSeconds,
		run.PaddingSeconds,
		run.DurationSeconds,
		run.RemovedSeconds,
		run.SilenceCount,
		run.SegmentCount,
		run.InputBytes,
		run.OutputBytes,
		run.ExtractFallbacks,
		boolToInt(run.ConcatFallback),
		nullableString(run.Error),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

const runColumns = `id, input_path, output_path, status, started_at, finished_at,
    threshold_db, min_silence_seconds, padding_seconds,
    duration_seconds, removed_seconds, silence_count, segment_count,
    input_bytes, output_bytes, extract_fallbacks, concat_fallback, error_message`

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Clear deletes every recorded run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run            Run
		output, errMsg sql.NullString
		status         string
		started        string
		finished       string
		concatFallback int
	)
	if err := row.Scan(
		&run.ID,
		&run.Input,
		&output,
		&status,
		&started,
		&finished,
		&run.ThresholdDB,
		&run.MinSilenceSeconds,
		&run.PaddingSeconds,
		&run.DurationSeconds,
		&run.RemovedSeconds,
		&run.SilenceCount,
		&run.SegmentCount,
		&run.InputBytes,
		&run.OutputBytes,
		&run.ExtractFallbacks,
		&concatFallback,
		&errMsg,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Output = output.String
	run.Error = errMsg.String
	run.Status = Status(status)
	run.ConcatFallback = concatFallback != 0
	if t, err := time.Parse(timeLayout, started); err == nil {
		run.StartedAt = t
	}
	if t, err := time.Parse(timeLayout, finished); err == nil {
		run.FinishedAt = t
	}
	return run, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
