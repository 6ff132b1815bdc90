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

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/dirschema/internal/model"
)

// DBFile is the database file name inside the history directory.
const DBFile = "dirschema.db"

// ErrNotFound is returned when the history database does not exist and
// Options.CreateIfNotExists is false.
var ErrNotFound = errors.New("history database not found")

// Store provides SQLite-based storage for run records.
//
// The database holds a single append-only runs table. Rows are never updated:
// change detection compares a run with the newest earlier successful run for
// the same tool and output, looked up by id, so the classification shown by
// history stays stable as new runs are added. The connection pool is capped at
// one connection because SQLite allows a single writer; WAL mode lets a
// history listing read while another process records a run.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Filter narrows a List query. Zero values match everything.
type Filter struct {
	// Tool limits results to one tool.
	Tool model.Tool

	// Output limits results to runs that wrote this path.
	Output string

	// Limit caps the number of results. Zero or less means no limit.
	Limit int
}

// Open opens or creates the history database in dir.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, DBFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool TEXT NOT NULL,
		source TEXT NOT NULL,
		output TEXT NOT NULL,
		status TEXT NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		digest TEXT NOT NULL DEFAULT '',
		timestamp TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_tool ON runs(tool);
	CREATE INDEX IF NOT EXISTS idx_runs_output ON runs(output);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Record inserts run and sets its ID.
func (s *Store) Record(ctx context.Context, run *model.Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}

	query := `
	INSERT INTO runs (tool, source, output, status, message, digest, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		string(run.Tool),
		run.Source,
		run.Output,
		run.Status.String(),
		run.Message,
		run.Digest,
		run.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}
	run.ID = id
	return nil
}

// RecordOutput digests the output file of a successful run and records it.
func (s *Store) RecordOutput(ctx context.Context, run *model.Run) error {
	if run != nil && run.Succeeded() && run.Digest == "" {
		digest, err := DigestFile(run.Output)
		if err != nil {
			return err
		}
		run.Digest = digest
	}
	return s.Record(ctx, run)
}

// List returns the runs matching filter, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]*model.Run, error) {
	var (
		where []string
		args  []any
	)
	if filter.Tool != "" {
		where = append(where, "tool = ?")
		args = append(args, string(filter.Tool))
	}
	if filter.Output != "" {
		where = append(where, "output = ?")
		args = append(args, filter.Output)
	}

	query := "SELECT id, tool, source, output, status, message, digest, timestamp FROM runs"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Previous returns the last successful run for the same tool and output that
// was recorded before run. It returns nil, nil when there is none.
func (s *Store) Previous(ctx context.Context, run *model.Run) (*model.Run, error) {
	query := `
	SELECT id, tool, source, output, status, message, digest, timestamp
	FROM runs
	WHERE tool = ? AND output = ? AND status = ?
	`
	args := []any{string(run.Tool), run.Output, model.RunSuccess.String()}
	if run.ID > 0 {
		query += " AND id < ?"
		args = append(args, run.ID)
	}
	query += " ORDER BY id DESC LIMIT 1"

	prev, err := scanRun(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return prev, nil
}

// Entries lists runs like List and classifies each one against its previous run.
func (s *Store) Entries(ctx context.Context, filter Filter) ([]model.HistoryEntry, error) {
	runs, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(runs))
	for _, run := range runs {
		prev, err := s.Previous(ctx, run)
		if err != nil {
			return nil, err
		}
		entries = append(entries, model.HistoryEntry{Run: run, Change: model.Compare(run, prev)})
	}
	return entries, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.Run, error) {
	var (
		run       model.Run
		tool      string
		status    string
		timestamp string
	)
	err := row.Scan(
		&run.ID,
		&tool,
		&run.Source,
		&run.Output,
		&status,
		&run.Message,
		&run.Digest,
		&timestamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Tool = model.Tool(tool)
	run.Status = model.ParseRunStatus(status)
	run.Timestamp = parseTimestamp(timestamp)
	return &run, nil
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05", // SQLite default datetime format
	"2006-01-02T15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
