package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"project-timer/internal/errors"
	"project-timer/internal/logging"
	"project-timer/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations. Writes replace
// the whole stored collection, mirroring the snapshot-after-every-change
// model of the tracker.
type Repository interface {
	// Read operations
	ListProjects(ctx context.Context) ([]*Project, error)
	ListTimeEntries(ctx context.Context) ([]*TimeEntry, error)
	ListLimits(ctx context.Context) ([]*Limit, error)

	// Write operations
	ReplaceProjects(ctx context.Context, projects []*Project, entries []*TimeEntry) error
	ReplaceLimits(ctx context.Context, limits []*Limit) error

	// Utility
	Close() error
}

// Options tunes per-operation timeouts. Zero values disable the timeout.
type Options struct {
	QueryTimeout   time.Duration
	WriteTimeout   time.Duration
	DirPermissions os.FileMode
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens dbPath, creating its directory when needed, and runs
// pending migrations.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		perm := opts.DirPermissions
		if perm == 0 {
			perm = 0755
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), perm); err != nil {
			return nil, errors.NewStorageError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// A single connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	logging.Debugf("opened sqlite database at %s", dbPath)
	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.QueryTimeout)
	}
	return context.WithCancel(ctx)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.WriteTimeout)
	}
	return context.WithCancel(ctx)
}

// ListProjects retrieves all projects in creation order
func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*Project, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
	SELECT id, name, time_seconds, is_running, last_start, position
	FROM projects
	ORDER BY position ASC`

	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects")
}

// ListTimeEntries retrieves every ledger entry grouped by project in ledger order
func (r *SQLiteRepository) ListTimeEntries(ctx context.Context) ([]*TimeEntry, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
	SELECT id, project_id, seq, timestamp, duration
	FROM time_entries
	ORDER BY project_id ASC, seq ASC`

	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries")
}

// ListLimits retrieves all stored budgets
func (r *SQLiteRepository) ListLimits(ctx context.Context) ([]*Limit, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT project_id, seconds FROM limits ORDER BY project_id ASC`
	return QueryMultiple(ctx, r.db, query, ScanLimits, "limits")
}

// ReplaceProjects stores projects and entries as the complete collection
func (r *SQLiteRepository) ReplaceProjects(ctx context.Context, projects []*Project, entries []*TimeEntry) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	return WithTx(ctx, r.db, "replace projects", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM time_entries`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
			return err
		}

		projectArgs := make([][]interface{}, 0, len(projects))
		for _, p := range projects {
			projectArgs = append(projectArgs, []interface{}{
				p.ID, p.Name, p.TimeSeconds, p.IsRunning,
				FormatTimePtrForDB(p.LastStart), p.Position,
			})
		}
		err := ExecAll(ctx, tx, `
		INSERT INTO projects (id, name, time_seconds, is_running, last_start, position)
		VALUES (?, ?, ?, ?, ?, ?)`, projectArgs)
		if err != nil {
			return err
		}

		entryArgs := make([][]interface{}, 0, len(entries))
		for _, e := range entries {
			entryArgs = append(entryArgs, []interface{}{
				e.ProjectID, e.Seq, FormatTimeForDB(e.Timestamp), e.Duration,
			})
		}
		return ExecAll(ctx, tx, `
		INSERT INTO time_entries (project_id, seq, timestamp, duration)
		VALUES (?, ?, ?, ?)`, entryArgs)
	})
}

// ReplaceLimits stores limits as the complete budget map
func (r *SQLiteRepository) ReplaceLimits(ctx context.Context, limits []*Limit) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	return WithTx(ctx, r.db, "replace limits", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM limits`); err != nil {
			return err
		}

		args := make([][]interface{}, 0, len(limits))
		for _, l := range limits {
			args = append(args, []interface{}{l.ProjectID, l.Seconds})
		}
		return ExecAll(ctx, tx, `INSERT INTO limits (project_id, seconds) VALUES (?, ?)`, args)
	})
}
