// Package migration applies the numbered SQL files under migrations/ to a
// key-value backend database and tracks the applied version in schema_version.
package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/fittrack/internal/logger"
)

// ErrSchemaTooNew means the database was migrated by a newer fittrack.
var ErrSchemaTooNew = errors.New("database schema is newer than this version of fittrack supports")

// Dialect selects the bind parameter syntax of the target database
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// Migration is one NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Status compares the database with the available migrations.
type Status struct {
	Current int
	Latest  int
	Pending []Migration
}

// Check fails with ErrSchemaTooNew when the database is ahead of the files.
func (s Status) Check() error {
	if s.Current > s.Latest {
		return fmt.Errorf("%w (database %d, supported %d) - please upgrade fittrack", ErrSchemaTooNew, s.Current, s.Latest)
	}
	return nil
}

// Result describes one Apply run.
type Result struct {
	From    int
	To      int
	Applied []Migration
	Elapsed time.Duration
}

type Runner struct {
	db      *sql.DB
	fs      fs.FS
	dialect Dialect
}

func NewRunner(db *sql.DB, migrationFS fs.FS, dialect Dialect) *Runner {
	return &Runner{db: db, fs: migrationFS, dialect: dialect}
}

func (r *Runner) bind(n int) string {
	if r.dialect == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (r *Runner) ensureVersionTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the applied version, 0 for a fresh database.
func (r *Runner) CurrentVersion(ctx context.Context) (int, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	var version int
	err := r.db.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SetVersion overwrites the recorded version without running any SQL.
func (r *Runner) SetVersion(ctx context.Context, version int) error {
	if err := r.ensureVersionTable(ctx); err != nil {
		return err
	}
	return r.writeVersion(ctx, r.db, version)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *Runner) writeVersion(ctx context.Context, db execer, version int) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES ("+r.bind(1)+")", version); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", version, err)
	}
	return nil
}

// Load reads the NNN_name.sql files of fsys sorted by version. Other files
// are ignored; malformed names and duplicate versions are errors.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		num, name, ok := strings.Cut(strings.TrimSuffix(e.Name(), ".sql"), "_")
		if !ok {
			return nil, fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", e.Name())
		}
		version, err := strconv.Atoi(num)
		if err != nil {
			return nil, fmt.Errorf("invalid version number in filename %s: %w", e.Name(), err)
		}
		if version < 1 {
			return nil, fmt.Errorf("invalid version number in filename %s: version must be at least 1", e.Name())
		}
		body, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

// Status reports the applied version and what is left to run.
func (r *Runner) Status(ctx context.Context) (Status, error) {
	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return Status{}, err
	}
	all, err := Load(r.fs)
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: current}
	for _, m := range all {
		st.Latest = m.Version
		if m.Version > current {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// Apply runs every pending migration, each in its own transaction together
// with the version bump. On failure the result lists what did apply.
func (r *Runner) Apply(ctx context.Context) (Result, error) {
	st, err := r.Status(ctx)
	if err != nil {
		return Result{}, err
	}
	if err := st.Check(); err != nil {
		return Result{}, err
	}

	res := Result{From: st.Current, To: st.Current}
	if len(st.Pending) == 0 {
		logger.Debug("Schema up to date", "version", st.Current)
		return res, nil
	}

	start := time.Now()

	for _, m := range st.Pending {
		if err := r.applyOne(ctx, m); err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}
		res.Applied = append(res.Applied, m)
		res.To = m.Version
		logger.Info("Migration applied", "version", m.Version, "name", m.Name)
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

func (r *Runner) applyOne(ctx context.Context, m Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if err := r.writeVersion(ctx, tx, m.Version); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}
