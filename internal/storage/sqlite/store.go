package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/fittrack/internal/logger"
	"github.com/julianstephens/fittrack/internal/migration"
	"github.com/julianstephens/fittrack/internal/storage"
	"github.com/julianstephens/fittrack/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
	}

	res, err := s.Migrate(context.Background())
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug("SQLite storage ready", "path", s.path, "schema", res.To, "applied", len(res.Applied))

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectSQLite), nil
}

// Migrate applies pending schema migrations.
func (s *Store) Migrate(ctx context.Context) (migration.Result, error) {
	runner, err := s.runner()
	if err != nil {
		return migration.Result{}, err
	}
	return runner.Apply(ctx)
}

// PendingMigrations reports how many schema migrations have not been applied
func (s *Store) PendingMigrations() (int, error) {
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	st, err := runner.Status(context.Background())
	if err != nil {
		return 0, err
	}
	if err := st.Check(); err != nil {
		return 0, err
	}
	return len(st.Pending), nil
}

func (s *Store) validateSchemaVersion() error {
	pending, err := s.PendingMigrations()
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("database has %d pending migration(s), run 'fittrack migrate'", pending)
	}
	return nil
}

func (s *Store) GetItem(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM items WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) SetItem(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO items (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) RemoveItem(key string) error {
	if _, err := s.db.Exec("DELETE FROM items WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM items ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *Store) Usage() (int, error) {
	var total int
	if err := s.db.QueryRow("SELECT COALESCE(SUM(bytes), 0) FROM item_sizes").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to measure storage: %w", err)
	}
	return total, nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// tableExists checks if a table exists in the SQLite database (case-insensitive)
func (s *Store) tableExists(tableName string) (bool, error) {
	var count int
	row := s.db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
