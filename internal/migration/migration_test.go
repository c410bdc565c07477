package migration

import (
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/fittrack/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"001_test.sql": {Data: []byte("CREATE TABLE test (id INTEGER);")},
	}, DialectSQLite)

	version, err := runner.CurrentVersion(t.Context())
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(t.Context(), 5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	version, err = runner.CurrentVersion(t.Context())
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		want    []string
		wantErr string
	}{
		{
			name: "sorted by version",
			files: fstest.MapFS{
				"002_update.sql": {Data: []byte("SELECT 1;")},
				"001_init.sql":   {Data: []byte("SELECT 1;")},
				"README.md":      {Data: []byte("ignored")},
			},
			want: []string{"init", "update"},
		},
		{
			name:    "bad filename",
			files:   fstest.MapFS{"init.sql": {Data: []byte("SELECT 1;")}},
			wantErr: "invalid migration filename",
		},
		{
			name: "duplicate version",
			files: fstest.MapFS{
				"001_a.sql": {Data: []byte("SELECT 1;")},
				"01_b.sql":  {Data: []byte("SELECT 1;")},
			},
			wantErr: "duplicate migration version",
		},
		{
			name:    "version zero",
			files:   fstest.MapFS{"000_zero.sql": {Data: []byte("SELECT 1;")}},
			wantErr: "version must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.files)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d migrations, got %d", len(tt.want), len(got))
			}
			for i, name := range tt.want {
				if got[i].Name != name || got[i].Version != i+1 {
					t.Errorf("migration %d = (%d, %s), want (%d, %s)", i, got[i].Version, got[i].Name, i+1, name)
				}
			}
		})
	}
}

func TestApplyIsIncremental(t *testing.T) {
	db := setupTestDB(t)
	files := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE items (key TEXT PRIMARY KEY, value TEXT);")},
	}
	runner := NewRunner(db, files, DialectSQLite)

	res, err := runner.Apply(t.Context())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.Applied) != 1 || res.From != 0 || res.To != 1 {
		t.Errorf("first run = %+v, want 0 -> 1", res)
	}

	files["002_extra.sql"] = &fstest.MapFile{Data: []byte("ALTER TABLE items ADD COLUMN note TEXT;")}
	st, err := runner.Status(t.Context())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if len(st.Pending) != 1 || st.Current != 1 || st.Latest != 2 {
		t.Errorf("Status() = %+v, want one pending at 1/2", st)
	}

	res, err = runner.Apply(t.Context())
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Name != "extra" {
		t.Errorf("second run = %+v", res)
	}

	res, err = runner.Apply(t.Context())
	if err != nil || len(res.Applied) != 0 || res.To != 2 {
		t.Errorf("third run = (%+v, %v), want nothing applied", res, err)
	}
}

func TestApplyRollsBackFailure(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE items (key TEXT);")},
		"002_broken.sql": {Data: []byte("THIS IS NOT SQL;")},
	}, DialectSQLite)

	res, err := runner.Apply(t.Context())
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if len(res.Applied) != 1 {
		t.Errorf("expected 1 migration before failure, got %d", len(res.Applied))
	}

	version, err := runner.CurrentVersion(t.Context())
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1 after rollback", version)
	}
}

func TestNewerDatabaseIsRejected(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"001_init.sql": {Data: []byte("SELECT 1;")},
	}, DialectSQLite)

	if err := runner.SetVersion(t.Context(), 9); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	st, err := runner.Status(t.Context())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if err := st.Check(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Check() = %v, want ErrSchemaTooNew", err)
	}
	if _, err := runner.Apply(t.Context()); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Apply() = %v, want ErrSchemaTooNew", err)
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("fs.Sub failed: %v", err)
	}

	db := setupTestDB(t)
	runner := NewRunner(db, sub, DialectSQLite)
	if _, err := runner.Apply(t.Context()); err != nil {
		t.Fatalf("embedded migrations failed: %v", err)
	}

	if _, err := db.Exec("INSERT INTO items (key, value) VALUES ('k', 'abc')"); err != nil {
		t.Fatalf("insert into items failed: %v", err)
	}
	var bytes int
	if err := db.QueryRow("SELECT bytes FROM item_sizes WHERE key = 'k'").Scan(&bytes); err != nil {
		t.Fatalf("query item_sizes failed: %v", err)
	}
	if bytes != 4 {
		t.Errorf("item_sizes bytes = %d, want 4", bytes)
	}
}
