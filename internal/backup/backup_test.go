package backup

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/fittrack/internal/clock"
	"github.com/julianstephens/fittrack/internal/confirm"
	fterrors "github.com/julianstephens/fittrack/internal/errors"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "fittrack.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE items (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO items (key, value) VALUES ('fittrack_workouts', '[]'), ('fittrack_version', '2.0')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countItems(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		t.Fatalf("failed to count items: %v", err)
	}
	return count
}

func restoreToken(t *testing.T) confirm.Token {
	t.Helper()
	token, err := confirm.Request(context.Background(), confirm.AssumeYes, confirm.RestoreFile, "restore")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return token
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	clk := clock.NewFake(time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local))
	mgr := NewManager(dbPath).WithClock(clk)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Base(backupPath) != "fittrack-20240310-0930.db" {
		t.Errorf("unexpected backup name %s", filepath.Base(backupPath))
	}
	if got := countItems(t, backupPath); got != 2 {
		t.Errorf("backup has %d items, want 2", got)
	}

	second, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("second CreateBackup failed: %v", err)
	}
	if filepath.Base(second) != "fittrack-20240310-093000.db" {
		t.Errorf("collision should add seconds, got %s", filepath.Base(second))
	}

	third, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("third CreateBackup failed: %v", err)
	}
	if filepath.Base(third) != "fittrack-20240310-093000-1.db" {
		t.Errorf("second collision should add a counter, got %s", filepath.Base(third))
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
}

func TestCreateBackupMissingFile(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Fatal("expected error for missing data file")
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	clk := clock.NewFake(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))
	mgr := NewManager(dbPath).WithClock(clk).WithMaxBackups(3)

	for range 5 {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
		clk.Advance(24 * time.Hour)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(backups))
	}
	if backups[0].Timestamp.Day() != 5 || backups[2].Timestamp.Day() != 3 {
		t.Errorf("rotation kept the wrong backups: %v .. %v", backups[0].Timestamp, backups[2].Timestamp)
	}
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "fittrack-yesterday.db", "other-20240101-1200.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %v", backups)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	clk := clock.NewFake(time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local))
	mgr := NewManager(dbPath).WithClock(clk)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM items"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := mgr.RestoreBackup(backupPath, confirm.Token{}); !errors.Is(err, fterrors.ErrNotConfirmed) {
		t.Fatalf("RestoreBackup without token = %v, want ErrNotConfirmed", err)
	}

	clk.Advance(time.Minute)
	current, err := mgr.RestoreBackup(backupPath, restoreToken(t))
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := countItems(t, dbPath); got != 2 {
		t.Errorf("restored database has %d items, want 2", got)
	}
	if got := countItems(t, current); got != 0 {
		t.Errorf("pre-restore backup has %d items, want 0", got)
	}
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bad := filepath.Join(t.TempDir(), "fittrack-20240101-1200.db")
	if err := os.WriteFile(bad, []byte("not a database at all, just some bytes to fill a header"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bad, restoreToken(t)); err == nil {
		t.Fatal("expected error restoring a corrupt backup")
	}
	if got := countItems(t, dbPath); got != 2 {
		t.Errorf("data file changed after failed restore: %d items", got)
	}
}

func TestJSONDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fittrack.json")
	if err := os.WriteFile(path, []byte(`{"fittrack_version":"2.0"}`), 0600); err != nil {
		t.Fatal(err)
	}
	clk := clock.NewFake(time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local))
	mgr := NewManager(path).WithClock(clk)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("backup should keep the .json suffix: %s", backupPath)
	}

	if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}
	clk.Advance(time.Minute)
	if _, err := mgr.RestoreBackup(backupPath, restoreToken(t)); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"fittrack_version":"2.0"}` {
		t.Errorf("restored content = %s", data)
	}

	broken := filepath.Join(t.TempDir(), "fittrack-20240101-1200.json")
	if err := os.WriteFile(broken, []byte(`{`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(broken, restoreToken(t)); err == nil {
		t.Error("expected error for invalid JSON backup")
	}
}
