package system

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/clock"
	"github.com/julianstephens/fittrack/internal/config"
	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/metrics"
	"github.com/julianstephens/fittrack/internal/storage"
	"github.com/julianstephens/fittrack/internal/storage/sqlite"
)

func newTestContext(t *testing.T, dir string, backend storage.Backend) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	t.Setenv(constants.ExerciseAPIKeyEnv, "")

	cfg := config.Default(dir)
	cfg.Timezone = "UTC"
	cfg.Keyring.Disabled = true
	clk := clock.NewFake(time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC))
	ctx, err := cli.NewContext(t.Context(), cfg, backend, metrics.NewTestManager(), clk)
	if err != nil {
		t.Fatalf("failed to create context: %v", err)
	}
	var out bytes.Buffer
	ctx.Out = &out
	return ctx, &out
}

func setupTestDoctorDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx, out := newTestContext(t, tempDir, store)
	ctx.Config.Database = store.GetConfigPath()
	return ctx, out
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, out := setupTestDoctorDB(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v\n%s", err, out.String())
	}

	got := out.String()
	for _, want := range []string{
		"✓ Storage reachable: OK",
		"✓ Schema version: OK",
		"✓ Data validation: OK",
		"⚠ Backups present: WARNING",
		"⚠ Exercise API key: WARNING",
		"All diagnostics passed!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, out := setupTestDoctorDB(t)
	ctx.Config.Exercise.APIKey = "from-config"

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor command failed with backups present: %v", err)
	}
	if strings.Contains(out.String(), "WARNING") {
		t.Errorf("expected no warnings:\n%s", out.String())
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, out := setupTestDoctorDB(t)

	db := ctx.Backend.(*sqlite.Store).GetDB()
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
	if !strings.Contains(out.String(), "❌ Schema version: FAIL") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestDoctorCmd_DuplicateIDs(t *testing.T) {
	ctx, out := setupTestDoctorDB(t)

	records := `[
		{"id":"dup","exercise":"Running","duration":30,"calories":300,"type":"cardio","date":"2024-03-09","timestamp":1},
		{"id":"dup","exercise":"Rowing","duration":20,"calories":200,"type":"cardio","date":"2024-03-09","timestamp":2}
	]`
	if err := ctx.Backend.SetItem(constants.WorkoutsKey, records); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on duplicate ids")
	}
	if !strings.Contains(out.String(), "❌ Data validation: FAIL") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestDoctorCmd_UnreachableStorage(t *testing.T) {
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "missing.db"))
	ctx, out := newTestContext(t, tempDir, store)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail when storage is missing")
	}
	got := out.String()
	if !strings.Contains(got, "❌ Storage reachable: FAIL") {
		t.Errorf("output:\n%s", got)
	}
	if !strings.Contains(got, "⊘ Schema version: SKIPPED (storage not reachable)") {
		t.Errorf("dependent checks should be skipped:\n%s", got)
	}
}

func TestDoctorCmd_MemoryBackendSkipsBackups(t *testing.T) {
	ctx, out := newTestContext(t, t.TempDir(), storage.NewMemoryStore())

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "⊘ Backups present: SKIPPED") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestCheckClockTimezone(t *testing.T) {
	ctx, _ := newTestContext(t, t.TempDir(), storage.NewMemoryStore())
	if err := checkClockTimezone(ctx); err != nil {
		t.Errorf("clock/timezone check failed: %v", err)
	}

	ctx.Clock = clock.NewFake(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := checkClockTimezone(ctx); err == nil {
		t.Error("expected an error for a clock in 1999")
	}
}
