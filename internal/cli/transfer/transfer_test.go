package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/clock"
	"github.com/julianstephens/fittrack/internal/config"
	"github.com/julianstephens/fittrack/internal/confirm"
	fterrors "github.com/julianstephens/fittrack/internal/errors"
	"github.com/julianstephens/fittrack/internal/metrics"
	"github.com/julianstephens/fittrack/internal/models"
	"github.com/julianstephens/fittrack/internal/storage"
)

func newTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.Timezone = "UTC"
	cfg.Keyring.Disabled = true

	clk := clock.NewFake(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx, err := cli.NewContext(t.Context(), cfg, storage.NewMemoryStore(), metrics.NewTestManager(), clk)
	if err != nil {
		t.Fatalf("failed to create context: %v", err)
	}
	var out bytes.Buffer
	ctx.Out = &out
	return ctx, &out
}

func seed(t *testing.T, ctx *cli.Context, names ...string) {
	t.Helper()
	for _, name := range names {
		ctx.Clock.(*clock.Fake).Advance(time.Minute)
		if _, err := ctx.Workouts.SaveWorkout(models.WorkoutInput{
			Exercise: name, Duration: 30, Calories: 200, Type: models.WorkoutCardio,
		}); err != nil {
			t.Fatalf("SaveWorkout failed: %v", err)
		}
	}
}

func TestExportCmd(t *testing.T) {
	ctx, out := newTestContext(t)
	seed(t, ctx, "Running", "Cycling")

	path := filepath.Join(t.TempDir(), "nested", "export.json")
	if err := (&ExportCmd{Out: path}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out.String(), "Exported workouts to") {
		t.Errorf("output: %q", out.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var snap struct {
		Version       string           `json:"version"`
		TotalWorkouts int              `json:"totalWorkouts"`
		Workouts      []models.Workout `json:"workouts"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if snap.Version != "2.0" || snap.TotalWorkouts != 2 || len(snap.Workouts) != 2 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestExportCmd_Stdout(t *testing.T) {
	ctx, out := newTestContext(t)
	seed(t, ctx, "Running")

	if err := (&ExportCmd{Out: "-"}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !json.Valid(bytes.TrimSpace(out.Bytes())) {
		t.Errorf("stdout export is not JSON: %q", out.String())
	}
}

func TestImportCmd_Merge(t *testing.T) {
	src, _ := newTestContext(t)
	seed(t, src, "Running", "Cycling")
	path := filepath.Join(t.TempDir(), "export.json")
	if err := (&ExportCmd{Out: path}).Run(src); err != nil {
		t.Fatal(err)
	}

	dst, out := newTestContext(t)
	dst.Clock.(*clock.Fake).Advance(time.Hour)
	seed(t, dst, "Rowing")

	if err := (&ImportCmd{File: path}).Run(dst); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	all, _ := dst.Workouts.GetAllWorkouts()
	if len(all) != 3 {
		t.Errorf("merge should keep 3 workouts, got %d", len(all))
	}
	if !strings.Contains(out.String(), "Imported 2 workouts (3 total)") {
		t.Errorf("output: %q", out.String())
	}

	// same file again only collides
	if err := (&ImportCmd{File: path}).Run(dst); err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if all, _ := dst.Workouts.GetAllWorkouts(); len(all) != 3 {
		t.Errorf("re-import duplicated workouts: %d", len(all))
	}
}

func TestImportCmd_Replace(t *testing.T) {
	src, _ := newTestContext(t)
	seed(t, src, "Running")
	path := filepath.Join(t.TempDir(), "export.json")
	if err := (&ExportCmd{Out: path}).Run(src); err != nil {
		t.Fatal(err)
	}

	dst, out := newTestContext(t)
	dst.Clock.(*clock.Fake).Advance(time.Hour)
	seed(t, dst, "Rowing", "Swimming")

	dst.Confirmer = confirm.Func(func(context.Context, confirm.Action, string) (bool, error) {
		return false, nil
	})
	if err := (&ImportCmd{File: path, Replace: true}).Run(dst); err != nil {
		t.Fatalf("declined import should not error: %v", err)
	}
	if all, _ := dst.Workouts.GetAllWorkouts(); len(all) != 2 {
		t.Errorf("declined replace changed data: %d workouts", len(all))
	}
	if !strings.Contains(out.String(), "Import cancelled") {
		t.Errorf("output: %q", out.String())
	}

	if err := (&ImportCmd{File: path, Replace: true, Yes: true}).Run(dst); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	all, _ := dst.Workouts.GetAllWorkouts()
	if len(all) != 1 || all[0].Exercise != "Running" {
		t.Errorf("replace result: %+v", all)
	}
	if _, err := dst.Workouts.BackupInfo(); err != nil {
		t.Errorf("replace should leave a backup slot: %v", err)
	}
}

func TestImportCmd_Invalid(t *testing.T) {
	ctx, _ := newTestContext(t)
	dir := t.TempDir()

	notJSON := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(notJSON, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := (&ImportCmd{File: notJSON}).Run(ctx); !fterrors.IsImport(err) {
		t.Errorf("expected import error, got %v", err)
	}

	noneValid := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(noneValid, []byte(`{"workouts":[{"id":"x"}]}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := (&ImportCmd{File: noneValid}).Run(ctx); !fterrors.IsImport(err) {
		t.Errorf("expected import error for no valid records, got %v", err)
	}

	if err := (&ImportCmd{File: filepath.Join(dir, "missing.json")}).Run(ctx); !fterrors.IsImport(err) {
		t.Errorf("expected import error for missing file, got %v", err)
	}
}
