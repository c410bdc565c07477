package workouts

import (
	"bytes"
	"context"
	"errors"
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
	"github.com/julianstephens/fittrack/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	cfg := config.Default(tempDir)
	cfg.Database = dbPath
	cfg.Timezone = "UTC"
	cfg.Keyring.Disabled = true

	clk := clock.NewFake(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx, err := cli.NewContext(t.Context(), cfg, store, metrics.NewTestManager(), clk)
	if err != nil {
		t.Fatalf("failed to create context: %v", err)
	}
	var out bytes.Buffer
	ctx.Out = &out

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return ctx, &out
}

func logWorkout(t *testing.T, ctx *cli.Context, exercise string, duration, calories int, typ string) models.Workout {
	t.Helper()
	ctx.Clock.(*clock.Fake).Advance(time.Minute)
	cmd := &WorkoutLogCmd{Exercise: exercise, Duration: duration, Calories: calories, Type: typ}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("log %s failed: %v", exercise, err)
	}
	all, err := ctx.Workouts.GetAllWorkouts()
	if err != nil {
		t.Fatal(err)
	}
	return all[0]
}

func TestWorkoutLogCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	w := logWorkout(t, ctx, "Running", 30, 300, "")
	if w.Type != models.WorkoutCardio {
		t.Errorf("type should default to settings, got %s", w.Type)
	}
	if w.Date != "2024-03-10" {
		t.Errorf("date = %s, want today", w.Date)
	}
	if !strings.Contains(out.String(), "✓ Logged Running") {
		t.Errorf("missing notification in output: %q", out.String())
	}
}

func TestWorkoutLogCmd_UsesDefaultType(t *testing.T) {
	ctx, _ := setupTestDB(t)

	settings := models.DefaultSettings()
	settings.DefaultWorkoutType = models.WorkoutStrength
	settings.ShowNotifications = false
	if err := ctx.Workouts.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	out := ctx.Out.(*bytes.Buffer)
	out.Reset()
	w := logWorkout(t, ctx, "Squats", 20, 150, "")
	if w.Type != models.WorkoutStrength {
		t.Errorf("type = %s, want strength", w.Type)
	}
	if out.Len() != 0 {
		t.Errorf("notifications are off, got output %q", out.String())
	}
}

func TestWorkoutLogCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &WorkoutLogCmd{Exercise: "Running", Duration: 0, Calories: 300, Type: "cardio"}
	err := cmd.Run(ctx)
	if !fterrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	cmd = &WorkoutLogCmd{Exercise: "Running", Duration: 30, Calories: 300, Type: "yoga"}
	if err := cmd.Run(ctx); !fterrors.IsValidation(err) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
}

func TestWorkoutListCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	logWorkout(t, ctx, "Running", 30, 300, "cardio")
	logWorkout(t, ctx, "Bench Press", 45, 200, "strength")
	logWorkout(t, ctx, "Yoga", 60, 150, "flexibility")

	out.Reset()
	if err := (&WorkoutListCmd{Type: "strength"}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Bench Press") || strings.Contains(out.String(), "Running") {
		t.Errorf("type filter output: %q", out.String())
	}

	out.Reset()
	if err := (&WorkoutListCmd{Search: "yog"}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Workouts (1 of 3)") {
		t.Errorf("search output: %q", out.String())
	}

	out.Reset()
	if err := (&WorkoutListCmd{Limit: 2}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Workouts (2 of 3)") {
		t.Errorf("limit output: %q", out.String())
	}

	out.Reset()
	if err := (&WorkoutListCmd{From: "2025-01-01"}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No workouts found") {
		t.Errorf("date filter output: %q", out.String())
	}
}

func TestWorkoutEditCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	w := logWorkout(t, ctx, "Running", 30, 300, "cardio")

	duration := 45
	notes := "felt strong"
	cmd := &WorkoutEditCmd{ID: w.ID, Duration: &duration, Notes: &notes}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	got, err := ctx.Workouts.GetWorkout(w.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Duration != 45 || got.Notes != "felt strong" || got.Calories != 300 || got.Exercise != "Running" {
		t.Errorf("unexpected workout after edit: %+v", got)
	}
	if got.LastModified == 0 {
		t.Error("LastModified should be set")
	}

	missing := &WorkoutEditCmd{ID: "nope", Duration: &duration}
	if err := missing.Run(ctx); !fterrors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestWorkoutDeleteCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	w := logWorkout(t, ctx, "Running", 30, 300, "cardio")

	if err := (&WorkoutDeleteCmd{ID: w.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	all, _ := ctx.Workouts.GetAllWorkouts()
	if len(all) != 0 {
		t.Errorf("expected no workouts, got %d", len(all))
	}

	if err := (&WorkoutDeleteCmd{ID: w.ID}).Run(ctx); !fterrors.IsNotFound(err) {
		t.Errorf("second delete should be not found, got %v", err)
	}
}

func TestWorkoutClearCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	logWorkout(t, ctx, "Running", 30, 300, "cardio")
	logWorkout(t, ctx, "Yoga", 60, 150, "flexibility")

	var asked confirm.Action
	ctx.Confirmer = confirm.Func(func(_ context.Context, a confirm.Action, _ string) (bool, error) {
		asked = a
		return false, nil
	})

	out.Reset()
	if err := (&WorkoutClearCmd{}).Run(ctx); err != nil {
		t.Fatalf("declined clear should not error: %v", err)
	}
	if asked != confirm.ClearAll {
		t.Errorf("confirmer asked for %q", asked)
	}
	if all, _ := ctx.Workouts.GetAllWorkouts(); len(all) != 2 {
		t.Errorf("declined clear removed workouts: %d left", len(all))
	}
	if !strings.Contains(out.String(), "cancelled") {
		t.Errorf("output: %q", out.String())
	}

	if err := (&WorkoutClearCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if all, _ := ctx.Workouts.GetAllWorkouts(); len(all) != 0 {
		t.Errorf("expected empty collection, got %d", len(all))
	}
}

func TestWorkoutClearCmd_PromptError(t *testing.T) {
	ctx, _ := setupTestDB(t)
	boom := errors.New("no terminal")
	ctx.Confirmer = confirm.Func(func(context.Context, confirm.Action, string) (bool, error) {
		return false, boom
	})
	if err := (&WorkoutClearCmd{}).Run(ctx); !errors.Is(err, boom) {
		t.Errorf("expected prompt error, got %v", err)
	}
}
