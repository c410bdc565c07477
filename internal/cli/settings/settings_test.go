package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/config"
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
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	cfg := config.Default(tempDir)
	cfg.Keyring.Disabled = true
	ctx, err := cli.NewContext(t.Context(), cfg, store, metrics.NewTestManager(), nil)
	if err != nil {
		t.Fatalf("failed to create context: %v", err)
	}
	var out bytes.Buffer
	ctx.Out = &out
	return ctx, &out
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
	for _, want := range []string{"Theme:                light", "Default Workout Type: cardio", "Warning Threshold:    80%"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, _ := setupTestDB(t)

	theme := "dark"
	autoRefresh := false
	workoutType := "strength"
	threshold := 90
	cmd := &SettingsCmd{
		Theme:              &theme,
		AutoRefreshQuote:   &autoRefresh,
		DefaultWorkoutType: &workoutType,
		WarningThreshold:   &threshold,
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Workouts.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	want := models.Settings{
		Theme:              "dark",
		AutoRefreshQuote:   false,
		ShowNotifications:  true,
		DefaultWorkoutType: models.WorkoutStrength,
		WarningThreshold:   90,
	}
	if settings != want {
		t.Errorf("settings = %+v, want %+v", settings, want)
	}

	if err := (&SettingsCmd{Reset: true}).Run(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if settings, _ := ctx.Workouts.GetSettings(); settings != models.DefaultSettings() {
		t.Errorf("reset settings = %+v", settings)
	}
}

func TestSettingsCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestDB(t)

	theme := "solarized"
	if err := (&SettingsCmd{Theme: &theme}).Run(ctx); !fterrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	threshold := 150
	if err := (&SettingsCmd{WarningThreshold: &threshold}).Run(ctx); !fterrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if settings, _ := ctx.Workouts.GetSettings(); settings != models.DefaultSettings() {
		t.Errorf("invalid update should not persist: %+v", settings)
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("output: %q", out.String())
	}
}
