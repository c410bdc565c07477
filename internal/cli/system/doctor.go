package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/config"
	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/validation"
)

type DoctorCmd struct{}

// skippedError marks a check that does not apply to the current setup
type skippedError struct {
	reason string
}

func (e skippedError) Error() string { return e.reason }

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(*cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	if err := checkStorageReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
		dbReachable = true
	}

	checks := []check{
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Data validation", needsDB: true, run: checkValidation},
		{name: "Storage usage", needsDB: true, warnOnly: true, run: checkStorageUsage},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Exercise API key", warnOnly: true, run: checkAPIKey},
		{name: "Clock/timezone", run: checkClockTimezone},
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		var skipped skippedError
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &skipped):
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", c.name, skipped.reason)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Backend.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Backend.Keys(); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	if m, ok := ctx.Backend.(migrator); ok {
		pending, err := m.PendingMigrations()
		if err != nil {
			return fmt.Errorf("failed to check database schema: %w", err)
		}
		if pending > 0 {
			return fmt.Errorf("%d pending migration(s), run 'fittrack migrate'", pending)
		}
	}

	version, err := ctx.Workouts.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read data version: %w", err)
	}
	if version != "" && version != constants.SchemaVersion {
		return fmt.Errorf("workout data is at version %s, expected %s (run 'fittrack migrate')", version, constants.SchemaVersion)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	if _, err := ctx.Workouts.GetSettings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	all, err := ctx.Workouts.GetAllWorkouts()
	if err != nil {
		return fmt.Errorf("failed to get workouts: %w", err)
	}
	result := validation.ValidateCollection(all, ctx.Now())
	if result.HasConflicts() {
		return errors.New(strings.TrimSpace(result.FormatReport()))
	}
	return nil
}

func checkStorageUsage(ctx *cli.Context) error {
	st, err := ctx.Workouts.StorageStats()
	if err != nil {
		return err
	}
	if st.NearLimit {
		return fmt.Errorf("storage is %.2f%% of the %d byte budget; export and clear old workouts", st.PercentUsed, ctx.Config.Storage.BudgetBytes)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if errors.Is(err, cli.ErrFileBackupsUnsupported) {
		return skippedError{reason: "no local data file"}
	}
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'fittrack backup create'")
	}
	return nil
}

func checkAPIKey(ctx *cli.Context) error {
	if ctx.Exercises.IsConfigured() {
		return nil
	}
	if _, source := ctx.Config.ExerciseAPIKey(); source != config.SourceNone {
		return nil
	}
	return fmt.Errorf("no exercise API key; built-in suggestions will be shown. Set one with 'fittrack keyring set api-key <key>' or %s", constants.ExerciseAPIKeyEnv)
}

func checkClockTimezone(ctx *cli.Context) error {
	if _, err := ctx.Config.Location(); err != nil {
		return err
	}
	now := ctx.Clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
