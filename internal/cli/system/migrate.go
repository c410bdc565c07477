package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/migration"
)

// migrator is implemented by backends with a versioned SQL schema
type migrator interface {
	Migrate(ctx context.Context) (migration.Result, error)
	PendingMigrations() (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if m, ok := ctx.Backend.(migrator); ok {
		res, err := m.Migrate(ctx.Ctx())
		for _, applied := range res.Applied {
			ctx.Printf("  ✓ Migration %d applied: %s\n", applied.Version, applied.Name)
		}
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		if len(res.Applied) == 0 {
			ctx.Println("No migrations to apply. Database is up to date.")
		} else {
			ctx.Printf("\nSuccessfully applied %d migration(s) in %v (schema %d -> %d).\n",
				len(res.Applied), res.Elapsed.Round(time.Millisecond), res.From, res.To)
		}
	}

	before, err := ctx.Workouts.SchemaVersion()
	if err != nil {
		return err
	}
	// reading the collection upgrades older data in place
	if _, err := ctx.Workouts.GetAllWorkouts(); err != nil {
		return fmt.Errorf("failed to migrate workout data: %w", err)
	}
	if before != "" && before != constants.SchemaVersion {
		ctx.Printf("Migrated workout data from version %s to %s.\n", before, constants.SchemaVersion)
	} else {
		ctx.Printf("Workout data is at version %s.\n", constants.SchemaVersion)
	}
	return nil
}
