package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/config"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing data file before initialization."`
	Source string `help:"Data file or connection string to copy existing data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Backend.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized fittrack storage at: %s\n", ctx.Backend.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		n, err := copyData(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("  Copied %d items\n", n)
	}

	// stamps the schema version, or migrates copied data
	if _, err := ctx.Workouts.GetAllWorkouts(); err != nil {
		return fmt.Errorf("failed to initialize workout data: %w", err)
	}

	if dir := ctx.Config.Dir(); dir != "" {
		path, written, err := config.WriteTemplate(dir)
		if err != nil {
			return err
		}
		if written {
			ctx.Printf("Wrote default configuration to: %s\n", path)
		}
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dataPath, err := ctx.DataFile()
	if err != nil {
		return fmt.Errorf("--force: %w", err)
	}
	if c.Source != "" {
		absData, err := filepath.Abs(dataPath)
		if err == nil {
			dataPath = absData
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dataPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dataPath)
		}
	}

	if _, err := os.Stat(dataPath); err == nil {
		if err := ctx.Backend.Close(); err != nil {
			return fmt.Errorf("failed to close existing data file: %w", err)
		}
		if err := os.Remove(dataPath); err != nil {
			return fmt.Errorf("failed to delete existing data file: %w", err)
		}
		ctx.Printf("Deleted existing data file at: %s\n", dataPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing data file: %w", err)
	}
	return nil
}

// copyData copies every key from the source backend into the current one
func copyData(ctx *cli.Context, source string) (int, error) {
	src, err := cli.OpenBackend(source, config.SourceFlag)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source items: %w", err)
	}
	for _, key := range keys {
		value, ok, err := src.GetItem(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := ctx.Backend.SetItem(key, value); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return len(keys), nil
}
