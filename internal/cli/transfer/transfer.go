package transfer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
	fterrors "github.com/julianstephens/fittrack/internal/errors"
	"github.com/julianstephens/fittrack/internal/workouts"
)

type ExportCmd struct {
	Out string `short:"o" help:"Output file. Defaults to fittrack-export-<date>.json in the current directory. Use - for stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Workouts.Export()
	if err != nil {
		return fmt.Errorf("failed to export workouts: %w", err)
	}

	path := c.Out
	if path == "-" {
		ctx.Println(string(data))
		return nil
	}
	if path == "" {
		path = "fittrack-export-" + ctx.Now().Format(constants.DateFormat) + ".json"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	ctx.Notify("Exported workouts to %s", path)
	return nil
}

type ImportCmd struct {
	File    string `arg:"" help:"Export file to import." type:"existingfile"`
	Replace bool   `help:"Replace all stored workouts instead of merging."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt for --replace."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return &fterrors.ImportError{Reason: "failed to read import file", Cause: err}
	}

	mode := workouts.ImportMerge
	var token confirm.Token
	if c.Replace {
		mode = workouts.ImportReplace
		token, err = ctx.Confirm(confirm.ImportReplace, "Replace ALL stored workouts with the contents of "+filepath.Base(c.File)+"?", c.Yes)
		if errors.Is(err, confirm.ErrDeclined) {
			ctx.Println("Import cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
		// Keep a way back from a replace
		if _, err := ctx.Workouts.CreateBackup(); err != nil {
			return fmt.Errorf("failed to back up workouts before replace: %w", err)
		}
	}

	result, err := ctx.Workouts.Import(data, mode, token)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	ctx.Notify("Imported %d workouts (%d total)", result.Imported, result.Total)
	if result.Rejected > 0 {
		ctx.Printf("⚠ Skipped %d invalid records\n", result.Rejected)
		if result.Errors != nil {
			ctx.Printf("   %v\n", result.Errors)
		}
	}
	if result.Reassigned > 0 {
		ctx.Printf("⚠ %d records had ids already in use and were given new ones\n", result.Reassigned)
	}
	return nil
}
