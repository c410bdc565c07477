package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
	fterrors "github.com/julianstephens/fittrack/internal/errors"
	"github.com/julianstephens/fittrack/internal/logger"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), ctx.Config.Backup.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		ctx.Printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	backupPath, err := resolveBackupPath(c.BackupFile, mgr.GetBackupDir())
	if err != nil {
		return err
	}

	ctx.Println("⚠️  WARNING: This will replace your current data file with the backup.")
	ctx.Println("⚠️  IMPORTANT: All fittrack processes (including the TUI) must be stopped before restore.")
	ctx.Println("A backup of your current data will be created before restoring.")
	ctx.Printf("\nRestore from: %s\n", backupPath)

	token, err := ctx.Confirm(confirm.RestoreFile, "Restore from "+filepath.Base(backupPath)+"?", c.Yes)
	if errors.Is(err, confirm.ErrDeclined) {
		ctx.Println("Restore cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	// Close the current store connection before restoring
	if err := ctx.Backend.Close(); err != nil {
		logger.Warn("Failed to close storage before restore", "error", err)
	}

	current, err := mgr.RestoreBackup(backupPath, token)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Println("✓ Data restored successfully!")
	if current != "" {
		ctx.Printf("  Previous data saved as %s\n", filepath.Base(current))
	}
	return nil
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory, or a file name inside the backup directory
func resolveBackupPath(name, backupDir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(backupDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}

// SnapshotCmd copies the workouts and settings into the in-store backup slot
type SnapshotCmd struct{}

func (c *SnapshotCmd) Run(ctx *cli.Context) error {
	at, err := ctx.Workouts.CreateBackup()
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}
	ctx.Notify("Snapshot saved at %s", at.In(ctx.Location()).Format("2006-01-02 15:04:05"))
	return nil
}

type SnapshotRestoreCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *SnapshotRestoreCmd) Run(ctx *cli.Context) error {
	at, err := ctx.Workouts.BackupInfo()
	if fterrors.IsNotFound(err) {
		return errors.New("no snapshot found. Use 'fittrack backup snapshot' to create one")
	}
	if err != nil {
		return err
	}
	ctx.Printf("Snapshot from %s\n", at.In(ctx.Location()).Format("2006-01-02 15:04:05"))

	token, err := ctx.Confirm(confirm.RestoreBackup, constants.ConfirmRestoreBackupTitle, c.Yes)
	if errors.Is(err, confirm.ErrDeclined) {
		ctx.Println("Restore cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := ctx.Workouts.RestoreBackup(token); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	ctx.Notify("Snapshot restored")
	return nil
}
