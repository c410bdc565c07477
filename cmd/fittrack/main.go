package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/cli/backups"
	"github.com/julianstephens/fittrack/internal/cli/exercises"
	"github.com/julianstephens/fittrack/internal/cli/quotes"
	"github.com/julianstephens/fittrack/internal/cli/settings"
	"github.com/julianstephens/fittrack/internal/cli/stats"
	"github.com/julianstephens/fittrack/internal/cli/system"
	"github.com/julianstephens/fittrack/internal/cli/transfer"
	"github.com/julianstephens/fittrack/internal/cli/workouts"
	"github.com/julianstephens/fittrack/internal/config"
	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
	fterrors "github.com/julianstephens/fittrack/internal/errors"
	"github.com/julianstephens/fittrack/internal/logger"
	"github.com/julianstephens/fittrack/internal/metrics"
)

var CLI struct {
	Version     kong.VersionFlag
	ConfigDir   string `help:"Directory holding config.toml, logs and the default database." type:"path" default:"${config_dir}"`
	DB          string `help:"SQLite file, .json file or PostgreSQL connection string. Passwords must NOT be embedded here; use the OS keyring, FITTRACK_DB_CONNECTION or .pgpass." name:"db"`
	Debug       bool   `help:"Log debug output to stderr."`
	MetricsFile string `help:"Write Prometheus metrics to this file on exit." type:"path"`
	AssumeYes   bool   `help:"Answer yes to every confirmation prompt."`

	Init    system.InitCmd    `cmd:"" help:"Initialize fittrack storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database and data migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Log    workouts.WorkoutLogCmd    `cmd:"" help:"Log a workout."`
	List   workouts.WorkoutListCmd   `cmd:"" help:"List workouts."`
	Show   workouts.WorkoutShowCmd   `cmd:"" help:"Show a workout."`
	Edit   workouts.WorkoutEditCmd   `cmd:"" help:"Edit a workout."`
	Delete workouts.WorkoutDeleteCmd `cmd:"" help:"Delete a workout."`
	Clear  workouts.WorkoutClearCmd  `cmd:"" help:"Delete all workouts."`

	Export transfer.ExportCmd `cmd:"" help:"Export workouts to a JSON file."`
	Import transfer.ImportCmd `cmd:"" help:"Import workouts from a JSON export."`

	Stats     stats.StatsCmd         `cmd:"" help:"Show workout statistics."`
	Exercises exercises.ExercisesCmd `cmd:"" help:"Suggest exercises for muscle groups."`
	Quote     quotes.QuoteCmd        `cmd:"" help:"Show a motivational quote."`
	Settings  settings.SettingsCmd   `cmd:"" help:"Manage application settings."`

	Backup struct {
		Create          backups.BackupCreateCmd    `cmd:"" help:"Create a manual backup." default:"1"`
		List            backups.BackupListCmd      `cmd:"" help:"List available backups."`
		Restore         backups.BackupRestoreCmd   `cmd:"" help:"Restore from a backup file."`
		Snapshot        backups.SnapshotCmd        `cmd:"" help:"Save an in-store snapshot of workouts and settings."`
		RestoreSnapshot backups.SnapshotRestoreCmd `cmd:"" help:"Restore the in-store snapshot."`
	} `cmd:"" help:"Manage backups."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string or API key in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show a stored secret (masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a stored secret."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal workout tracker with stats, exercise ideas and motivation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version, "config_dir": constants.DefaultConfigDir},
	)

	fterrors.Fatal(run(kctx))
}

func run(kctx *kong.Context) (err error) {
	cfg, err := config.Load(CLI.ConfigDir)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{
		Debug:      CLI.Debug,
		ConfigDir:  cfg.Dir(),
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()
	if CLI.MetricsFile != "" {
		cfg.Metrics.TextfilePath = CLI.MetricsFile
	}

	location, source := cli.ResolveDatabase(CLI.DB, cfg)
	backend, err := cli.OpenBackend(location, source)
	if err != nil {
		return err
	}
	logger.Debug("Storage selected", "source", string(source), "path", backend.GetConfigPath())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := metrics.NewManager(constants.MetricsNamespace, "", metrics.SetupPrometheus())
	appCtx, err := cli.NewContext(ctx, cfg, backend, m, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := appCtx.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if CLI.AssumeYes {
		appCtx.Confirmer = confirm.AssumeYes
	}

	if needsStorage(kctx.Command()) {
		if err := backend.Load(); err != nil {
			return err
		}
	}

	return kctx.Run(appCtx)
}

// needsStorage reports whether command expects an initialized backend.
// init and doctor handle loading themselves; keyring never touches storage.
func needsStorage(command string) bool {
	name, _, _ := strings.Cut(command, " ")
	switch name {
	case "init", "doctor", "keyring":
		return false
	}
	return true
}
