package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/julianstephens/fittrack/internal/backup"
	"github.com/julianstephens/fittrack/internal/clock"
	"github.com/julianstephens/fittrack/internal/config"
	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/exercises"
	"github.com/julianstephens/fittrack/internal/keyring"
	"github.com/julianstephens/fittrack/internal/logger"
	"github.com/julianstephens/fittrack/internal/metrics"
	"github.com/julianstephens/fittrack/internal/models"
	"github.com/julianstephens/fittrack/internal/quotes"
	"github.com/julianstephens/fittrack/internal/retry"
	"github.com/julianstephens/fittrack/internal/storage"
	"github.com/julianstephens/fittrack/internal/storage/postgres"
	"github.com/julianstephens/fittrack/internal/storage/sqlite"
	"github.com/julianstephens/fittrack/internal/workouts"
)

// ErrFileBackupsUnsupported is returned by file backup commands on PostgreSQL
var ErrFileBackupsUnsupported = errors.New("file backups are only available for SQLite and JSON storage")

type Context struct {
	Config    config.Config
	Backend   storage.Backend
	Workouts  *workouts.Store
	Exercises *exercises.Client
	Quotes    *quotes.Client
	Metrics   *metrics.Manager
	Confirmer confirm.Confirmer
	Clock     clock.Clock
	Out       io.Writer

	ctx context.Context
}

// NewContext wires the stores and adapters for backend from cfg
func NewContext(ctx context.Context, cfg config.Config, backend storage.Backend, m *metrics.Manager, clk clock.Clock) (*Context, error) {
	if clk == nil {
		clk = clock.Real()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	apiKey, source := cfg.ExerciseAPIKey()
	logger.Debug("Exercise API key resolved", "source", string(source))

	return &Context{
		Config:  cfg,
		Backend: backend,
		Workouts: workouts.NewStore(backend, clk, workouts.Options{
			Location:    loc,
			BudgetBytes: cfg.Storage.BudgetBytes,
			Metrics:     m,
		}),
		Exercises: exercises.NewClient(exercises.Options{
			BaseURL:    cfg.Exercise.BaseURL,
			APIKey:     apiKey,
			Timeout:    cfg.Exercise.Timeout,
			CacheTTL:   cfg.Exercise.CacheTTL,
			MaxResults: cfg.Exercise.MaxResults,
			Clock:      clk,
			Metrics:    m,
		}),
		Quotes: quotes.NewClient(quotes.Options{
			BaseURL:  cfg.Quote.BaseURL,
			Timeout:  cfg.Quote.Timeout,
			CacheTTL: cfg.Quote.CacheTTL,
			Retry: retry.Policy{
				MaxAttempts: cfg.Quote.MaxRetries,
				Backoff:     retry.Linear(cfg.Quote.RetryBase),
			},
			Clock:    clk,
			Metrics:  m,
			Backend:  backend,
			Location: loc,
		}),
		Metrics:   m,
		Confirmer: confirm.Prompt{},
		Clock:     clk,
		Out:       os.Stdout,
		ctx:       ctx,
	}, nil
}

// Ctx returns the context commands should pass to blocking calls
func (c *Context) Ctx() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Notify prints a success notice unless notifications are turned off
func (c *Context) Notify(format string, args ...any) {
	settings, err := c.Workouts.GetSettings()
	if err == nil && !settings.ShowNotifications {
		return
	}
	c.Printf("✓ "+format+"\n", args...)
}

// Confirm asks for approval of action. yes skips the prompt.
func (c *Context) Confirm(action confirm.Action, prompt string, yes bool) (confirm.Token, error) {
	confirmer := c.Confirmer
	if yes {
		confirmer = confirm.AssumeYes
	}
	return confirm.Request(c.Ctx(), confirmer, action, prompt)
}

// Settings returns the stored settings, falling back to defaults on error
func (c *Context) Settings() models.Settings {
	settings, err := c.Workouts.GetSettings()
	if err != nil {
		logger.Warn("Failed to read settings", "error", err)
		return models.DefaultSettings()
	}
	return settings
}

// Location is the zone used for calendar dates
func (c *Context) Location() *time.Location {
	return c.Workouts.Location()
}

// Now is the current instant in Location
func (c *Context) Now() time.Time {
	return c.Clock.Now().In(c.Location())
}

// DataFile returns the path of a file-based backend
func (c *Context) DataFile() (string, error) {
	switch c.Backend.(type) {
	case *postgres.Store, *storage.MemoryStore:
		return "", ErrFileBackupsUnsupported
	}
	return c.Backend.GetConfigPath(), nil
}

// BackupManager returns a file backup manager for the data file
func (c *Context) BackupManager() (*backup.Manager, error) {
	path, err := c.DataFile()
	if err != nil {
		return nil, err
	}
	return backup.NewManager(path).WithClock(c.Clock).WithMaxBackups(c.Config.Backup.MaxBackups), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.Backup.Automatic {
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Close flushes metrics and releases the backend
func (c *Context) Close() error {
	var err error
	if c.Metrics != nil {
		err = multierr.Append(err, c.Metrics.WriteTextfile(c.Config.Metrics.TextfilePath))
	}
	if c.Backend != nil {
		err = multierr.Append(err, c.Backend.Close())
	}
	return err
}

// ResolveDatabase picks the backend location: the --db flag, then
// FITTRACK_DB_CONNECTION, then a connection string in the OS keyring, then
// the config file or default path.
func ResolveDatabase(flagValue string, cfg config.Config) (string, config.Source) {
	if flagValue != "" {
		return flagValue, config.SourceFlag
	}
	if v := os.Getenv(constants.DatabaseConnectionEnv); v != "" {
		return v, config.SourceEnv
	}
	if !cfg.Keyring.Disabled {
		if connStr, err := keyring.GetConnectionString(); err == nil && connStr != "" {
			return connStr, config.SourceKeyring
		}
	}
	return cfg.Database, config.SourceConfig
}

// OpenBackend chooses a backend from its location. postgres:// URLs and
// key=value DSNs select PostgreSQL, *.json a JSON file, anything else SQLite.
// Passwords are only accepted in connection strings read from the keyring or
// the environment.
func OpenBackend(location string, source config.Source) (storage.Backend, error) {
	if postgres.IsConnString(location) {
		if _, err := postgres.ValidateConnString(location); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) && (source == config.SourceKeyring || source == config.SourceEnv) {
				return postgres.New(location), nil
			}
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: use the OS keyring ('fittrack keyring set connection ...'), %s or .pgpass instead",
					err, constants.DatabaseConnectionEnv)
			}
			return nil, err
		}
		return postgres.New(location), nil
	}

	path, err := config.ExpandPath(location)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}
