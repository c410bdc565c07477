// Package config loads fittrack settings from config.toml and FITTRACK_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/keyring"
	"github.com/julianstephens/fittrack/internal/logger"
)

type Config struct {
	// Database is a SQLite file path, a .json file path, or a postgres:// DSN
	Database string          `toml:"database"`
	Timezone string          `toml:"timezone"`
	Storage  StorageConfig   `toml:"storage"`
	Exercise ExerciseConfig  `toml:"exercises"`
	Quote    QuoteConfig     `toml:"quotes"`
	Backup   BackupConfig    `toml:"backup"`
	Metrics  MetricsConfig   `toml:"metrics"`
	Keyring  KeyringSettings `toml:"keyring"`
	Log      LogConfig       `toml:"log"`

	dir string
}

type StorageConfig struct {
	BudgetBytes int `toml:"budget_bytes"`
}

type ExerciseConfig struct {
	BaseURL    string        `toml:"base_url"`
	APIKey     string        `toml:"api_key"`
	Timeout    time.Duration `toml:"timeout"`
	CacheTTL   time.Duration `toml:"cache_ttl"`
	MaxResults int           `toml:"max_results"`
}

type QuoteConfig struct {
	BaseURL    string        `toml:"base_url"`
	Timeout    time.Duration `toml:"timeout"`
	CacheTTL   time.Duration `toml:"cache_ttl"`
	MaxRetries int           `toml:"max_retries"`
	RetryBase  time.Duration `toml:"retry_base"`
}

type BackupConfig struct {
	Automatic  bool `toml:"automatic"`
	MaxBackups int  `toml:"max_backups"`
}

type MetricsConfig struct {
	TextfilePath string `toml:"textfile_path"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type KeyringSettings struct {
	Disabled bool `toml:"disabled"`
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) Config {
	return Config{
		Database: filepath.Join(dir, constants.DefaultDBName),
		Storage:  StorageConfig{BudgetBytes: constants.StorageBudgetBytes},
		Exercise: ExerciseConfig{
			BaseURL:    "https://api.api-ninjas.com/v1/exercises",
			Timeout:    10 * time.Second,
			CacheTTL:   5 * time.Minute,
			MaxResults: 6,
		},
		Quote: QuoteConfig{
			BaseURL:    "https://api.quotable.io",
			Timeout:    8 * time.Second,
			CacheTTL:   10 * time.Minute,
			MaxRetries: 3,
			RetryBase:  time.Second,
		},
		Backup: BackupConfig{Automatic: true, MaxBackups: constants.MaxBackups},
		Log:    LogConfig{Level: "warn", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
		dir:    dir,
	}
}

// Load reads <dir>/config.toml over the defaults, then applies environment
// overrides. A missing file is not an error.
func Load(dir string) (Config, error) {
	dir, err := ExpandPath(dir)
	if err != nil {
		return Config{}, err
	}
	cfg := Default(dir)

	path := filepath.Join(dir, constants.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			logger.Warn("Unknown config keys ignored", "path", path, "keys", fmt.Sprint(undecoded))
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.dir = dir
	if cfg.Database, err = ExpandPath(cfg.Database); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Database = getEnv(constants.DatabaseConnectionEnv, c.Database)
	c.Timezone = getEnv(env("TIMEZONE"), c.Timezone)
	c.Storage.BudgetBytes = getIntEnv(env("STORAGE_BUDGET_BYTES"), c.Storage.BudgetBytes)

	c.Exercise.BaseURL = getEnv(env("EXERCISE_BASE_URL"), c.Exercise.BaseURL)
	c.Exercise.Timeout = getDurationEnv(env("EXERCISE_TIMEOUT"), c.Exercise.Timeout)
	c.Exercise.CacheTTL = getDurationEnv(env("EXERCISE_CACHE_TTL"), c.Exercise.CacheTTL)
	c.Exercise.MaxResults = getIntEnv(env("EXERCISE_MAX_RESULTS"), c.Exercise.MaxResults)

	c.Quote.BaseURL = getEnv(env("QUOTE_BASE_URL"), c.Quote.BaseURL)
	c.Quote.Timeout = getDurationEnv(env("QUOTE_TIMEOUT"), c.Quote.Timeout)
	c.Quote.CacheTTL = getDurationEnv(env("QUOTE_CACHE_TTL"), c.Quote.CacheTTL)
	c.Quote.MaxRetries = getIntEnv(env("QUOTE_MAX_RETRIES"), c.Quote.MaxRetries)
	c.Quote.RetryBase = getDurationEnv(env("QUOTE_RETRY_BASE"), c.Quote.RetryBase)

	c.Backup.Automatic = getBoolEnv(env("BACKUP_AUTOMATIC"), c.Backup.Automatic)
	c.Backup.MaxBackups = getIntEnv(env("BACKUP_MAX"), c.Backup.MaxBackups)
	c.Metrics.TextfilePath = getEnv(env("METRICS_FILE"), c.Metrics.TextfilePath)
	c.Keyring.Disabled = getBoolEnv(env("KEYRING_DISABLED"), c.Keyring.Disabled)
	c.Log.Level = getEnv(env("LOG_LEVEL"), c.Log.Level)
}

// Dir returns the configuration directory the config was loaded from.
func (c Config) Dir() string {
	return c.dir
}

// Location resolves Timezone, defaulting to the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Source names where a secret was found.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceKeyring Source = "keyring"
	SourceEnv     Source = "environment"
	SourceConfig  Source = "config file"
	SourceNone    Source = "none"
)

// ExerciseAPIKey resolves the exercise API key from the OS keyring, then
// FITTRACK_EXERCISE_API_KEY, then the config file.
func (c Config) ExerciseAPIKey() (string, Source) {
	if !c.Keyring.Disabled {
		key, err := keyring.GetAPIKey()
		switch {
		case err == nil && key != "":
			return key, SourceKeyring
		case err != nil && !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup failed", "error", err)
		}
	}
	if key := strings.TrimSpace(os.Getenv(constants.ExerciseAPIKeyEnv)); key != "" {
		return key, SourceEnv
	}
	if key := strings.TrimSpace(c.Exercise.APIKey); key != "" {
		return key, SourceConfig
	}
	return "", SourceNone
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func env(name string) string {
	return constants.EnvPrefix + name
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		logger.Warn("Ignoring invalid integer in environment", "key", key)
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		logger.Warn("Ignoring invalid duration in environment", "key", key)
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		logger.Warn("Ignoring invalid boolean in environment", "key", key)
	}
	return fallback
}

const template = `# fittrack configuration
#
# database may be a SQLite file, a .json file or a PostgreSQL connection
# string without a password (use the keyring or FITTRACK_DB_CONNECTION).
# database = "~/.config/fittrack/fittrack.db"
# timezone = "Local"

[storage]
# budget_bytes = 5242880

[exercises]
# The API key is read from the OS keyring, then FITTRACK_EXERCISE_API_KEY,
# then this file.
# api_key = ""
# base_url = "https://api.api-ninjas.com/v1/exercises"
# timeout = "10s"
# cache_ttl = "5m"
# max_results = 6

[quotes]
# base_url = "https://api.quotable.io"
# timeout = "8s"
# cache_ttl = "10m"
# max_retries = 3
# retry_base = "1s"

[backup]
# automatic = true
# max_backups = 14

[metrics]
# textfile_path = ""

[keyring]
# disabled = false

[log]
# level = "warn"
# max_size_mb = 10
# max_backups = 3
# max_age_days = 28
`

// WriteTemplate creates a commented config.toml in dir unless one exists.
// It reports whether a file was written.
func WriteTemplate(dir string) (string, bool, error) {
	path := filepath.Join(dir, constants.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return path, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return path, false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(template), 0600); err != nil {
		return path, false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, true, nil
}
