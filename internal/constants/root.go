package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateWorkouts SessionState = iota
	StateStats
	StateExercises
	StateQuote
	StateSettings
	StateLogWorkout
	StateConfirm
)

// MainViews is the tab order of the TUI
var MainViews = []SessionState{StateWorkouts, StateStats, StateExercises, StateQuote, StateSettings}

const (
	AppName            = "fittrack"
	DefaultKeyringUser = "database-connection"
	APIKeyKeyringUser  = "exercise-api-key"
	DefaultConfigDir   = "~/.config/fittrack"
	DefaultDBName      = "fittrack.db"
	ConfigFileName     = "config.toml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Storage keys
	WorkoutsKey      = "fittrack_workouts"
	VersionKey       = "fittrack_version"
	SettingsKey      = "fittrack_settings"
	BackupKey        = "fittrack_backup"
	QuoteOfDayPrefix = "qotd_"

	// SchemaVersion is the current shape of the persisted workout collection
	SchemaVersion = "2.0"

	// Storage budget
	StorageBudgetBytes = 5 * 1024 * 1024

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "fittrack-"
	BackupFileSuffix = ".db"

	// Workout limits
	MaxExerciseLen = 100
	MaxNotesLen    = 500
	MinDuration    = 1
	MaxDuration    = 500
	MinCalories    = 1
	MaxCalories    = 10000

	// Workout types
	WorkoutTypeCardio      = "cardio"
	WorkoutTypeStrength    = "strength"
	WorkoutTypeFlexibility = "flexibility"

	// Themes
	ThemeLight = "light"
	ThemeDark  = "dark"

	// Default settings
	DefaultTheme              = ThemeLight
	DefaultAutoRefreshQuote   = true
	DefaultShowNotifications  = true
	DefaultWorkoutType        = WorkoutTypeCardio
	DefaultWarningThreshold   = 80
	WeeklyWorkoutGoal         = 5
	NoneLabel                 = "None"
	NotAvailableLabel         = "N/A"
	EnvPrefix                 = "FITTRACK_"
	ExerciseAPIKeyEnv         = "FITTRACK_EXERCISE_API_KEY"
	DatabaseConnectionEnv     = "FITTRACK_DB_CONNECTION"
	MetricsNamespace          = "fittrack"
	ConfirmClearAllPrompt     = "Delete ALL workouts? This action cannot be undone!"
	ConfirmRestoreBackupTitle = "Restore backup? This will replace all current data!"
)

// WorkoutTypes lists the accepted workout types in display order.
var WorkoutTypes = []string{WorkoutTypeCardio, WorkoutTypeStrength, WorkoutTypeFlexibility}
