package models

import "github.com/julianstephens/fittrack/internal/constants"

// Settings represents user preferences persisted alongside the workouts
type Settings struct {
	Theme              string      `json:"theme"`              // light or dark
	AutoRefreshQuote   bool        `json:"autoRefreshQuote"`   // refresh the quote panel periodically
	ShowNotifications  bool        `json:"showNotifications"`  // print success notices after mutations
	DefaultWorkoutType WorkoutType `json:"defaultWorkoutType"` // preselected type when logging
	WarningThreshold   int         `json:"warningThreshold"`   // storage warning, percent of budget
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{
		Theme:              constants.DefaultTheme,
		AutoRefreshQuote:   constants.DefaultAutoRefreshQuote,
		ShowNotifications:  constants.DefaultShowNotifications,
		DefaultWorkoutType: WorkoutType(constants.DefaultWorkoutType),
		WarningThreshold:   constants.DefaultWarningThreshold,
	}
}
