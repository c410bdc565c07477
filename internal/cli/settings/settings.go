package settings

import (
	"fmt"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/models"
)

type SettingsCmd struct {
	List  bool `help:"List current settings."`
	Reset bool `help:"Restore the default settings."`

	Theme              *string `help:"Color theme (light or dark)."`
	AutoRefreshQuote   *bool   `help:"Refresh the dashboard quote every 10 minutes."`
	ShowNotifications  *bool   `help:"Print a notice after each change."`
	DefaultWorkoutType *string `help:"Type preselected when logging a workout."`
	WarningThreshold   *int    `help:"Storage warning threshold, percent of the budget."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Workouts.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Theme:                %s\n", settings.Theme)
		ctx.Printf("  Auto Refresh Quote:   %v\n", settings.AutoRefreshQuote)
		ctx.Printf("  Show Notifications:   %v\n", settings.ShowNotifications)
		ctx.Printf("  Default Workout Type: %s\n", settings.DefaultWorkoutType)
		ctx.Printf("  Warning Threshold:    %d%%\n", settings.WarningThreshold)
		return nil
	}

	updated := false
	if c.Reset {
		settings = models.DefaultSettings()
		updated = true
	}
	if c.Theme != nil {
		settings.Theme = *c.Theme
		updated = true
	}
	if c.AutoRefreshQuote != nil {
		settings.AutoRefreshQuote = *c.AutoRefreshQuote
		updated = true
	}
	if c.ShowNotifications != nil {
		settings.ShowNotifications = *c.ShowNotifications
		updated = true
	}
	if c.DefaultWorkoutType != nil {
		settings.DefaultWorkoutType = models.WorkoutType(*c.DefaultWorkoutType)
		updated = true
	}
	if c.WarningThreshold != nil {
		settings.WarningThreshold = *c.WarningThreshold
		updated = true
	}

	if updated {
		if err := ctx.Workouts.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
