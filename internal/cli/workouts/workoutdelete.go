package workouts

import (
	"errors"
	"fmt"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
)

type WorkoutDeleteCmd struct {
	ID string `arg:"" help:"Workout ID to delete."`
}

func (c *WorkoutDeleteCmd) Run(ctx *cli.Context) error {
	w, err := ctx.Workouts.GetWorkout(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find workout with ID %s: %w", c.ID, err)
	}

	if _, err := ctx.Workouts.DeleteWorkout(c.ID); err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}

	ctx.Notify("Deleted workout: %s (ID: %s)", w.Exercise, c.ID)
	return nil
}

type WorkoutClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *WorkoutClearCmd) Run(ctx *cli.Context) error {
	token, err := ctx.Confirm(confirm.ClearAll, constants.ConfirmClearAllPrompt, c.Yes)
	if errors.Is(err, confirm.ErrDeclined) {
		ctx.Println("Clear cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := ctx.Workouts.ClearAllWorkouts(token); err != nil {
		return fmt.Errorf("failed to clear workouts: %w", err)
	}
	ctx.Notify("All workouts cleared")
	return nil
}
