package workouts

import (
	"fmt"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/models"
)

type WorkoutEditCmd struct {
	ID       string  `arg:"" help:"Workout ID to edit."`
	Exercise *string `help:"New exercise name."`
	Duration *int    `short:"d" help:"New duration in minutes."`
	Calories *int    `short:"c" help:"New calories burned."`
	Type     *string `short:"t" help:"New workout type."`
	Notes    *string `short:"n" help:"New notes. An empty value keeps the current notes."`
	Date     *string `help:"New date (YYYY-MM-DD)."`
}

func (c *WorkoutEditCmd) Run(ctx *cli.Context) error {
	w, err := ctx.Workouts.GetWorkout(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find workout with ID %s: %w", c.ID, err)
	}

	input := models.WorkoutInput{
		Exercise: w.Exercise,
		Duration: w.Duration,
		Calories: w.Calories,
		Type:     w.Type,
	}
	changed := false
	if c.Exercise != nil {
		input.Exercise = *c.Exercise
		changed = true
	}
	if c.Duration != nil {
		input.Duration = *c.Duration
		changed = true
	}
	if c.Calories != nil {
		input.Calories = *c.Calories
		changed = true
	}
	if c.Type != nil {
		input.Type = models.WorkoutType(*c.Type)
		changed = true
	}
	if c.Notes != nil {
		input.Notes = *c.Notes
		changed = true
	}
	if c.Date != nil {
		input.Date = *c.Date
		changed = true
	}

	if !changed {
		ctx.Println("No changes specified. Use flags such as --duration or --notes to edit the workout.")
		return nil
	}

	updated, err := ctx.Workouts.UpdateWorkout(c.ID, input)
	if err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}
	ctx.Notify("Updated %s (ID: %s)", updated.Exercise, updated.ID)
	return nil
}
