package workouts

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/models"
	"github.com/julianstephens/fittrack/internal/validation"
)

type WorkoutLogCmd struct {
	Exercise string `arg:"" optional:"" help:"Exercise name. Omit to fill in a form."`
	Duration int    `short:"d" help:"Duration in minutes."`
	Calories int    `short:"c" help:"Calories burned."`
	Type     string `short:"t" help:"Workout type (cardio, strength, flexibility). Defaults to the configured type."`
	Notes    string `short:"n" help:"Optional notes."`
	Date     string `help:"Workout date (YYYY-MM-DD). Defaults to today."`
}

func (c *WorkoutLogCmd) Run(ctx *cli.Context) error {
	input := models.WorkoutInput{
		Exercise: c.Exercise,
		Duration: c.Duration,
		Calories: c.Calories,
		Type:     models.WorkoutType(c.Type),
		Notes:    c.Notes,
		Date:     c.Date,
	}
	if input.Type == "" {
		input.Type = ctx.Settings().DefaultWorkoutType
	}

	if c.Exercise == "" {
		if err := runWorkoutForm(ctx, &input); err != nil {
			return err
		}
	}

	w, err := ctx.Workouts.SaveWorkout(input)
	if err != nil {
		return fmt.Errorf("failed to save workout: %w", err)
	}

	ctx.Notify("Logged %s: %d min, %d cal (%s)", w.Exercise, w.Duration, w.Calories, w.Type)
	warnIfNearLimit(ctx)
	return nil
}

// runWorkoutForm collects input interactively, starting from its current values
func runWorkoutForm(ctx *cli.Context, input *models.WorkoutInput) error {
	duration := optionalInt(input.Duration)
	calories := optionalInt(input.Calories)
	workoutType := string(input.Type)

	typeOptions := make([]huh.Option[string], 0, len(constants.WorkoutTypes))
	for _, t := range constants.WorkoutTypes {
		typeOptions = append(typeOptions, huh.NewOption(t, t))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Exercise").
				Value(&input.Exercise).
				Validate(func(s string) error {
					if validation.SanitizeText(s, constants.MaxExerciseLen) == "" {
						return errors.New("exercise is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration (minutes)").
				Value(&duration).
				Validate(rangeValidator(constants.MinDuration, constants.MaxDuration)),
			huh.NewInput().
				Title("Calories").
				Value(&calories).
				Validate(rangeValidator(constants.MinCalories, constants.MaxCalories)),
			huh.NewSelect[string]().
				Title("Type").
				Options(typeOptions...).
				Value(&workoutType),
			huh.NewText().
				Title("Notes").
				CharLimit(constants.MaxNotesLen).
				Value(&input.Notes),
		),
	)
	if err := form.RunWithContext(ctx.Ctx()); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("cancelled")
		}
		return err
	}

	input.Duration, _ = strconv.Atoi(duration)
	input.Calories, _ = strconv.Atoi(calories)
	input.Type = models.WorkoutType(workoutType)
	return nil
}

func optionalInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func rangeValidator(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("must be a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func warnIfNearLimit(ctx *cli.Context) {
	stats, err := ctx.Workouts.StorageStats()
	if err != nil || !stats.NearLimit {
		return
	}
	ctx.Printf("⚠ Storage is %.0f%% full. Export and clear old workouts to free space.\n", stats.PercentUsed)
}
