package workouts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/models"
	wk "github.com/julianstephens/fittrack/internal/workouts"
)

type WorkoutListCmd struct {
	Type    string `short:"t" help:"Only show workouts of this type."`
	From    string `help:"Earliest date to include (YYYY-MM-DD)."`
	To      string `help:"Latest date to include (YYYY-MM-DD)."`
	Search  string `short:"s" help:"Match exercise name, notes or type."`
	Limit   int    `short:"l" help:"Maximum number of workouts to show (0 for all)."`
	ShowIDs bool   `help:"Show workout IDs." name:"show-ids"`
	JSON    bool   `help:"Print the matching workouts as JSON." name:"json"`
}

func (c *WorkoutListCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Workouts.GetAllWorkouts()
	if err != nil {
		return fmt.Errorf("failed to get workouts: %w", err)
	}

	var preds []wk.Predicate
	if c.Type != "" {
		preds = append(preds, wk.OfType(models.WorkoutType(c.Type)))
	}
	if c.From != "" || c.To != "" {
		preds = append(preds, wk.InDateRange(c.From, c.To))
	}
	if c.Search != "" {
		preds = append(preds, wk.MatchesQuery(c.Search))
	}
	matches := wk.Filter(all, preds...)
	if c.Limit > 0 && len(matches) > c.Limit {
		matches = matches[:c.Limit]
	}

	if c.JSON {
		data, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(data))
		return nil
	}

	if len(matches) == 0 {
		ctx.Println("No workouts found")
		return nil
	}

	ctx.Printf("Workouts (%d of %d):\n", len(matches), len(all))
	for _, w := range matches {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", w.ID)
		}
		ctx.Printf("  %s  %s%s - %d min, %d cal [%s]\n", w.Date, w.Exercise, idStr, w.Duration, w.Calories, w.Type)
		if w.Notes != "" {
			ctx.Printf("      %s\n", w.Notes)
		}
	}
	return nil
}

type WorkoutShowCmd struct {
	ID string `arg:"" help:"Workout ID."`
}

func (c *WorkoutShowCmd) Run(ctx *cli.Context) error {
	w, err := ctx.Workouts.GetWorkout(c.ID)
	if err != nil {
		return err
	}

	ctx.Printf("Exercise:  %s\n", w.Exercise)
	ctx.Printf("Type:      %s\n", w.Type)
	ctx.Printf("Date:      %s\n", w.Date)
	ctx.Printf("Duration:  %d min\n", w.Duration)
	ctx.Printf("Calories:  %d\n", w.Calories)
	if w.Notes != "" {
		ctx.Printf("Notes:     %s\n", w.Notes)
	}
	ctx.Printf("Logged:    %s\n", w.CreatedAt().In(ctx.Location()).Format("2006-01-02 15:04"))
	if w.LastModified > 0 {
		ctx.Printf("Modified:  %s\n", time.UnixMilli(w.LastModified).In(ctx.Location()).Format("2006-01-02 15:04"))
	}
	ctx.Printf("ID:        %s\n", w.ID)
	return nil
}
