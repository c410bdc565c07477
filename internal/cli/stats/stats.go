package stats

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/models"
	"github.com/julianstephens/fittrack/internal/stats"
)

type StatsCmd struct {
	Trend       bool `help:"Compare this week with last week."`
	Daily       bool `help:"Show the last 7 days."`
	Records     bool `help:"Show personal records."`
	Types       bool `help:"Show this week's totals per workout type."`
	Storage     bool `help:"Show storage usage."`
	CalorieGoal int  `help:"Measure this week's calories against a goal." name:"calorie-goal"`
	JSON        bool `help:"Print the summary as JSON." name:"json"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Workouts.GetAllWorkouts()
	if err != nil {
		return fmt.Errorf("failed to get workouts: %w", err)
	}
	now := ctx.Now()
	summary := stats.Compute(all, now)

	if c.JSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Println("This Week:")
	ctx.Printf("  Workouts:       %d\n", summary.TotalWorkouts)
	ctx.Printf("  Calories:       %d\n", summary.TotalCalories)
	ctx.Printf("  Duration:       %d min\n", summary.TotalDuration)
	ctx.Printf("  Avg Duration:   %d min\n", summary.AvgDuration)
	ctx.Printf("  Avg Calories:   %d\n", summary.AvgCalories)
	ctx.Printf("  Top Exercise:   %s\n", summary.TopExercise)
	goal := summary.WeeklyGoalProgress
	ctx.Printf("  Weekly Goal:    %d/%d (%d%%)%s\n", goal.Current, goal.Goal, goal.Percentage, achieved(goal.Achieved))

	ctx.Println("\nThis Month:")
	ctx.Printf("  Workouts:       %d\n", summary.MonthlyWorkouts)
	ctx.Printf("  Calories:       %d\n", summary.MonthlyCalories)
	ctx.Printf("  Duration:       %d min\n", summary.MonthlyDuration)
	ctx.Printf("  Avg Duration:   %d min\n", summary.MonthlyAvgDuration)
	ctx.Printf("  Avg Calories:   %d\n", summary.MonthlyAvgCalories)

	ctx.Println("\nAll Time:")
	ctx.Printf("  Workouts:       %d\n", summary.AllTimeWorkouts)
	ctx.Printf("  Calories:       %d\n", summary.AllTimeCalories)
	ctx.Printf("  Duration:       %d min\n", summary.AllTimeDuration)
	ctx.Printf("  Avg Duration:   %d min\n", summary.AllTimeAvgDuration)
	ctx.Printf("  Avg Calories:   %d\n", summary.AllTimeAvgCalories)
	ctx.Printf("  Best Day:       %s\n", summary.MostProductiveDay)
	ctx.Printf("  Current Streak: %d days\n", summary.CurrentStreak)

	if c.Trend {
		printTrend(ctx, stats.WeeklyTrend(all, now))
	}
	if c.Daily {
		printDaily(ctx, stats.DailyBreakdown(all, now))
	}
	if c.Records {
		printRecords(ctx, stats.PersonalRecords(all))
	}
	if c.Types {
		printDistribution(ctx, summary.TypeDistribution)
	}
	if c.CalorieGoal != 0 {
		p := stats.CalorieGoal(stats.ThisWeek(all, now), c.CalorieGoal)
		ctx.Println("\nCalorie Goal:")
		ctx.Printf("  %d/%d (%d%%), %d remaining%s\n", p.Current, p.Goal, p.Percentage, p.Remaining, achieved(p.Achieved))
	}
	if c.Storage {
		st, err := ctx.Workouts.StorageStats()
		if err != nil {
			return fmt.Errorf("failed to get storage stats: %w", err)
		}
		ctx.Println("\nStorage:")
		ctx.Printf("  Workouts:       %d (%.2f KB)\n", st.TotalWorkouts, st.SizeKB)
		ctx.Printf("  Total:          %.2f KB (%.2f%% of budget)\n", st.TotalStorageKB, st.PercentUsed)
		ctx.Printf("  Range:          %s to %s\n", st.OldestWorkout, st.NewestWorkout)
		if st.NearLimit {
			ctx.Println("  ⚠ Storage is nearly full")
		}
	}
	return nil
}

func achieved(ok bool) string {
	if ok {
		return " ✓"
	}
	return ""
}

func printTrend(ctx *cli.Context, t stats.Trend) {
	arrow := map[string]string{stats.TrendUp: "↑", stats.TrendDown: "↓", stats.TrendStable: "→"}[t.Trending]
	ctx.Println("\nWeekly Trend:")
	ctx.Printf("  This week:      %d workouts, %d cal\n", t.ThisWeek.Workouts, t.ThisWeek.Calories)
	ctx.Printf("  Last week:      %d workouts, %d cal\n", t.LastWeek.Workouts, t.LastWeek.Calories)
	ctx.Printf("  Change:         %s %+d cal (%+d%%)\n", arrow, t.Change.Calories, t.Change.PercentChange)
}

func printDaily(ctx *cli.Context, days []stats.Day) {
	ctx.Println("\nLast 7 Days:")
	for _, d := range days {
		ctx.Printf("  %s %s  %d workouts, %d cal, %d min\n", d.DayName, d.Date, d.Workouts, d.Calories, d.Duration)
	}
}

func printRecords(ctx *cli.Context, r stats.Records) {
	ctx.Println("\nPersonal Records:")
	ctx.Printf("  Longest:        %s\n", describe(r.LongestWorkout, func(w *models.Workout) string {
		return fmt.Sprintf("%s, %d min on %s", w.Exercise, w.Duration, w.Date)
	}))
	ctx.Printf("  Most Calories:  %s\n", describe(r.MostCalories, func(w *models.Workout) string {
		return fmt.Sprintf("%s, %d cal on %s", w.Exercise, w.Calories, w.Date)
	}))
	ctx.Printf("  Busiest Day:    %d workouts\n", r.MostWorkoutsInDay)
	ctx.Printf("  Longest Streak: %d days\n", r.LongestStreak)
}

func describe(w *models.Workout, f func(*models.Workout) string) string {
	if w == nil {
		return constants.NoneLabel
	}
	return f(w)
}

func printDistribution(ctx *cli.Context, dist map[models.WorkoutType]stats.Totals) {
	ctx.Println("\nBy Type (this week):")
	for _, t := range []models.WorkoutType{models.WorkoutCardio, models.WorkoutStrength, models.WorkoutFlexibility} {
		d := dist[t]
		ctx.Printf("  %-12s    %d workouts, %d cal, %d min\n", t, d.Count, d.Calories, d.Duration)
	}
}
