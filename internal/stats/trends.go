package stats

import (
	"math"
	"time"

	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/models"
)

// Totals aggregates one workout type.
type Totals struct {
	Count    int `json:"count"`
	Calories int `json:"calories"`
	Duration int `json:"duration"`
}

// Distribution sums records per workout type. Every known type is present.
func Distribution(records []models.Workout) map[models.WorkoutType]Totals {
	dist := map[models.WorkoutType]Totals{
		models.WorkoutCardio:      {},
		models.WorkoutStrength:    {},
		models.WorkoutFlexibility: {},
	}
	for _, w := range records {
		t, ok := dist[w.Type]
		if !ok {
			continue
		}
		t.Count++
		t.Calories += w.Calories
		t.Duration += w.Duration
		dist[w.Type] = t
	}
	return dist
}

// Period aggregates one window of a trend.
type Period struct {
	Workouts int `json:"workouts"`
	Calories int `json:"calories"`
	Duration int `json:"duration"`
}

type Change struct {
	Workouts      int `json:"workouts"`
	Calories      int `json:"calories"`
	PercentChange int `json:"percentChange"`
}

// Direction of a calorie trend.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

type Trend struct {
	ThisWeek Period `json:"thisWeek"`
	LastWeek Period `json:"lastWeek"`
	Change   Change `json:"change"`
	Trending string `json:"trending"`
}

// WeeklyTrend compares this week's calories with the previous 7 days.
func WeeklyTrend(records []models.Workout, now time.Time) Trend {
	this := period(ThisWeek(records, now))
	last := period(LastWeek(records, now))

	delta := this.Calories - last.Calories
	pct := 0
	if last.Calories > 0 {
		pct = int(math.Round(float64(delta) / float64(last.Calories) * 100))
	}

	trending := TrendStable
	switch {
	case delta > 0:
		trending = TrendUp
	case delta < 0:
		trending = TrendDown
	}

	return Trend{
		ThisWeek: this,
		LastWeek: last,
		Change: Change{
			Workouts:      this.Workouts - last.Workouts,
			Calories:      delta,
			PercentChange: pct,
		},
		Trending: trending,
	}
}

func period(records []models.Workout) Period {
	return Period{
		Workouts: len(records),
		Calories: sumCalories(records),
		Duration: sumDuration(records),
	}
}

// Day is one row of the daily breakdown.
type Day struct {
	Date     string `json:"date"`
	DayName  string `json:"dayName"`
	Workouts int    `json:"workouts"`
	Calories int    `json:"calories"`
	Duration int    `json:"duration"`
}

// DailyBreakdown returns the last 7 days, oldest first.
func DailyBreakdown(records []models.Workout, now time.Time) []Day {
	today := civil(now)
	days := make([]Day, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		date := d.Format(constants.DateFormat)

		var same []models.Workout
		for _, w := range records {
			if w.Date == date {
				same = append(same, w)
			}
		}
		days = append(days, Day{
			Date:     date,
			DayName:  d.Weekday().String()[:3],
			Workouts: len(same),
			Calories: sumCalories(same),
			Duration: sumDuration(same),
		})
	}
	return days
}

type Records struct {
	LongestWorkout    *models.Workout `json:"longestWorkout"`
	MostCalories      *models.Workout `json:"mostCalories"`
	MostWorkoutsInDay int             `json:"mostWorkoutsInDay"`
	LongestStreak     int             `json:"longestStreak"`
}

// PersonalRecords returns the all-time bests.
func PersonalRecords(records []models.Workout) Records {
	perDay := make(map[string]int)
	most := 0
	for _, w := range records {
		perDay[w.Date]++
		if perDay[w.Date] > most {
			most = perDay[w.Date]
		}
	}

	return Records{
		LongestWorkout:    longest(records),
		MostCalories:      highestCalories(records),
		MostWorkoutsInDay: most,
		LongestStreak:     LongestStreak(records),
	}
}

// CalorieProgress tracks burned calories against a goal.
type CalorieProgress struct {
	Current    int  `json:"current"`
	Goal       int  `json:"goal"`
	Percentage int  `json:"percentage"`
	Remaining  int  `json:"remaining"`
	Achieved   bool `json:"achieved"`
}

// CalorieGoal measures the summed calories of records against goal. A
// non-positive goal counts as achieved.
func CalorieGoal(records []models.Workout, goal int) CalorieProgress {
	total := sumCalories(records)
	p := progress(total, goal)
	remaining := goal - total
	if remaining < 0 {
		remaining = 0
	}
	return CalorieProgress{
		Current:    total,
		Goal:       goal,
		Percentage: p.Percentage,
		Remaining:  remaining,
		Achieved:   p.Achieved,
	}
}
