// Package stats derives aggregate metrics from a workout list. Every function
// is pure: the current instant is passed in and calendar windows are computed
// in its location.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/models"
)

// GoalProgress tracks a count or sum against a target.
type GoalProgress struct {
	Current    int  `json:"current"`
	Goal       int  `json:"goal"`
	Percentage int  `json:"percentage"`
	Achieved   bool `json:"achieved"`
}

// Summary is the dashboard view of a workout list.
type Summary struct {
	// this week
	TotalWorkouts int    `json:"totalWorkouts"`
	TotalCalories int    `json:"totalCalories"`
	TotalDuration int    `json:"totalDuration"`
	AvgDuration   int    `json:"avgDuration"`
	AvgCalories   int    `json:"avgCalories"`
	TopExercise   string `json:"topExercise"`

	// this month
	MonthlyWorkouts    int `json:"monthlyWorkouts"`
	MonthlyCalories    int `json:"monthlyCalories"`
	MonthlyDuration    int `json:"monthlyDuration"`
	MonthlyAvgDuration int `json:"monthlyAvgDuration"`
	MonthlyAvgCalories int `json:"monthlyAvgCalories"`

	AllTimeWorkouts    int `json:"allTimeWorkouts"`
	AllTimeCalories    int `json:"allTimeCalories"`
	AllTimeDuration    int `json:"allTimeDuration"`
	AllTimeAvgDuration int `json:"allTimeAvgDuration"`
	AllTimeAvgCalories int `json:"allTimeAvgCalories"`

	CardioCount      int `json:"cardioCount"`
	StrengthCount    int `json:"strengthCount"`
	FlexibilityCount int `json:"flexibilityCount"`

	// TypeDistribution holds this week's totals per workout type.
	TypeDistribution map[models.WorkoutType]Totals `json:"typeDistribution"`

	MostProductiveDay  string          `json:"mostProductiveDay"`
	LongestWorkout     *models.Workout `json:"longestWorkout"`
	HighestCalorieBurn *models.Workout `json:"highestCalorieBurn"`
	CurrentStreak      int             `json:"currentStreak"`
	WeeklyGoalProgress GoalProgress    `json:"weeklyGoalProgress"`
}

// EmptySummary is the summary of an empty workout list.
func EmptySummary() Summary {
	return Summary{
		TopExercise:       constants.NoneLabel,
		MostProductiveDay: constants.NoneLabel,
		TypeDistribution:  Distribution(nil),
		WeeklyGoalProgress: GoalProgress{
			Goal: constants.WeeklyWorkoutGoal,
		},
	}
}

// Compute builds the summary for records as seen at now.
func Compute(records []models.Workout, now time.Time) Summary {
	if len(records) == 0 {
		return EmptySummary()
	}

	week := ThisWeek(records, now)
	month := ThisMonth(records, now)

	return Summary{
		TotalWorkouts: len(week),
		TotalCalories: sumCalories(week),
		TotalDuration: sumDuration(week),
		AvgDuration:   average(sumDuration(week), len(week)),
		AvgCalories:   average(sumCalories(week), len(week)),
		TopExercise:   topExercise(week),

		MonthlyWorkouts:    len(month),
		MonthlyCalories:    sumCalories(month),
		MonthlyDuration:    sumDuration(month),
		MonthlyAvgDuration: average(sumDuration(month), len(month)),
		MonthlyAvgCalories: average(sumCalories(month), len(month)),

		AllTimeWorkouts:    len(records),
		AllTimeCalories:    sumCalories(records),
		AllTimeDuration:    sumDuration(records),
		AllTimeAvgDuration: average(sumDuration(records), len(records)),
		AllTimeAvgCalories: average(sumCalories(records), len(records)),

		CardioCount:      countType(week, models.WorkoutCardio),
		StrengthCount:    countType(week, models.WorkoutStrength),
		FlexibilityCount: countType(week, models.WorkoutFlexibility),
		TypeDistribution: Distribution(week),

		MostProductiveDay:  mostProductiveDay(week),
		LongestWorkout:     longest(records),
		HighestCalorieBurn: highestCalories(records),
		CurrentStreak:      CurrentStreak(records, now),
		WeeklyGoalProgress: progress(len(week), constants.WeeklyWorkoutGoal),
	}
}

// ThisWeek returns records dated within the trailing 7 calendar days, today included.
func ThisWeek(records []models.Workout, now time.Time) []models.Workout {
	return window(records, now, 0, 6)
}

// ThisMonth returns records dated within the trailing 30 calendar days, today included.
func ThisMonth(records []models.Workout, now time.Time) []models.Workout {
	return window(records, now, 0, 29)
}

// LastWeek returns the 7 days immediately before ThisWeek.
func LastWeek(records []models.Workout, now time.Time) []models.Workout {
	return window(records, now, 7, 13)
}

// window keeps records dated between from and to days before now, inclusive.
func window(records []models.Workout, now time.Time, from, to int) []models.Workout {
	today := civil(now)
	out := make([]models.Workout, 0, len(records))
	for _, w := range records {
		d, ok := parseDate(w.Date)
		if !ok {
			continue
		}
		ago := daysBetween(d, today)
		if ago >= from && ago <= to {
			out = append(out, w)
		}
	}
	return out
}

// CurrentStreak counts consecutive days with a workout, walking back from today.
func CurrentStreak(records []models.Workout, now time.Time) int {
	today := civil(now)
	dates := uniqueDates(records)
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	streak := 0
	for _, d := range dates {
		ago := daysBetween(d, today)
		if ago == streak {
			streak++
		} else if ago > streak {
			break
		}
	}
	return streak
}

// LongestStreak is the longest run of consecutive workout dates.
func LongestStreak(records []models.Workout) int {
	dates := uniqueDates(records)
	if len(dates) == 0 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, current := 1, 1
	for i := 1; i < len(dates); i++ {
		if daysBetween(dates[i-1], dates[i]) == 1 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

func sumCalories(records []models.Workout) int {
	total := 0
	for _, w := range records {
		total += w.Calories
	}
	return total
}

func sumDuration(records []models.Workout) int {
	total := 0
	for _, w := range records {
		total += w.Duration
	}
	return total
}

func average(total, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(n)))
}

func countType(records []models.Workout, t models.WorkoutType) int {
	n := 0
	for _, w := range records {
		if w.Type == t {
			n++
		}
	}
	return n
}

// topExercise returns the most frequent exercise; the first seen wins ties.
func topExercise(records []models.Workout) string {
	var order []string
	counts := make(map[string]int)
	for _, w := range records {
		if _, ok := counts[w.Exercise]; !ok {
			order = append(order, w.Exercise)
		}
		counts[w.Exercise]++
	}

	top, most := constants.NoneLabel, 0
	for _, name := range order {
		if counts[name] > most {
			top, most = name, counts[name]
		}
	}
	return top
}

// mostProductiveDay returns the weekday with the most calories; the first seen wins ties.
func mostProductiveDay(records []models.Workout) string {
	var order []time.Weekday
	calories := make(map[time.Weekday]int)
	for _, w := range records {
		d, ok := parseDate(w.Date)
		if !ok {
			continue
		}
		day := d.Weekday()
		if _, seen := calories[day]; !seen {
			order = append(order, day)
		}
		calories[day] += w.Calories
	}

	best, most := constants.NoneLabel, 0
	for _, day := range order {
		if calories[day] > most {
			best, most = day.String(), calories[day]
		}
	}
	return best
}

func longest(records []models.Workout) *models.Workout {
	var best *models.Workout
	for i := range records {
		if best == nil || records[i].Duration > best.Duration {
			w := records[i]
			best = &w
		}
	}
	return best
}

func highestCalories(records []models.Workout) *models.Workout {
	var best *models.Workout
	for i := range records {
		if best == nil || records[i].Calories > best.Calories {
			w := records[i]
			best = &w
		}
	}
	return best
}

func progress(current, goal int) GoalProgress {
	pct := 100
	if goal > 0 {
		pct = int(math.Round(float64(current) / float64(goal) * 100))
		if pct > 100 {
			pct = 100
		}
	}
	return GoalProgress{
		Current:    current,
		Goal:       goal,
		Percentage: pct,
		Achieved:   current >= goal,
	}
}

func uniqueDates(records []models.Workout) []time.Time {
	seen := make(map[string]bool)
	var dates []time.Time
	for _, w := range records {
		if seen[w.Date] {
			continue
		}
		seen[w.Date] = true
		if d, ok := parseDate(w.Date); ok {
			dates = append(dates, d)
		}
	}
	return dates
}

// parseDate reads a YYYY-MM-DD date as UTC midnight.
func parseDate(s string) (time.Time, bool) {
	d, err := time.Parse(constants.DateFormat, s)
	return d, err == nil
}

// civil maps t to UTC midnight of its calendar date in t's location.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}
