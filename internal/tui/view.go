package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/stats"
)

var tabTitles = []string{"Workouts", "Stats", "Exercises", "Quote", "Settings"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateWorkouts:
		content = m.styles.doc.Render(m.workoutList.View())
	case constants.StateStats:
		content = m.styles.doc.Render(m.viewStats())
	case constants.StateExercises:
		content = m.styles.doc.Render(m.viewExercises())
	case constants.StateQuote:
		content = m.styles.doc.Render(m.viewQuote())
	case constants.StateSettings:
		content = m.styles.doc.Render(m.viewSettings())
	case constants.StateLogWorkout:
		content = m.viewLogForm()
	case constants.StateConfirm:
		content = m.viewConfirm()
	}

	var banner string
	if m.conflicts > 0 {
		banner = m.viewConflictBanner()
	}

	var status string
	if m.status != "" {
		status = m.styles.muted.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if m.state == constants.MainViews[i] {
			tabs = append(tabs, m.styles.activeTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.inactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStats() string {
	s := m.summary
	var b strings.Builder

	b.WriteString(m.styles.title.Render("This Week") + "\n")
	fmt.Fprintf(&b, "  Workouts: %d   Calories: %d   Minutes: %d\n", s.TotalWorkouts, s.TotalCalories, s.TotalDuration)
	fmt.Fprintf(&b, "  Avg duration: %d min   Avg calories: %d\n", s.AvgDuration, s.AvgCalories)
	fmt.Fprintf(&b, "  Top exercise: %s\n", s.TopExercise)
	fmt.Fprintf(&b, "  Cardio: %d   Strength: %d   Flexibility: %d\n", s.CardioCount, s.StrengthCount, s.FlexibilityCount)
	goal := s.WeeklyGoalProgress
	goalLine := fmt.Sprintf("  Weekly goal: %d/%d (%d%%)", goal.Current, goal.Goal, goal.Percentage)
	if goal.Achieved {
		goalLine = m.styles.success.Render(goalLine + " ✓")
	}
	b.WriteString(goalLine + "\n\n")

	b.WriteString(m.styles.title.Render("This Month") + "\n")
	fmt.Fprintf(&b, "  Workouts: %d   Calories: %d   Minutes: %d\n", s.MonthlyWorkouts, s.MonthlyCalories, s.MonthlyDuration)
	fmt.Fprintf(&b, "  Avg duration: %d min   Avg calories: %d\n\n", s.MonthlyAvgDuration, s.MonthlyAvgCalories)

	b.WriteString(m.styles.title.Render("All Time") + "\n")
	fmt.Fprintf(&b, "  Workouts: %d   Calories: %d   Minutes: %d\n", s.AllTimeWorkouts, s.AllTimeCalories, s.AllTimeDuration)
	fmt.Fprintf(&b, "  Avg duration: %d min   Avg calories: %d\n", s.AllTimeAvgDuration, s.AllTimeAvgCalories)
	fmt.Fprintf(&b, "  Current streak: %d day(s)   Most productive day: %s\n\n", s.CurrentStreak, s.MostProductiveDay)

	b.WriteString(m.styles.title.Render("Trend") + "\n")
	arrow := "→"
	switch m.trend.Trending {
	case stats.TrendUp:
		arrow = "↑"
	case stats.TrendDown:
		arrow = "↓"
	}
	fmt.Fprintf(&b, "  %s %+d cal (%+d%%) vs last week", arrow, m.trend.Change.Calories, m.trend.Change.PercentChange)
	return b.String()
}

func (m Model) viewExercises() string {
	muscle := m.muscles[m.muscleIdx]
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Suggestions for "+muscle) + "\n")
	if !m.ctx.Exercises.IsConfigured() {
		b.WriteString(m.styles.muted.Render("  (built-in list, no API key configured)") + "\n")
	}
	b.WriteString("\n")

	if m.exercisesLoading && len(m.exercises) == 0 {
		b.WriteString("  Loading...")
		return b.String()
	}
	for _, e := range m.exercises {
		fmt.Fprintf(&b, "  • %s %s\n", e.Name, m.styles.muted.Render(fmt.Sprintf("(%s, %s, %s)", e.Type, e.Difficulty, e.Equipment)))
	}
	return b.String()
}

func (m Model) viewQuote() string {
	if m.quote.Text == "" {
		return "Loading quote..."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%q\n", m.quote.Text)
	fmt.Fprintf(&b, "  - %s\n", m.quote.Author)
	if len(m.quote.Tags) > 0 {
		b.WriteString(m.styles.muted.Render("  #"+strings.Join(m.quote.Tags, " #")) + "\n")
	}
	if m.quote.IsFallback {
		b.WriteString(m.styles.warning.Render("(offline quote)") + "\n")
	}
	if m.quoteLoading {
		b.WriteString(m.styles.muted.Render("refreshing..."))
	}
	return b.String()
}

func (m Model) viewSettings() string {
	st := m.settings
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Settings") + "\n\n")
	fmt.Fprintf(&b, "  Theme:               %s\n", st.Theme)
	fmt.Fprintf(&b, "  Auto-refresh quote:  %t\n", st.AutoRefreshQuote)
	fmt.Fprintf(&b, "  Show notifications:  %t\n", st.ShowNotifications)
	fmt.Fprintf(&b, "  Default workout:     %s\n", st.DefaultWorkoutType)
	fmt.Fprintf(&b, "  Warning threshold:   %d%%\n", st.WarningThreshold)
	return b.String()
}

func (m Model) viewLogForm() string {
	var errLine string
	if m.formError != "" {
		errLine = m.styles.danger.Render(m.formError)
	}
	return m.styles.doc.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render("Log workout"),
		errLine,
		m.form.View(),
	))
}

func (m Model) viewConfirm() string {
	body := m.form.View()
	if m.pendingAction == confirm.ClearAll {
		body = lipgloss.JoinVertical(lipgloss.Left, m.styles.danger.Render("This action cannot be undone!"), body)
	}
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		body,
	)
}

func (m Model) viewConflictBanner() string {
	bannerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214")).
		Bold(true).
		Padding(0, 1)

	return bannerStyle.Render(fmt.Sprintf("⚠ %d DATA CONFLICT(S) DETECTED - run 'fittrack doctor'", m.conflicts))
}
