package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/exercises"
	"github.com/julianstephens/fittrack/internal/logger"
	"github.com/julianstephens/fittrack/internal/models"
	"github.com/julianstephens/fittrack/internal/stats"
	"github.com/julianstephens/fittrack/internal/tui/components/workoutlist"
	"github.com/julianstephens/fittrack/internal/validation"
)

const quoteRefreshInterval = 10 * time.Minute

// LogFormModel holds the raw form values for a new workout
type LogFormModel struct {
	Exercise string
	Duration string
	Calories string
	Type     string
	Notes    string
}

type Model struct {
	ctx           *cli.Context
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	styles        styles
	settings      models.Settings

	workoutList workoutlist.Model
	summary     stats.Summary
	trend       stats.Trend
	conflicts   int

	quote        models.Quote
	quoteLoading bool

	muscles          []string
	muscleIdx        int
	exercises        []models.Exercise
	exercisesLoading bool

	form          *huh.Form
	logForm       *LogFormModel
	confirmed     *bool
	confirmText   string
	pendingAction confirm.Action
	pendingRun    func(confirm.Token) tea.Cmd

	status    string
	formError string
	quitting  bool
	width     int
	height    int
}

type quoteMsg struct {
	quote models.Quote
}

type exercisesMsg struct {
	muscle string
	list   []models.Exercise
}

type quoteTickMsg struct{}

// statusMsg reports the outcome of a mutation in the footer
type statusMsg struct {
	text string
	err  error
}

func NewModel(ctx *cli.Context) Model {
	settings := ctx.Settings()
	muscles := exercises.SupportedMuscles()
	muscleIdx := 0
	for i, m := range muscles {
		if m == exercises.DefaultMuscle {
			muscleIdx = i
		}
	}

	m := Model{
		ctx:         ctx,
		state:       constants.StateWorkouts,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		styles:      newStyles(settings.Theme),
		settings:    settings,
		workoutList: workoutlist.New(nil, 0, 0),
		summary:     stats.EmptySummary(),
		muscles:     muscles,
		muscleIdx:   muscleIdx,
	}
	m.reload()
	return m
}

// reload refreshes every view derived from the workout collection
func (m *Model) reload() {
	all, err := m.ctx.Workouts.GetAllWorkouts()
	if err != nil {
		logger.Error("Failed to load workouts", "error", err)
		m.status = "Failed to load workouts: " + err.Error()
		return
	}
	now := m.ctx.Now()
	m.workoutList.SetWorkouts(all)
	m.summary = stats.Compute(all, now)
	m.trend = stats.WeeklyTrend(all, now)
	result := validation.ValidateCollection(all, now)
	m.conflicts = len(result.Conflicts)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateExercises:
		keys = append(keys, m.keys.Left, m.keys.Right)
	case constants.StateQuote:
		keys = append(keys, m.keys.Refresh)
	case constants.StateSettings:
		keys = append(keys, m.keys.Theme, m.keys.AutoQ, m.keys.Notify, m.keys.Snapshot)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case constants.StateExercises:
		actions = []key.Binding{m.keys.Left, m.keys.Right}
	case constants.StateQuote:
		actions = []key.Binding{m.keys.Refresh}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Theme, m.keys.AutoQ, m.keys.Notify, m.keys.Snapshot}
	}
	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchQuote(false), m.fetchExercises()}
	if m.settings.AutoRefreshQuote {
		cmds = append(cmds, quoteTick())
	}
	return tea.Batch(cmds...)
}

func (m Model) fetchQuote(force bool) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return quoteMsg{quote: ctx.Quotes.Fetch(ctx.Ctx(), force)}
	}
}

func (m Model) fetchExercises() tea.Cmd {
	ctx := m.ctx
	muscle := m.muscles[m.muscleIdx]
	return func() tea.Msg {
		return exercisesMsg{muscle: muscle, list: ctx.Exercises.Fetch(ctx.Ctx(), muscle)}
	}
}

func quoteTick() tea.Cmd {
	return tea.Tick(quoteRefreshInterval, func(time.Time) tea.Msg {
		return quoteTickMsg{}
	})
}
