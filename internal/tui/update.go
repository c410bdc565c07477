package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/logger"
	"github.com/julianstephens/fittrack/internal/models"
	"github.com/julianstephens/fittrack/internal/tui/components/workoutlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.workoutList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case quoteMsg:
		m.quote = msg.quote
		m.quoteLoading = false
		return m, nil

	case exercisesMsg:
		if msg.muscle == m.muscles[m.muscleIdx] {
			m.exercises = msg.list
			m.exercisesLoading = false
		}
		return m, nil

	case quoteTickMsg:
		if !m.settings.AutoRefreshQuote {
			return m, nil
		}
		m.quoteLoading = true
		return m, tea.Batch(m.fetchQuote(true), quoteTick())

	case statusMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.status = msg.text
		}
		m.reload()
		return m, nil
	}

	switch m.state {
	case constants.StateLogWorkout:
		return m.updateLogForm(msg)
	case constants.StateConfirm:
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case workoutlist.AddWorkoutMsg:
		return m, m.startLogForm()

	case workoutlist.DeleteWorkoutMsg:
		id := msg.ID
		return m, m.startConfirm(confirm.DeleteWorkout, fmt.Sprintf("Delete workout %q?", msg.Exercise), func(confirm.Token) tea.Cmd {
			return m.deleteWorkout(id)
		})

	case workoutlist.ClearWorkoutsMsg:
		return m, m.startConfirm(confirm.ClearAll, constants.ConfirmClearAllPrompt, m.clearWorkouts)

	case tea.KeyMsg:
		if m.state == constants.StateWorkouts && m.workoutList.Filtering() {
			break
		}
		if handled, cmd := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateWorkouts:
		m.workoutList, cmd = m.workoutList.Update(msg)
	case constants.StateExercises:
		cmd = m.updateExercises(msg)
	case constants.StateQuote:
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Refresh) {
			m.quoteLoading = true
			cmd = m.fetchQuote(true)
		}
	case constants.StateSettings:
		cmd = m.updateSettings(msg)
	}
	return m, cmd
}

func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keys.Tab):
		m.state = m.cycleView(1)
		return true, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = m.cycleView(-1)
		return true, nil
	}
	return false, nil
}

func (m Model) cycleView(step int) constants.SessionState {
	views := constants.MainViews
	for i, v := range views {
		if v == m.state {
			return views[(i+step+len(views))%len(views)]
		}
	}
	return constants.StateWorkouts
}

func (m *Model) updateExercises(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.muscleIdx = (m.muscleIdx - 1 + len(m.muscles)) % len(m.muscles)
	case key.Matches(keyMsg, m.keys.Right):
		m.muscleIdx = (m.muscleIdx + 1) % len(m.muscles)
	case key.Matches(keyMsg, m.keys.Refresh):
		m.ctx.Exercises.ClearCache()
	default:
		return nil
	}
	m.exercisesLoading = true
	return m.fetchExercises()
}

func (m *Model) updateSettings(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	updated := m.settings
	switch {
	case key.Matches(keyMsg, m.keys.Theme):
		if updated.Theme == constants.ThemeDark {
			updated.Theme = constants.ThemeLight
		} else {
			updated.Theme = constants.ThemeDark
		}
	case key.Matches(keyMsg, m.keys.AutoQ):
		updated.AutoRefreshQuote = !updated.AutoRefreshQuote
	case key.Matches(keyMsg, m.keys.Notify):
		updated.ShowNotifications = !updated.ShowNotifications
	case key.Matches(keyMsg, m.keys.Snapshot):
		return m.snapshot()
	default:
		return nil
	}

	if err := m.ctx.Workouts.SaveSettings(updated); err != nil {
		m.status = "Failed to save settings: " + err.Error()
		return nil
	}
	restartTick := updated.AutoRefreshQuote && !m.settings.AutoRefreshQuote
	m.settings = updated
	m.styles = newStyles(updated.Theme)
	m.status = "Settings saved"
	if restartTick {
		return quoteTick()
	}
	return nil
}

func (m *Model) startLogForm() tea.Cmd {
	m.logForm = &LogFormModel{Type: string(m.settings.DefaultWorkoutType)}
	m.formError = ""

	typeOptions := make([]huh.Option[string], 0, len(constants.WorkoutTypes))
	for _, t := range constants.WorkoutTypes {
		typeOptions = append(typeOptions, huh.NewOption(t, t))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Exercise").Value(&m.logForm.Exercise),
			huh.NewInput().Title("Duration (minutes)").Value(&m.logForm.Duration).Validate(intField),
			huh.NewInput().Title("Calories").Value(&m.logForm.Calories).Validate(intField),
			huh.NewSelect[string]().Title("Type").Options(typeOptions...).Value(&m.logForm.Type),
			huh.NewText().Title("Notes").Value(&m.logForm.Notes),
		),
	)
	m.previousState = m.state
	m.state = constants.StateLogWorkout
	return m.form.Init()
}

func intField(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

func (m Model) updateLogForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		duration, _ := strconv.Atoi(strings.TrimSpace(m.logForm.Duration))
		calories, _ := strconv.Atoi(strings.TrimSpace(m.logForm.Calories))
		w, err := m.ctx.Workouts.SaveWorkout(models.WorkoutInput{
			Exercise: m.logForm.Exercise,
			Duration: duration,
			Calories: calories,
			Type:     models.WorkoutType(m.logForm.Type),
			Notes:    m.logForm.Notes,
		})
		if err != nil {
			// stay in the form so the values can be corrected
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.formError = ""
		m.state = constants.StateWorkouts
		m.notify(fmt.Sprintf("Logged %s: %d min, %d cal", w.Exercise, w.Duration, w.Calories))
		m.reload()
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) startConfirm(action confirm.Action, prompt string, run func(confirm.Token) tea.Cmd) tea.Cmd {
	m.confirmed = new(bool)
	m.confirmText = prompt
	m.pendingAction = action
	m.pendingRun = run
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(m.confirmed),
		),
	)
	m.previousState = m.state
	m.state = constants.StateConfirm
	return m.form.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		m.pendingRun = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		run := m.pendingRun
		m.pendingRun = nil
		if !*m.confirmed || run == nil {
			m.status = "Cancelled"
			return m, cmd
		}
		// the form already collected the answer
		token, err := confirm.Request(m.ctx.Ctx(), confirm.AssumeYes, m.pendingAction, m.confirmText)
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, cmd
		}
		return m, tea.Batch(cmd, run(token))
	case huh.StateAborted:
		m.state = m.previousState
		m.pendingRun = nil
		m.status = "Cancelled"
	}
	return m, cmd
}

func (m Model) deleteWorkout(id string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		deleted, err := ctx.Workouts.DeleteWorkout(id)
		if err != nil {
			return statusMsg{err: err}
		}
		if !deleted {
			return statusMsg{text: "Workout already removed"}
		}
		return statusMsg{text: "Workout deleted"}
	}
}

func (m Model) clearWorkouts(token confirm.Token) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := ctx.Workouts.ClearAllWorkouts(token); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "All workouts cleared"}
	}
}

func (m Model) snapshot() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		at, err := ctx.Workouts.CreateBackup()
		if err != nil {
			logger.Error("Snapshot failed", "error", err)
			return statusMsg{err: err}
		}
		return statusMsg{text: "Snapshot saved at " + at.In(ctx.Location()).Format("15:04:05")}
	}
}

func (m *Model) notify(text string) {
	if m.settings.ShowNotifications {
		m.status = "✓ " + text
	}
}
