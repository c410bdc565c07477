package workoutlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fittrack/internal/models"
)

type AddWorkoutMsg struct{}

type DeleteWorkoutMsg struct {
	ID       string
	Exercise string
}

type ClearWorkoutsMsg struct{}

type Item struct {
	Workout models.Workout
}

func (i Item) Title() string { return i.Workout.Exercise }

func (i Item) Description() string {
	w := i.Workout
	return fmt.Sprintf("%s · %s · %d min · %d cal", w.Date, w.Type, w.Duration, w.Calories)
}

func (i Item) FilterValue() string { return i.Workout.Exercise + " " + i.Workout.Notes }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
	Clear  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "log workout"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear all"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(workouts []models.Workout, width, height int) Model {
	l := list.New(items(workouts), list.NewDefaultDelegate(), width, height)
	l.Title = "Workouts"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Clear}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Clear}
	}

	return Model{list: l, keys: keys}
}

func items(workouts []models.Workout) []list.Item {
	out := make([]list.Item, len(workouts))
	for i, w := range workouts {
		out[i] = Item{Workout: w}
	}
	return out
}

func (m *Model) SetWorkouts(workouts []models.Workout) {
	m.list.SetItems(items(workouts))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the user is typing a filter query
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddWorkoutMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg {
					return DeleteWorkoutMsg{ID: i.Workout.ID, Exercise: i.Workout.Exercise}
				}
			}
		case key.Matches(msg, m.keys.Clear):
			if m.Len() > 0 {
				return m, func() tea.Msg { return ClearWorkoutsMsg{} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No workouts yet.\n  Press 'a' to log one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
