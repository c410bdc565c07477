package workouts

import (
	"strings"

	"github.com/julianstephens/fittrack/internal/models"
)

// Search matches query case-insensitively against exercise, type and notes.
func (s *Store) Search(query string) ([]models.Workout, error) {
	all, err := s.GetAllWorkouts()
	if err != nil {
		return nil, err
	}
	return Filter(all, MatchesQuery(query)), nil
}

// FilterByDateRange returns records dated within [start, end], both YYYY-MM-DD.
func (s *Store) FilterByDateRange(start, end string) ([]models.Workout, error) {
	all, err := s.GetAllWorkouts()
	if err != nil {
		return nil, err
	}
	return Filter(all, InDateRange(start, end)), nil
}

func (s *Store) FilterByType(t models.WorkoutType) ([]models.Workout, error) {
	all, err := s.GetAllWorkouts()
	if err != nil {
		return nil, err
	}
	return Filter(all, OfType(t)), nil
}

// WorkoutsOn returns the records logged on date.
func (s *Store) WorkoutsOn(date string) ([]models.Workout, error) {
	return s.FilterByDateRange(date, date)
}

// Predicate selects workouts.
type Predicate func(models.Workout) bool

// Filter keeps the records matching every predicate, preserving order.
func Filter(workouts []models.Workout, preds ...Predicate) []models.Workout {
	out := make([]models.Workout, 0, len(workouts))
outer:
	for _, w := range workouts {
		for _, p := range preds {
			if !p(w) {
				continue outer
			}
		}
		out = append(out, w)
	}
	return out
}

func MatchesQuery(query string) Predicate {
	q := strings.ToLower(query)
	return func(w models.Workout) bool {
		return strings.Contains(strings.ToLower(w.Exercise), q) ||
			strings.Contains(strings.ToLower(string(w.Type)), q) ||
			strings.Contains(strings.ToLower(w.Notes), q)
	}
}

// InDateRange compares YYYY-MM-DD strings, which order lexically. An empty
// bound is open.
func InDateRange(start, end string) Predicate {
	return func(w models.Workout) bool {
		if start != "" && w.Date < start {
			return false
		}
		if end != "" && w.Date > end {
			return false
		}
		return true
	}
}

func OfType(t models.WorkoutType) Predicate {
	return func(w models.Workout) bool {
		return w.Type == t
	}
}
