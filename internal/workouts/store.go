package workouts

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/fittrack/internal/clock"
	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
	fterrors "github.com/julianstephens/fittrack/internal/errors"
	"github.com/julianstephens/fittrack/internal/logger"
	"github.com/julianstephens/fittrack/internal/metrics"
	"github.com/julianstephens/fittrack/internal/models"
	"github.com/julianstephens/fittrack/internal/storage"
	"github.com/julianstephens/fittrack/internal/validation"
)

// Options tunes a Store. The zero value is usable.
type Options struct {
	Location    *time.Location // calendar dates; defaults to time.Local
	BudgetBytes int            // defaults to constants.StorageBudgetBytes
	Metrics     *metrics.Manager
	NewID       func() string
}

// Store is the workout collection persisted in a single backend key.
type Store struct {
	backend storage.Backend
	clock   clock.Clock
	loc     *time.Location
	budget  int
	metrics *metrics.Manager
	newID   func() string
}

func NewStore(backend storage.Backend, clk clock.Clock, opts Options) *Store {
	s := &Store{
		backend: backend,
		clock:   clk,
		loc:     opts.Location,
		budget:  opts.BudgetBytes,
		metrics: opts.Metrics,
		newID:   opts.NewID,
	}
	if s.clock == nil {
		s.clock = clock.Real()
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.budget <= 0 {
		s.budget = constants.StorageBudgetBytes
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}
	return s
}

// Backend returns the key-value store underneath the collection
func (s *Store) Backend() storage.Backend {
	return s.backend
}

// Location returns the zone used for calendar dates
func (s *Store) Location() *time.Location {
	return s.loc
}

func (s *Store) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// SaveWorkout creates a record from input and prepends it to the collection.
func (s *Store) SaveWorkout(input models.WorkoutInput) (models.Workout, error) {
	now := s.now()
	w := models.Workout{
		ID:        s.newID(),
		Exercise:  validation.SanitizeText(input.Exercise, constants.MaxExerciseLen),
		Duration:  input.Duration,
		Calories:  input.Calories,
		Type:      input.Type,
		Date:      input.Date,
		Timestamp: now.UnixMilli(),
		Notes:     validation.SanitizeText(input.Notes, constants.MaxNotesLen),
	}
	if w.Date == "" {
		w.Date = now.Format(constants.DateFormat)
	}

	if err := validation.ValidateWorkout(w); err != nil {
		return models.Workout{}, err
	}

	all, err := s.GetAllWorkouts()
	if err != nil {
		return models.Workout{}, err
	}
	all = append([]models.Workout{w}, all...)

	if err := s.persist(all); err != nil {
		return models.Workout{}, err
	}

	if s.metrics != nil {
		s.metrics.CounterWorkoutsSaved.Inc()
	}
	logger.Debug("Workout saved", "id", w.ID, "exercise", w.Exercise)
	return w, nil
}

// GetAllWorkouts returns every valid record, newest first.
func (s *Store) GetAllWorkouts() ([]models.Workout, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}

	raw, err := s.loadRaw()
	if err != nil {
		return nil, err
	}

	workouts := make([]models.Workout, 0, len(raw))
	for i, r := range raw {
		res := validation.DecodeWorkout(r, s.loc)
		if !res.OK() {
			logger.Warn("Discarding invalid workout", "index", i, "error", res.Err)
			if s.metrics != nil {
				s.metrics.CounterDiscarded.Inc()
			}
			continue
		}
		workouts = append(workouts, res.Workout)
	}

	sortNewestFirst(workouts)
	return workouts, nil
}

// GetWorkout looks a record up by id.
func (s *Store) GetWorkout(id string) (models.Workout, error) {
	all, err := s.GetAllWorkouts()
	if err != nil {
		return models.Workout{}, err
	}
	for _, w := range all {
		if w.ID == id {
			return w, nil
		}
	}
	return models.Workout{}, &fterrors.NotFoundError{Kind: "workout", ID: id}
}

// UpdateWorkout merges input into an existing record. Empty notes keep the
// stored notes and an empty date keeps the stored date.
func (s *Store) UpdateWorkout(id string, input models.WorkoutInput) (models.Workout, error) {
	all, err := s.GetAllWorkouts()
	if err != nil {
		return models.Workout{}, err
	}

	idx := indexOf(all, id)
	if idx < 0 {
		return models.Workout{}, &fterrors.NotFoundError{Kind: "workout", ID: id}
	}

	w := all[idx]
	w.Exercise = validation.SanitizeText(input.Exercise, constants.MaxExerciseLen)
	w.Duration = input.Duration
	w.Calories = input.Calories
	w.Type = input.Type
	if notes := validation.SanitizeText(input.Notes, constants.MaxNotesLen); notes != "" {
		w.Notes = notes
	}
	if input.Date != "" {
		w.Date = input.Date
	}
	w.LastModified = s.now().UnixMilli()

	if err := validation.ValidateWorkout(w); err != nil {
		return models.Workout{}, err
	}

	all[idx] = w
	if err := s.persist(all); err != nil {
		return models.Workout{}, err
	}

	logger.Debug("Workout updated", "id", id)
	return w, nil
}

// DeleteWorkout removes a record. A missing id is a NotFoundError and leaves
// the collection untouched.
func (s *Store) DeleteWorkout(id string) (bool, error) {
	all, err := s.GetAllWorkouts()
	if err != nil {
		return false, err
	}

	idx := indexOf(all, id)
	if idx < 0 {
		return false, &fterrors.NotFoundError{Kind: "workout", ID: id}
	}

	remaining := append(all[:idx:idx], all[idx+1:]...)
	if err := s.persist(remaining); err != nil {
		return false, err
	}

	if s.metrics != nil {
		s.metrics.CounterWorkoutsDeleted.Inc()
	}
	logger.Debug("Workout deleted", "id", id)
	return true, nil
}

// ClearAllWorkouts empties the collection. The token must allow confirm.ClearAll.
func (s *Store) ClearAllWorkouts(token confirm.Token) error {
	if err := confirm.Require(token, confirm.ClearAll); err != nil {
		return err
	}
	if err := s.backend.RemoveItem(constants.WorkoutsKey); err != nil {
		return err
	}
	s.observe(0)
	logger.Info("All workouts cleared")
	return nil
}

// loadRaw returns the persisted array without decoding its elements.
// Data that is not a JSON array is removed.
func (s *Store) loadRaw() ([]json.RawMessage, error) {
	data, ok, err := s.backend.GetItem(constants.WorkoutsKey)
	if err != nil {
		return nil, err
	}
	if !ok || data == "" {
		return nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		logger.Warn("Invalid workout data format, resetting", "error", err)
		if err := s.backend.RemoveItem(constants.WorkoutsKey); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return raw, nil
}

// persist serializes the full collection, enforcing the storage budget.
func (s *Store) persist(workouts []models.Workout) error {
	if workouts == nil {
		workouts = []models.Workout{}
	}
	data, err := json.Marshal(workouts)
	if err != nil {
		return err
	}

	if len(data) > s.budget {
		return &fterrors.QuotaError{Size: len(data), Limit: s.budget}
	}
	if s.nearLimit(len(data)) {
		logger.Warn("Storage nearly full, consider exporting and deleting old workouts",
			"bytes", len(data), "limit", s.budget)
	}

	if err := s.backend.SetItem(constants.WorkoutsKey, string(data)); err != nil {
		return err
	}
	s.observe(len(workouts))
	return nil
}

// nearLimit reports whether size is past the configured warning threshold
func (s *Store) nearLimit(size int) bool {
	threshold := constants.DefaultWarningThreshold
	if settings, err := s.GetSettings(); err == nil {
		threshold = settings.WarningThreshold
	}
	return size*100 > s.budget*threshold
}

func (s *Store) observe(count int) {
	if s.metrics == nil {
		return
	}
	s.metrics.GaugeWorkouts.Set(float64(count))
	if usage, err := s.backend.Usage(); err == nil {
		s.metrics.GaugeStorageBytes.Set(float64(usage))
	}
}

func indexOf(workouts []models.Workout, id string) int {
	for i, w := range workouts {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func sortNewestFirst(workouts []models.Workout) {
	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].Timestamp > workouts[j].Timestamp
	})
}
