package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/fittrack/internal/constants"
	fterrors "github.com/julianstephens/fittrack/internal/errors"
	"github.com/julianstephens/fittrack/internal/models"
)

// IsValidWorkoutType reports whether t is one of the accepted workout types
func IsValidWorkoutType(t models.WorkoutType) bool {
	switch t {
	case models.WorkoutCardio, models.WorkoutStrength, models.WorkoutFlexibility:
		return true
	}
	return false
}

// IsValidDate reports whether s is a YYYY-MM-DD calendar date
func IsValidDate(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}

// IsValidWorkout checks every record invariant
func IsValidWorkout(w models.Workout) bool {
	return ValidateWorkout(w) == nil
}

// ValidateWorkout returns a ValidationError naming each violated field, or nil
func ValidateWorkout(w models.Workout) error {
	ve := &fterrors.ValidationError{}

	if strings.TrimSpace(w.ID) == "" {
		ve.Add("id", "is required")
	}
	n := utf8.RuneCountInString(w.Exercise)
	if n == 0 || strings.TrimSpace(w.Exercise) == "" {
		ve.Add("exercise", "is required")
	} else if n > constants.MaxExerciseLen {
		ve.Add("exercise", fmt.Sprintf("must be at most %d characters", constants.MaxExerciseLen))
	}
	if w.Duration < constants.MinDuration || w.Duration > constants.MaxDuration {
		ve.Add("duration", fmt.Sprintf("must be between %d and %d minutes", constants.MinDuration, constants.MaxDuration))
	}
	if w.Calories < constants.MinCalories || w.Calories > constants.MaxCalories {
		ve.Add("calories", fmt.Sprintf("must be between %d and %d", constants.MinCalories, constants.MaxCalories))
	}
	if !IsValidWorkoutType(w.Type) {
		ve.Add("type", "must be one of "+strings.Join(constants.WorkoutTypes, ", "))
	}
	if w.Timestamp <= 0 {
		ve.Add("timestamp", "must be positive")
	}
	if w.Date != "" && !IsValidDate(w.Date) {
		ve.Add("date", "must use YYYY-MM-DD")
	}

	return ve.OrNil()
}

// SanitizeText trims surrounding whitespace and truncates to maxLen runes
func SanitizeText(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen])
}

// ValidateSettings checks user preferences before they are persisted
func ValidateSettings(s models.Settings) error {
	ve := &fterrors.ValidationError{}
	if s.Theme != constants.ThemeLight && s.Theme != constants.ThemeDark {
		ve.Add("theme", "must be light or dark")
	}
	if !IsValidWorkoutType(s.DefaultWorkoutType) {
		ve.Add("defaultWorkoutType", "must be one of "+strings.Join(constants.WorkoutTypes, ", "))
	}
	if s.WarningThreshold < 0 || s.WarningThreshold > 100 {
		ve.Add("warningThreshold", "must be between 0 and 100")
	}
	return ve.OrNil()
}

// Result is the tagged outcome of decoding one persisted record.
type Result struct {
	Workout models.Workout
	Err     error
}

// OK reports whether the record decoded and passed validation
func (r Result) OK() bool {
	return r.Err == nil
}

// DecodeWorkout checks the shape of a raw JSON record and validates it.
// Numbers with a fractional part are truncated toward zero. A missing date
// is derived from the timestamp in loc.
func DecodeWorkout(raw json.RawMessage, loc *time.Location) Result {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Result{Err: &fterrors.ValidationError{Fields: []fterrors.FieldError{{Field: "record", Reason: "must be an object"}}}}
	}

	ve := &fterrors.ValidationError{}
	var w models.Workout

	w.ID = stringField(fields, "id", true, ve)
	w.Exercise = stringField(fields, "exercise", true, ve)
	w.Duration = int(numberField(fields, "duration", true, ve))
	w.Calories = int(numberField(fields, "calories", true, ve))
	w.Type = models.WorkoutType(stringField(fields, "type", true, ve))
	w.Timestamp = numberField(fields, "timestamp", true, ve)
	w.Date = stringField(fields, "date", false, ve)
	w.Notes = stringField(fields, "notes", false, ve)
	w.LastModified = numberField(fields, "lastModified", false, ve)

	if err := ve.OrNil(); err != nil {
		return Result{Workout: w, Err: err}
	}

	if w.Date == "" && w.Timestamp > 0 {
		if loc == nil {
			loc = time.Local
		}
		w.Date = time.UnixMilli(w.Timestamp).In(loc).Format(constants.DateFormat)
	}

	if err := ValidateWorkout(w); err != nil {
		return Result{Workout: w, Err: err}
	}
	return Result{Workout: w}
}

func stringField(fields map[string]json.RawMessage, name string, required bool, ve *fterrors.ValidationError) string {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		if required {
			ve.Add(name, "is required")
		}
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		ve.Add(name, "must be a string")
		return ""
	}
	return s
}

func numberField(fields map[string]json.RawMessage, name string, required bool, ve *fterrors.ValidationError) int64 {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		if required {
			ve.Add(name, "is required")
		}
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		ve.Add(name, "must be a number")
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64/2 {
		ve.Add(name, "is out of range")
		return 0
	}
	if f != math.Trunc(f) {
		ve.Add(name, "must be a whole number")
		return 0
	}
	return int64(f)
}
