package validation

import (
	"fmt"
	"time"

	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateID        ConflictType = "duplicate_id"
	ConflictDuplicateTimestamp ConflictType = "duplicate_timestamp"
	ConflictInvalidRecord      ConflictType = "invalid_record"
	ConflictFutureDate         ConflictType = "future_date"
)

// Conflict represents a detected problem in the workout collection
type Conflict struct {
	Type        ConflictType
	Description string
	WorkoutIDs  []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// ValidateCollection checks a workout collection for problems that single-record
// validation cannot see. Merge imports de-duplicate by timestamp, so two records
// sharing one are reported as well.
func ValidateCollection(workouts []models.Workout, now time.Time) ValidationResult {
	var result ValidationResult

	byID := make(map[string][]string)
	byTimestamp := make(map[int64][]string)
	today := now.Format(constants.DateFormat)

	for _, w := range workouts {
		if err := ValidateWorkout(w); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidRecord,
				Description: fmt.Sprintf("workout %q is invalid: %v", w.ID, err),
				WorkoutIDs:  []string{w.ID},
			})
		}
		byID[w.ID] = append(byID[w.ID], w.ID)
		byTimestamp[w.Timestamp] = append(byTimestamp[w.Timestamp], w.ID)
		// YYYY-MM-DD compares lexically
		if w.Date > today {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureDate,
				Description: fmt.Sprintf("workout %q is dated in the future (%s)", w.ID, w.Date),
				WorkoutIDs:  []string{w.ID},
			})
		}
	}

	for _, w := range workouts {
		if ids := byID[w.ID]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("id %q is used by %d workouts", w.ID, len(ids)),
				WorkoutIDs:  ids,
			})
			delete(byID, w.ID)
		}
		if ids := byTimestamp[w.Timestamp]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTimestamp,
				Description: fmt.Sprintf("%d workouts share timestamp %d", len(ids), w.Timestamp),
				WorkoutIDs:  ids,
			})
			delete(byTimestamp, w.Timestamp)
		}
	}

	return result
}
