package workouts

import (
	"encoding/json"
	"fmt"

	"go.uber.org/multierr"

	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
	fterrors "github.com/julianstephens/fittrack/internal/errors"
	"github.com/julianstephens/fittrack/internal/logger"
	"github.com/julianstephens/fittrack/internal/models"
	"github.com/julianstephens/fittrack/internal/validation"
)

// ImportMode selects how imported records combine with the stored ones.
type ImportMode string

const (
	ImportMerge   ImportMode = "merge"
	ImportReplace ImportMode = "replace"
)

// ImportResult reports how many records were accepted and the resulting size.
type ImportResult struct {
	Imported int   `json:"imported"`
	Total    int   `json:"total"`
	Rejected int   `json:"rejected"`
	// Reassigned counts records given a fresh id because theirs was taken.
	Reassigned int   `json:"reassigned"`
	Errors     error `json:"-"`
}

// Snapshot is the portable export format.
type Snapshot struct {
	Version       string           `json:"version"`
	ExportDate    string           `json:"exportDate"`
	TotalWorkouts int              `json:"totalWorkouts"`
	Stats         StorageStats     `json:"stats"`
	Workouts      []models.Workout `json:"workouts"`
}

// Export serializes every valid record with a storage stats snapshot.
func (s *Store) Export() ([]byte, error) {
	all, err := s.GetAllWorkouts()
	if err != nil {
		return nil, err
	}
	stats, err := s.StorageStats()
	if err != nil {
		return nil, err
	}

	snap := Snapshot{
		Version:       constants.SchemaVersion,
		ExportDate:    s.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		TotalWorkouts: len(all),
		Stats:         stats,
		Workouts:      all,
	}
	return json.MarshalIndent(snap, "", "  ")
}

// Import reads a snapshot, validating each record. Replace mode needs a token
// allowing confirm.ImportReplace. Merge keeps the union, de-duplicated by
// timestamp with the stored record winning on collision. In both modes an
// imported record whose id is already taken gets a new one.
func (s *Store) Import(data []byte, mode ImportMode, token confirm.Token) (ImportResult, error) {
	switch mode {
	case ImportMerge:
	case ImportReplace:
		if err := confirm.Require(token, confirm.ImportReplace); err != nil {
			return ImportResult{}, err
		}
	default:
		return ImportResult{}, fmt.Errorf("unknown import mode %q", mode)
	}

	records, err := parseSnapshot(data)
	if err != nil {
		return ImportResult{}, err
	}

	var rejected error
	valid := make([]models.Workout, 0, len(records))
	for i, raw := range records {
		res := validation.DecodeWorkout(raw, s.loc)
		if !res.OK() {
			logger.Warn("Skipping invalid imported workout", "index", i, "error", res.Err)
			rejected = multierr.Append(rejected, fmt.Errorf("record %d: %w", i, res.Err))
			continue
		}
		valid = append(valid, res.Workout)
	}

	result := ImportResult{
		Imported: len(valid),
		Rejected: len(multierr.Errors(rejected)),
		Errors:   rejected,
	}
	if s.metrics != nil {
		s.metrics.CounterDiscarded.Add(float64(result.Rejected))
	}

	if len(valid) == 0 {
		return result, &fterrors.ImportError{Reason: "no valid workouts found in import file", Cause: rejected}
	}

	final := valid
	if mode == ImportMerge {
		existing, err := s.GetAllWorkouts()
		if err != nil {
			return result, err
		}
		result.Reassigned = s.claimIDs(valid, existing)
		final = mergeByTimestamp(valid, existing)
	} else {
		result.Reassigned = s.claimIDs(valid, nil)
		if err := s.ensureSchema(); err != nil {
			return result, err
		}
		sortNewestFirst(final)
	}

	if err := s.persist(final); err != nil {
		return result, err
	}

	if s.metrics != nil {
		s.metrics.CounterImports.WithLabelValues(string(mode)).Inc()
	}
	result.Total = len(final)
	logger.Info("Import complete", "mode", mode, "imported", result.Imported, "total", result.Total)
	return result, nil
}

// claimIDs gives every incoming record an id unused by reserved and by the
// incoming records before it. It returns how many ids were replaced.
func (s *Store) claimIDs(incoming, reserved []models.Workout) int {
	taken := make(map[string]struct{}, len(incoming)+len(reserved))
	for _, w := range reserved {
		taken[w.ID] = struct{}{}
	}

	n := 0
	for i := range incoming {
		if _, ok := taken[incoming[i].ID]; ok {
			id := s.newID()
			for {
				if _, dup := taken[id]; !dup {
					break
				}
				id = s.newID()
			}
			logger.Warn("Imported workout id already in use, assigning a new one", "id", incoming[i].ID, "new_id", id)
			incoming[i].ID = id
			n++
		}
		taken[incoming[i].ID] = struct{}{}
	}
	return n
}

func parseSnapshot(data []byte) ([]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, &fterrors.ImportError{Reason: "invalid import file format", Cause: err}
	}
	if top == nil {
		return nil, &fterrors.ImportError{Reason: "invalid import file format"}
	}

	raw, ok := top["workouts"]
	if !ok {
		return nil, &fterrors.ImportError{Reason: "invalid import file format: missing workouts array"}
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil || records == nil {
		return nil, &fterrors.ImportError{Reason: "invalid import file format: workouts must be an array"}
	}
	return records, nil
}

// mergeByTimestamp unions incoming and existing. On a timestamp collision the
// existing record replaces the incoming one.
func mergeByTimestamp(incoming, existing []models.Workout) []models.Workout {
	byTimestamp := make(map[int64]int, len(incoming)+len(existing))
	merged := make([]models.Workout, 0, len(incoming)+len(existing))

	for _, w := range append(append([]models.Workout{}, incoming...), existing...) {
		if idx, ok := byTimestamp[w.Timestamp]; ok {
			merged[idx] = w
			continue
		}
		byTimestamp[w.Timestamp] = len(merged)
		merged = append(merged, w)
	}

	sortNewestFirst(merged)
	return merged
}
