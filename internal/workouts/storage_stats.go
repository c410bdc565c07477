package workouts

import (
	"encoding/json"
	"math"

	"github.com/julianstephens/fittrack/internal/constants"
)

// StorageStats describes how much of the storage budget is in use.
type StorageStats struct {
	TotalWorkouts     int     `json:"totalWorkouts"`
	WorkoutDataSize   int     `json:"workoutDataSize"`
	SizeKB            float64 `json:"sizeInKB"`
	SizeMB            float64 `json:"sizeInMB"`
	TotalStorageBytes int     `json:"totalStorageBytes"`
	TotalStorageKB    float64 `json:"totalStorageKB"`
	PercentUsed       float64 `json:"percentUsed"`
	NearLimit         bool    `json:"isNearLimit"`
	OldestWorkout     string  `json:"oldestWorkout"`
	NewestWorkout     string  `json:"newestWorkout"`
}

func (s *Store) StorageStats() (StorageStats, error) {
	all, err := s.GetAllWorkouts()
	if err != nil {
		return StorageStats{}, err
	}
	data, err := json.Marshal(all)
	if err != nil {
		return StorageStats{}, err
	}
	total, err := s.backend.Usage()
	if err != nil {
		return StorageStats{}, err
	}

	threshold := float64(constants.DefaultWarningThreshold)
	if settings, err := s.GetSettings(); err == nil {
		threshold = float64(settings.WarningThreshold)
	}

	percent := round2(float64(total) / float64(s.budget) * 100)
	stats := StorageStats{
		TotalWorkouts:     len(all),
		WorkoutDataSize:   len(data),
		SizeKB:            round2(float64(len(data)) / 1024),
		SizeMB:            round2(float64(len(data)) / (1024 * 1024)),
		TotalStorageBytes: total,
		TotalStorageKB:    round2(float64(total) / 1024),
		PercentUsed:       percent,
		NearLimit:         percent > threshold,
		OldestWorkout:     constants.NotAvailableLabel,
		NewestWorkout:     constants.NotAvailableLabel,
	}
	if len(all) > 0 {
		stats.NewestWorkout = all[0].Date
		stats.OldestWorkout = all[len(all)-1].Date
	}
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
