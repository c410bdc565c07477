package models

import (
	"time"

	"github.com/julianstephens/fittrack/internal/constants"
)

type WorkoutType string

const (
	WorkoutCardio      WorkoutType = constants.WorkoutTypeCardio
	WorkoutStrength    WorkoutType = constants.WorkoutTypeStrength
	WorkoutFlexibility WorkoutType = constants.WorkoutTypeFlexibility
)

// Workout is a single logged workout as persisted in the workout collection.
type Workout struct {
	ID           string      `json:"id"`
	Exercise     string      `json:"exercise"`
	Duration     int         `json:"duration"` // minutes
	Calories     int         `json:"calories"`
	Type         WorkoutType `json:"type"`
	Date         string      `json:"date"`      // YYYY-MM-DD
	Timestamp    int64       `json:"timestamp"` // creation, unix millis
	Notes        string      `json:"notes"`
	LastModified int64       `json:"lastModified,omitempty"` // unix millis
}

// WorkoutInput carries user-supplied fields for save and update.
type WorkoutInput struct {
	Exercise string
	Duration int
	Calories int
	Type     WorkoutType
	Notes    string
	Date     string // optional, defaults to today
}

// CreatedAt returns the creation instant.
func (w Workout) CreatedAt() time.Time {
	return time.UnixMilli(w.Timestamp)
}

// Day parses the workout date in loc. The zero time is returned for malformed dates.
func (w Workout) Day(loc *time.Location) time.Time {
	d, err := time.ParseInLocation(constants.DateFormat, w.Date, loc)
	if err != nil {
		return time.Time{}
	}
	return d
}
