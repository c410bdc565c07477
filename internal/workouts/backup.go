package workouts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/fittrack/internal/confirm"
	"github.com/julianstephens/fittrack/internal/constants"
	fterrors "github.com/julianstephens/fittrack/internal/errors"
	"github.com/julianstephens/fittrack/internal/logger"
)

// backupSlot copies the raw values of the workout, settings and version keys.
// A nil field means the key was absent when the backup was taken.
type backupSlot struct {
	Workouts  *string `json:"workouts"`
	Settings  *string `json:"settings"`
	Version   *string `json:"version"`
	Timestamp int64   `json:"timestamp"`
}

// CreateBackup overwrites the single in-store backup slot.
func (s *Store) CreateBackup() (time.Time, error) {
	slot := backupSlot{Timestamp: s.now().UnixMilli()}
	for key, dst := range map[string]**string{
		constants.WorkoutsKey: &slot.Workouts,
		constants.SettingsKey: &slot.Settings,
		constants.VersionKey:  &slot.Version,
	} {
		value, ok, err := s.backend.GetItem(key)
		if err != nil {
			return time.Time{}, err
		}
		if ok {
			v := value
			*dst = &v
		}
	}

	data, err := json.Marshal(slot)
	if err != nil {
		return time.Time{}, err
	}
	if err := s.backend.SetItem(constants.BackupKey, string(data)); err != nil {
		return time.Time{}, err
	}

	logger.Info("Backup created", "timestamp", slot.Timestamp)
	return time.UnixMilli(slot.Timestamp), nil
}

// BackupInfo returns when the backup slot was written.
func (s *Store) BackupInfo() (time.Time, error) {
	slot, err := s.readBackup()
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(slot.Timestamp), nil
}

// RestoreBackup replaces workouts, settings and version with the backup slot.
// The token must allow confirm.RestoreBackup.
func (s *Store) RestoreBackup(token confirm.Token) error {
	if err := confirm.Require(token, confirm.RestoreBackup); err != nil {
		return err
	}
	slot, err := s.readBackup()
	if err != nil {
		return err
	}

	for key, value := range map[string]*string{
		constants.WorkoutsKey: slot.Workouts,
		constants.SettingsKey: slot.Settings,
		constants.VersionKey:  slot.Version,
	} {
		if value == nil {
			err = s.backend.RemoveItem(key)
		} else {
			err = s.backend.SetItem(key, *value)
		}
		if err != nil {
			return fmt.Errorf("failed to restore %s: %w", key, err)
		}
	}

	logger.Info("Backup restored", "timestamp", slot.Timestamp)
	return nil
}

func (s *Store) readBackup() (backupSlot, error) {
	data, ok, err := s.backend.GetItem(constants.BackupKey)
	if err != nil {
		return backupSlot{}, err
	}
	if !ok {
		return backupSlot{}, &fterrors.NotFoundError{Kind: "backup"}
	}
	var slot backupSlot
	if err := json.Unmarshal([]byte(data), &slot); err != nil {
		return backupSlot{}, fmt.Errorf("backup is corrupt: %w", err)
	}
	return slot, nil
}
