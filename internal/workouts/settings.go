package workouts

import (
	"encoding/json"

	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/logger"
	"github.com/julianstephens/fittrack/internal/models"
	"github.com/julianstephens/fittrack/internal/validation"
)

// GetSettings returns the stored settings. Missing or unreadable settings
// yield the defaults.
func (s *Store) GetSettings() (models.Settings, error) {
	data, ok, err := s.backend.GetItem(constants.SettingsKey)
	if err != nil {
		return models.DefaultSettings(), err
	}
	if !ok {
		return models.DefaultSettings(), nil
	}

	settings, err := models.DecodeSettings([]byte(data))
	if err != nil {
		logger.Warn("Failed to parse settings, using defaults", "error", err)
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := s.backend.SetItem(constants.SettingsKey, string(data)); err != nil {
		return err
	}
	logger.Debug("Settings saved", "settings", settings)
	return nil
}
