package models

import (
	"encoding/json"
	"fmt"
)

// DecodeSettings parses stored settings, filling any absent option with its default.
func DecodeSettings(data []byte) (Settings, error) {
	settings := DefaultSettings()
	if len(data) == 0 {
		return settings, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return DefaultSettings(), fmt.Errorf("parsing settings: %w", err)
	}

	fields := map[string]interface{}{
		"theme":              &settings.Theme,
		"autoRefreshQuote":   &settings.AutoRefreshQuote,
		"showNotifications":  &settings.ShowNotifications,
		"defaultWorkoutType": &settings.DefaultWorkoutType,
		"warningThreshold":   &settings.WarningThreshold,
	}
	for key, dst := range fields {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return DefaultSettings(), fmt.Errorf("parsing %s: %w", key, err)
		}
	}

	return settings, nil
}
