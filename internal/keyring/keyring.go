package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/fittrack/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the requested entry
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entry names a secret stored under the fittrack service.
type Entry string

const (
	ConnectionString Entry = constants.DefaultKeyringUser
	ExerciseAPIKey   Entry = constants.APIKeyKeyringUser
)

// Get retrieves a secret from the OS keyring.
// Returns ErrNotFound if nothing is stored.
func Get(entry Entry) (string, error) {
	value, err := keyring.Get(constants.AppName, string(entry))
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// Set stores a secret in the OS keyring.
func Set(entry Entry, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", entry)
	}
	if err := keyring.Set(constants.AppName, string(entry), value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes a secret from the OS keyring.
func Delete(entry Entry) error {
	err := keyring.Delete(constants.AppName, string(entry))
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string.
func GetConnectionString() (string, error) {
	return Get(ConnectionString)
}

// SetConnectionString stores the database connection string.
func SetConnectionString(connStr string) error {
	return Set(ConnectionString, connStr)
}

// DeleteConnectionString removes the database connection string.
func DeleteConnectionString() error {
	return Delete(ConnectionString)
}

// GetAPIKey retrieves the exercise API key.
func GetAPIKey() (string, error) {
	return Get(ExerciseAPIKey)
}

// SetAPIKey stores the exercise API key.
func SetAPIKey(key string) error {
	return Set(ExerciseAPIKey, key)
}

// DeleteAPIKey removes the exercise API key.
func DeleteAPIKey() error {
	return Delete(ExerciseAPIKey)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
