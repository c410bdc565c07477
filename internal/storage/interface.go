package storage

import "errors"

// ErrNotInitialized is returned by Load when the backing store has never been initialized
var ErrNotInitialized = errors.New("storage not initialized, run 'fittrack init' first")

// Backend is a string key-value store in the shape of browser local storage.
// Every workout, settings and backup record is serialized into a single key.
type Backend interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Items. GetItem reports ok=false for a missing key.
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Keys() ([]string, error)

	// Usage returns the summed length of every key and value in bytes
	Usage() (int, error)

	// GetConfigPath returns a non-sensitive description of where data lives
	GetConfigPath() string
}
