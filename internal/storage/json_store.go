package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

type fileLayout struct {
	Version int               `json:"version"`
	Items   map[string]string `json:"items"`
}

// JSONStore persists every item into one JSON document on disk.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	items map[string]string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.items = make(map[string]string)
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var layout fileLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if layout.Items == nil {
		layout.Items = make(map[string]string)
	}
	s.items = layout.Items
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(fileLayout{Version: 1, Items: s.items}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		return "", false, ErrNotInitialized
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *JSONStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		return ErrNotInitialized
	}
	s.items[key] = value
	return s.save()
}

func (s *JSONStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		return ErrNotInitialized
	}
	if _, ok := s.items[key]; !ok {
		return nil
	}
	delete(s.items, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) Usage() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for k, v := range s.items {
		total += len(k) + len(v)
	}
	return total, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
