package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type jsonDocument struct {
	Version int               `json:"version"`
	Items   map[string]string `json:"items"`
}

// JSONStore persists every item in a single JSON file
type JSONStore struct {
	path  string
	mu    sync.RWMutex
	items map[string]string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]string)
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reload()
}

// reload re-reads the file. Callers hold the write lock.
func (s *JSONStore) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Items == nil {
		doc.Items = make(map[string]string)
	}
	s.items = doc.Items
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the document through a temp file so readers never see a partial file
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(jsonDocument{Version: 1, Items: s.items}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.items == nil {
		return "", false, ErrNotLoaded
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *JSONStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		return ErrNotLoaded
	}
	s.items[key] = value
	return s.save()
}

func (s *JSONStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		return ErrNotLoaded
	}
	if _, ok := s.items[key]; !ok {
		return nil
	}
	delete(s.items, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.items == nil {
		return nil, ErrNotLoaded
	}
	return sortedKeys(s.items), nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
