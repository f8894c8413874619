// Package kvstore layers fail-soft JSON encoding over a storage.Provider.
//
// Reads never fail: a missing key, a stored null, corrupt JSON, or a provider
// error all yield the caller's fallback. Writes never fail either; a lost
// write is logged and the next read sees the previous value.
package kvstore

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/girassol/internal/errors"
	"github.com/julianstephens/girassol/internal/logger"
	"github.com/julianstephens/girassol/internal/storage"
)

// Key names one persisted collection. Use the constants in package schema.
type Key string

func (k Key) String() string { return string(k) }

// Store is the typed view over a raw provider
type Store struct {
	provider storage.Provider
}

func New(p storage.Provider) *Store {
	return &Store{provider: p}
}

// Provider returns the underlying raw store
func (s *Store) Provider() storage.Provider {
	return s.provider
}

var jsonNull = []byte("null")

// Load decodes key into a T, returning fallback when nothing usable is stored
func Load[T any](s *Store, key Key, fallback T) T {
	raw, err := s.read(key)
	if err != nil {
		logger.Error("Failed to read collection", "key", key, "error", err)
		return fallback
	}
	if raw == nil {
		logger.Debug("Collection not found, using fallback", "key", key)
		return fallback
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("Corrupt collection, using fallback", "key", key, "error", err)
		return fallback
	}
	return v
}

// Save encodes value and writes it under key. Failures are logged and dropped.
func Save[T any](s *Store, key Key, value T) {
	if err := SaveErr(s, key, value); err != nil {
		logger.Error("Failed to save collection", "key", key, "error", err)
	}
}

// SaveErr is Save for callers that need to know the write was lost
func SaveErr[T any](s *Store, key Key, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", errors.ErrStorageWrite, key, err)
	}
	if err := s.provider.SetItem(string(key), string(data)); err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrStorageWrite, key, err)
	}
	return nil
}

// Remove deletes key. Deleting an absent key is not an error.
func (s *Store) Remove(key Key) {
	if err := s.provider.RemoveItem(string(key)); err != nil {
		logger.Error("Failed to remove collection", "key", key, "error", err)
	}
}

// Has reports whether key holds a non-null value
func (s *Store) Has(key Key) bool {
	raw, err := s.read(key)
	return err == nil && raw != nil
}

// GetRaw returns the stored JSON verbatim, or nil when the key is absent,
// null, unreadable, or not valid JSON.
func (s *Store) GetRaw(key Key) json.RawMessage {
	raw, err := s.read(key)
	if err != nil {
		logger.Error("Failed to read collection", "key", key, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	if !json.Valid(raw) {
		logger.Warn("Corrupt collection skipped", "key", key)
		return nil
	}
	return raw
}

// SetRaw writes already-encoded JSON. A nil or null value removes the key.
func (s *Store) SetRaw(key Key, raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		if err := s.provider.RemoveItem(string(key)); err != nil {
			return fmt.Errorf("%w: %s: %v", errors.ErrStorageWrite, key, err)
		}
		return nil
	}
	if !json.Valid(trimmed) {
		return fmt.Errorf("%w: %s: value is not valid JSON", errors.ErrStorageWrite, key)
	}
	if err := s.provider.SetItem(string(key), string(trimmed)); err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrStorageWrite, key, err)
	}
	return nil
}

// read returns nil, nil for a missing key or a stored null
func (s *Store) read(key Key) ([]byte, error) {
	value, ok, err := s.provider.GetItem(string(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrStorageRead, key, err)
	}
	if !ok {
		return nil, nil
	}
	raw := bytes.TrimSpace([]byte(value))
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return nil, nil
	}
	return raw, nil
}
