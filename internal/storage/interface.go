package storage

import (
	"errors"
	"sort"
)

var (
	// ErrNotLoaded is returned by item operations before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'girassol init' first")
)

// Provider is a per-installation string key/value store. Values are opaque
// strings; callers layer JSON encoding on top.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Items
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

func sortedKeys(items map[string]string) []string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
