package storage

import "sync"

// MemoryStore keeps items in process memory. Used for dry runs and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[string]string
	failOn map[string]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetConfigPath() string { return ":memory:" }

// FailOn makes every operation on key return err. A nil err clears it.
func (s *MemoryStore) FailOn(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == nil {
		s.failOn = make(map[string]error)
	}
	if err == nil {
		delete(s.failOn, key)
		return
	}
	s.failOn[key] = err
}

func (s *MemoryStore) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failOn[key]; err != nil {
		return "", false, err
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failOn[key]; err != nil {
		return err
	}
	s.items[key] = value
	return nil
}

func (s *MemoryStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failOn[key]; err != nil {
		return err
	}
	delete(s.items, key)
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.items), nil
}
