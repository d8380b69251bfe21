package memory

import (
	"context"
	"sync"
)

// LastCityStore keeps the last searched city in process memory.
// It implements domain.LastCityStore and is safe for concurrent use.
type LastCityStore struct {
	mu   sync.RWMutex
	city string
	set  bool
}

// NewLastCityStore returns an empty store.
func NewLastCityStore() *LastCityStore {
	return &LastCityStore{}
}

func (s *LastCityStore) Get(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.city, s.set, nil
}

func (s *LastCityStore) Set(_ context.Context, city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.city = city
	s.set = true
	return nil
}

func (s *LastCityStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.city = ""
	s.set = false
	return nil
}
