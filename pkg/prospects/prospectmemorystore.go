// FILE: pkg/prospects/inmem_store.go

package prospects

import (
	"context"
	"sync"
)

// InMemoryStore is a thread-safe, in-memory implementation of the Store interface.
type InMemoryStore struct {
	sync.RWMutex
	people []Prospect
	saved  bool
	saves  int
}

// NewInMemoryStore creates a new in-memory store with nothing saved.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Load returns a copy of the last saved collection.
func (s *InMemoryStore) Load(ctx context.Context) ([]Prospect, error) {
	s.RLock()
	defer s.RUnlock()
	if !s.saved {
		return nil, ErrNoData
	}
	return append([]Prospect(nil), s.people...), nil
}

// Save replaces the stored collection.
func (s *InMemoryStore) Save(ctx context.Context, people []Prospect) error {
	s.Lock()
	defer s.Unlock()
	s.people = append([]Prospect(nil), people...)
	s.saved = true
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *InMemoryStore) Saves() int {
	s.RLock()
	defer s.RUnlock()
	return s.saves
}
