package ratings

import "sync"

// Store is the in-memory ratings table keyed by player display name. It
// preserves first-insertion iteration order with last-write-wins values:
// fuzzy matching returns the first qualifying entry during a scan, so order
// must be stable across lookups and reloads.
//
// The store is an owned, injectable object rather than package state so
// tests and admin tooling can seed and reset it deterministically.
type Store struct {
	mu      sync.RWMutex
	ratings map[string]PlayerRating
	order   []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{ratings: make(map[string]PlayerRating)}
}

// Put inserts or overwrites the rating for name. Overwriting keeps the
// name's original position in iteration order.
func (s *Store) Put(name string, rating PlayerRating) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ratings[name]; !exists {
		s.order = append(s.order, name)
	}
	s.ratings[name] = rating
}

// Get performs a case-sensitive exact lookup.
func (s *Store) Get(name string) (PlayerRating, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ratings[name]
	return r, ok
}

// Names returns all stored display names in insertion order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ratings)
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings = make(map[string]PlayerRating)
	s.order = nil
}
