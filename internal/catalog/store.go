package catalog

import (
	"context"
	"errors"
	"sync"
)

// Store holds the most recent catalog for the HTTP surface. It starts empty
// and reports not-ready until the first build lands.
type Store struct {
	mu      sync.RWMutex
	catalog Catalog
	set     bool
}

// NewStore creates an empty catalog store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the stored catalog.
func (s *Store) Set(c Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
	s.set = true
}

// Latest returns the most recent catalog. The second return is false before
// the first build completes.
func (s *Store) Latest() (Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.set
}

// CheckReadiness reports whether a catalog is available to serve.
func (s *Store) CheckReadiness(_ context.Context) error {
	if _, ok := s.Latest(); !ok {
		return errors.New("no catalog built yet")
	}
	return nil
}
