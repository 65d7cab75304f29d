package pricing

import (
	"sync/atomic"
)

// Store publishes the active catalog. Readers always see a complete catalog;
// a swap replaces the whole value.
type Store struct {
	current atomic.Pointer[Service]
}

// NewStore validates catalog and returns a store serving it.
func NewStore(catalog *Catalog) (*Store, error) {
	s := &Store{}
	if err := s.Swap(catalog); err != nil {
		return nil, err
	}
	return s, nil
}

// Swap validates catalog and makes it the active one. The previous catalog
// stays active when validation fails.
func (s *Store) Swap(catalog *Catalog) error {
	if err := catalog.Validate(); err != nil {
		return err
	}
	s.current.Store(NewService(catalog))
	return nil
}

// Service returns a pricing service bound to the active catalog.
func (s *Store) Service() *Service {
	if s == nil {
		return NewService(nil)
	}
	if svc := s.current.Load(); svc != nil {
		return svc
	}
	return NewService(nil)
}

// Loaded reports whether a catalog has been published.
func (s *Store) Loaded() bool {
	return s != nil && s.current.Load() != nil
}
