// Package memory provides insertion-ordered in-memory stores. It backs
// the "memory" storage driver and the test suites.
package memory

import (
	"context"
	"fmt"
	"sync"

	"poultryfarm/internal/domain"
	"poultryfarm/internal/domain/models"
	"poultryfarm/internal/repository"
)

// Store is an in-memory repository.Store keeping records in insertion
// order. Safe for concurrent use.
type Store[T repository.Entity] struct {
	mu      sync.RWMutex
	records map[string]T
	order   []string
}

// New returns an empty store.
func New[T repository.Entity]() *Store[T] {
	return &Store[T]{records: make(map[string]T)}
}

// Get returns the record stored under id.
func (s *Store[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %s", domain.ErrStoreNotFound, id)
	}
	return record, nil
}

// Insert adds a new record; colliding ids are rejected.
func (s *Store[T]) Insert(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.Key()
	if _, ok := s.records[id]; ok {
		return fmt.Errorf("%w: id %s", domain.ErrStoreDuplicate, id)
	}
	s.records[id] = record
	s.order = append(s.order, id)
	return nil
}

// Replace swaps the full record under its key.
func (s *Store[T]) Replace(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.Key()
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("%w: id %s", domain.ErrStoreNotFound, id)
	}
	s.records[id] = record
	return nil
}

// Remove deletes the record stored under id.
func (s *Store[T]) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("%w: id %s", domain.ErrStoreNotFound, id)
	}
	delete(s.records, id)
	for i, key := range s.order {
		if key == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List enumerates every record in insertion order.
func (s *Store[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out, nil
}

// NewStores builds a full in-memory store bundle.
func NewStores() *repository.Stores {
	return &repository.Stores{
		Farms:         New[models.Farm](),
		Birds:         New[models.Bird](),
		Inventory:     New[models.InventoryItem](),
		Products:      New[models.Product](),
		Transactions:  New[models.Transaction](),
		HealthRecords: New[models.HealthRecord](),
		Analytics:     New[models.Analytics](),
		Orders:        New[models.Order](),
	}
}
