package engine

import (
	"slices"
	"sync"

	"github.com/lixenwraith/fly-catcher/core"
)

// Store is a generic entity-keyed container
// Uses sparse set pattern; iteration order is ascending entity for deterministic ticks
type Store[T any] struct {
	mu         sync.RWMutex
	components map[core.Entity]T
	entities   []core.Entity // Kept sorted, entities are allocated monotonically
}

// NewStore creates a new store for type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]T),
		entities:   make([]core.Entity, 0, 64),
	}
}

// Set inserts or updates the value for an entity
func (s *Store[T]) Set(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		idx, _ := slices.BinarySearch(s.entities, e)
		s.entities = slices.Insert(s.entities, idx, e)
	}
	s.components[e] = val
}

// Get retrieves the value for an entity
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.components[e]
	return val, ok
}

// Remove deletes an entity, returning false if it was absent
func (s *Store[T]) Remove(e core.Entity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		return false
	}
	delete(s.components, e)
	if idx, found := slices.BinarySearch(s.entities, e); found {
		s.entities = slices.Delete(s.entities, idx, idx+1)
	}
	return true
}

// Has checks if the entity is present
func (s *Store[T]) Has(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.components[e]
	return ok
}

// Entities returns a snapshot of all entities in ascending order
func (s *Store[T]) Entities() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Values returns a snapshot of all values in entity order
func (s *Store[T]) Values() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]T, 0, len(s.entities))
	for _, e := range s.entities {
		result = append(result, s.components[e])
	}
	return result
}

// Len returns the number of entities
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}
