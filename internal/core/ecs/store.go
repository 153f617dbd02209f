package ecs

import "sort"

// Removable is implemented by every component store so the Registry can
// strip an entity's data from all stores when it is destroyed.
type Removable interface {
	Remove(id EntityID)
}

// Store is a generic typed component store keyed by entity ID.
// No reflect, no interface{} — one map per component type.
type Store[T any] struct {
	data map[EntityID]*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		data: make(map[EntityID]*T, 256),
	}
}

func (s *Store[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

// Each visits every entity in the store in map order. Use EachOrdered
// when the caller's side effects depend on visit order.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}

// EachOrdered visits entities in ascending ID order. Simulation systems
// use this so a tick's mutations are reproducible run to run.
func (s *Store[T]) EachOrdered(fn func(EntityID, *T)) {
	ids := make([]EntityID, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn(id, s.data[id])
	}
}
