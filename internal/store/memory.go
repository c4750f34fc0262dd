package store

import (
	"errors"
	"sync"

	"github.com/i474232898/workout-tracker/internal/workout"
)

var (
	// ErrNotFound is returned when no workout has the requested id.
	ErrNotFound = errors.New("workout not found")
	// ErrDuplicateID is returned when adding a workout whose id is already stored.
	ErrDuplicateID = errors.New("workout id already stored")
)

// MemoryStore is a concurrency-safe, insertion-ordered collection of workouts.
// It owns its entries; callers only ever receive copies.
type MemoryStore struct {
	mu sync.RWMutex

	order []string
	items map[string]*workout.Workout
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*workout.Workout),
	}
}

// Add appends w to the end of the collection.
func (s *MemoryStore) Add(w *workout.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[w.ID]; ok {
		return ErrDuplicateID
	}
	s.items[w.ID] = w.Clone()
	s.order = append(s.order, w.ID)
	return nil
}

// FindByID returns a copy of the workout with the given id.
func (s *MemoryStore) FindByID(id string) (workout.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.items[id]
	if !ok {
		return workout.Workout{}, ErrNotFound
	}
	return *w.Clone(), nil
}

// Update edits one field of a stored workout and recomputes its derived
// metric. On a validation error the stored workout is left unchanged.
func (s *MemoryStore) Update(id string, field workout.Field, value float64) (workout.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.items[id]
	if !ok {
		return workout.Workout{}, ErrNotFound
	}

	// Edit a copy so a rejected value can never leak into the stored entry.
	next := w.Clone()
	if err := next.Set(field, value); err != nil {
		return workout.Workout{}, err
	}
	s.items[id] = next
	return *next.Clone(), nil
}

// Remove deletes the workout with the given id. empty reports whether the
// store has no workouts left.
func (s *MemoryStore) Remove(id string) (empty bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return len(s.order) == 0, ErrNotFound
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return len(s.order) == 0, nil
}

// Clear removes every workout.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.items = make(map[string]*workout.Workout)
}

// Replace swaps the whole collection for ws, keeping their order. Entries
// with an id seen earlier in ws are dropped.
func (s *MemoryStore) Replace(ws []workout.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = make([]string, 0, len(ws))
	s.items = make(map[string]*workout.Workout, len(ws))
	for i := range ws {
		if _, ok := s.items[ws[i].ID]; ok {
			continue
		}
		s.items[ws[i].ID] = ws[i].Clone()
		s.order = append(s.order, ws[i].ID)
	}
}

// All returns copies of every workout in insertion order.
func (s *MemoryStore) All() []workout.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]workout.Workout, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.items[id].Clone())
	}
	return result
}

// Len returns the number of stored workouts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
