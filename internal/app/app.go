// Package app wires user events to the workout store, the view and
// persistence.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/workout-tracker/internal/geolocation"
	"github.com/i474232898/workout-tracker/internal/observability"
	"github.com/i474232898/workout-tracker/internal/persistence"
	"github.com/i474232898/workout-tracker/internal/store"
	"github.com/i474232898/workout-tracker/internal/view"
	"github.com/i474232898/workout-tracker/internal/weather"
	"github.com/i474232898/workout-tracker/internal/workout"
)

// ErrNoLocation is returned when a workout is submitted before a map click.
var ErrNoLocation = errors.New("click on the map to choose a workout location")

// Form is a new-workout submission. Nil values are treated as omitted.
type Form struct {
	Kind          workout.Kind
	Distance      *float64
	Duration      *float64
	Cadence       *float64
	ElevationGain *float64
}

// Deps are the components the controller operates on.
type Deps struct {
	Store     *store.MemoryStore
	Persist   *persistence.Adapter
	Layer     *view.Layer
	View      *view.Synchronizer
	Annotator *weather.Annotator // optional
	Locator   geolocation.Locator
}

// State is the application state. Every user event runs under mu, so no
// two store mutations interleave.
type State struct {
	mu sync.Mutex

	store     *store.MemoryStore
	persist   *persistence.Adapter
	layer     *view.Layer
	view      *view.Synchronizer
	annotator *weather.Annotator
	locator   geolocation.Locator

	pending *workout.Coords
	now     func() time.Time
}

// New creates the controller and registers its map click handler.
func New(d Deps) *State {
	s := &State{
		store:     d.Store,
		persist:   d.Persist,
		layer:     d.Layer,
		view:      d.View,
		annotator: d.Annotator,
		locator:   d.Locator,
		now:       time.Now,
	}
	if s.locator == nil {
		s.locator = geolocation.NewStatic(nil)
	}
	s.layer.OnClick(s.MapClick)
	return s
}

// Start restores saved workouts, renders them, centres the map on the
// user's position and requests weather once per restored workout.
func (s *State) Start(ctx context.Context) {
	s.mu.Lock()
	s.store.Replace(s.persist.Load(ctx))
	all := s.store.All()
	for _, w := range all {
		s.view.Added(w)
	}
	observability.SetStoredWorkouts(len(all))

	s.locate(ctx)
	s.mu.Unlock()

	log.Printf("INFO: restored %d workouts", len(all))
	for _, w := range all {
		s.annotate(w)
	}
}

// ClickMap delivers a map click through the map layer.
func (s *State) ClickMap(coords workout.Coords) error {
	if !coords.Valid() {
		return &workout.ValidationError{Field: "coords", Reason: "not a valid location"}
	}
	s.layer.Click(coords)
	return nil
}

// MapClick remembers where the next workout goes and shows the form.
func (s *State) MapClick(coords workout.Coords) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := coords
	s.pending = &c
	s.view.ShowForm(true)
}

// Submit creates a workout at the last clicked location.
func (s *State) Submit(ctx context.Context, f Form) (workout.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return workout.Workout{}, ErrNoLocation
	}

	w, err := buildWorkout(*s.pending, f, s.now())
	if err != nil {
		return workout.Workout{}, err
	}
	if err := s.store.Add(w); err != nil {
		log.Printf("ERROR: add workout %s: %v", w.ID, err)
		return workout.Workout{}, err
	}

	s.view.Added(*w)
	s.pending = nil
	s.view.ShowForm(false)
	s.view.SetNotice("")
	s.save(ctx)

	s.annotate(*w)
	return *w.Clone(), nil
}

// Edit applies an inline edit. raw is the text typed into the row input.
func (s *State) Edit(ctx context.Context, id, field, raw string) (workout.Workout, error) {
	f, err := workout.ParseField(field)
	if err != nil {
		return workout.Workout{}, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return workout.Workout{}, &workout.ValidationError{Field: field, Reason: "must be a number"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.store.Update(id, f, value)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("ERROR: edit of unknown workout %s ignored", id)
		}
		return workout.Workout{}, err
	}

	s.view.Updated(w)
	s.save(ctx)
	return w, nil
}

// Delete removes a workout with its row, marker and stored copy.
func (s *State) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	empty, err := s.store.Remove(id)
	if err != nil {
		log.Printf("ERROR: delete of unknown workout %s ignored", id)
		return err
	}

	s.view.Removed(id)
	s.save(ctx)
	if empty {
		log.Printf("INFO: last workout deleted")
	}
	return nil
}

// Reset drops every workout and the stored snapshot and returns the map to
// its initial position.
func (s *State) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist.Clear(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.store.Clear()
	s.view.Cleared()
	s.pending = nil
	observability.SetStoredWorkouts(0)
	s.locate(ctx)
	return nil
}

// Focus centres the map on a workout, as when its row is clicked.
func (s *State) Focus(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.store.FindByID(id)
	if err != nil {
		return err
	}
	s.view.Focus(w.Coords)
	return nil
}

// View returns the current view state.
func (s *State) View() view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.State()
}

// Workouts returns the stored workouts in insertion order.
func (s *State) Workouts() []workout.Workout {
	return s.store.All()
}

// Workout returns one stored workout.
func (s *State) Workout(id string) (workout.Workout, error) {
	return s.store.FindByID(id)
}

// RetryMissingAnnotations requests weather for rows that have none yet and
// returns how many lookups were started.
func (s *State) RetryMissingAnnotations() int {
	if s.annotator == nil {
		return 0
	}

	s.mu.Lock()
	var missing []workout.Workout
	for _, w := range s.store.All() {
		if !s.view.Annotated(w.ID) {
			missing = append(missing, w)
		}
	}
	s.mu.Unlock()

	for _, w := range missing {
		s.annotate(w)
	}
	return len(missing)
}

// Wait blocks until background weather lookups have finished.
func (s *State) Wait() {
	if s.annotator != nil {
		s.annotator.Wait()
	}
}

func (s *State) annotate(w workout.Workout) {
	if s.annotator == nil {
		return
	}
	s.annotator.Annotate(w.ID, w.Coords, s.applyWeather)
}

// applyWeather runs when a lookup completes, possibly after the workout
// was deleted; it re-checks by id before touching the row.
func (s *State) applyWeather(id string, r weather.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.FindByID(id); err != nil {
		log.Printf("DEBUG: weather for deleted workout %s discarded", id)
		return
	}
	s.view.Annotate(id, view.Annotation{
		Place:     r.Place(),
		Condition: r.Headline(),
		IconURL:   r.IconRef,
	})
}

// locate centres the map on the user's position or shows a notice when it
// is unknown. Must be called with mu held.
func (s *State) locate(ctx context.Context) {
	coords, err := s.locator.Current(ctx)
	if err != nil {
		log.Printf("INFO: geolocation unavailable: %v", err)
		s.view.SetNotice("Could not get location")
		return
	}
	s.view.Center(coords)
}

// save writes the snapshot. Must be called with mu held.
func (s *State) save(ctx context.Context) {
	all := s.store.All()
	observability.SetStoredWorkouts(len(all))
	if err := s.persist.Save(ctx, all); err != nil {
		log.Printf("ERROR: persistence: %v", err)
	}
}

func buildWorkout(at workout.Coords, f Form, now time.Time) (*workout.Workout, error) {
	if f.Distance == nil {
		return nil, &workout.ValidationError{Field: string(workout.FieldDistance), Reason: "required"}
	}
	if f.Duration == nil {
		return nil, &workout.ValidationError{Field: string(workout.FieldDuration), Reason: "required"}
	}

	switch f.Kind {
	case workout.KindRunning:
		if f.Cadence == nil {
			return nil, &workout.ValidationError{Field: string(workout.FieldCadence), Reason: "required"}
		}
		return workout.NewRunning(at, *f.Distance, *f.Duration, *f.Cadence, now)
	case workout.KindCycling:
		if f.ElevationGain == nil {
			return nil, &workout.ValidationError{Field: string(workout.FieldElevationGain), Reason: "required"}
		}
		return workout.NewCycling(at, *f.Distance, *f.Duration, *f.ElevationGain, now)
	default:
		return nil, &workout.ValidationError{Field: "type", Reason: "must be running or cycling"}
	}
}
