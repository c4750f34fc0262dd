package store

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/workout-tracker/internal/workout"
)

var at = time.Date(2024, time.April, 14, 8, 0, 0, 0, time.UTC)

func newRun(t *testing.T, distance, duration float64) *workout.Workout {
	t.Helper()
	w, err := workout.NewRunning(workout.Coords{Lat: 45, Lng: 19}, distance, duration, 180, at)
	require.NoError(t, err)
	return w
}

func newRide(t *testing.T) *workout.Workout {
	t.Helper()
	w, err := workout.NewCycling(workout.Coords{Lat: 45, Lng: 19}, 20, 60, 150, at)
	require.NoError(t, err)
	return w
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	a, b, c := newRun(t, 5, 30), newRide(t), newRun(t, 3, 20)

	for _, w := range []*workout.Workout{a, b, c} {
		require.NoError(t, s.Add(w))
	}

	all := s.All()
	require.Len(t, all, 3)
	require.Equal(t, a.ID, all[0].ID)
	require.Equal(t, b.ID, all[1].ID)
	require.Equal(t, c.ID, all[2].ID)
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s := NewMemoryStore()
	w := newRun(t, 5, 30)

	require.NoError(t, s.Add(w))
	require.ErrorIs(t, s.Add(w), ErrDuplicateID)
	require.Equal(t, 1, s.Len())
}

func TestFindByIDReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	w := newRun(t, 5, 30)
	require.NoError(t, s.Add(w))

	got, err := s.FindByID(w.ID)
	require.NoError(t, err)
	got.Running.Cadence = 1

	again, err := s.FindByID(w.ID)
	require.NoError(t, err)
	require.Equal(t, 180.0, again.Running.Cadence)

	_, err = s.FindByID("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRecomputesPace(t *testing.T) {
	s := NewMemoryStore()
	w := newRun(t, 5, 30)
	require.NoError(t, s.Add(w))

	updated, err := s.Update(w.ID, workout.FieldDistance, 10)
	require.NoError(t, err)
	require.Equal(t, 3.0, updated.Running.Pace)

	stored, err := s.FindByID(w.ID)
	require.NoError(t, err)
	require.Equal(t, 10.0, stored.Distance)
	require.Equal(t, 3.0, stored.Running.Pace)
}

func TestUpdateRejectsInvalidValue(t *testing.T) {
	s := NewMemoryStore()
	w := newRun(t, 10, 30)
	require.NoError(t, s.Add(w))

	for _, v := range []float64{-1, 0, math.NaN(), math.Inf(1)} {
		_, err := s.Update(w.ID, workout.FieldDistance, v)
		require.ErrorIs(t, err, workout.ErrValidation)
	}

	stored, err := s.FindByID(w.ID)
	require.NoError(t, err)
	require.Equal(t, 10.0, stored.Distance)
	require.Equal(t, 3.0, stored.Running.Pace)
}

func TestUpdateUnknownID(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Update("nope", workout.FieldDistance, 3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveReportsEmpty(t *testing.T) {
	s := NewMemoryStore()
	a, b := newRun(t, 5, 30), newRide(t)
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))

	empty, err := s.Remove(a.ID)
	require.NoError(t, err)
	require.False(t, empty)

	empty, err = s.Remove(b.ID)
	require.NoError(t, err)
	require.True(t, empty)
	require.Empty(t, s.All())

	_, err = s.Remove(b.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClearAndReplace(t *testing.T) {
	s := NewMemoryStore()
	a, b := newRun(t, 5, 30), newRide(t)
	require.NoError(t, s.Add(a))
	s.Clear()
	require.Equal(t, 0, s.Len())

	s.Replace([]workout.Workout{*b, *a, *b})
	all := s.All()
	require.Len(t, all, 2)
	require.Equal(t, b.ID, all[0].ID)
	require.Equal(t, a.ID, all[1].ID)
}
