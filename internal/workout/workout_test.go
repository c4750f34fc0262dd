package workout

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testCoords = Coords{Lat: 45.0, Lng: 19.0}
	testDate   = time.Date(2024, time.April, 14, 9, 30, 0, 0, time.UTC)
)

func TestNewRunningComputesPace(t *testing.T) {
	w, err := NewRunning(testCoords, 5, 30, 180, testDate)
	require.NoError(t, err)

	require.NotEmpty(t, w.ID)
	require.Equal(t, KindRunning, w.Kind)
	require.Nil(t, w.Cycling)
	require.Equal(t, 6.0, w.Running.Pace)
	require.Equal(t, "Running on April 14", w.Description)

	m := w.Metric()
	require.Equal(t, "pace", m.Name)
	require.Equal(t, "min/km", m.Unit)
}

func TestNewCyclingComputesSpeed(t *testing.T) {
	w, err := NewCycling(testCoords, 20, 60, 150, testDate)
	require.NoError(t, err)

	require.Equal(t, KindCycling, w.Kind)
	require.Nil(t, w.Running)
	require.Equal(t, 20.0, w.Cycling.Speed)
	require.Equal(t, "Cycling on April 14", w.Description)

	field, value, unit := w.Attribute()
	require.Equal(t, FieldElevationGain, field)
	require.Equal(t, 150.0, value)
	require.Equal(t, "m", unit)
}

func TestNewCyclingAllowsNegativeElevation(t *testing.T) {
	_, err := NewCycling(testCoords, 10, 30, -40, testDate)
	require.NoError(t, err)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		make func() (*Workout, error)
	}{
		{"zero distance", func() (*Workout, error) { return NewRunning(testCoords, 0, 30, 180, testDate) }},
		{"negative duration", func() (*Workout, error) { return NewRunning(testCoords, 5, -1, 180, testDate) }},
		{"nan distance", func() (*Workout, error) { return NewCycling(testCoords, math.NaN(), 30, 0, testDate) }},
		{"inf duration", func() (*Workout, error) { return NewCycling(testCoords, 5, math.Inf(1), 0, testDate) }},
		{"nan cadence", func() (*Workout, error) { return NewRunning(testCoords, 5, 30, math.NaN(), testDate) }},
		{"negative cadence", func() (*Workout, error) { return NewRunning(testCoords, 5, 30, -2, testDate) }},
		{"fractional cadence", func() (*Workout, error) { return NewRunning(testCoords, 5, 30, 172.5, testDate) }},
		{"nan elevation", func() (*Workout, error) { return NewCycling(testCoords, 5, 30, math.NaN(), testDate) }},
		{"bad coords", func() (*Workout, error) { return NewRunning(Coords{Lat: 91, Lng: 0}, 5, 30, 180, testDate) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := tc.make()
			require.Nil(t, w)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
		})
	}
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		w, err := NewRunning(testCoords, 5, 30, 180, testDate)
		require.NoError(t, err)
		_, dup := seen[w.ID]
		require.False(t, dup, "duplicate id %s", w.ID)
		seen[w.ID] = struct{}{}
	}
}

func TestSetRecomputesDerivedMetric(t *testing.T) {
	w, err := NewRunning(testCoords, 5, 30, 180, testDate)
	require.NoError(t, err)

	require.NoError(t, w.Set(FieldDistance, 10))
	require.Equal(t, 3.0, w.Running.Pace)

	require.NoError(t, w.Set(FieldDuration, 50))
	require.Equal(t, 5.0, w.Running.Pace)
	require.Equal(t, "Running on April 14", w.Description)
	require.Equal(t, testCoords, w.Coords)
}

func TestSetRejectionLeavesWorkoutUnchanged(t *testing.T) {
	w, err := NewCycling(testCoords, 20, 60, 150, testDate)
	require.NoError(t, err)
	before := *w.Clone()

	require.ErrorIs(t, w.Set(FieldDistance, -1), ErrValidation)
	require.ErrorIs(t, w.Set(FieldDuration, 0), ErrValidation)
	require.ErrorIs(t, w.Set(FieldDistance, math.NaN()), ErrValidation)
	require.ErrorIs(t, w.Set(FieldCadence, 170), ErrValidation)
	require.ErrorIs(t, w.Set(FieldElevationGain, math.Inf(-1)), ErrValidation)

	require.Equal(t, before.Distance, w.Distance)
	require.Equal(t, before.Duration, w.Duration)
	require.Equal(t, *before.Cycling, *w.Cycling)
}

func TestSetAttributeHasNoPositivityFloor(t *testing.T) {
	w, err := NewRunning(testCoords, 5, 30, 180, testDate)
	require.NoError(t, err)

	require.NoError(t, w.Set(FieldCadence, -5))
	require.Equal(t, -5.0, w.Running.Cadence)
	require.Equal(t, 6.0, w.Running.Pace)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	w, err := NewCycling(testCoords, 17, 43, 10, testDate)
	require.NoError(t, err)

	Recompute(w)
	first := w.Cycling.Speed
	Recompute(w)
	require.Equal(t, first, w.Cycling.Speed)
}

func TestCloneIsDeep(t *testing.T) {
	w, err := NewRunning(testCoords, 5, 30, 180, testDate)
	require.NoError(t, err)

	c := w.Clone()
	require.NoError(t, c.Set(FieldCadence, 150))
	require.Equal(t, 180.0, w.Running.Cadence)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("elevationGain")
	require.NoError(t, err)
	require.Equal(t, FieldElevationGain, f)

	_, err = ParseField("pace")
	require.ErrorIs(t, err, ErrValidation)
}
