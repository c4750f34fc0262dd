package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/workout-tracker/internal/workout"
)

var same = workout.Coords{Lat: 45.0, Lng: 19.0}

func mustRun(t *testing.T) workout.Workout {
	t.Helper()
	w, err := workout.NewRunning(same, 5, 30, 180, time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return *w
}

func mustRide(t *testing.T) workout.Workout {
	t.Helper()
	w, err := workout.NewCycling(same, 20, 60, 150, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return *w
}

func TestAddedPlacesMarkerAndRow(t *testing.T) {
	layer := NewLayer()
	s := NewSynchronizer(layer, 0)

	run := mustRun(t)
	s.Added(run)

	st := s.State()
	require.True(t, st.ResetVisible)
	require.Len(t, st.Rows, 1)
	require.Len(t, st.Markers, 1)

	row := st.Rows[0]
	require.Equal(t, run.ID, row.ID)
	require.Equal(t, "Running on April 14", row.Title)
	require.Equal(t, "pace", row.Metric.Field)
	require.Equal(t, "6.0", row.Metric.Value)
	require.True(t, row.Metric.Disabled)
	require.Equal(t, "cadence", row.Attribute.Field)
	require.Equal(t, "180", row.Attribute.Value)
	require.Equal(t, "5", row.Distance.Value)

	m := st.Markers[0]
	require.Equal(t, same, m.Coords)
	require.Equal(t, "running-popup", m.StyleClass)
	require.Equal(t, "🏃‍♂️ Running on April 14", m.Popup)
}

func TestUpdatedRewritesMetricWithoutMovingMarker(t *testing.T) {
	layer := NewLayer()
	s := NewSynchronizer(layer, 0)
	run := mustRun(t)
	s.Added(run)
	require.True(t, s.Annotate(run.ID, Annotation{Place: "Novi Sad, RS"}))
	before := layer.Markers()

	require.NoError(t, run.Set(workout.FieldDistance, 10))
	s.Updated(run)

	st := s.State()
	require.Equal(t, "3.0", st.Rows[0].Metric.Value)
	require.Equal(t, "10", st.Rows[0].Distance.Value)
	require.NotNil(t, st.Rows[0].Weather)
	require.Equal(t, before, st.Markers)
}

func TestRemovedMatchesByIDNotCoords(t *testing.T) {
	layer := NewLayer()
	s := NewSynchronizer(layer, 0)
	run, ride := mustRun(t), mustRide(t)
	s.Added(run)
	s.Added(ride)

	s.Removed(run.ID)

	st := s.State()
	require.Len(t, st.Rows, 1)
	require.Equal(t, ride.ID, st.Rows[0].ID)
	require.Len(t, st.Markers, 1)
	require.Equal(t, "cycling-popup", st.Markers[0].StyleClass)
	require.Equal(t, "20.0", st.Rows[0].Metric.Value)
}

func TestRemovingLastHidesReset(t *testing.T) {
	s := NewSynchronizer(NewLayer(), 0)
	run := mustRun(t)
	s.Added(run)
	s.Removed(run.ID)

	st := s.State()
	require.False(t, st.ResetVisible)
	require.Empty(t, st.Rows)
	require.Empty(t, st.Markers)
}

func TestClearedResetsView(t *testing.T) {
	s := NewSynchronizer(NewLayer(), 0)
	s.Added(mustRun(t))
	s.Added(mustRide(t))
	s.ShowForm(true)
	s.SetNotice("could not get location")
	s.Focus(same)

	s.Cleared()

	st := s.State()
	require.Empty(t, st.Rows)
	require.Empty(t, st.Markers)
	require.False(t, st.FormVisible)
	require.Empty(t, st.Notice)
	require.False(t, st.Camera.Set)
}

func TestMetricRoundsTiesUp(t *testing.T) {
	cases := []struct {
		distance, duration float64
		want               string
	}{
		{4, 9, "2.3"},
		{4, 1, "0.3"},
		{5, 30, "6.0"},
		{3, 10, "3.3"},
	}

	for _, tc := range cases {
		s := NewSynchronizer(NewLayer(), 0)
		w, err := workout.NewRunning(same, tc.distance, tc.duration, 180, time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		s.Added(*w)
		require.Equal(t, tc.want, s.State().Rows[0].Metric.Value, "pace %v", w.Running.Pace)
	}
}

func TestFocusCentresAtZoom(t *testing.T) {
	layer := NewLayer()
	s := NewSynchronizer(layer, 15)

	s.Focus(same)

	cam := layer.Camera()
	require.True(t, cam.Set)
	require.Equal(t, same, cam.Center)
	require.Equal(t, 15, cam.Zoom)
	require.True(t, cam.Animated)
}

func TestAnnotateMissingRow(t *testing.T) {
	s := NewSynchronizer(NewLayer(), 0)
	require.False(t, s.Annotate("gone", Annotation{Place: "x"}))
	require.False(t, s.Annotated("gone"))
}

func TestLayerClickDispatch(t *testing.T) {
	layer := NewLayer()
	require.False(t, layer.Click(same))

	var got workout.Coords
	layer.OnClick(func(c workout.Coords) { got = c })
	require.True(t, layer.Click(same))
	require.Equal(t, same, got)
}
