package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/workout-tracker/internal/workout"
)

func sampleWorkouts(t *testing.T) []workout.Workout {
	t.Helper()
	at := time.Date(2024, time.April, 14, 7, 15, 0, 0, time.UTC)

	run, err := workout.NewRunning(workout.Coords{Lat: 45.0, Lng: 19.0}, 5, 30, 180, at)
	require.NoError(t, err)
	ride, err := workout.NewCycling(workout.Coords{Lat: 45.0, Lng: 19.0}, 20, 60, -12.5, at.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, run.Set(workout.FieldCadence, -3))

	return []workout.Workout{*run, *ride}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(NewMemorySlot(), "")
	in := sampleWorkouts(t)

	require.NoError(t, adapter.Save(ctx, in))
	out := adapter.Load(ctx)

	require.Len(t, out, len(in))
	for i := range in {
		require.Equal(t, in[i].ID, out[i].ID)
		require.Equal(t, in[i].Kind, out[i].Kind)
		require.Equal(t, in[i].Coords, out[i].Coords)
		require.Equal(t, in[i].Distance, out[i].Distance)
		require.Equal(t, in[i].Duration, out[i].Duration)
		require.True(t, in[i].Date.Equal(out[i].Date))
		require.Equal(t, in[i].Description, out[i].Description)
		require.Equal(t, in[i].Running, out[i].Running)
		require.Equal(t, in[i].Cycling, out[i].Cycling)
	}
}

func TestLoadAbsentSlotIsEmpty(t *testing.T) {
	out := NewAdapter(NewMemorySlot(), "workout").Load(context.Background())
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestLoadMalformedSlotIsEmpty(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	require.NoError(t, slot.Set(ctx, "workout", []byte(`{not json`)))

	require.Empty(t, NewAdapter(slot, "workout").Load(ctx))
}

func TestLoadRecomputesDerivedAndSkipsBadRecords(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	raw := `[
		{"id":"a","type":"running","coords":[45,19],"distance":5,"duration":30,"date":"2024-04-14T07:15:00Z","cadence":180,"pace":99},
		{"id":"b","type":"swimming","coords":[45,19],"distance":1,"duration":30,"date":"2024-04-14T07:15:00Z"},
		{"id":"c","type":"cycling","coords":[45,19],"distance":-2,"duration":30,"date":"2024-04-14T07:15:00Z","elevationGain":3},
		{"id":"a","type":"cycling","coords":[45,19],"distance":20,"duration":60,"date":"2024-04-14T07:15:00Z","elevationGain":3},
		{"id":"","type":"running","coords":[45,19],"distance":5,"duration":30,"date":"2024-04-14T07:15:00Z","cadence":170},
		{"id":"d","type":"cycling","coords":[45,19],"distance":20,"duration":60,"date":"2024-04-14T07:15:00Z","elevationGain":150}
	]`
	require.NoError(t, slot.Set(ctx, "workout", []byte(raw)))

	out := NewAdapter(slot, "workout").Load(ctx)
	require.Len(t, out, 2)

	require.Equal(t, "a", out[0].ID)
	require.Equal(t, 6.0, out[0].Running.Pace)
	require.Equal(t, "Running on April 14", out[0].Description)

	require.Equal(t, "d", out[1].ID)
	require.Equal(t, 20.0, out[1].Cycling.Speed)
}

func TestSaveOverwritesAndClear(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	adapter := NewAdapter(slot, "workout")
	ws := sampleWorkouts(t)

	require.NoError(t, adapter.Save(ctx, ws))
	require.NoError(t, adapter.Save(ctx, ws[:1]))
	require.Len(t, adapter.Load(ctx), 1)

	require.NoError(t, adapter.Save(ctx, nil))
	require.Empty(t, adapter.Load(ctx))

	require.NoError(t, adapter.Clear(ctx))
	_, err := slot.Get(ctx, "workout")
	require.ErrorIs(t, err, ErrSlotEmpty)
}
