package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/i474232898/workout-tracker/internal/observability"
	"github.com/i474232898/workout-tracker/internal/workout"
)

// DefaultKey is the slot name used when none is configured.
const DefaultKey = "workout"

// record is the stored form of a workout. Pace and speed are written for
// readability but recomputed on load.
type record struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Coords        [2]float64 `json:"coords"`
	Distance      float64    `json:"distance"`
	Duration      float64    `json:"duration"`
	Date          time.Time  `json:"date"`
	Description   string     `json:"description,omitempty"`
	Cadence       *float64   `json:"cadence,omitempty"`
	Pace          *float64   `json:"pace,omitempty"`
	ElevationGain *float64   `json:"elevationGain,omitempty"`
	Speed         *float64   `json:"speed,omitempty"`
}

// Adapter serializes the workout collection to a single slot key.
type Adapter struct {
	slot Slot
	key  string
}

// NewAdapter creates an Adapter writing under key.
func NewAdapter(slot Slot, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{slot: slot, key: key}
}

// Save overwrites the stored snapshot with ws.
func (a *Adapter) Save(ctx context.Context, ws []workout.Workout) error {
	records := make([]record, 0, len(ws))
	for i := range ws {
		records = append(records, toRecord(&ws[i]))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode workouts: %w", err)
	}

	err = a.slot.Set(ctx, a.key, data)
	observability.RecordPersistenceWrite(err)
	if err != nil {
		return fmt.Errorf("write slot %q: %w", a.key, err)
	}
	return nil
}

// Load reads the stored snapshot. An absent or unreadable slot yields no
// workouts; records that cannot be reconstructed are skipped.
func (a *Adapter) Load(ctx context.Context) []workout.Workout {
	data, err := a.slot.Get(ctx, a.key)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			log.Printf("persistence: read slot %q failed, starting empty: %v", a.key, err)
		}
		return []workout.Workout{}
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("persistence: slot %q is malformed, starting empty: %v", a.key, err)
		return []workout.Workout{}
	}

	result := make([]workout.Workout, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		w, err := fromRecord(r)
		if err == nil {
			if _, dup := seen[w.ID]; dup {
				err = fmt.Errorf("duplicate id %s", w.ID)
			}
		}
		if err != nil {
			log.Printf("persistence: skipping record %d: %v", i, err)
			observability.RecordSkippedRecord()
			continue
		}
		seen[w.ID] = struct{}{}
		result = append(result, *w)
	}
	return result
}

// Clear deletes the stored snapshot.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.slot.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("delete slot %q: %w", a.key, err)
	}
	return nil
}

func toRecord(w *workout.Workout) record {
	r := record{
		ID:          w.ID,
		Type:        string(w.Kind),
		Coords:      [2]float64{w.Coords.Lat, w.Coords.Lng},
		Distance:    w.Distance,
		Duration:    w.Duration,
		Date:        w.Date,
		Description: w.Description,
	}
	if w.Running != nil {
		cadence, pace := w.Running.Cadence, w.Running.Pace
		r.Cadence, r.Pace = &cadence, &pace
	}
	if w.Cycling != nil {
		elev, speed := w.Cycling.ElevationGain, w.Cycling.Speed
		r.ElevationGain, r.Speed = &elev, &speed
	}
	return r
}

// fromRecord rebuilds a workout through the entity constructors so the
// stored values are validated and the derived metric is fresh.
func fromRecord(r record) (*workout.Workout, error) {
	if strings.TrimSpace(r.ID) == "" {
		return nil, errors.New("missing id")
	}
	coords := workout.Coords{Lat: r.Coords[0], Lng: r.Coords[1]}

	var (
		w   *workout.Workout
		err error
	)
	switch workout.Kind(r.Type) {
	case workout.KindRunning:
		if r.Cadence == nil {
			return nil, errors.New("running record without cadence")
		}
		// Edits may leave any finite cadence, so apply it as an edit.
		w, err = workout.NewRunning(coords, r.Distance, r.Duration, 0, r.Date)
		if err == nil {
			err = w.Set(workout.FieldCadence, *r.Cadence)
		}
	case workout.KindCycling:
		if r.ElevationGain == nil {
			return nil, errors.New("cycling record without elevationGain")
		}
		w, err = workout.NewCycling(coords, r.Distance, r.Duration, *r.ElevationGain, r.Date)
	default:
		return nil, fmt.Errorf("unknown workout type %q", r.Type)
	}
	if err != nil {
		return nil, err
	}

	w.ID = r.ID
	if r.Description != "" {
		w.Description = r.Description
	}
	return w, nil
}
