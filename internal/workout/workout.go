// Package workout defines the running and cycling workout entities and
// their derived metrics.
package workout

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("invalid workout input")

// ValidationError reports a rejected numeric input on create or edit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NewRunning creates a running workout at coords. Date is taken from at.
func NewRunning(coords Coords, distance, duration, cadence float64, at time.Time) (*Workout, error) {
	if err := validateBase(coords, distance, duration); err != nil {
		return nil, err
	}
	if !finite(cadence) {
		return nil, invalid(string(FieldCadence), "must be a number")
	}
	if cadence < 0 {
		return nil, invalid(string(FieldCadence), "must not be negative")
	}
	if cadence != math.Trunc(cadence) {
		return nil, invalid(string(FieldCadence), "must be a whole number of steps")
	}

	w := newBase(KindRunning, coords, distance, duration, at)
	w.Running = &RunningStats{Cadence: cadence}
	Recompute(w)
	return w, nil
}

// NewCycling creates a cycling workout at coords. Elevation gain may be
// negative.
func NewCycling(coords Coords, distance, duration, elevationGain float64, at time.Time) (*Workout, error) {
	if err := validateBase(coords, distance, duration); err != nil {
		return nil, err
	}
	if !finite(elevationGain) {
		return nil, invalid(string(FieldElevationGain), "must be a number")
	}

	w := newBase(KindCycling, coords, distance, duration, at)
	w.Cycling = &CyclingStats{ElevationGain: elevationGain}
	Recompute(w)
	return w, nil
}

func newBase(kind Kind, coords Coords, distance, duration float64, at time.Time) *Workout {
	return &Workout{
		ID:          uuid.NewString(),
		Kind:        kind,
		Coords:      coords,
		Distance:    distance,
		Duration:    duration,
		Date:        at,
		Description: Describe(kind, at),
	}
}

func validateBase(coords Coords, distance, duration float64) error {
	if !coords.Valid() {
		return invalid("coords", "not a valid location")
	}
	if err := checkPositive(FieldDistance, distance); err != nil {
		return err
	}
	return checkPositive(FieldDuration, duration)
}

func checkPositive(f Field, v float64) error {
	if !finite(v) {
		return invalid(string(f), "must be a number")
	}
	if v <= 0 {
		return invalid(string(f), "must be greater than zero")
	}
	return nil
}

// Describe builds the title shown for a workout, e.g. "Running on April 14".
func Describe(kind Kind, at time.Time) string {
	name := string(kind)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s on %s", name, at.Format("January 2"))
}

// Recompute refreshes the derived metric from the current distance and
// duration. It is idempotent.
func Recompute(w *Workout) {
	switch w.Kind {
	case KindRunning:
		if w.Running != nil {
			w.Running.Pace = w.Duration / w.Distance
		}
	case KindCycling:
		if w.Cycling != nil {
			w.Cycling.Speed = w.Distance / (w.Duration / 60)
		}
	}
}

// Metric returns the derived metric for the workout's kind.
func (w *Workout) Metric() Metric {
	if w.Kind == KindRunning && w.Running != nil {
		return Metric{Name: "pace", Value: w.Running.Pace, Unit: "min/km"}
	}
	if w.Cycling != nil {
		return Metric{Name: "speed", Value: w.Cycling.Speed, Unit: "km/h"}
	}
	return Metric{}
}

// Attribute returns the kind-specific editable attribute.
func (w *Workout) Attribute() (Field, float64, string) {
	if w.Kind == KindRunning && w.Running != nil {
		return FieldCadence, w.Running.Cadence, "spm"
	}
	if w.Cycling != nil {
		return FieldElevationGain, w.Cycling.ElevationGain, "m"
	}
	return "", 0, ""
}

// Set applies an inline edit. Distance and duration must stay positive;
// cadence and elevation gain accept any finite value. A rejected edit
// leaves w untouched.
func (w *Workout) Set(f Field, v float64) error {
	switch f {
	case FieldDistance, FieldDuration:
		if err := checkPositive(f, v); err != nil {
			return err
		}
		if f == FieldDistance {
			w.Distance = v
		} else {
			w.Duration = v
		}
	case FieldCadence:
		if w.Running == nil {
			return invalid(string(f), "not a field of "+string(w.Kind)+" workouts")
		}
		if !finite(v) {
			return invalid(string(f), "must be a number")
		}
		w.Running.Cadence = v
	case FieldElevationGain:
		if w.Cycling == nil {
			return invalid(string(f), "not a field of "+string(w.Kind)+" workouts")
		}
		if !finite(v) {
			return invalid(string(f), "must be a number")
		}
		w.Cycling.ElevationGain = v
	default:
		return invalid(string(f), "unknown field")
	}

	Recompute(w)
	return nil
}

// ParseField maps an input name to an editable Field.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldDistance, FieldDuration, FieldCadence, FieldElevationGain:
		return f, nil
	}
	return "", invalid(s, "unknown field")
}

// Clone returns a deep copy of w.
func (w *Workout) Clone() *Workout {
	c := *w
	if w.Running != nil {
		r := *w.Running
		c.Running = &r
	}
	if w.Cycling != nil {
		cy := *w.Cycling
		c.Cycling = &cy
	}
	return &c
}
