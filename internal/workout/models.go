package workout

import (
	"math"
	"time"

	"github.com/golang/geo/s2"
)

// Kind tags which workout variant a Workout carries.
type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

// Valid reports whether k is a known workout kind.
func (k Kind) Valid() bool {
	return k == KindRunning || k == KindCycling
}

// Icon returns the emoji shown next to workouts of this kind.
func (k Kind) Icon() string {
	if k == KindRunning {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}

// Coords is a latitude/longitude pair in degrees.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether c is a finite point on the globe.
func (c Coords) Valid() bool {
	if !finite(c.Lat) || !finite(c.Lng) {
		return false
	}
	return s2.LatLngFromDegrees(c.Lat, c.Lng).IsValid()
}

// Workout is a single recorded session. Exactly one of Running or Cycling
// is set, matching Kind.
type Workout struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"type"`
	Coords      Coords    `json:"coords"`
	Distance    float64   `json:"distance"` // km
	Duration    float64   `json:"duration"` // min
	Date        time.Time `json:"date"`
	Description string    `json:"description"`

	Running *RunningStats `json:"running,omitempty"`
	Cycling *CyclingStats `json:"cycling,omitempty"`
}

// RunningStats holds the running-only attribute and its derived pace.
type RunningStats struct {
	Cadence float64 `json:"cadence"` // steps/min
	Pace    float64 `json:"pace"`    // min/km
}

// CyclingStats holds the cycling-only attribute and its derived speed.
type CyclingStats struct {
	ElevationGain float64 `json:"elevationGain"` // m
	Speed         float64 `json:"speed"`         // km/h
}

// Metric describes the derived metric of a workout for display.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Field names an inline-editable workout field.
type Field string

const (
	FieldDistance      Field = "distance"
	FieldDuration      Field = "duration"
	FieldCadence       Field = "cadence"
	FieldElevationGain Field = "elevationGain"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
