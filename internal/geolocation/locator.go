// Package geolocation provides the user's current position.
package geolocation

import (
	"context"
	"errors"

	"github.com/i474232898/workout-tracker/internal/workout"
)

// ErrUnavailable is returned when no position can be determined.
var ErrUnavailable = errors.New("could not get location")

// Locator returns the user's current coordinates.
type Locator interface {
	Current(ctx context.Context) (workout.Coords, error)
}

// Static always reports the same configured position.
type Static struct {
	coords *workout.Coords
}

// NewStatic creates a Static locator. A nil or invalid position makes every
// lookup fail with ErrUnavailable.
func NewStatic(coords *workout.Coords) *Static {
	if coords != nil && !coords.Valid() {
		coords = nil
	}
	return &Static{coords: coords}
}

func (s *Static) Current(ctx context.Context) (workout.Coords, error) {
	if err := ctx.Err(); err != nil {
		return workout.Coords{}, err
	}
	if s.coords == nil {
		return workout.Coords{}, ErrUnavailable
	}
	return *s.coords, nil
}
