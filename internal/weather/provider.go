package weather

import (
	"context"

	"github.com/i474232898/workout-tracker/internal/workout"
)

// Provider abstracts a weather data source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, coords workout.Coords) (Reading, error)
}

// PlaceResolver turns a coordinate into a place name when no provider
// supplied one.
type PlaceResolver interface {
	ResolvePlace(ctx context.Context, coords workout.Coords) (place, country string, err error)
}
