package weather

import (
	"context"
	"errors"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/workout-tracker/internal/workout"
)

// googleMu guards the package-level API key of the geocoder library.
var googleMu sync.Mutex

// GoogleResolver resolves place names with the Google reverse geocoding API.
type GoogleResolver struct {
	apiKey string
}

// NewGoogleResolver returns nil when apiKey is empty so callers can pass the
// result straight to NewAnnotator.
func NewGoogleResolver(apiKey string) PlaceResolver {
	if apiKey == "" {
		return nil
	}
	return &GoogleResolver{apiKey: apiKey}
}

func (g *GoogleResolver) ResolvePlace(ctx context.Context, coords workout.Coords) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	googleMu.Lock()
	geocoder.ApiKey = g.apiKey
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  coords.Lat,
		Longitude: coords.Lng,
	})
	googleMu.Unlock()
	if err != nil {
		return "", "", err
	}
	if len(addresses) == 0 {
		return "", "", errors.New("no address for location")
	}

	a := addresses[0]
	place := a.City
	if place == "" {
		place = a.County
	}
	if place == "" {
		place = a.State
	}
	return place, a.Country, nil
}
