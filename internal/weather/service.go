package weather

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/i474232898/workout-tracker/internal/observability"
	"github.com/i474232898/workout-tracker/internal/workout"
)

var (
	// ErrNoProviders is returned when the annotator has nothing to query.
	ErrNoProviders = errors.New("no weather providers configured")
	// ErrNoReadings is returned when every provider failed.
	ErrNoReadings = errors.New("no successful weather readings")
)

// ApplyFunc receives the report for the workout with the given id. It must
// look the workout up again; it may have been deleted meanwhile.
type ApplyFunc func(id string, report Report)

// Annotator looks up current weather for workout locations.
type Annotator struct {
	providers []Provider
	resolver  PlaceResolver
	timeout   time.Duration

	wg sync.WaitGroup
}

// NewAnnotator creates an Annotator. resolver may be nil; a timeout <= 0
// leaves lookups bounded only by the caller's context.
func NewAnnotator(providers []Provider, resolver PlaceResolver, timeout time.Duration) *Annotator {
	return &Annotator{
		providers: providers,
		resolver:  resolver,
		timeout:   timeout,
	}
}

// Lookup queries all providers concurrently for coords and merges the
// successful readings.
func (a *Annotator) Lookup(ctx context.Context, coords workout.Coords) (Report, error) {
	if len(a.providers) == 0 {
		return Report{}, ErrNoProviders
	}

	var wg sync.WaitGroup
	results := make([]*Reading, len(a.providers))

	for i, p := range a.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()

			r, err := p.Fetch(ctx, coords)
			observability.RecordWeatherLookup(p.Name(), err)
			if err != nil {
				// Log and continue; partial success is enough.
				log.Printf("provider %s lookup failed for %.4f,%.4f: %v", p.Name(), coords.Lat, coords.Lng, err)
				return
			}
			results[i] = &r
		}(i, p)
	}
	wg.Wait()

	readings := make([]Reading, 0, len(results))
	for _, r := range results {
		if r != nil {
			readings = append(readings, *r)
		}
	}
	if len(readings) == 0 {
		return Report{}, ErrNoReadings
	}

	report := AggregateReadings(coords, readings)
	if report.PlaceName == "" && a.resolver != nil {
		place, country, err := a.resolver.ResolvePlace(ctx, coords)
		if err != nil {
			log.Printf("place lookup failed for %.4f,%.4f: %v", coords.Lat, coords.Lng, err)
		} else {
			report.PlaceName = place
			if report.CountryCode == "" {
				report.CountryCode = country
			}
		}
	}
	return report, nil
}

// Annotate starts a background lookup for one workout and hands the result
// to apply. Failures are logged and apply is not called.
func (a *Annotator) Annotate(id string, coords workout.Coords, apply ApplyFunc) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx := context.Background()
		if a.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.timeout)
			defer cancel()
		}

		report, err := a.Lookup(ctx, coords)
		if err != nil {
			log.Printf("weather: annotation for workout %s skipped: %v", id, err)
			return
		}
		apply(id, report)
	}()
}

// Wait blocks until every started annotation has finished.
func (a *Annotator) Wait() {
	a.wg.Wait()
}
