package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	storedWorkouts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_tracker",
		Subsystem: "store",
		Name:      "workouts",
		Help:      "Number of workouts currently held in the store.",
	})

	persistenceWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "writes_total",
		Help:      "Snapshot writes to the durable slot, labeled by outcome.",
	}, []string{"outcome"})

	skippedRecords = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "load_skipped_total",
		Help:      "Persisted workout records dropped on load because they could not be reconstructed.",
	})

	weatherLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "weather",
		Name:      "lookups_total",
		Help:      "Weather provider lookups, labeled by provider and outcome.",
	}, []string{"provider", "outcome"})
)

func init() {
	prometheus.MustRegister(storedWorkouts, persistenceWrites, skippedRecords, weatherLookups)
}

// SetStoredWorkouts records the current store size.
func SetStoredWorkouts(n int) {
	storedWorkouts.Set(float64(n))
}

// RecordPersistenceWrite counts a snapshot write.
func RecordPersistenceWrite(err error) {
	persistenceWrites.WithLabelValues(outcome(err)).Inc()
}

// RecordSkippedRecord counts a persisted record dropped on load.
func RecordSkippedRecord() {
	skippedRecords.Inc()
}

// RecordWeatherLookup counts one provider lookup.
func RecordWeatherLookup(provider string, err error) {
	weatherLookups.WithLabelValues(provider, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
