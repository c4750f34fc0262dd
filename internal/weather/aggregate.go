package weather

import (
	"time"

	"github.com/i474232898/workout-tracker/internal/workout"
)

// AggregateReadings combines provider readings into a single Report.
// Readings are expected in provider priority order: text fields come from
// the first reading that has them, temperature is averaged and the
// condition is picked by majority (earliest wins a tie).
func AggregateReadings(coords workout.Coords, readings []Reading) Report {
	if len(readings) == 0 {
		return Report{
			Coords:    coords,
			Timestamp: time.Now().UTC(),
			Condition: ConditionUnknown,
		}
	}

	var (
		sumTemp  float64
		newestTS time.Time
		report   = Report{Coords: coords}
	)

	conditionCounts := make(map[Condition]int)
	var conditionOrder []Condition
	report.Providers = make([]ProviderContribution, 0, len(readings))

	for _, r := range readings {
		sumTemp += r.TemperatureC

		if _, ok := conditionCounts[r.Condition]; !ok {
			conditionOrder = append(conditionOrder, r.Condition)
		}
		conditionCounts[r.Condition]++

		if report.PlaceName == "" {
			report.PlaceName = r.PlaceName
		}
		if report.CountryCode == "" {
			report.CountryCode = r.CountryCode
		}
		if report.ConditionText == "" {
			report.ConditionText = r.ConditionText
		}
		if report.IconRef == "" {
			report.IconRef = r.IconRef
		}

		if r.Timestamp.After(newestTS) {
			newestTS = r.Timestamp
		}

		report.Providers = append(report.Providers, ProviderContribution{
			ProviderName: r.ProviderName,
			Timestamp:    r.Timestamp,
		})
	}

	// Pick majority condition.
	bestCond := ConditionUnknown
	bestCount := 0
	for _, cond := range conditionOrder {
		if count := conditionCounts[cond]; count > bestCount {
			bestCount = count
			bestCond = cond
		}
	}

	if newestTS.IsZero() {
		newestTS = time.Now().UTC()
	}

	report.Timestamp = newestTS
	report.TemperatureC = sumTemp / float64(len(readings))
	report.Condition = bestCond
	return report
}
