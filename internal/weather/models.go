package weather

import (
	"strings"
	"time"

	"github.com/i474232898/workout-tracker/internal/workout"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Reading is a single provider's answer for a coordinate.
type Reading struct {
	ProviderName string
	Timestamp    time.Time

	PlaceName     string
	CountryCode   string
	ConditionText string
	IconRef       string
	TemperatureC  float64
	Condition     Condition
}

// Report is the merged weather for a coordinate, ready for display.
type Report struct {
	Coords        workout.Coords `json:"coords"`
	Timestamp     time.Time      `json:"timestamp"` // always UTC
	PlaceName     string         `json:"placeName"`
	CountryCode   string         `json:"countryCode"`
	ConditionText string         `json:"conditionText"`
	IconRef       string         `json:"iconRef"`
	TemperatureC  float64        `json:"temperatureC"`
	Condition     Condition      `json:"condition"`

	// Providers contributing to this report.
	Providers []ProviderContribution `json:"providers,omitempty"`
}

// Place formats the location line, e.g. "Novi Sad, RS".
func (r Report) Place() string {
	switch {
	case r.PlaceName != "" && r.CountryCode != "":
		return r.PlaceName + ", " + r.CountryCode
	case r.PlaceName != "":
		return r.PlaceName
	default:
		return r.CountryCode
	}
}

// Headline is the upper-cased condition text shown on a row.
func (r Report) Headline() string {
	if r.ConditionText != "" {
		return strings.ToUpper(r.ConditionText)
	}
	return strings.ToUpper(string(r.Condition))
}

// ProviderContribution describes data coming from a single provider used in aggregation.
type ProviderContribution struct {
	ProviderName string    `json:"provider"`
	Timestamp    time.Time `json:"timestamp"`
}
