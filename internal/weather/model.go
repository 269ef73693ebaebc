// README: Weather snapshot produced once per generation run.
package weather

import (
	"context"
	"strings"
)

// FallbackCondition is the condition text of every synthesized snapshot.
const FallbackCondition = "partly cloudy"

// Snapshot is immutable after construction.
type Snapshot struct {
	Location           string  `json:"location"`
	TemperatureCelsius float64 `json:"temperatureCelsius"`
	Condition          string  `json:"condition"`
	IconRef            string  `json:"iconRef,omitempty"`
	Humidity           int     `json:"humidity"`
	WindSpeed          float64 `json:"windSpeed"`
	APISuccess         bool    `json:"apiSuccess"`
	Fallback           bool    `json:"fallback"`
}

// Source always yields a snapshot; failures degrade to FallbackSnapshot.
type Source interface {
	GetWeather(ctx context.Context, city string) Snapshot
}

// RandSource is the subset of a random generator the fallback needs.
type RandSource interface {
	Intn(n int) int
}

// FallbackSnapshot synthesizes a plausible snapshot: 15-35 C, 40-80% humidity.
func FallbackSnapshot(city string, rnd RandSource) Snapshot {
	return Snapshot{
		Location:           strings.TrimSpace(city),
		TemperatureCelsius: float64(15 + rnd.Intn(21)),
		Condition:          FallbackCondition,
		Humidity:           40 + rnd.Intn(41),
		WindSpeed:          float64(1 + rnd.Intn(6)),
		APISuccess:         false,
		Fallback:           true,
	}
}

func cacheKey(city string) string {
	return "weather:" + strings.ToLower(strings.TrimSpace(city))
}
