// README: Prometheus collectors for provider attempts and plan synthesis.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripsmith_ai_provider_attempts_total",
			Help: "AI provider attempts by provider and outcome (ok, error, empty)",
		},
		[]string{"provider", "outcome"},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripsmith_ai_provider_latency_seconds",
			Help:    "Latency of individual AI provider calls",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"provider"},
	)

	ProviderExhausted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tripsmith_ai_exhausted_total",
			Help: "Generations where every provider candidate failed",
		},
	)

	Synthesis = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripsmith_synthesis_total",
			Help: "Synthesized plan fragments by kind (itinerary, hotels) and source (ai, fallback)",
		},
		[]string{"kind", "source"},
	)

	TripDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tripsmith_trip_synthesis_seconds",
			Help:    "End-to-end duration of SynthesizeTrip",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
	)

	WeatherLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripsmith_weather_lookups_total",
			Help: "Weather lookups by source (cache, api, fallback)",
		},
		[]string{"source"},
	)
)
