package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"tripsmith/internal/maps"
	"tripsmith/internal/metrics"
	"tripsmith/internal/modules/accommodation"
	"tripsmith/internal/modules/budget"
	"tripsmith/internal/modules/itinerary"
	"tripsmith/internal/types"
	"tripsmith/internal/weather"
)

var tracer = otel.Tracer("tripsmith/service")

// JourneyEstimator estimates the trip from StartLocation to Destination.
type JourneyEstimator interface {
	GetTravelEstimate(ctx context.Context, origin, destination string) (maps.Journey, error)
}

// TripPlan is the merged result of one synthesis run.
type TripPlan struct {
	ID                     string                        `json:"id"`
	Destination            string                        `json:"destination"`
	Summary                string                        `json:"summary"`
	Days                   []itinerary.DayPlan           `json:"days"`
	TotalEstimatedCost     float64                       `json:"totalEstimatedCost"`
	Insights               []string                      `json:"insights"`
	CulturalTips           []string                      `json:"culturalTips"`
	BudgetBreakdown        budget.Breakdown              `json:"budgetBreakdown"`
	PersonalizationSummary string                        `json:"personalizationSummary"`
	DayWiseAccommodations  map[int][]accommodation.Hotel `json:"dayWiseAccommodations"`
	NightlyBand            budget.Band                   `json:"nightlyBand"`
	WeatherData            weather.Snapshot              `json:"weatherData"`
	Journey                *maps.Journey                 `json:"journey,omitempty"`
	GeneratedAt            time.Time                     `json:"generatedAt"`
	AIGenerated            bool                          `json:"aiGenerated"`
	HotelsAIGenerated      bool                          `json:"hotelsAiGenerated"`
}

// TripPlanner runs weather, journey, itinerary and hotel synthesis in order
// and merges the results.
type TripPlanner struct {
	weather   weather.Source
	journeys  JourneyEstimator
	itinerary *itinerary.Synthesizer
	hotels    *accommodation.Synthesizer
	log       *zap.Logger
	now       func() time.Time
}

// NewTripPlanner creates a TripPlanner. journeys may be nil.
func NewTripPlanner(src weather.Source, journeys JourneyEstimator, it *itinerary.Synthesizer, hotels *accommodation.Synthesizer, log *zap.Logger) *TripPlanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &TripPlanner{
		weather:   src,
		journeys:  journeys,
		itinerary: it,
		hotels:    hotels,
		log:       log,
		now:       time.Now,
	}
}

// SynthesizeTrip builds a complete plan. The only error is types.ErrBadRequest;
// every downstream failure degrades to deterministic content.
func (p *TripPlanner) SynthesizeTrip(ctx context.Context, req types.TripRequest) (*TripPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "trip.synthesize")
	defer span.End()
	span.SetAttributes(
		attribute.String("trip.destination", req.Destination),
		attribute.Int("trip.days", req.Days),
	)

	start := time.Now()
	defer func() { metrics.TripDuration.Observe(time.Since(start).Seconds()) }()

	log := p.log.With(zap.String("destination", req.Destination), zap.Int("days", req.Days))

	// 1. Weather
	snap := p.weather.GetWeather(ctx, req.Destination)
	log.Info("weather ready", zap.Bool("api", snap.APISuccess), zap.String("condition", snap.Condition))

	// 2. Journey (optional)
	journey := p.estimateJourney(ctx, req, log)

	// 3. Itinerary
	it := p.itinerary.Generate(ctx, req, snap, journey)
	log.Info("itinerary ready", zap.Bool("ai", it.AIGenerated), zap.Int("day_count", len(it.Days)))

	// 4. Hotels
	hotels := p.hotels.Generate(ctx, req.Days, req.Budget, req.Destination)
	log.Info("hotels ready", zap.Bool("ai", hotels.AIGenerated), zap.Int("nights", len(hotels.ByDay)))

	// 5. Merge
	plan := &TripPlan{
		ID:                     uuid.NewString(),
		Destination:            req.Destination,
		Summary:                it.Summary,
		Days:                   it.Days,
		TotalEstimatedCost:     it.TotalEstimatedCost,
		Insights:               it.Insights,
		CulturalTips:           it.CulturalTips,
		BudgetBreakdown:        it.BudgetBreakdown,
		PersonalizationSummary: it.PersonalizationSummary,
		DayWiseAccommodations:  hotels.ByDay,
		NightlyBand:            hotels.Band,
		WeatherData:            snap,
		Journey:                journey,
		GeneratedAt:            p.now().UTC(),
		AIGenerated:            it.AIGenerated,
		HotelsAIGenerated:      hotels.AIGenerated,
	}
	span.SetAttributes(
		attribute.Bool("trip.ai_generated", plan.AIGenerated),
		attribute.Bool("trip.hotels_ai_generated", plan.HotelsAIGenerated),
	)
	log.Info("trip plan merged", zap.String("plan_id", plan.ID), zap.Duration("elapsed", time.Since(start)))
	return plan, nil
}

func (p *TripPlanner) estimateJourney(ctx context.Context, req types.TripRequest, log *zap.Logger) *maps.Journey {
	origin := strings.TrimSpace(req.StartLocation)
	if p.journeys == nil || origin == "" || strings.EqualFold(origin, strings.TrimSpace(req.Destination)) {
		return nil
	}
	j, err := p.journeys.GetTravelEstimate(ctx, origin, req.Destination)
	if err != nil {
		log.Warn("journey estimate failed, continuing without it", zap.String("origin", origin), zap.Error(err))
		return nil
	}
	log.Info("journey ready", zap.String("origin", origin), zap.String("duration", j.DurationText))
	return &j
}

// String is a short description used in logs and the demo CLI.
func (p *TripPlan) String() string {
	return fmt.Sprintf("%s: %d days, %d nights of hotels, ai=%t hotelsAi=%t",
		p.Destination, len(p.Days), len(p.DayWiseAccommodations), p.AIGenerated, p.HotelsAIGenerated)
}
