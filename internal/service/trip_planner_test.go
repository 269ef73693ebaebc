package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tripsmith/internal/ai"
	"tripsmith/internal/extract"
	"tripsmith/internal/maps"
	"tripsmith/internal/modules/accommodation"
	"tripsmith/internal/modules/budget"
	"tripsmith/internal/modules/itinerary"
	"tripsmith/internal/rng"
	"tripsmith/internal/types"
	"tripsmith/internal/weather"
)

type failingProvider struct {
	name  string
	calls int
}

func (f *failingProvider) Name() string { return f.name }

func (f *failingProvider) Complete(_ context.Context, _ string) (string, error) {
	f.calls++
	return "", errors.New("429 quota exhausted")
}

// routedProvider answers the hotel prompt and the itinerary prompt differently.
type routedProvider struct {
	itinerary string
	hotels    string
}

func (r *routedProvider) Name() string { return "routed" }

func (r *routedProvider) Complete(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "hotel booking expert") {
		return r.hotels, nil
	}
	return r.itinerary, nil
}

type staticWeather struct {
	snap  weather.Snapshot
	calls []string
}

func (s *staticWeather) GetWeather(_ context.Context, city string) weather.Snapshot {
	s.calls = append(s.calls, city)
	return s.snap
}

type fakeJourneys struct {
	err   error
	calls int
}

func (f *fakeJourneys) GetTravelEstimate(_ context.Context, origin, destination string) (maps.Journey, error) {
	f.calls++
	if f.err != nil {
		return maps.Journey{}, f.err
	}
	return maps.Journey{Origin: origin, Destination: destination, DurationText: "4 h 10 min", DistanceText: "460 km"}, nil
}

func newPlanner(t *testing.T, src weather.Source, journeys JourneyEstimator, providers ...ai.Provider) *TripPlanner {
	t.Helper()
	log := zaptest.NewLogger(t)
	var candidates []ai.Candidate
	for _, p := range providers {
		candidates = append(candidates, ai.Candidate{Group: ai.GroupPrimary, Provider: p})
	}
	orch := ai.NewOrchestrator(log, candidates...)
	ext := extract.New(extract.Greedy)
	return NewTripPlanner(
		src,
		journeys,
		itinerary.NewSynthesizer(orch, ext, log),
		accommodation.NewSynthesizer(orch, ext, rng.New(42), nil, log),
		log,
	)
}

func parisRequest() types.TripRequest {
	return types.TripRequest{
		Destination:     "Paris",
		Days:            3,
		Budget:          30000,
		Travelers:       2,
		Interests:       []string{"Museums"},
		FoodPreferences: []string{"Vegetarian"},
	}
}

func TestSynthesizeTrip_AllProvidersFail(t *testing.T) {
	gemini := &failingProvider{name: "gemini"}
	chat := &failingProvider{name: "chat"}
	src := &staticWeather{snap: weather.FallbackSnapshot("Paris", rng.New(1))}
	p := newPlanner(t, src, nil, gemini, chat)

	plan, err := p.SynthesizeTrip(context.Background(), parisRequest())
	require.NoError(t, err)

	assert.False(t, plan.AIGenerated)
	assert.False(t, plan.HotelsAIGenerated)
	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, []string{"Paris"}, src.calls)
	assert.Equal(t, 2, gemini.calls, "one call per synthesizer")
	assert.Equal(t, 2, chat.calls)

	require.Len(t, plan.Days, 3)
	for i, d := range plan.Days {
		assert.Equal(t, i+1, d.Day)
		require.Len(t, d.Activities, len(itinerary.Slots))
		for k, a := range d.Activities {
			assert.Equal(t, itinerary.Slots[k], a.Time)
			assert.GreaterOrEqual(t, a.Cost, 0.0)
			assert.NotContains(t, a.Description, ai.FailureSentinel)
		}
	}

	band := budget.NightlyBand(30000, 3)
	require.Len(t, plan.DayWiseAccommodations, 3)
	seen := map[string]bool{}
	for day := 1; day <= 3; day++ {
		bucket := plan.DayWiseAccommodations[day]
		require.Len(t, bucket, accommodation.HotelsPerDay)
		for _, h := range bucket {
			assert.False(t, seen[h.Name], "duplicate hotel %q", h.Name)
			seen[h.Name] = true
			assert.True(t, band.Contains(h.EstimatedPrice), "price %v outside %+v", h.EstimatedPrice, band)
		}
	}
	assert.Len(t, seen, 9)
	assert.GreaterOrEqual(t, plan.TotalEstimatedCost, 0.0)
}

func TestSynthesizeTrip_Success(t *testing.T) {
	itJSON := mockItinerary(t, 3)
	hotelJSON := mockHotels(t, 9)
	src := &staticWeather{snap: weather.Snapshot{Location: "Paris", TemperatureCelsius: 21, Condition: "clear sky", APISuccess: true}}
	journeys := &fakeJourneys{}
	p := newPlanner(t, src, journeys, &routedProvider{itinerary: "Sure! " + itJSON, hotels: "```json\n" + hotelJSON + "\n```"})

	req := parisRequest()
	req.StartLocation = "Lyon"
	plan, err := p.SynthesizeTrip(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, plan.AIGenerated)
	assert.True(t, plan.HotelsAIGenerated)
	assert.Equal(t, "Three days of art and gastronomy", plan.Summary)
	assert.Equal(t, 1234.0, plan.TotalEstimatedCost)
	require.Len(t, plan.Days, 3)
	assert.Equal(t, "Musée d'Orsay", plan.Days[0].Activities[0].Name)
	assert.Equal(t, []string{"Museums"}, plan.Days[0].Activities[0].MatchesInterests)
	assert.Equal(t, itinerary.CategoryCultural, plan.Days[0].Activities[0].Category)
	assert.NotEmpty(t, plan.CulturalTips, "defaults fill missing optional fields")

	assert.Equal(t, "Hotel 1", plan.DayWiseAccommodations[1][0].Name)
	assert.Equal(t, "Hotel 2", plan.DayWiseAccommodations[2][0].Name)
	assert.Equal(t, "Hotel 4", plan.DayWiseAccommodations[1][1].Name)
	for _, d := range plan.Days {
		assert.Len(t, d.Activities, 2, "model activities are kept as returned")
	}

	require.NotNil(t, plan.Journey)
	assert.Equal(t, "4 h 10 min", plan.Journey.DurationText)
	assert.Equal(t, 1, journeys.calls)
	assert.Equal(t, src.snap, plan.WeatherData)
}

func TestSynthesizeTrip_JourneyErrorIgnored(t *testing.T) {
	journeys := &fakeJourneys{err: errors.New("ZERO_RESULTS")}
	p := newPlanner(t, &staticWeather{}, journeys, &failingProvider{name: "x"})

	req := parisRequest()
	req.StartLocation = "London"
	plan, err := p.SynthesizeTrip(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, plan.Journey)
	assert.Equal(t, 1, journeys.calls)

	req.StartLocation = " paris "
	_, err = p.SynthesizeTrip(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, journeys.calls, "same origin and destination skips the lookup")
}

func TestSynthesizeTrip_BadRequest(t *testing.T) {
	provider := &failingProvider{name: "x"}
	src := &staticWeather{}
	p := newPlanner(t, src, nil, provider)

	for _, req := range []types.TripRequest{
		{Destination: "", Days: 3, Travelers: 1},
		{Destination: "Paris", Days: 0, Travelers: 1},
		{Destination: "Paris", Days: 3, Travelers: 0},
		{Destination: "Paris", Days: 3, Travelers: 1, Budget: -1},
	} {
		plan, err := p.SynthesizeTrip(context.Background(), req)
		assert.ErrorIs(t, err, types.ErrBadRequest, "%+v", req)
		assert.Nil(t, plan)
	}
	assert.Zero(t, provider.calls)
	assert.Empty(t, src.calls)
}

func TestTripPlanJSON(t *testing.T) {
	p := newPlanner(t, &staticWeather{}, nil, &failingProvider{name: "x"})
	plan, err := p.SynthesizeTrip(context.Background(), parisRequest())
	require.NoError(t, err)

	b, err := json.Marshal(plan)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	hotels, ok := decoded["dayWiseAccommodations"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, hotels, "1")
	assert.NotContains(t, decoded, "journey")
	assert.Contains(t, plan.String(), "Paris: 3 days")
}

func mockItinerary(t *testing.T, days int) string {
	t.Helper()
	var list []map[string]any
	for d := 1; d <= days; d++ {
		list = append(list, map[string]any{
			"day":   d,
			"title": fmt.Sprintf("Day %d in Paris", d),
			"activities": []map[string]any{
				{"time": "9:00 AM", "name": "Musée d'Orsay", "location": "Paris 7e", "cost": 16, "category": "cultural", "matchesInterests": []string{"Museums", "Skiing"}},
				{"time": "12:30 PM", "name": "Veggie bistro lunch", "location": "Le Marais", "cost": "€35", "category": "food", "matchesFoodPrefs": []string{"Vegetarian"}},
			},
		})
	}
	b, err := json.Marshal(map[string]any{
		"summary":            "Three days of art and gastronomy",
		"days":               list,
		"totalEstimatedCost": 1234,
	})
	require.NoError(t, err)
	return string(b)
}

func mockHotels(t *testing.T, n int) string {
	t.Helper()
	var list []map[string]any
	for i := 1; i <= n; i++ {
		list = append(list, map[string]any{"name": fmt.Sprintf("Hotel %d", i), "estimatedPrice": 1200, "rating": 4.4})
	}
	b, err := json.Marshal(list)
	require.NoError(t, err)
	return string(b)
}
