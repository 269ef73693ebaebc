package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tripsmith/internal/ai"
	"tripsmith/internal/config"
	"tripsmith/internal/extract"
	"tripsmith/internal/modules/accommodation"
	"tripsmith/internal/modules/itinerary"
	"tripsmith/internal/rng"
	"tripsmith/internal/types"
	"tripsmith/internal/weather"
)

// TestSynthesizeTrip_LiveProviders talks to the configured providers.
// It is skipped unless TRIPSMITH_LIVE_TEST=1.
func TestSynthesizeTrip_LiveProviders(t *testing.T) {
	if os.Getenv("TRIPSMITH_LIVE_TEST") != "1" {
		t.Skip("TRIPSMITH_LIVE_TEST not set; skipping live provider test")
	}
	cfg, err := config.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	log := zaptest.NewLogger(t)
	stack, err := ai.NewStack(ctx, cfg.AI, log)
	require.NoError(t, err)
	t.Cleanup(stack.Close)
	if len(stack.Candidates()) == 0 {
		t.Skip("no ai provider configured")
	}

	rnd := rng.NewTimeSeeded()
	ext := extract.New(extract.StrategyByName(cfg.AI.ExtractStrategy))
	p := NewTripPlanner(
		weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, rnd, log),
		nil,
		itinerary.NewSynthesizer(stack, ext, log),
		accommodation.NewSynthesizer(stack, ext, rnd, nil, log),
		log,
	)

	req := types.TripRequest{Destination: "Lisbon", Days: 2, Budget: 2000, Travelers: 2, Interests: []string{"History"}}
	plan, err := p.SynthesizeTrip(ctx, req)
	require.NoError(t, err)
	t.Logf("live plan: %s", plan)

	require.Len(t, plan.Days, 2)
	require.Len(t, plan.DayWiseAccommodations, 2)
	for day, bucket := range plan.DayWiseAccommodations {
		assert.Len(t, bucket, accommodation.HotelsPerDay, "day %d", day)
	}
	for _, d := range plan.Days {
		assert.NotEmpty(t, d.Activities)
		for _, a := range d.Activities {
			assert.NotContains(t, a.Description, ai.FailureSentinel)
		}
	}
}
