// README: Generates one trip plan from flags and prints it as JSON. Uses the same config as the API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tripsmith/internal/ai"
	"tripsmith/internal/config"
	"tripsmith/internal/extract"
	"tripsmith/internal/logger"
	"tripsmith/internal/modules/accommodation"
	"tripsmith/internal/modules/itinerary"
	"tripsmith/internal/rng"
	"tripsmith/internal/service"
	"tripsmith/internal/types"
	"tripsmith/internal/weather"
)

func main() {
	var (
		req       types.TripRequest
		interests string
		food      string
		seed      int64
		timeout   time.Duration
	)
	flag.StringVar(&req.Destination, "destination", "Paris", "destination city")
	flag.StringVar(&req.StartLocation, "from", "", "optional start location")
	flag.IntVar(&req.Days, "days", 3, "number of days")
	flag.Float64Var(&req.Budget, "budget", 30000, "total budget")
	flag.IntVar(&req.Travelers, "travelers", 2, "number of travelers")
	flag.StringVar(&req.TravelDates.StartDate, "start", "", "start date (YYYY-MM-DD)")
	flag.StringVar(&req.TravelDates.EndDate, "end", "", "end date (YYYY-MM-DD)")
	flag.StringVar(&interests, "interests", "", "comma-separated interests")
	flag.StringVar(&food, "food", "", "comma-separated food preferences")
	flag.StringVar(&req.SpecialInterest, "special", "", "special interest theme")
	flag.Int64Var(&seed, "seed", 0, "random seed for synthetic content (0 = time based)")
	flag.DurationVar(&timeout, "timeout", 3*time.Minute, "overall deadline")
	flag.Parse()

	req.Interests = splitFlag(interests)
	req.FoodPreferences = splitFlag(food)

	_ = godotenv.Load()
	cfg := config.MustLoad()
	log := logger.Must(cfg.LogLevel, "console")
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stack, err := ai.NewStack(ctx, cfg.AI, log.Named("ai"))
	if err != nil {
		log.Fatal("ai setup failed", zap.Error(err))
	}
	defer stack.Close()

	rnd := rng.NewTimeSeeded()
	if seed != 0 {
		rnd = rng.New(seed)
	}
	ext := extract.New(extract.StrategyByName(cfg.AI.ExtractStrategy))
	planner := service.NewTripPlanner(
		weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, rnd, log.Named("weather")),
		nil,
		itinerary.NewSynthesizer(stack, ext, log.Named("itinerary")),
		accommodation.NewSynthesizer(stack, ext, rnd, nil, log.Named("hotels")),
		log.Named("planner"),
	)

	plan, err := planner.SynthesizeTrip(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "plan: %v\n", err)
		os.Exit(2)
	}
	log.Info(plan.String())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		log.Fatal("encode plan", zap.Error(err))
	}
}

func splitFlag(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
