// README: Entry point; loads config, wires providers and collaborators, serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tripsmith/internal/ai"
	"tripsmith/internal/config"
	"tripsmith/internal/extract"
	httptransport "tripsmith/internal/http"
	"tripsmith/internal/http/handlers"
	"tripsmith/internal/infra"
	"tripsmith/internal/logger"
	"tripsmith/internal/maps"
	"tripsmith/internal/modules/accommodation"
	"tripsmith/internal/modules/itinerary"
	"tripsmith/internal/modules/quota"
	"tripsmith/internal/rng"
	"tripsmith/internal/service"
	"tripsmith/internal/weather"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()

	format := "console"
	if cfg.IsProduction() {
		format = "json"
		gin.SetMode(gin.ReleaseMode)
	}
	log := logger.Must(cfg.LogLevel, format)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	stack, err := ai.NewStack(ctx, cfg.AI, log.Named("ai"))
	if err != nil {
		return err
	}
	defer stack.Close()

	rnd := rng.NewTimeSeeded()
	var src weather.Source = weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, rnd, log.Named("weather"))
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		src = weather.NewCachedSource(weather.NewCache(rdb, cfg.Weather.CacheTTL), src, log.Named("weather"))
		log.Info("weather cache enabled", zap.String("redis", cfg.Redis.Addr), zap.Duration("ttl", cfg.Weather.CacheTTL))
	}

	var (
		journeys service.JourneyEstimator
		enricher accommodation.Enricher
	)
	if cfg.Maps.APIKey != "" {
		routes, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			return err
		}
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			return err
		}
		journeys, enricher = routes, places
		log.Info("google maps enabled")
	}

	ext := extract.New(extract.StrategyByName(cfg.AI.ExtractStrategy))
	planner := service.NewTripPlanner(
		src,
		journeys,
		itinerary.NewSynthesizer(stack, ext, log.Named("itinerary")),
		accommodation.NewSynthesizer(stack, ext, rnd, enricher, log.Named("hotels")),
		log.Named("planner"),
	)

	deps := httptransport.RouterDeps{
		Planner:        planner,
		Weather:        src,
		AllowedOrigins: cfg.AllowedOriginList(),
		RatePerMinute:  cfg.HTTP.RatePerMinute,
		RateBurst:      cfg.HTTP.RateBurst,
		PlanTimeout:    cfg.HTTP.PlanTimeout,
		Log:            log.Named("http"),
	}

	if cfg.Firebase.ProjectID != "" {
		verifier, err := infra.NewFirebaseVerifier(ctx, infra.FirebaseOptions{
			ProjectID:       cfg.Firebase.ProjectID,
			CredentialsFile: cfg.Firebase.CredentialsFile,
			CheckRevoked:    cfg.Firebase.CheckRevoked,
		})
		if err != nil {
			return err
		}
		deps.Verifier = verifier
		log.Info("firebase auth enabled",
			zap.String("project", cfg.Firebase.ProjectID),
			zap.Bool("check_revoked", cfg.Firebase.CheckRevoked),
		)
	}

	if cfg.DB.DSN != "" {
		q, closeDB, err := openQuota(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeDB()
		deps.Quota = q
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httptransport.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.Int("ai_candidates", len(stack.Candidates())))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openQuota(ctx context.Context, cfg config.Config, log *zap.Logger) (handlers.QuotaUser, func(), error) {
	pool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return nil, nil, err
	}
	applied, err := infra.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Info("generation quota enabled", zap.Int("migrations_applied", applied), zap.Int("monthly_plans", cfg.Quota.MonthlyPlans))
	return quota.NewService(quota.NewStore(pool, cfg.Quota.MonthlyPlans)), pool.Close, nil
}
