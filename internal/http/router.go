// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tripsmith/internal/http/handlers"
	"tripsmith/internal/http/middleware"
	"tripsmith/internal/infra"
	"tripsmith/internal/weather"
)

type RouterDeps struct {
	Planner  handlers.TripSynthesizer
	Weather  weather.Source
	Quota    handlers.QuotaUser  // nil disables metering
	Verifier infra.TokenVerifier // nil disables auth

	AllowedOrigins []string // empty allows any origin
	RatePerMinute  int
	RateBurst      int
	PlanTimeout    time.Duration
	Log            *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logging(log))
	r.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Weather and plans draw from separate per-IP buckets.
	weatherGroup := api.Group("/weather")
	trips := api.Group("/trips")
	if deps.RatePerMinute > 0 && deps.RateBurst > 0 {
		weatherGroup.Use(middleware.RateLimit(middleware.NewIPRateLimiter(deps.RatePerMinute, deps.RateBurst), log))
		trips.Use(middleware.RateLimit(middleware.NewIPRateLimiter(deps.RatePerMinute, deps.RateBurst), log))
	}

	weatherHandler := handlers.NewWeatherHandler(deps.Weather)
	weatherGroup.GET("", weatherHandler.Get)

	if deps.Verifier != nil {
		trips.Use(middleware.Auth(deps.Verifier))
	}
	tripHandler := handlers.NewTripHandler(deps.Planner, deps.Quota, deps.PlanTimeout, log)
	trips.POST("/plan", tripHandler.Plan)
	trips.GET("/quota", tripHandler.Quota)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
