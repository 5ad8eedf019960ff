package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"market-fixtures/internal/api/handlers"
	"market-fixtures/internal/api/middleware"
	"market-fixtures/internal/chart"
	"market-fixtures/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}
}

func main() {
	// Get configuration from environment
	port := envString("API_PORT", "8080")
	cacheTTL := envDuration("RUN_CACHE_TTL", time.Hour)
	cacheMax := envInt("RUN_CACHE_MAX", data.DefaultMaxEntries)
	maxCount := envInt("MAX_COUNT", handlers.DefaultMaxCount)
	rps := envFloat("RATE_LIMIT_RPS", 5)
	burst := envInt("RATE_LIMIT_BURST", 10)
	dpi := envInt("CHART_DPI", 100)

	level, err := zerolog.ParseLevel(envString("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	var origins []string
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	router := gin.New()
	router.Use(middleware.CORS(origins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))

	cache := data.NewRunCache(cacheTTL, cacheMax)
	stop := make(chan struct{})
	defer close(stop)
	cache.StartCleanup(cacheTTL/2, stop)

	generatorHandler := handlers.NewGeneratorHandler(cache, chart.NewPlotRenderer(dpi), maxCount, logger)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "cached_runs": cache.Len()})
	})

	// API routes
	api := router.Group("/api/v1")
	generatorHandler.Register(api, middleware.RateLimit(rps, burst))

	// Start server
	addr := fmt.Sprintf(":%s", port)
	logger.Info().
		Str("addr", addr).
		Dur("cache_ttl", cacheTTL).
		Int("cache_max", cacheMax).
		Int("max_count", maxCount).
		Float64("rate_limit_rps", rps).
		Msg("starting API server")
	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid integer")
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid number")
		return def
	}
	return f
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid duration")
		return def
	}
	return d
}
