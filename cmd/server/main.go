package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/light-bringer/promo-pricing-service/internal/pkg/logger"
	"github.com/light-bringer/promo-pricing-service/internal/services"
	transporthttp "github.com/light-bringer/promo-pricing-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		logger.Fatal().Err(err).Msg("failed to run server")
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration from environment variables
	_ = godotenv.Load()
	config := loadConfig()
	logger.Init(config.Env, config.LogLevel)

	logger.Info().
		Str("spanner_db", config.SpannerDB).
		Str("http_port", config.HTTPPort).
		Ints64("bonus_series", config.BonusSeriesIDs).
		Msg("starting promo pricing service")

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, config.SpannerDB, config.BonusSeriesIDs)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Load the active rule set before taking traffic
	if _, err := serviceOpts.ReloadRules.Execute(ctx); err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	// 4. Register HTTP routes
	mux := http.NewServeMux()
	mux.Handle("/api/v1/pricing/quote", serviceOpts.PricingHandler)
	mux.HandleFunc("/api/v1/rules", serviceOpts.RulesHandler.HandleRules)
	mux.HandleFunc("/api/v1/rules/validate", serviceOpts.RulesHandler.HandleValidate)
	mux.HandleFunc("/api/v1/rules/reload", serviceOpts.RulesHandler.HandleReload)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	httpServer := &http.Server{
		Addr:    ":" + config.HTTPPort,
		Handler: transporthttp.RequestLogger(mux),
	}

	// 5. Start HTTP server in background
	go func() {
		logger.ServiceStart("promo-pricing-service", config.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// 6. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.ServiceStop("promo-pricing-service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown error")
	}

	return nil
}

// Config holds application configuration.
type Config struct {
	SpannerDB      string
	HTTPPort       string
	Env            string
	LogLevel       string
	BonusSeriesIDs []int64
}

// loadConfig loads configuration from environment variables with defaults.
func loadConfig() Config {
	spannerDB := os.Getenv("SPANNER_DATABASE")
	if spannerDB == "" {
		// Default for local development with emulator
		spannerDB = "projects/test-project/instances/dev-instance/databases/promo-pricing-db"
	}

	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	return Config{
		SpannerDB:      spannerDB,
		HTTPPort:       httpPort,
		Env:            os.Getenv("APP_ENV"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		BonusSeriesIDs: parseBonusSeriesIDs(os.Getenv("BONUS_SERIES_IDS")),
	}
}

// parseBonusSeriesIDs reads a comma-separated list of series IDs whose items
// are settled with bonus points instead of money.
func parseBonusSeriesIDs(raw string) []int64 {
	if raw == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			logger.Warn().Str("value", part).Msg("ignoring invalid bonus series id")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
