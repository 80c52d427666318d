package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"scriptbridge/internal/adapter/repo"
	"scriptbridge/internal/http/handlers"
	httpapi "scriptbridge/internal/http/httpapi"
	"scriptbridge/internal/infra"
	"scriptbridge/internal/infra/geoip"
	"scriptbridge/internal/infra/google"
	"scriptbridge/internal/middleware"
	"scriptbridge/internal/providers/translit"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	sqlRunner := infra.NewSQLRunner(dbpool, logger)

	// GeoIP is optional; without a database file country resolution falls
	// back to header and locale hints.
	var countryLookup middleware.CountryLookup
	if cfg.GeoIPDBPath != "" {
		resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
		if err != nil {
			logger.Warn().Err(err).Msg("geoip database unavailable, continuing without it")
		} else if resolver != nil {
			defer resolver.Close()
			countryLookup = resolver.CountryCode
		}
	}

	converter := translit.NewGeminiConverter(translit.GeminiOptions{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})

	app := &handlers.App{
		SQL:            sqlRunner,
		Users:          repo.NewUserRepository(sqlRunner),
		Ledger:         repo.NewCreditLedger(sqlRunner, cfg.DefaultDailyCredits),
		Converter:      converter,
		Google:         google.NewVerifier(cfg.GoogleIssuer, cfg.GoogleClientID),
		Logger:         logger,
		JWTSecret:      cfg.JWTSecret,
		ConversionCost: cfg.ConversionCost,
	}

	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		JWTSecret:       cfg.JWTSecret,
		DefaultLocale:   "en",
		CountryLookup:   countryLookup,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
