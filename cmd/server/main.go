package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/adapter/http"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/adapter/gateway"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/adapter/http/handler"
	postgresRepo "github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/adapter/repository/postgres"
	redisRepo "github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/adapter/repository/redis"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/infrastructure/config"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/infrastructure/logger"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/infrastructure/metrics"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/infrastructure/postgres"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/infrastructure/redis"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL (optional: run reports are not persisted
	// without it)
	var pool *pgxpool.Pool
	var reportRepo usecase.ReportRepository = postgresRepo.NewNullReportRepository()
	if cfg.DatabaseURL != "" {
		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		reportRepo = postgresRepo.NewReportRepository(pool)
		appLogger.Info().Msg("connected to postgres")
	} else {
		appLogger.Warn().Msg("no DATABASE_URL configured, reconciliation runs will not be persisted")
	}

	// Connect to Redis (optional rate cache)
	var redisClient *goredis.Client
	var rateCache usecase.RateCache
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()

		rateCache = redisRepo.NewRateCache(redisClient)
		appLogger.Info().Msg("connected to redis")
	}

	m := metrics.New()

	// Upstream gateway to the core system
	coreClient := gateway.NewClient(
		cfg.CoreAPIURL,
		cfg.CoreAPITimeout,
		cfg.CoreAPIMaxRetries,
		m,
		appLogger.With().Str("component", "gateway").Logger(),
	)

	// Use cases
	rateResolver := usecase.NewRateResolver(coreClient, rateCache, cfg.RateStrict,
		appLogger.With().Str("component", "rates").Logger()).
		WithCacheTTL(cfg.RateCacheTTL)
	reconUC := usecase.NewReconciliationUseCase(
		coreClient, coreClient, coreClient, coreClient, coreClient,
		rateResolver, m,
		appLogger.With().Str("component", "reconciliation").Logger(),
	)
	batchUC := usecase.NewBatchUseCase(
		reconUC, reportRepo, postgresRepo.NewULIDGenerator(),
		cfg.BatchSize, cfg.BatchPause, m,
		appLogger.With().Str("component", "batch").Logger(),
	)

	// Handlers and router
	reconHandler := handler.NewReconciliationHandler(reconUC, batchUC, reportRepo)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ReconciliationHandler: reconHandler,
		HealthHandler:         healthHandler,
		Logger:                appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
