package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/lucasvsme/accountd/internal/adapter/http"
	"github.com/lucasvsme/accountd/internal/adapter/http/handler"
	"github.com/lucasvsme/accountd/internal/adapter/http/middleware"
	postgresRepo "github.com/lucasvsme/accountd/internal/adapter/repository/postgres"
	redisRepo "github.com/lucasvsme/accountd/internal/adapter/repository/redis"
	"github.com/lucasvsme/accountd/internal/infrastructure/config"
	"github.com/lucasvsme/accountd/internal/infrastructure/logger"
	"github.com/lucasvsme/accountd/internal/infrastructure/metrics"
	"github.com/lucasvsme/accountd/internal/infrastructure/postgres"
	"github.com/lucasvsme/accountd/internal/infrastructure/redis"
	"github.com/lucasvsme/accountd/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Export pool utilization
	poolStats := time.NewTicker(15 * time.Second)
	defer poolStats.Stop()
	go func() {
		for range poolStats.C {
			m.DBConnections.Set(float64(pool.Stat().TotalConns()))
		}
	}()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool, m)
	retrier := postgresRepo.NewRetrier(log.Logger)
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient, log.Logger)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, txManager, idGen, retrier, cache, m)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, retrier, cache, m)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	transferHandler := handler.NewTransferHandler(transferUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:  accountHandler,
		TransferHandler: transferHandler,
		HealthHandler:   healthHandler,
		Logger:          log.Logger,
		RateLimiter:     rateLimiter,
	})

	// Periodically reset per-IP limiters so the map stays bounded
	limiterCleanup := time.NewTicker(10 * time.Minute)
	defer limiterCleanup.Stop()
	go func() {
		for range limiterCleanup.C {
			rateLimiter.CleanupLimiters()
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
