// Package main is the entry point for the UOM service.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	uomapp "github.com/mutugading/goapps-backend/services/uom/internal/application/uom"
	statusapp "github.com/mutugading/goapps-backend/services/uom/internal/application/uomstatus"
	httpdelivery "github.com/mutugading/goapps-backend/services/uom/internal/delivery/http"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/audit"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/config"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/postgres"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/rabbitmq"
	redisinfra "github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/redis"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/tracing"
	"github.com/mutugading/goapps-backend/services/uom/pkg/i18n"
	"github.com/mutugading/goapps-backend/services/uom/pkg/logger"
	"github.com/mutugading/goapps-backend/services/uom/pkg/metrics"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:           "uom-service",
		Short:         "Serve the UOM and UOM status REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			return run(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the config file (default ./config.yaml)")

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Service failed")
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger.Setup(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.PrettyJSON)

	log.Info().
		Str("service", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Env).
		Msg("Starting UOM service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup tracing (optional)
	cleanupTracing := setupTracing(ctx, cfg)
	defer cleanupTracing()

	// Setup database
	db, err := setupDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	statusRepo := postgres.NewUOMStatusRepository(db)
	uomRepo := postgres.NewUOMRepository(db)

	listeners := shared.ChangeListeners{
		audit.NewPostgresLogger(db),
		metrics.ChangeCounter{},
	}

	// Setup Redis (optional - graceful degradation)
	var (
		statusCache statusapp.Cache
		uomCache    uomapp.Cache
		blacklist   httpdelivery.TokenBlacklistChecker
	)
	if redisClient := setupRedis(cfg); redisClient != nil {
		defer closeRedis(redisClient)

		breaker := redisinfra.NewBreaker()
		sc := redisinfra.NewStatusCache(redisClient, breaker, cfg.Redis.CacheTTL)
		uc := redisinfra.NewUOMCache(redisClient, breaker, cfg.Redis.CacheTTL)
		statusCache, uomCache = sc, uc
		blacklist = redisinfra.NewTokenBlacklist(redisClient)
		listeners = append(listeners, sc, uc)
	}

	// Setup change event publisher (optional)
	if publisher := setupPublisher(cfg); publisher != nil {
		defer closePublisher(publisher)
		listeners = append(listeners, publisher)
	}

	resolver, err := i18n.NewResolver(cfg.I18n.DefaultLanguage)
	if err != nil {
		return err
	}

	router := httpdelivery.NewRouter(
		httpdelivery.RouterOptions{
			Config:    cfg,
			Resolver:  resolver,
			Health:    db,
			Blacklist: blacklist,
		},
		httpdelivery.NewUOMStatusHandler(statusRepo, db, statusCache, listeners),
		httpdelivery.NewUOMHandler(uomRepo, statusRepo, db, uomCache, listeners, cfg.Server.MaxUploadSize),
	)

	return startServer(cfg, router)
}

// setupTracing initializes tracing and returns a cleanup function.
func setupTracing(ctx context.Context, cfg *config.Config) func() {
	tracingProvider, err := tracing.NewProvider(ctx, &cfg.Tracing, cfg.App)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to setup tracing, continuing without it")
		return func() {}
	}

	return func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tracingProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to shutdown tracing provider")
		}
	}
}

// setupDatabase creates a database connection and applies pending migrations
// when auto-migrate is on.
func setupDatabase(cfg *config.Config) (*postgres.DB, error) {
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("database", cfg.Database.Name).
		Msg("Database connection established")

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(); err != nil {
			closeDatabase(db)
			return nil, err
		}
	}

	return db, nil
}

// closeDatabase closes the database connection.
func closeDatabase(db *postgres.DB) {
	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close database connection")
	}
}

// setupRedis creates a Redis connection (optional - graceful degradation).
func setupRedis(cfg *config.Config) *redisinfra.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	redisClient, err := redisinfra.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis, continuing without cache")
		return nil
	}

	log.Info().
		Str("host", cfg.Redis.Host).
		Int("port", cfg.Redis.Port).
		Msg("Redis connection established")

	return redisClient
}

// closeRedis closes the Redis connection.
func closeRedis(client *redisinfra.Client) {
	if err := client.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close Redis connection")
	}
}

func setupPublisher(cfg *config.Config) *rabbitmq.Publisher {
	if !cfg.RabbitMQ.Enabled {
		return nil
	}

	publisher, err := rabbitmq.NewPublisher(&cfg.RabbitMQ)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to RabbitMQ, continuing without change events")
		return nil
	}

	log.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("RabbitMQ publisher ready")
	return publisher
}

func closePublisher(publisher *rabbitmq.Publisher) {
	if err := publisher.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close RabbitMQ publisher")
	}
}

// startServer starts the HTTP server and handles graceful shutdown.
func startServer(cfg *config.Config, router *gin.Engine) error {
	server := httpdelivery.NewServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return errors.New("http server stopped unexpectedly")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
		return err
	}

	log.Info().Msg("Server shutdown complete")
	return nil
}
