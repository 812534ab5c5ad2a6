package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"gelirgider/internal/config"
	"gelirgider/internal/database"
	"gelirgider/internal/events"
	"gelirgider/internal/logger"
	"gelirgider/internal/server"
	"gelirgider/internal/services"
	"gelirgider/internal/store"
	"gelirgider/internal/uuid"
	"gelirgider/internal/validator"
)

// @title           Gelir Gider API
// @version         1.0
// @description     TRY-based income and expense ledger with recurring items and exchange rates.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 15 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	persister, closeDB, err := openPersister(appConfig)
	if err != nil {
		return err
	}
	defer closeDB()

	publisher := openPublisher(appConfig)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warnw("failed to close event publisher", "error", err)
		}
	}()

	opts := []store.Option{
		store.WithKey(appConfig.StorageKey),
		store.WithPublisher(publisher),
	}
	if appConfig.SeedDemo {
		opts = append(opts, store.WithState(store.DemoState(time.Now().UTC(), uuid.New)))
	}

	ledger, err := store.Open(ctx, persister, opts...)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}

	var source services.RateSource
	if len(appConfig.Rates) > 0 {
		source = services.NewStaticRateSource(appConfig.Rates)
	}
	svc := server.NewServices(ledger, source)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           server.NewRouter(svc, appConfig.APIKey),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Starting Gelir Gider server on port %s (storage: %s)", appConfig.Port, appConfig.StorageBackend)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if appConfig.RecurringInterval > 0 {
		scheduler := server.NewScheduler(svc.Recurring, appConfig.RecurringInterval)
		g.Go(func() error {
			return scheduler.Run(gctx)
		})
	} else {
		log.Info("Recurring scheduler disabled")
	}

	return g.Wait()
}

// openPersister selects the storage backend. The returned close function is
// always non-nil.
func openPersister(cfg *config.Config) (store.Persister, func(), error) {
	log := logger.Get()

	if cfg.StorageBackend == config.BackendMemory {
		log.Warn("Using in-memory storage, state is lost on exit")
		return store.NewMemoryPersister(), func() {}, nil
	}

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		_ = dbManager.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	closeDB := func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}
	return database.NewKVStore(dbManager.DB()), closeDB, nil
}

// openPublisher connects to AMQP when configured. Connection failures fall
// back to discarding events.
func openPublisher(cfg *config.Config) events.Publisher {
	log := logger.Get()

	if cfg.AMQPURL == "" {
		log.Info("AMQP disabled, ledger events will not be published")
		return events.NopPublisher{}
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		log.Warnw("Failed to initialize AMQP publisher, continuing without events", "error", err)
		return events.NopPublisher{}
	}
	log.Infow("AMQP publisher initialized", "exchange", cfg.AMQPExchange)
	return publisher
}
