package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lvargas/dulceria/internal"
	"github.com/lvargas/dulceria/internal/auth"
	"github.com/lvargas/dulceria/internal/catalog"
	"github.com/lvargas/dulceria/internal/handler/api"
	"github.com/lvargas/dulceria/internal/kv"
	"github.com/lvargas/dulceria/internal/middleware"
	"github.com/lvargas/dulceria/internal/pricing"
	"github.com/lvargas/dulceria/internal/router"
	"github.com/lvargas/dulceria/internal/routes"
	"github.com/lvargas/dulceria/internal/storage"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Connect to Redis
	logger.Info("Connecting to Redis...")
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid Redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	store, err := kv.NewRedisStore(ctx, client)
	if err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	logger.Info("Redis connection established")

	// Initialize blob storage
	blobs, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "provider", cfg.Storage.Provider)

	// Initialize services
	catalogService := catalog.NewService(store, blobs)
	calc := pricing.NewCalculator(cfg.Pricing.GlutenFreeUpcharge, cfg.Pricing.SugarFreeUpcharge)

	sessionTTL := time.Duration(cfg.Admin.SessionTTLMins) * time.Minute
	sessions := auth.NewSessionManager(cfg.Admin.Password, sessionTTL)
	if cfg.Admin.Password == "" {
		logger.Warn("ADMIN_PASSWORD not set; admin panel is disabled")
	}

	// Metrics
	metrics := middleware.NewMetrics("dulceria")

	// Build router
	r := router.New(
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		metrics.Middleware,
		router.Recovery(logger),
		router.Logger(logger),
		router.CORS([]string{"*"}),
	)

	routes.RegisterAPI(r, routes.APIDeps{
		CategoryHandler: api.NewCategoryHandler(catalogService, logger),
		ProductHandler:  api.NewProductHandler(catalogService, logger),
		ImageHandler:    api.NewImageHandler(blobs, logger),
		CartHandler:     api.NewCartHandler(catalogService, calc, cfg.Order.Phone, logger),
		AdminHandler:    api.NewAdminHandler(sessions, sessionTTL, cfg.Env == "prod", logger),
		Sessions:        sessions,
		Metrics:         metrics,
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
