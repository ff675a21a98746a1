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

	"github.com/tubebenders/backend/config"
	httpDelivery "github.com/tubebenders/backend/internal/delivery/http"
	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/infrastructure/cache"
	"github.com/tubebenders/backend/internal/infrastructure/catalog"
	"github.com/tubebenders/backend/internal/logging"
	"github.com/tubebenders/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("catalog_source", cfg.Catalog.Source).
		Str("cache_type", cfg.Cache.Type).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("starting tube bender backend v1.0.0")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := newRepository(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create catalog repository")
	}

	store, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create cache")
	}
	defer closeCache()

	catalogService := usecase.NewCatalogService(repo, store, usecase.CatalogServiceConfig{
		CacheTTL: cfg.Cache.TTL,
		Source:   cfg.Catalog.Source,
	})

	// Warm the cache so a broken catalog shows up at startup
	if products, err := catalogService.Products(ctx); err != nil {
		logging.Warn().Err(err).Msg("initial catalog load failed")
	} else {
		logging.Info().Int("products", len(products)).Msg("catalog loaded")
	}

	limiter := httpDelivery.NewIPRateLimiter(cfg.RateLimit.PerIP)
	limiter.StartCleanup(10 * time.Minute)
	defer limiter.Stop()

	handler := httpDelivery.NewHandler(catalogService)
	router := httpDelivery.SetupRouter(cfg, handler, limiter)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newRepository(cfg *config.Config) (domain.ProductRepository, error) {
	switch cfg.Catalog.Source {
	case "remote":
		logging.Info().Str("base_url", cfg.Catalog.BaseURL).Msg("using remote catalog")
		return catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, cfg.RateLimit.Upstream), nil
	default:
		logging.Info().Str("path", cfg.Catalog.Path).Msg("using catalog file")
		return catalog.NewFileRepository(cfg.Catalog.Path)
	}
}

func newCache(ctx context.Context, cfg *config.Config) (domain.CacheRepository, func(), error) {
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redisCache, func() { redisCache.Close() }, nil
	}

	memoryCache := cache.NewMemoryCache(10 * time.Minute)
	return memoryCache, func() { memoryCache.Close() }, nil
}
