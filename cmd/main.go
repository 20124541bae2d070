package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"growshop/internal/app/storefront/cache"
	"growshop/internal/app/storefront/config"
	"growshop/internal/app/storefront/handler"
	"growshop/internal/app/storefront/service"
	"growshop/internal/app/storefront/upstream"
	"growshop/pkg/logger"
	"growshop/pkg/metrics"
)

const serviceName = "storefront"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.Log.Level)

	if cfg.Upstream.APIKey == "" {
		logger.Warn().Msg("UPSTREAM_API_KEY is empty, upstream will reject requests")
	}

	storeCache, closeCache, err := buildCache(cfg.Cache)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize cache")
	}
	defer closeCache()
	logger.Info().
		Str("backend", cfg.Cache.Backend).
		Msg("Initialized cache")

	// Фоновая уборка истёкших записей: ключи "записал и забыл"
	// без неё копятся до рестарта
	scheduler := cron.New()
	_, err = scheduler.AddFunc("@every "+cfg.Cache.SweepInterval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		evicted := storeCache.Cleanup(ctx)
		metrics.SetCacheEntries(serviceName, storeCache.Len(ctx))
		if evicted > 0 {
			logger.Debug().Int("evicted", evicted).Msg("Cache sweep completed")
		}
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to schedule cache sweep")
	}
	scheduler.Start()
	defer scheduler.Stop()

	client := upstream.NewClient(cfg.Upstream)
	logger.Info().
		Str("base_url", cfg.Upstream.BaseURL).
		Msg("Initialized upstream client")

	catalogService := service.NewCatalogService(client, storeCache, cfg.Cache.TTL, cfg.Catalog)
	searchService := service.NewSearchService(client, storeCache, catalogService, cfg.Cache.TTL, cfg.Catalog)
	checkoutService := service.NewCheckoutService(client, storeCache, cfg.Cache.TTL)

	router := handler.SetupRoutes(handler.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogService),
		Brand:    handler.NewBrandHandler(catalogService),
		Search:   handler.NewSearchHandler(searchService),
		Image:    handler.NewImageHandler(client),
		Cache:    handler.NewCacheHandler(storeCache),
		Checkout: handler.NewCheckoutHandler(checkoutService),
	})

	server := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
		// Бюджеты с запасом на медленный upstream: наш ответ не может
		// быть быстрее его таймаута
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Upstream.WriteTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Storefront Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Storefront Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Storefront Service stopped gracefully")
}

// buildCache собирает бэкенд кеша по конфигурации: процессный по
// умолчанию, Redis для развёртываний в несколько инстансов
func buildCache(cfg config.CacheConfig) (cache.Cache, func(), error) {
	switch cfg.Backend {
	case "redis":
		redisCache, err := cache.NewRedisCache(serviceName, cfg.RedisAddress(), cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisCache, func() {
			if err := redisCache.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close redis connection")
			}
		}, nil
	case "memory", "":
		return cache.NewMemoryCache(serviceName), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
