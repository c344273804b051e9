package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campuseats/storefront/internal/adapter/backend"
	"github.com/campuseats/storefront/internal/adapter/handler"
	"github.com/campuseats/storefront/internal/adapter/storage"
	"github.com/campuseats/storefront/internal/core/service"
	"github.com/campuseats/storefront/internal/port"
	"github.com/campuseats/storefront/pkg/config"
	"github.com/campuseats/storefront/pkg/logger"
	"github.com/campuseats/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	log.Info("using mock backend", "url", cfg.BackendURL)

	var cache port.CatalogCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("failed to connect redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		cache = storage.NewRedisCache(rdb, cfg.ItemCacheTTL)
		log.Info("item cache: redis", "addr", cfg.RedisAddr, "ttl", cfg.ItemCacheTTL)
	} else {
		cache = storage.NewMemoryCache(cfg.ItemCacheTTL)
		log.Info("item cache: in-process", "ttl", cfg.ItemCacheTTL)
	}

	catalog := service.NewCatalogService(client, cache, log)
	auth := service.NewAuthService(client)
	sessions := service.NewSessionManager(auth, catalog, client, client, client)

	h := handler.New(sessions, auth, catalog, log)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: h.Routes(),
	}

	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
	log.Info("http server stopped")
}
