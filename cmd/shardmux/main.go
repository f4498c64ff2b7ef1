package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shardmux/shardmux/internal/api"
	"github.com/shardmux/shardmux/internal/circuitbreaker"
	"github.com/shardmux/shardmux/internal/config"
	"github.com/shardmux/shardmux/internal/metrics"
	"github.com/shardmux/shardmux/internal/registry"
	"github.com/shardmux/shardmux/internal/resolver"
	"github.com/shardmux/shardmux/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the shard registry
	reg, err := registry.Load(cfg.ShardConfigPath)
	if err != nil {
		logger.Error("failed to load shard config", "path", cfg.ShardConfigPath, "error", err)
		os.Exit(1)
	}

	// An empty registry must fail the deploy here, never a request later.
	res, err := resolver.New(reg)
	if err != nil {
		logger.Error("invalid shard configuration", "error", err)
		os.Exit(1)
	}
	logger.Info("shard registry loaded", "shards", res.Count())

	// Open one pool per shard and verify reachability
	pools, err := storage.OpenPools(ctx, reg, int32(cfg.PoolMaxConns))
	if err != nil {
		logger.Error("failed to open shard pools", "error", err)
		os.Exit(1)
	}
	defer pools.Close()

	if err := pools.Ping(ctx); err != nil {
		logger.Error("failed to ping shards", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to all shards")

	// Run migrations
	if err := storage.RunMigrations(ctx, pools); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations complete", "shards", pools.Count())

	// One store and breaker per shard
	stores := make([]storage.UserStore, pools.Count())
	for i := range stores {
		pool, err := pools.For(i)
		if err != nil {
			logger.Error("shard pool missing", "shard", i, "error", err)
			os.Exit(1)
		}
		breaker := circuitbreaker.New(cfg.BreakerMaxFailures, cfg.BreakerResetTimeout)
		stores[i] = storage.NewPostgresStore(pool, breaker, cfg.DBQueryTimeout)
	}

	// Export per-shard pool stats
	prometheus.MustRegister(metrics.NewPoolCollector(pools.ByName()))

	backends := make(map[string]api.Pinger, pools.Count())
	for name, pool := range pools.ByName() {
		backends[name] = pool
	}

	// Start HTTP server
	handler := api.NewServer(logger, res, stores, backends)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("starting HTTP server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
