package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shardmux/shardmux/internal/metrics"
	"github.com/shardmux/shardmux/internal/resolver"
	"github.com/shardmux/shardmux/internal/storage"
)

// NewServer creates an HTTP server with all routes configured. stores must
// have one entry per shard, in shard-index order.
func NewServer(logger *slog.Logger, res *resolver.Resolver, stores []storage.UserStore, backends map[string]Pinger) http.Handler {
	mux := chi.NewRouter()

	mux.Use(RequestID)
	mux.Use(Logging(logger))
	mux.Use(Recovery(logger))
	mux.Use(metrics.Metrics)

	humaAPI := humachi.New(mux, huma.DefaultConfig("shardmux", "1.0.0"))

	userHandler := NewUserHandler(res, stores, logger)
	registerUserRoutes(humaAPI, userHandler)

	resolveHandler := NewResolveHandler(res)
	registerResolveRoutes(humaAPI, resolveHandler)

	healthHandler := NewHealthHandler(backends, logger)
	mux.Get("/livez", healthHandler.Livez)
	mux.Get("/readyz", healthHandler.Readyz)

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
