package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	shards map[string]Pinger
	logger *slog.Logger
}

func NewHealthHandler(shards map[string]Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{shards: shards, logger: logger}
}

type shardStatus struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type readyzResponse struct {
	Status string                 `json:"status"`
	Shards map[string]shardStatus `json:"shards,omitempty"`
}

// Livez is a simple liveness check: if the process can serve HTTP, it's alive.
func (h *HealthHandler) Livez(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Readyz checks all shards concurrently and reports per-shard status.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if len(h.shards) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(readyzResponse{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	type result struct {
		name   string
		status shardStatus
	}

	var (
		wg      sync.WaitGroup
		results = make(chan result, len(h.shards))
	)

	for name, p := range h.shards {
		wg.Add(1)
		go func(name string, p Pinger) {
			defer wg.Done()
			start := time.Now()
			err := p.Ping(ctx)
			elapsed := time.Since(start)
			if err != nil {
				results <- result{name: name, status: shardStatus{
					Status:    "error",
					LatencyMs: elapsed.Milliseconds(),
					Error:     err.Error(),
				}}
				return
			}
			results <- result{name: name, status: shardStatus{
				Status:    "ok",
				LatencyMs: elapsed.Milliseconds(),
			}}
		}(name, p)
	}

	wg.Wait()
	close(results)

	resp := readyzResponse{
		Status: "ok",
		Shards: make(map[string]shardStatus, len(h.shards)),
	}

	healthy := true
	for r := range results {
		resp.Shards[r.name] = r.status
		if r.status.Status != "ok" {
			healthy = false
		}
	}

	if !healthy {
		resp.Status = "unavailable"
		h.logger.Warn("readiness check failed", "shards", resp.Shards)
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(resp)
}
