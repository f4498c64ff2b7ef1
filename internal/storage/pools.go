package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shardmux/shardmux/internal/registry"
)

// Pools holds one pgx pool per shard, in shard-index order. Built once at
// startup from the registry and read-only afterward.
type Pools struct {
	pools []*pgxpool.Pool
	names []string
}

// OpenPools creates a pool for every shard in the registry. Pool creation
// parses the connection config but does not dial; unreachable shards
// surface on Ping or first query.
func OpenPools(ctx context.Context, reg *registry.Registry, maxConns int32) (*Pools, error) {
	descriptors := reg.All()
	p := &Pools{
		pools: make([]*pgxpool.Pool, 0, len(descriptors)),
		names: make([]string, 0, len(descriptors)),
	}

	for i, d := range descriptors {
		cfg, err := pgxpool.ParseConfig(d.URL())
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("parse pool config for shard %d (%s): %w", i, d.Name, err)
		}
		if maxConns > 0 {
			cfg.MaxConns = maxConns
		}
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("create pool for shard %d (%s): %w", i, d.Name, err)
		}
		p.pools = append(p.pools, pool)
		p.names = append(p.names, d.Name)
	}

	return p, nil
}

// For returns the pool for a shard index.
func (p *Pools) For(index int) (*pgxpool.Pool, error) {
	if index < 0 || index >= len(p.pools) {
		return nil, fmt.Errorf("pool for shard %d: %w", index, registry.ErrIndexOutOfRange)
	}
	return p.pools[index], nil
}

// Count returns the number of shard pools.
func (p *Pools) Count() int {
	return len(p.pools)
}

// ByName returns the pools keyed by shard name, for health checks and
// metrics collectors.
func (p *Pools) ByName() map[string]*pgxpool.Pool {
	out := make(map[string]*pgxpool.Pool, len(p.pools))
	for i, pool := range p.pools {
		out[p.names[i]] = pool
	}
	return out
}

// Ping verifies every shard is reachable. Used at startup so a dead shard
// fails the deploy instead of the first request routed to it.
func (p *Pools) Ping(ctx context.Context) error {
	for i, pool := range p.pools {
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("ping shard %d (%s): %w", i, p.names[i], err)
		}
	}
	return nil
}

// Close closes all pools. Nil pools from a partial OpenPools are skipped.
func (p *Pools) Close() {
	for _, pool := range p.pools {
		if pool != nil {
			pool.Close()
		}
	}
}
