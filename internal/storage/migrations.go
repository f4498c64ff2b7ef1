package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrationsForPool creates the users schema on one shard.
func RunMigrationsForPool(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         BIGINT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	if err != nil {
		return fmt.Errorf("migrate users table: %w", err)
	}
	return nil
}

// RunMigrations creates the users schema on every shard.
func RunMigrations(ctx context.Context, pools *Pools) error {
	for i := 0; i < pools.Count(); i++ {
		pool, err := pools.For(i)
		if err != nil {
			return err
		}
		if err := RunMigrationsForPool(ctx, pool); err != nil {
			return fmt.Errorf("migrate shard %d: %w", i, err)
		}
	}
	return nil
}
