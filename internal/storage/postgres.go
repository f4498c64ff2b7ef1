package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shardmux/shardmux/internal/circuitbreaker"
)

// PostgresStore implements UserStore for a single shard. Every query runs
// through the shard's circuit breaker, so a shard that stops answering
// fails fast instead of tying up connections.
type PostgresStore struct {
	pool         *pgxpool.Pool
	breaker      *circuitbreaker.Breaker
	queryTimeout time.Duration
}

// NewPostgresStore creates a UserStore backed by one shard's pool.
// queryTimeout sets the per-query context deadline; zero means no timeout.
func NewPostgresStore(pool *pgxpool.Pool, breaker *circuitbreaker.Breaker, queryTimeout time.Duration) *PostgresStore {
	return &PostgresStore{
		pool:         pool,
		breaker:      breaker,
		queryTimeout: queryTimeout,
	}
}

// withTimeout derives a child context with the configured query timeout.
// If queryTimeout is zero, the parent context is returned unchanged.
func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(ctx, s.queryTimeout)
	}
	return ctx, func() {}
}

func (s *PostgresStore) CreateUser(ctx context.Context, id int64, name string) (*User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// A duplicate ID is a caller error, not a shard failure; it must not
	// count against the breaker.
	var u User
	var dup bool
	err := s.breaker.Execute(func() error {
		err := s.pool.QueryRow(ctx, `
			INSERT INTO users (id, name)
			VALUES ($1, $2)
			RETURNING id, name, created_at
		`, id, name).Scan(&u.ID, &u.Name, &u.CreatedAt)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			dup = true
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if dup {
		return nil, ErrUserExists
	}
	return &u, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// A miss is a normal outcome; it must not count against the breaker.
	var u User
	found := false
	err := s.breaker.Execute(func() error {
		err := s.pool.QueryRow(ctx, `
			SELECT id, name, created_at
			FROM users
			WHERE id = $1
		`, id).Scan(&u.ID, &u.Name, &u.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err == nil {
			found = true
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}
	return &u, nil
}
