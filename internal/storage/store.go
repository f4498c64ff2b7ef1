package storage

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound is returned when a user lookup finds no matching row.
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned when inserting a user ID that is already stored.
var ErrUserExists = errors.New("user already exists")

// User is the entity consumers write through the resolver. Each user lives
// on exactly one shard, decided by hashing its ID.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStore is the storage interface for a single shard.
type UserStore interface {
	// CreateUser inserts a new user. Returns the stored user with created_at.
	CreateUser(ctx context.Context, id int64, name string) (*User, error)

	// GetUser returns the user with the given ID, or ErrUserNotFound.
	GetUser(ctx context.Context, id int64) (*User, error)
}
