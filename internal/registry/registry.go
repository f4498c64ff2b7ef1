// Package registry holds the static table of shard connection descriptors.
// The table is loaded once at startup and never mutated; a shard's identity
// is its position in the config list, so reordering the list is a
// resharding event and is not supported.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// ErrIndexOutOfRange is returned by Get for an index outside [0, Count).
// Seeing it at runtime means a resolver or caller bug, not bad input.
var ErrIndexOutOfRange = errors.New("shard index out of range")

// Descriptor is the connection record for one shard. Immutable after load.
type Descriptor struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// URL assembles the postgres connection URL for this shard.
func (d Descriptor) URL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   d.Host + ":" + strconv.Itoa(d.Port),
		Path:   "/" + d.Database,
	}
	if d.User != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.User, d.Password)
		} else {
			u.User = url.User(d.User)
		}
	}
	return u.String()
}

// Registry is the ordered, fixed set of shard descriptors.
type Registry struct {
	shards []Descriptor
}

type configFile struct {
	Shards []Descriptor `json:"shards"`
}

// Load reads a JSON shard config file and validates every entry.
// An empty shard list loads successfully so tooling can inspect the file;
// rejecting zero shards is the resolver's job.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shard config: %w", err)
	}

	var cfg configFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse shard config: %w", err)
	}

	return New(cfg.Shards)
}

// New builds a Registry from descriptors already in hand (tests, embedded
// config). The slice is copied; callers cannot mutate the registry after.
func New(shards []Descriptor) (*Registry, error) {
	out := make([]Descriptor, len(shards))
	copy(out, shards)

	for i := range out {
		s := &out[i]
		if s.Host == "" {
			return nil, fmt.Errorf("shard config: shard #%d has empty host", i)
		}
		if s.Database == "" {
			return nil, fmt.Errorf("shard config: shard #%d has empty database", i)
		}
		if s.Port == 0 {
			s.Port = 5432
		}
		if s.Port < 0 || s.Port > 65535 {
			return nil, fmt.Errorf("shard config: shard #%d has invalid port %d", i, s.Port)
		}
		if s.Name == "" {
			s.Name = fmt.Sprintf("shard_%d", i)
		}
	}

	return &Registry{shards: out}, nil
}

// Count returns the fixed number of shards.
func (r *Registry) Count() int {
	return len(r.shards)
}

// Get returns the descriptor at index, or ErrIndexOutOfRange.
func (r *Registry) Get(index int) (Descriptor, error) {
	if index < 0 || index >= len(r.shards) {
		return Descriptor{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(r.shards))
	}
	return r.shards[index], nil
}

// All returns a copy of every descriptor in index order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.shards))
	copy(out, r.shards)
	return out
}
