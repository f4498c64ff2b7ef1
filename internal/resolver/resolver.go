// Package resolver maps shard keys to shard descriptors. The mapping is
// hash(key) mod Count — a pure function of the key and the registry size,
// so every process with the same config agrees on the placement.
package resolver

import (
	"errors"
	"fmt"

	"github.com/shardmux/shardmux/internal/registry"
	"github.com/shardmux/shardmux/internal/shardkey"
)

// ErrNoShards means the registry is empty. This is a configuration error:
// it must abort startup, never surface per-request.
var ErrNoShards = errors.New("shard registry has no shards")

// Resolver maps keys to shards against one immutable registry. Safe for
// concurrent use without locking; Resolve never blocks and never does I/O.
type Resolver struct {
	reg *registry.Registry
}

// New returns a Resolver over reg, or ErrNoShards if reg is empty.
// Rejecting the empty registry here keeps the modulo in Index well-defined.
func New(reg *registry.Registry) (*Resolver, error) {
	if reg.Count() == 0 {
		return nil, ErrNoShards
	}
	return &Resolver{reg: reg}, nil
}

// Count returns the number of shards the resolver maps onto.
func (r *Resolver) Count() int {
	return r.reg.Count()
}

// Index returns hash(key) mod Count. The modulo is taken on the unsigned
// hash, so the result is in [0, Count) on every platform; converting the
// hash to int first would go negative where int is 32 bits.
func (r *Resolver) Index(key shardkey.Key) int {
	return int(shardkey.Hash(key) % uint32(r.reg.Count()))
}

// Resolve returns the descriptor for the shard owning key. The registry
// lookup cannot fail for an index produced by Index; the error path guards
// against a registry/resolver mismatch and signals a bug, not bad input.
func (r *Resolver) Resolve(key shardkey.Key) (registry.Descriptor, error) {
	idx := r.Index(key)
	d, err := r.reg.Get(idx)
	if err != nil {
		return registry.Descriptor{}, fmt.Errorf("resolve key %q to shard %d: %w", key, idx, err)
	}
	return d, nil
}
