// Package shardkey defines the canonical key form and the fixed hash that
// all shard placement decisions are derived from. The hash is part of the
// data layout: changing it strands every row already written.
package shardkey

import (
	"hash/fnv"
	"strconv"

	"github.com/google/uuid"
)

// Key is the canonical textual form of a shard key. Two keys that identify
// the same logical entity must produce the same Key, regardless of which
// constructor built them — that equivalence is what makes placement
// deterministic across processes.
type Key string

// FromString uses the string as-is. Callers own any trimming or
// case-folding; the hash sees exactly these bytes.
func FromString(s string) Key {
	return Key(s)
}

// FromInt canonicalizes an integer ID to its decimal form, so FromInt(42)
// and FromString("42") are the same key.
func FromInt(n int64) Key {
	return Key(strconv.FormatInt(n, 10))
}

// FromUUID canonicalizes to the lowercase hyphenated form.
func FromUUID(u uuid.UUID) Key {
	return Key(u.String())
}

func (k Key) String() string {
	return string(k)
}

// Hash returns the FNV-1a 32-bit hash of the key's canonical bytes.
// FNV-1a has a fixed offset basis and prime, so the result never varies
// by process, platform, or run — unlike runtime map hashing, which is
// seeded per process and must never be used for placement.
func Hash(k Key) uint32 {
	h := fnv.New32a()
	h.Write([]byte(k))
	return h.Sum32()
}
