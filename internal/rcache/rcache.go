// Package rcache caches the per-type metadata records the reflection
// codec derives from struct tags, so repeated Encode/Decode calls for
// the same Go type never re-walk its fields.
package rcache

import (
	"reflect"
	"sync"

	"github.com/pofkit/pof/internal/hash"
)

// Key identifies one cached metadata record: the Go type plus a content
// hash of its attribute names, so a record becomes stale (and is
// recomputed) if the type's tags change across a hot-reloaded build in
// a long-running test binary.
type Key struct {
	Type   reflect.Type
	Digest uint64
}

// NewKey builds a Key for typ using the given sorted attribute names.
func NewKey(typ reflect.Type, sortedNames []string) Key {
	var joined string
	for i, n := range sortedNames {
		if i > 0 {
			joined += "\x00"
		}
		joined += n
	}

	return Key{Type: typ, Digest: hash.ID(joined)}
}

// Cache is a process-wide, concurrency-safe store of arbitrary metadata
// records keyed by Key. The reflection codec stores *Metadata values in
// it; the type is erased here to keep this package free of a dependency
// on reflectcodec.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]any
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[Key]any)}
}

// Get returns the cached record for key, if present.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	return v, ok
}

// GetOrCompute returns the cached record for key, computing and storing
// it via compute on a cache miss. Concurrent misses for the same key may
// both call compute; the first record stored wins, and every caller,
// including the one whose copy lost the race, gets that stored record.
func (c *Cache) GetOrCompute(key Key, compute func() any) any {
	if v, ok := c.Get(key); ok {
		return v
	}

	v := compute()

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = v

	return v
}
