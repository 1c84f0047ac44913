// Package cache provides the process-global, lazily-initialised cache of
// the one kind of expensive read-only object this engine builds: an
// evaluator's lookup tables (flush/rank/hash tables, the 2+2 HR array).
// A job is keyed by which algorithm it picked and which directory its
// tables are loaded from (empty when they are built in memory), so a
// second job reusing the same (Kind, TableDir) pair attaches to the
// tables the first job already built or loaded instead of rebuilding or
// re-reading them (spec.md §9:
// "lazily-initialised singletons with a one-shot init guard").
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Key identifies one cached table set by the algorithm that built it and
// the directory it was loaded from or generated into.
type Key struct {
	Kind     string
	TableDir string
}

// BuildFunc constructs the value for a cache miss.
type BuildFunc[V any] func(key Key) (V, error)

// Cache is a mutex-guarded map from Key to a built V, shared by every job
// in the process. Concurrent callers requesting the same Key block on the
// same build rather than racing to construct duplicate copies of a
// multi-hundred-megabyte table set.
type Cache[V any] struct {
	mu      sync.Mutex
	objects map[Key]V
}

// New returns an empty cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{objects: make(map[Key]V)}
}

// Load returns the cached value for key, building it with build on a
// miss and remembering it for every later caller.
func (c *Cache[V]) Load(key Key, build BuildFunc[V]) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.objects[key]; ok {
		log.Debug().Str("kind", key.Kind).Str("table_dir", key.TableDir).Msg("cache hit")
		return v, nil
	}

	log.Debug().Str("kind", key.Kind).Str("table_dir", key.TableDir).Msg("cache miss, building")
	v, err := build(key)
	if err != nil {
		var zero V
		return zero, err
	}
	c.objects[key] = v
	return v, nil
}
