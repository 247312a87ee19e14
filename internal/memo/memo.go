// Package memo provides the once-only, process-wide memoization primitive
// used for the derived Poseidon constants, the shared master permutation
// build, and the swapAB latch: the first caller for a given key computes
// the value, concurrent and later callers observe the same result without
// recomputing it.
package memo

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Table memoizes values of type V keyed by string.
type Table[V any] struct {
	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]V
}

// NewTable returns an empty memoization table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{cache: make(map[string]V)}
}

// Get returns the memoized value for key, computing it via compute on first
// access. Concurrent first accesses for the same key are deduplicated by
// golang.org/x/sync/singleflight so compute runs exactly once.
func (t *Table[V]) Get(key string, compute func() V) V {
	t.mu.RLock()
	if v, ok := t.cache[key]; ok {
		t.mu.RUnlock()
		return v
	}
	t.mu.RUnlock()

	res, _, _ := t.group.Do(key, func() (interface{}, error) {
		t.mu.RLock()
		if v, ok := t.cache[key]; ok {
			t.mu.RUnlock()
			return v, nil
		}
		t.mu.RUnlock()

		val := compute()

		t.mu.Lock()
		t.cache[key] = val
		t.mu.Unlock()
		return val, nil
	})
	return res.(V)
}

// Latch runs an action at most once across the process lifetime — the
// primitive backing the stamper's swapAB, which must take effect exactly
// once no matter how many goroutines invoke it.
type Latch struct {
	once sync.Once
}

// Do runs action the first time it is called; later calls are no-ops.
func (l *Latch) Do(action func()) {
	l.once.Do(action)
}
