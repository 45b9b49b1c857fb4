package util

import (
	"sync"
	"sync/atomic"
)

// SlicePool provides pooling for fixed length scratch slices, keyed by length.
// Slices handed out are always zeroed.
type SlicePool[T any] struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex

	// Metrics
	hits   atomic.Int64
	misses atomic.Int64
}

func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{pools: make(map[int]*sync.Pool)}
}

var (
	bytePool    = NewSlicePool[uint8]()
	float32Pool = NewSlicePool[float32]()
)

// Get retrieves a slice of the given length from the pool or creates a new one
func (p *SlicePool[T]) Get(length int) []T {
	if length <= 0 {
		return make([]T, 0)
	}

	// Fast path: read lock
	p.mu.RLock()
	pool, exists := p.pools[length]
	p.mu.RUnlock()

	if exists {
		if s := pool.Get(); s != nil {
			p.hits.Add(1)
			return *(s.(*[]T))
		}
	} else {
		// Slow path: create new pool
		p.mu.Lock()
		// Double-check after acquiring write lock
		if _, exists = p.pools[length]; !exists {
			p.pools[length] = &sync.Pool{}
		}
		p.mu.Unlock()
	}

	p.misses.Add(1)
	return make([]T, length)
}

// Put returns a slice to the pool after clearing it
func (p *SlicePool[T]) Put(s []T) {
	if len(s) == 0 {
		return
	}

	p.mu.RLock()
	pool, exists := p.pools[len(s)]
	p.mu.RUnlock()

	if exists {
		clear(s)
		pool.Put(&s)
	}
}

// GetMetrics returns pool usage statistics
func (p *SlicePool[T]) GetMetrics() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

// Public API functions

// GetScratch creates or retrieves a zeroed scratch slice from the shared pools.
func GetScratch[T any](length int) []T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return any(bytePool.Get(length)).([]T)
	case float32:
		return any(float32Pool.Get(length)).([]T)
	default:
		// Fallback for unsupported types
		return make([]T, length)
	}
}

// ReturnScratch returns a slice obtained from GetScratch to its pool.
// The caller must not use s afterwards.
func ReturnScratch[T any](s []T) {
	if len(s) == 0 {
		return
	}

	switch v := any(s).(type) {
	case []uint8:
		bytePool.Put(v)
	case []float32:
		float32Pool.Put(v)
	}
}

// GetPoolMetrics returns metrics for all pools
func GetPoolMetrics() map[string]map[string]int64 {
	byteHits, byteMisses := bytePool.GetMetrics()
	f32Hits, f32Misses := float32Pool.GetMetrics()

	return map[string]map[string]int64{
		"uint8": {
			"hits":   byteHits,
			"misses": byteMisses,
		},
		"float32": {
			"hits":   f32Hits,
			"misses": f32Misses,
		},
	}
}
