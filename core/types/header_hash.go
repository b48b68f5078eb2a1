package types

import (
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common/lru"

	"github.com/eth2030/headerid/crypto"
	"github.com/eth2030/headerid/log"
	"github.com/eth2030/headerid/metrics"
)

// DefaultHashCacheSize is the capacity of the process-wide hash cache.
const DefaultHashCacheSize = 100

// HashCacheStats is a point-in-time view of a HashCache.
type HashCacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
	Capacity  int
}

// HashCache is a bounded, least-recently-used map from canonical header
// encodings to their Keccak-256 digests. It is safe for concurrent use.
// The cache is purely an optimisation: a digest it returns is always the
// digest of its key, so dropping or purging it only costs recomputation.
type HashCache struct {
	mu       sync.Mutex
	entries  lru.BasicLRU[string, Hash]
	capacity int

	hits      *metrics.Counter
	misses    *metrics.Counter
	evictions *metrics.Counter
	size      *metrics.Gauge
}

// NewHashCache creates an empty cache holding at most capacity entries.
// A non-positive capacity selects DefaultHashCacheSize. The cache keeps its
// own counters, independent of any registry.
func NewHashCache(capacity int) *HashCache {
	return newHashCache(capacity,
		metrics.NewCounter(metrics.HashCacheHitsName),
		metrics.NewCounter(metrics.HashCacheMissesName),
		metrics.NewCounter(metrics.HashCacheEvictionsName),
		metrics.NewGauge(metrics.HashCacheEntriesName))
}

// NewRegisteredHashCache is like NewHashCache but reports hits, misses,
// evictions and size through reg.
func NewRegisteredHashCache(capacity int, reg *metrics.Registry) *HashCache {
	return newHashCache(capacity,
		reg.Counter(metrics.HashCacheHitsName),
		reg.Counter(metrics.HashCacheMissesName),
		reg.Counter(metrics.HashCacheEvictionsName),
		reg.Gauge(metrics.HashCacheEntriesName))
}

func newHashCache(capacity int, hits, misses, evictions *metrics.Counter, size *metrics.Gauge) *HashCache {
	if capacity <= 0 {
		capacity = DefaultHashCacheSize
	}
	return &HashCache{
		entries:   lru.NewBasicLRU[string, Hash](capacity),
		capacity:  capacity,
		hits:      hits,
		misses:    misses,
		evictions: evictions,
		size:      size,
	}
}

// GetOrCompute returns the digest cached for enc, or calls compute, stores
// the result and returns it. The lookup, the computation of a missing
// digest and the insertion happen under one lock acquisition, so concurrent
// callers asking for the same missing key compute it once.
func (c *HashCache) GetOrCompute(enc []byte, compute func([]byte) Hash) Hash {
	key := string(enc)

	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.entries.Get(key); ok {
		c.hits.Inc()
		return h
	}
	c.misses.Inc()
	h := compute(enc)
	if c.entries.Add(key, h) {
		c.evictions.Inc()
	}
	c.size.Set(int64(c.entries.Len()))
	return h
}

// Get returns the digest cached for enc. A hit refreshes the entry's recency.
func (c *HashCache) Get(enc []byte) (Hash, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Get(string(enc))
}

// Contains reports whether enc is cached without refreshing its recency.
func (c *HashCache) Contains(enc []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Contains(string(enc))
}

// Len returns the number of cached entries.
func (c *HashCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Capacity returns the maximum number of entries retained.
func (c *HashCache) Capacity() int { return c.capacity }

// Purge drops every entry.
func (c *HashCache) Purge() {
	c.mu.Lock()
	c.entries.Purge()
	c.size.Set(0)
	c.mu.Unlock()
}

// Stats returns the cache's counters and current occupancy.
func (c *HashCache) Stats() HashCacheStats {
	return HashCacheStats{
		Hits:      c.hits.Value(),
		Misses:    c.misses.Value(),
		Evictions: c.evictions.Value(),
		Entries:   c.Len(),
		Capacity:  c.capacity,
	}
}

var (
	defaultHashCache     atomic.Pointer[HashCache]
	defaultHashCacheOnce sync.Once
)

// DefaultHashCache returns the process-wide hash cache used by Header.Hash.
// It is created empty on first use, reports to metrics.DefaultRegistry, and
// lives until the process exits.
func DefaultHashCache() *HashCache {
	if c := defaultHashCache.Load(); c != nil {
		return c
	}
	defaultHashCacheOnce.Do(func() {
		c := NewRegisteredHashCache(DefaultHashCacheSize, metrics.DefaultRegistry)
		if defaultHashCache.CompareAndSwap(nil, c) {
			log.Default().Module("types").Debug("Header hash cache created", "capacity", c.Capacity())
		}
	})
	return defaultHashCache.Load()
}

// SetDefaultHashCache replaces the process-wide hash cache. It is meant for
// application start-up, before headers are hashed. A nil cache is ignored.
func SetDefaultHashCache(c *HashCache) {
	if c == nil {
		return
	}
	defaultHashCache.Store(c)
	log.Default().Module("types").Debug("Header hash cache installed", "capacity", c.Capacity())
}

// Hash returns the Keccak-256 digest of the header's canonical encoding,
// served from the process-wide cache when possible.
func (h *Header) Hash() Hash {
	return h.HashWith(DefaultHashCache())
}

// HashWith is like Hash but uses the given cache. A nil cache computes the
// digest directly.
func (h *Header) HashWith(c *HashCache) Hash {
	enc := h.EncodeRLP()
	if c == nil {
		return keccakHash(enc)
	}
	return c.GetOrCompute(enc, keccakHash)
}

// ComputeHeaderHash returns the digest of h without consulting any cache.
func ComputeHeaderHash(h *Header) Hash {
	return keccakHash(h.EncodeRLP())
}

func keccakHash(b []byte) Hash {
	return crypto.Keccak256Sum(b)
}
