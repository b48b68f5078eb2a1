package metrics

// Pre-defined metrics for header identity hashing. All metrics live in
// DefaultRegistry so they are globally accessible without passing a
// registry around.

const (
	// HashCacheHitsName counts hash requests served from the identity cache.
	HashCacheHitsName = "headers.hashcache.hits"
	// HashCacheMissesName counts hash requests that computed a new digest.
	HashCacheMissesName = "headers.hashcache.misses"
	// HashCacheEvictionsName counts entries evicted to respect capacity.
	HashCacheEvictionsName = "headers.hashcache.evictions"
	// HashCacheEntriesName tracks the number of retained entries.
	HashCacheEntriesName = "headers.hashcache.entries"
)

var (
	// HeadersDecoded counts headers decoded from their canonical encoding.
	HeadersDecoded = DefaultRegistry.Counter("headers.decoded")
	// HeadersDecodeFailed counts rejected canonical encodings.
	HeadersDecodeFailed = DefaultRegistry.Counter("headers.decode_failed")
)
