package types

import (
	"sync"
	"testing"

	"github.com/holiman/uint256"

	"github.com/eth2030/headerid/metrics"
)

// numberedHeaders returns n distinct headers that differ only in Number.
func numberedHeaders(n int) []*Header {
	out := make([]*Header, n)
	for i := range out {
		h := sampleHeader()
		h.Number = *uint256.NewInt(uint64(i))
		out[i] = h
	}
	return out
}

func TestHeaderHashDeterministic(t *testing.T) {
	h := sampleHeader()
	want := ComputeHeaderHash(h)
	for i := 0; i < 5; i++ {
		if got := h.Hash(); got != want {
			t.Fatalf("call %d: Hash = %s, want %s", i, got, want)
		}
		if got := sampleHeader().HashWith(NewHashCache(2)); got != want {
			t.Fatalf("call %d: fresh-cache hash = %s, want %s", i, got, want)
		}
	}
}

func TestHeaderHashWithNilCache(t *testing.T) {
	h := sampleHeader()
	if h.HashWith(nil) != ComputeHeaderHash(h) {
		t.Fatal("HashWith(nil) should compute the digest directly")
	}
}

// TestHashCacheTransparent checks that a cache filled by other headers
// never changes the digest returned for a header.
func TestHashCacheTransparent(t *testing.T) {
	headers := numberedHeaders(20)
	want := make([]Hash, len(headers))
	for i, h := range headers {
		want[i] = ComputeHeaderHash(h)
	}

	warm := NewHashCache(8)
	for _, h := range headers {
		h.HashWith(warm)
	}
	for round := 0; round < 3; round++ {
		for i, h := range headers {
			if got := h.HashWith(warm); got != want[i] {
				t.Fatalf("round %d header %d: cached hash %s, want %s", round, i, got, want[i])
			}
		}
	}
}

func TestHashCacheHitsAndMisses(t *testing.T) {
	c := NewHashCache(4)
	h := sampleHeader()

	first := h.HashWith(c)
	second := h.HashWith(c)
	if first != second {
		t.Fatal("cached digest differs from computed digest")
	}
	st := c.Stats()
	if st.Misses != 1 || st.Hits != 1 {
		t.Fatalf("stats = %+v, want 1 miss and 1 hit", st)
	}
	if st.Entries != 1 || st.Capacity != 4 {
		t.Fatalf("stats = %+v, want 1 entry of capacity 4", st)
	}

	got, ok := c.Get(h.EncodeRLP())
	if !ok || got != first {
		t.Fatalf("Get = %s, %v; want %s, true", got, ok, first)
	}
}

func TestHashCacheComputesOncePerKey(t *testing.T) {
	c := NewHashCache(4)
	enc := sampleHeader().EncodeRLP()
	calls := 0
	compute := func(b []byte) Hash {
		calls++
		return keccakHash(b)
	}
	for i := 0; i < 5; i++ {
		c.GetOrCompute(enc, compute)
	}
	if calls != 1 {
		t.Fatalf("compute called %d times, want 1", calls)
	}
}

func TestHashCacheBounded(t *testing.T) {
	const capacity = 5
	c := NewHashCache(capacity)
	for i, h := range numberedHeaders(3 * capacity) {
		h.HashWith(c)
		if c.Len() > capacity {
			t.Fatalf("after %d inserts Len = %d, exceeds capacity %d", i+1, c.Len(), capacity)
		}
	}
	st := c.Stats()
	if st.Entries != capacity {
		t.Fatalf("Entries = %d, want %d", st.Entries, capacity)
	}
	if st.Evictions != 2*capacity {
		t.Fatalf("Evictions = %d, want %d", st.Evictions, 2*capacity)
	}
}

func TestHashCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewHashCache(2)
	hs := numberedHeaders(3)
	a, b, d := hs[0].EncodeRLP(), hs[1].EncodeRLP(), hs[2].EncodeRLP()

	hs[0].HashWith(c)
	hs[1].HashWith(c)
	// Touch a so that b becomes the eviction candidate.
	if _, ok := c.Get(a); !ok {
		t.Fatal("a should be cached")
	}
	hs[2].HashWith(c)

	if !c.Contains(a) {
		t.Error("recently used entry was evicted")
	}
	if c.Contains(b) {
		t.Error("least recently used entry was kept")
	}
	if !c.Contains(d) {
		t.Error("newest entry is missing")
	}
}

func TestHashCacheContainsDoesNotRefresh(t *testing.T) {
	c := NewHashCache(2)
	hs := numberedHeaders(3)
	a := hs[0].EncodeRLP()

	hs[0].HashWith(c)
	hs[1].HashWith(c)
	c.Contains(a)
	hs[2].HashWith(c)

	if c.Contains(a) {
		t.Fatal("Contains refreshed recency")
	}
}

func TestHashCachePurge(t *testing.T) {
	c := NewHashCache(4)
	for _, h := range numberedHeaders(3) {
		h.HashWith(c)
	}
	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("Len after Purge = %d", c.Len())
	}
	h := sampleHeader()
	if h.HashWith(c) != ComputeHeaderHash(h) {
		t.Fatal("hash after Purge differs")
	}
}

func TestNewHashCacheDefaultCapacity(t *testing.T) {
	for _, n := range []int{0, -1} {
		if got := NewHashCache(n).Capacity(); got != DefaultHashCacheSize {
			t.Errorf("NewHashCache(%d).Capacity() = %d, want %d", n, got, DefaultHashCacheSize)
		}
	}
}

func TestRegisteredHashCacheReportsToRegistry(t *testing.T) {
	reg := metrics.NewRegistry()
	c := NewRegisteredHashCache(1, reg)
	hs := numberedHeaders(2)
	hs[0].HashWith(c)
	hs[0].HashWith(c)
	hs[1].HashWith(c)

	snap := reg.Snapshot()
	want := map[string]int64{
		metrics.HashCacheHitsName:      1,
		metrics.HashCacheMissesName:    2,
		metrics.HashCacheEvictionsName: 1,
		metrics.HashCacheEntriesName:   1,
	}
	for name, v := range want {
		if snap[name] != v {
			t.Errorf("%s = %d, want %d", name, snap[name], v)
		}
	}
}

func TestHashCacheConcurrent(t *testing.T) {
	headers := numberedHeaders(10)
	want := make([]Hash, len(headers))
	for i, h := range headers {
		want[i] = ComputeHeaderHash(h)
	}

	// A capacity well below the working set forces constant eviction.
	c := NewHashCache(3)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []int
	)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				idx := (g + i) % len(headers)
				if headers[idx].HashWith(c) != want[idx] {
					mu.Lock()
					failed = append(failed, idx)
					mu.Unlock()
				}
			}
		}(g)
	}
	wg.Wait()

	if len(failed) > 0 {
		t.Fatalf("%d lookups returned a wrong digest (first header %d)", len(failed), failed[0])
	}
	if c.Len() > c.Capacity() {
		t.Fatalf("Len = %d exceeds capacity %d", c.Len(), c.Capacity())
	}
	st := c.Stats()
	if st.Hits+st.Misses != 16*200 {
		t.Fatalf("hits+misses = %d, want %d", st.Hits+st.Misses, 16*200)
	}
}

func TestDefaultHashCache(t *testing.T) {
	c := DefaultHashCache()
	if c == nil {
		t.Fatal("DefaultHashCache returned nil")
	}
	if c != DefaultHashCache() {
		t.Fatal("DefaultHashCache should return the same cache")
	}
	if c.Capacity() != DefaultHashCacheSize {
		t.Fatalf("Capacity = %d, want %d", c.Capacity(), DefaultHashCacheSize)
	}

	h := sampleHeader()
	h.Hash()
	if !c.Contains(h.EncodeRLP()) {
		t.Fatal("Hash should populate the default cache")
	}
}

func TestSetDefaultHashCache(t *testing.T) {
	orig := DefaultHashCache()
	defer SetDefaultHashCache(orig)

	replacement := NewHashCache(3)
	SetDefaultHashCache(replacement)
	if DefaultHashCache() != replacement {
		t.Fatal("SetDefaultHashCache did not install the cache")
	}
	SetDefaultHashCache(nil)
	if DefaultHashCache() != replacement {
		t.Fatal("SetDefaultHashCache(nil) should be ignored")
	}

	h := sampleHeader()
	if h.Hash() != ComputeHeaderHash(h) {
		t.Fatal("hash through replacement cache differs")
	}
	if replacement.Len() != 1 {
		t.Fatalf("replacement Len = %d, want 1", replacement.Len())
	}
}
