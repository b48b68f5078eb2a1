// encoder_pool.go provides pooled payload buffers for list encoding. Header
// identity hashing encodes the same shape of list many times per second, so
// reusing the scratch payload avoids an allocation per field append.
package rlp

import (
	"sync"
	"sync/atomic"
)

const (
	// defaultBufSize is the initial capacity for pooled payload buffers.
	defaultBufSize = 1024

	// maxBufSize caps the buffer size to avoid retaining oversized buffers.
	maxBufSize = 1 << 20 // 1 MiB
)

// EncoderPool manages a pool of reusable payload buffers.
type EncoderPool struct {
	pool sync.Pool

	allocs   atomic.Int64
	encodes  atomic.Int64
	outBytes atomic.Int64
}

// EncoderPoolStats is a point-in-time copy of pool counters.
type EncoderPoolStats struct {
	Allocs  int64 // buffers created because the pool was empty
	Encodes int64
	Bytes   int64 // total encoded output
}

// DefaultEncoderPool is shared by EncodeList.
var DefaultEncoderPool = NewEncoderPool()

// NewEncoderPool creates an empty encoder pool.
func NewEncoderPool() *EncoderPool {
	ep := &EncoderPool{}
	ep.pool.New = func() interface{} {
		ep.allocs.Add(1)
		buf := make([]byte, 0, defaultBufSize)
		return &buf
	}
	return ep
}

// EncodeList runs fill against an empty pooled payload buffer and returns
// the filled payload framed as an RLP list. fill must return the extended
// slice and must not retain it.
func (ep *EncoderPool) EncodeList(fill func(payload []byte) []byte) []byte {
	bp := ep.pool.Get().(*[]byte)
	payload := fill((*bp)[:0])

	out := WrapList(payload)
	ep.encodes.Add(1)
	ep.outBytes.Add(int64(len(out)))

	if cap(payload) <= maxBufSize {
		*bp = payload[:0]
		ep.pool.Put(bp)
	}
	return out
}

// Stats returns the pool's usage counters.
func (ep *EncoderPool) Stats() EncoderPoolStats {
	return EncoderPoolStats{
		Allocs:  ep.allocs.Load(),
		Encodes: ep.encodes.Load(),
		Bytes:   ep.outBytes.Load(),
	}
}

// EncodeList encodes a list using DefaultEncoderPool.
func EncodeList(fill func(payload []byte) []byte) []byte {
	return DefaultEncoderPool.EncodeList(fill)
}
