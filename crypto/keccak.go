// Package crypto provides the Keccak-256 digest used for header identities.
package crypto

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

// KeccakState wraps sha3.state. In addition to the usual hash methods, it
// also supports Read to get a variable amount of data from the hash state,
// which is faster than Sum because it does not copy the internal state.
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState creates a new Keccak-256 state.
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

var keccakPool = sync.Pool{
	New: func() interface{} { return NewKeccakState() },
}

// Keccak256Sum calculates the Keccak-256 hash of the concatenated inputs.
func Keccak256Sum(data ...[]byte) (out [32]byte) {
	d := keccakPool.Get().(KeccakState)
	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(out[:])
	keccakPool.Put(d)
	return out
}

// Keccak256 calculates the Keccak-256 hash of the given data.
func Keccak256(data ...[]byte) []byte {
	sum := Keccak256Sum(data...)
	return sum[:]
}
