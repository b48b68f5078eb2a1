package types

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BloomBitLength is the number of bits in a bloom filter (2048).
const BloomBitLength = 8 * BloomLength

// Bloom represents a 2048-bit bloom filter.
type Bloom [BloomLength]byte

// BytesToBloom converts bytes to a Bloom, left-padding if shorter than 256 bytes.
func BytesToBloom(b []byte) Bloom {
	var bl Bloom
	bl.SetBytes(b)
	return bl
}

// Bytes returns the byte representation of the bloom.
func (b Bloom) Bytes() []byte { return b[:] }

// SetBytes replaces the bloom with data, left-padding if necessary.
func (b *Bloom) SetBytes(data []byte) {
	if len(data) > BloomLength {
		data = data[len(data)-BloomLength:]
	}
	*b = Bloom{}
	copy(b[BloomLength-len(data):], data)
}

// SetBit sets bit i (0..2047). Bit 0 is the least significant bit of the
// last byte, matching the big-endian bloom layout.
func (b *Bloom) SetBit(i uint) {
	b[BloomLength-1-i/8] |= 1 << (i % 8)
}

// Bit reports whether bit i is set.
func (b Bloom) Bit(i uint) bool {
	return b[BloomLength-1-i/8]&(1<<(i%8)) != 0
}

// MarshalText encodes the bloom as 0x-prefixed hex.
func (b Bloom) MarshalText() ([]byte, error) {
	return hexutil.Bytes(b[:]).MarshalText()
}

// UnmarshalText decodes 0x-prefixed hex of exactly BloomLength bytes.
func (b *Bloom) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Bloom", input, b[:])
}
