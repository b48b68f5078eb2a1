// Package rlp implements the recursive length prefix encoding used to give
// block headers a canonical byte form. Encoding is append-style: every
// function extends a caller-supplied slice and never fails.
package rlp

import (
	"github.com/holiman/uint256"
)

const (
	offsetShortString = 0x80
	offsetLongString  = 0xb7
	offsetShortList   = 0xc0
	offsetLongList    = 0xf7

	// maxShortPayload is the largest payload that fits a single-byte prefix.
	maxShortPayload = 55
)

// AppendString appends the RLP encoding of the byte string b to dst.
// A single byte below 0x80 is its own encoding; the empty string is 0x80.
func AppendString(dst, b []byte) []byte {
	if len(b) == 1 && b[0] < offsetShortString {
		return append(dst, b[0])
	}
	dst = appendHead(dst, offsetShortString, offsetLongString, uint64(len(b)))
	return append(dst, b...)
}

// AppendUint64 appends the RLP encoding of v, a big-endian string with no
// leading zero bytes.
func AppendUint64(dst []byte, v uint64) []byte {
	switch {
	case v == 0:
		return append(dst, offsetShortString)
	case v < offsetShortString:
		return append(dst, byte(v))
	}
	n := uintByteLen(v)
	dst = append(dst, offsetShortString+byte(n))
	return appendUintBE(dst, v, n)
}

// AppendUint256 appends the RLP encoding of the 256-bit unsigned integer v.
// The output is identical to AppendUint64 for values that fit in 64 bits.
func AppendUint256(dst []byte, v *uint256.Int) []byte {
	if v.IsUint64() {
		return AppendUint64(dst, v.Uint64())
	}
	n := v.ByteLen()
	b := v.Bytes32()
	dst = append(dst, offsetShortString+byte(n))
	return append(dst, b[32-n:]...)
}

// AppendListHeader appends an RLP list header for a payload of the given
// size to dst. The caller appends exactly payloadSize bytes of encoded
// items afterward.
func AppendListHeader(dst []byte, payloadSize int) []byte {
	return appendHead(dst, offsetShortList, offsetLongList, uint64(payloadSize))
}

// WrapList returns payload, an already-encoded sequence of items, framed as
// an RLP list. The result never aliases payload.
func WrapList(payload []byte) []byte {
	out := make([]byte, 0, ListSize(len(payload)))
	out = AppendListHeader(out, len(payload))
	return append(out, payload...)
}

// ListSize returns the encoded size of a list with the given payload size.
func ListSize(payloadSize int) int {
	return headSize(uint64(payloadSize)) + payloadSize
}

// StringSize returns the encoded size of the byte string b.
func StringSize(b []byte) int {
	if len(b) == 1 && b[0] < offsetShortString {
		return 1
	}
	return headSize(uint64(len(b))) + len(b)
}

// Uint64Size returns the encoded size of v.
func Uint64Size(v uint64) int {
	if v < offsetShortString {
		return 1
	}
	return 1 + uintByteLen(v)
}

// Uint256Size returns the encoded size of v.
func Uint256Size(v *uint256.Int) int {
	if v.IsUint64() && v.Uint64() < offsetShortString {
		return 1
	}
	return 1 + v.ByteLen()
}

func headSize(size uint64) int {
	if size <= maxShortPayload {
		return 1
	}
	return 1 + uintByteLen(size)
}

func appendHead(dst []byte, short, long byte, size uint64) []byte {
	if size <= maxShortPayload {
		return append(dst, short+byte(size))
	}
	n := uintByteLen(size)
	dst = append(dst, long+byte(n))
	return appendUintBE(dst, size, n)
}

// appendUintBE appends the n low-order bytes of u in big-endian order.
func appendUintBE(dst []byte, u uint64, n int) []byte {
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(u>>(8*uint(i))))
	}
	return dst
}

// uintByteLen returns the number of bytes needed to encode u in big-endian.
func uintByteLen(u uint64) int {
	switch {
	case u < (1 << 8):
		return 1
	case u < (1 << 16):
		return 2
	case u < (1 << 24):
		return 3
	case u < (1 << 32):
		return 4
	case u < (1 << 40):
		return 5
	case u < (1 << 48):
		return 6
	case u < (1 << 56):
		return 7
	default:
		return 8
	}
}
