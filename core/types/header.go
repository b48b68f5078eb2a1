package types

import (
	"bytes"

	"github.com/holiman/uint256"
)

// Header represents a block header.
//
// The declared field order is the canonical encoding order and therefore
// part of every header hash. Reordering, adding or removing a field changes
// the identity of every existing header.
//
// A Header is treated as immutable once built: nothing in this package
// modifies a header in place, and a changed header is a new value.
type Header struct {
	ParentHash       Hash
	OmmersHash       Hash
	Beneficiary      Address
	StateRoot        Hash
	TransactionsRoot Hash
	ReceiptsRoot     Hash
	LogsBloom        Bloom
	Difficulty       uint256.Int
	Number           uint256.Int
	GasLimit         uint256.Int
	GasUsed          uint256.Int
	Timestamp        uint64
	ExtraData        []byte
	MixHash          Hash
	Nonce            BlockNonce
	BaseFee          uint256.Int
}

// PartialHeader holds every header field that is known before the block
// body is final. OmmersHash and TransactionsRoot are supplied separately
// through NewHeader once the ommer and transaction lists are assembled.
type PartialHeader struct {
	ParentHash   Hash
	Beneficiary  Address
	StateRoot    Hash
	ReceiptsRoot Hash
	LogsBloom    Bloom
	Difficulty   uint256.Int
	Number       uint256.Int
	GasLimit     uint256.Int
	GasUsed      uint256.Int
	Timestamp    uint64
	ExtraData    []byte
	MixHash      Hash
	Nonce        BlockNonce
	BaseFee      uint256.Int
}

// NewHeader combines a partial header with the ommers hash and transactions
// root computed from the finished block body. The two roots are taken as
// given; nothing checks them against any ommer or transaction list.
func NewHeader(partial *PartialHeader, ommersHash, transactionsRoot Hash) *Header {
	return &Header{
		ParentHash:       partial.ParentHash,
		OmmersHash:       ommersHash,
		Beneficiary:      partial.Beneficiary,
		StateRoot:        partial.StateRoot,
		TransactionsRoot: transactionsRoot,
		ReceiptsRoot:     partial.ReceiptsRoot,
		LogsBloom:        partial.LogsBloom,
		Difficulty:       partial.Difficulty,
		Number:           partial.Number,
		GasLimit:         partial.GasLimit,
		GasUsed:          partial.GasUsed,
		Timestamp:        partial.Timestamp,
		ExtraData:        bytes.Clone(partial.ExtraData),
		MixHash:          partial.MixHash,
		Nonce:            partial.Nonce,
		BaseFee:          partial.BaseFee,
	}
}

// PartialHeaderFromHeader projects h onto a PartialHeader, discarding
// OmmersHash and TransactionsRoot. The projection cannot be inverted
// without the two discarded values.
func PartialHeaderFromHeader(h *Header) *PartialHeader {
	return &PartialHeader{
		ParentHash:   h.ParentHash,
		Beneficiary:  h.Beneficiary,
		StateRoot:    h.StateRoot,
		ReceiptsRoot: h.ReceiptsRoot,
		LogsBloom:    h.LogsBloom,
		Difficulty:   h.Difficulty,
		Number:       h.Number,
		GasLimit:     h.GasLimit,
		GasUsed:      h.GasUsed,
		Timestamp:    h.Timestamp,
		ExtraData:    bytes.Clone(h.ExtraData),
		MixHash:      h.MixHash,
		Nonce:        h.Nonce,
		BaseFee:      h.BaseFee,
	}
}

// Copy returns a deep copy of h.
func (h *Header) Copy() *Header {
	cpy := *h
	cpy.ExtraData = bytes.Clone(h.ExtraData)
	return &cpy
}

// Equal reports whether h and o hold the same field values. Nil and empty
// ExtraData are equal since they encode identically.
func (h *Header) Equal(o *Header) bool {
	if h == nil || o == nil {
		return h == o
	}
	return h.ParentHash == o.ParentHash &&
		h.OmmersHash == o.OmmersHash &&
		h.Beneficiary == o.Beneficiary &&
		h.StateRoot == o.StateRoot &&
		h.TransactionsRoot == o.TransactionsRoot &&
		h.ReceiptsRoot == o.ReceiptsRoot &&
		h.LogsBloom == o.LogsBloom &&
		h.Difficulty == o.Difficulty &&
		h.Number == o.Number &&
		h.GasLimit == o.GasLimit &&
		h.GasUsed == o.GasUsed &&
		h.Timestamp == o.Timestamp &&
		bytes.Equal(h.ExtraData, o.ExtraData) &&
		h.MixHash == o.MixHash &&
		h.Nonce == o.Nonce &&
		h.BaseFee == o.BaseFee
}

// Copy returns a deep copy of p.
func (p *PartialHeader) Copy() *PartialHeader {
	cpy := *p
	cpy.ExtraData = bytes.Clone(p.ExtraData)
	return &cpy
}

// Equal reports whether p and o hold the same field values.
func (p *PartialHeader) Equal(o *PartialHeader) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.ParentHash == o.ParentHash &&
		p.Beneficiary == o.Beneficiary &&
		p.StateRoot == o.StateRoot &&
		p.ReceiptsRoot == o.ReceiptsRoot &&
		p.LogsBloom == o.LogsBloom &&
		p.Difficulty == o.Difficulty &&
		p.Number == o.Number &&
		p.GasLimit == o.GasLimit &&
		p.GasUsed == o.GasUsed &&
		p.Timestamp == o.Timestamp &&
		bytes.Equal(p.ExtraData, o.ExtraData) &&
		p.MixHash == o.MixHash &&
		p.Nonce == o.Nonce &&
		p.BaseFee == o.BaseFee
}
