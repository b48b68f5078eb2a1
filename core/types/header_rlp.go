package types

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/eth2030/headerid/metrics"
	"github.com/eth2030/headerid/rlp"
)

// ErrInvalidHeaderRLP wraps every failure to decode a canonical header.
var ErrInvalidHeaderRLP = errors.New("invalid header encoding")

const (
	hashItemSize    = 1 + HashLength    // 0xa0 + 32 bytes
	addressItemSize = 1 + AddressLength // 0x94 + 20 bytes
	bloomItemSize   = 3 + BloomLength   // 0xb9 0x01 0x00 + 256 bytes
	nonceItemSize   = 1 + NonceLength   // 0x88 + 8 bytes
)

// EncodeRLP returns the canonical encoding of the header: an RLP list of
// its 16 fields in declared order
//
//	[ParentHash, OmmersHash, Beneficiary, StateRoot, TransactionsRoot,
//	 ReceiptsRoot, LogsBloom, Difficulty, Number, GasLimit, GasUsed,
//	 Timestamp, ExtraData, MixHash, Nonce, BaseFee]
//
// Fixed-width values keep their full width; integers are big-endian with
// no leading zeros. Every field is always present.
func (h *Header) EncodeRLP() []byte {
	return rlp.EncodeList(h.appendFields)
}

// AppendRLP appends the canonical encoding of the header to dst.
func (h *Header) AppendRLP(dst []byte) []byte {
	dst = rlp.AppendListHeader(dst, h.payloadSize())
	return h.appendFields(dst)
}

// EncodedSize returns the length of the canonical encoding in bytes.
func (h *Header) EncodedSize() int {
	return rlp.ListSize(h.payloadSize())
}

func (h *Header) appendFields(b []byte) []byte {
	b = rlp.AppendString(b, h.ParentHash[:])
	b = rlp.AppendString(b, h.OmmersHash[:])
	b = rlp.AppendString(b, h.Beneficiary[:])
	b = rlp.AppendString(b, h.StateRoot[:])
	b = rlp.AppendString(b, h.TransactionsRoot[:])
	b = rlp.AppendString(b, h.ReceiptsRoot[:])
	b = rlp.AppendString(b, h.LogsBloom[:])
	b = rlp.AppendUint256(b, &h.Difficulty)
	b = rlp.AppendUint256(b, &h.Number)
	b = rlp.AppendUint256(b, &h.GasLimit)
	b = rlp.AppendUint256(b, &h.GasUsed)
	b = rlp.AppendUint64(b, h.Timestamp)
	b = rlp.AppendString(b, h.ExtraData)
	b = rlp.AppendString(b, h.MixHash[:])
	b = rlp.AppendString(b, h.Nonce[:])
	b = rlp.AppendUint256(b, &h.BaseFee)
	return b
}

func (h *Header) payloadSize() int {
	return 6*hashItemSize + addressItemSize + bloomItemSize + nonceItemSize +
		rlp.Uint256Size(&h.Difficulty) +
		rlp.Uint256Size(&h.Number) +
		rlp.Uint256Size(&h.GasLimit) +
		rlp.Uint256Size(&h.GasUsed) +
		rlp.Uint64Size(h.Timestamp) +
		rlp.StringSize(h.ExtraData) +
		rlp.Uint256Size(&h.BaseFee)
}

// DecodeHeaderRLP decodes a header from its canonical encoding. Any
// deviation from the form produced by EncodeRLP is rejected, so a decoded
// header always re-encodes to exactly data.
func DecodeHeaderRLP(data []byte) (*Header, error) {
	h, err := decodeHeader(data)
	if err != nil {
		metrics.HeadersDecodeFailed.Inc()
		return nil, err
	}
	metrics.HeadersDecoded.Inc()
	return h, nil
}

func decodeHeader(data []byte) (*Header, error) {
	s := rlp.NewStream(data)
	if _, err := s.List(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeaderRLP, err)
	}

	h := new(Header)
	fields := []struct {
		name   string
		decode func() error
	}{
		{"parentHash", fixed(s, h.ParentHash[:])},
		{"ommersHash", fixed(s, h.OmmersHash[:])},
		{"beneficiary", fixed(s, h.Beneficiary[:])},
		{"stateRoot", fixed(s, h.StateRoot[:])},
		{"transactionsRoot", fixed(s, h.TransactionsRoot[:])},
		{"receiptsRoot", fixed(s, h.ReceiptsRoot[:])},
		{"logsBloom", fixed(s, h.LogsBloom[:])},
		{"difficulty", func() error { return s.Uint256(&h.Difficulty) }},
		{"number", func() error { return s.Uint256(&h.Number) }},
		{"gasLimit", func() error { return s.Uint256(&h.GasLimit) }},
		{"gasUsed", func() error { return s.Uint256(&h.GasUsed) }},
		{"timestamp", func() (err error) {
			h.Timestamp, err = s.Uint64()
			return err
		}},
		{"extraData", func() error {
			b, err := s.Bytes()
			if err == nil && len(b) > 0 {
				h.ExtraData = bytes.Clone(b)
			}
			return err
		}},
		{"mixHash", fixed(s, h.MixHash[:])},
		{"nonce", fixed(s, h.Nonce[:])},
		{"baseFee", func() error { return s.Uint256(&h.BaseFee) }},
	}
	for _, f := range fields {
		if s.AtListEnd() {
			return nil, fmt.Errorf("%w: missing field %s", ErrInvalidHeaderRLP, f.name)
		}
		if err := f.decode(); err != nil {
			return nil, fmt.Errorf("%w: field %s: %w", ErrInvalidHeaderRLP, f.name, err)
		}
	}
	if err := s.ListEnd(); err != nil {
		return nil, fmt.Errorf("%w: unexpected trailing fields: %w", ErrInvalidHeaderRLP, err)
	}
	if err := s.Done(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeaderRLP, err)
	}
	return h, nil
}

func fixed(s *rlp.Stream, dst []byte) func() error {
	return func() error { return s.FixedBytes(dst) }
}
