// Package geth converts headers to and from go-ethereum's header type and
// cross-checks header identities against go-ethereum's own encoder. This is
// the only package that imports go-ethereum's core types; everything else
// uses headerid/core/types.
package geth

import (
	"errors"
	"fmt"
	"math/big"

	gethcommon "github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/eth2030/headerid/core/types"
)

var (
	// ErrGasOverflow is returned when a gas value does not fit the 64-bit
	// fields of go-ethereum's header.
	ErrGasOverflow = errors.New("gas value exceeds 64 bits")

	// ErrMissingBaseFee is returned for go-ethereum headers that predate
	// the base fee and so have no 16-field form.
	ErrMissingBaseFee = errors.New("header has no base fee")

	// ErrUnsupportedField is returned for go-ethereum headers that carry
	// fields beyond the base fee.
	ErrUnsupportedField = errors.New("header carries fields beyond base fee")
)

// --- Address and Hash conversion (zero-copy, layout-compatible) ---

// ToGethAddress converts an Address to a go-ethereum Address.
func ToGethAddress(a types.Address) gethcommon.Address {
	return gethcommon.Address(a)
}

// FromGethAddress converts a go-ethereum Address to an Address.
func FromGethAddress(a gethcommon.Address) types.Address {
	return types.Address(a)
}

// ToGethHash converts a Hash to a go-ethereum Hash.
func ToGethHash(h types.Hash) gethcommon.Hash {
	return gethcommon.Hash(h)
}

// FromGethHash converts a go-ethereum Hash to a Hash.
func FromGethHash(h gethcommon.Hash) types.Hash {
	return types.Hash(h)
}

// --- Integer conversion ---

// FromBig converts a possibly nil *big.Int to a uint256 value. Nil is zero.
func FromBig(b *big.Int) (uint256.Int, error) {
	var z uint256.Int
	if b == nil {
		return z, nil
	}
	if b.Sign() < 0 {
		return z, fmt.Errorf("%w: negative value %s", types.ErrIntegerOverflow, b)
	}
	if z.SetFromBig(b) {
		return z, types.ErrIntegerOverflow
	}
	return z, nil
}

// --- Header conversion ---

// ToGethHeader converts h to a go-ethereum London-shaped header: BaseFee is
// set and every later optional field is nil, so both headers encode and
// hash identically. It fails when GasLimit or GasUsed exceed 64 bits.
func ToGethHeader(h *types.Header) (*gethtypes.Header, error) {
	if !h.GasLimit.IsUint64() {
		return nil, fmt.Errorf("%w: gasLimit %s", ErrGasOverflow, h.GasLimit.Dec())
	}
	if !h.GasUsed.IsUint64() {
		return nil, fmt.Errorf("%w: gasUsed %s", ErrGasOverflow, h.GasUsed.Dec())
	}
	return &gethtypes.Header{
		ParentHash:  ToGethHash(h.ParentHash),
		UncleHash:   ToGethHash(h.OmmersHash),
		Coinbase:    ToGethAddress(h.Beneficiary),
		Root:        ToGethHash(h.StateRoot),
		TxHash:      ToGethHash(h.TransactionsRoot),
		ReceiptHash: ToGethHash(h.ReceiptsRoot),
		Bloom:       gethtypes.Bloom(h.LogsBloom),
		Difficulty:  h.Difficulty.ToBig(),
		Number:      h.Number.ToBig(),
		GasLimit:    h.GasLimit.Uint64(),
		GasUsed:     h.GasUsed.Uint64(),
		Time:        h.Timestamp,
		Extra:       gethcommon.CopyBytes(h.ExtraData),
		MixDigest:   ToGethHash(h.MixHash),
		Nonce:       gethtypes.BlockNonce(h.Nonce),
		BaseFee:     h.BaseFee.ToBig(),
	}, nil
}

// FromGethHeader converts a London-shaped go-ethereum header. Headers
// without a base fee, or with withdrawals, blob gas, beacon root or
// requests fields, have no equivalent and are rejected.
func FromGethHeader(gh *gethtypes.Header) (*types.Header, error) {
	if gh == nil {
		return nil, errors.New("nil header")
	}
	if gh.BaseFee == nil {
		return nil, ErrMissingBaseFee
	}
	switch {
	case gh.WithdrawalsHash != nil:
		return nil, fmt.Errorf("%w: withdrawalsRoot", ErrUnsupportedField)
	case gh.BlobGasUsed != nil, gh.ExcessBlobGas != nil:
		return nil, fmt.Errorf("%w: blob gas", ErrUnsupportedField)
	case gh.ParentBeaconRoot != nil:
		return nil, fmt.Errorf("%w: parentBeaconBlockRoot", ErrUnsupportedField)
	case gh.RequestsHash != nil:
		return nil, fmt.Errorf("%w: requestsHash", ErrUnsupportedField)
	}

	h := &types.Header{
		ParentHash:       FromGethHash(gh.ParentHash),
		OmmersHash:       FromGethHash(gh.UncleHash),
		Beneficiary:      FromGethAddress(gh.Coinbase),
		StateRoot:        FromGethHash(gh.Root),
		TransactionsRoot: FromGethHash(gh.TxHash),
		ReceiptsRoot:     FromGethHash(gh.ReceiptHash),
		LogsBloom:        types.Bloom(gh.Bloom),
		Timestamp:        gh.Time,
		MixHash:          FromGethHash(gh.MixDigest),
		Nonce:            types.BlockNonce(gh.Nonce),
	}
	if len(gh.Extra) > 0 {
		h.ExtraData = gethcommon.CopyBytes(gh.Extra)
	}
	h.GasLimit.SetUint64(gh.GasLimit)
	h.GasUsed.SetUint64(gh.GasUsed)

	ints := []struct {
		name string
		src  *big.Int
		dst  *uint256.Int
	}{
		{"difficulty", gh.Difficulty, &h.Difficulty},
		{"number", gh.Number, &h.Number},
		{"baseFee", gh.BaseFee, &h.BaseFee},
	}
	for _, f := range ints {
		v, err := FromBig(f.src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	return h, nil
}
