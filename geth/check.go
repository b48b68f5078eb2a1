package geth

import (
	"bytes"

	gethcommon "github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	gethrlp "github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/eth2030/headerid/core/types"
	"github.com/eth2030/headerid/crypto"
)

// wideHeader mirrors the field layout of a header with every integer held
// as a 256-bit value, so go-ethereum's reflective encoder can produce the
// canonical form of headers whose gas values do not fit gethtypes.Header.
type wideHeader struct {
	ParentHash  gethcommon.Hash
	UncleHash   gethcommon.Hash
	Coinbase    gethcommon.Address
	Root        gethcommon.Hash
	TxHash      gethcommon.Hash
	ReceiptHash gethcommon.Hash
	Bloom       gethtypes.Bloom
	Difficulty  *uint256.Int
	Number      *uint256.Int
	GasLimit    *uint256.Int
	GasUsed     *uint256.Int
	Time        uint64
	Extra       []byte
	MixDigest   gethcommon.Hash
	Nonce       gethtypes.BlockNonce
	BaseFee     *uint256.Int
}

func toWide(h *types.Header) *wideHeader {
	return &wideHeader{
		ParentHash:  ToGethHash(h.ParentHash),
		UncleHash:   ToGethHash(h.OmmersHash),
		Coinbase:    ToGethAddress(h.Beneficiary),
		Root:        ToGethHash(h.StateRoot),
		TxHash:      ToGethHash(h.TransactionsRoot),
		ReceiptHash: ToGethHash(h.ReceiptsRoot),
		Bloom:       gethtypes.Bloom(h.LogsBloom),
		Difficulty:  new(uint256.Int).Set(&h.Difficulty),
		Number:      new(uint256.Int).Set(&h.Number),
		GasLimit:    new(uint256.Int).Set(&h.GasLimit),
		GasUsed:     new(uint256.Int).Set(&h.GasUsed),
		Time:        h.Timestamp,
		Extra:       h.ExtraData,
		MixDigest:   ToGethHash(h.MixHash),
		Nonce:       gethtypes.BlockNonce(h.Nonce),
		BaseFee:     new(uint256.Int).Set(&h.BaseFee),
	}
}

// EncodeHeader encodes h with go-ethereum's RLP encoder. For every header
// the result must equal h.EncodeRLP().
func EncodeHeader(h *types.Header) ([]byte, error) {
	return gethrlp.EncodeToBytes(toWide(h))
}

// Check is the outcome of cross-checking one header against go-ethereum.
type Check struct {
	Hash     types.Hash // digest from Header.Hash
	GethHash types.Hash // digest computed through go-ethereum

	// Converted reports whether the header fit gethtypes.Header, in which
	// case GethHash is gethtypes.Header.Hash. Otherwise it is the Keccak of
	// go-ethereum's encoding of the wide form.
	Converted bool

	// EncodingMatch reports whether go-ethereum produced the same bytes as
	// Header.EncodeRLP.
	EncodingMatch bool
}

// OK reports whether both implementations agree on bytes and identity.
func (c Check) OK() bool {
	return c.EncodingMatch && c.Hash == c.GethHash
}

// CheckHeader computes the identity of h both ways.
func CheckHeader(h *types.Header) (Check, error) {
	enc := h.EncodeRLP()
	res := Check{Hash: h.Hash()}

	gethEnc, err := EncodeHeader(h)
	if err != nil {
		return res, err
	}
	res.EncodingMatch = bytes.Equal(enc, gethEnc)

	if gh, err := ToGethHeader(h); err == nil {
		res.Converted = true
		res.GethHash = FromGethHash(gh.Hash())
	} else {
		res.GethHash = crypto.Keccak256Sum(gethEnc)
	}
	return res, nil
}
