package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

var (
	// ErrMissingField is returned when a required JSON field is absent.
	ErrMissingField = errors.New("missing required header field")

	// ErrIntegerOverflow is returned when a JSON integer exceeds 256 bits.
	ErrIntegerOverflow = errors.New("header integer exceeds 256 bits")
)

type partialHeaderJSON struct {
	ParentHash   *Hash           `json:"parentHash"`
	Beneficiary  *Address        `json:"miner"`
	StateRoot    *Hash           `json:"stateRoot"`
	ReceiptsRoot *Hash           `json:"receiptsRoot"`
	LogsBloom    *Bloom          `json:"logsBloom"`
	Difficulty   *hexutil.Big    `json:"difficulty"`
	Number       *hexutil.Big    `json:"number"`
	GasLimit     *hexutil.Big    `json:"gasLimit"`
	GasUsed      *hexutil.Big    `json:"gasUsed"`
	Timestamp    *hexutil.Uint64 `json:"timestamp"`
	ExtraData    *hexutil.Bytes  `json:"extraData"`
	MixHash      *Hash           `json:"mixHash"`
	Nonce        *BlockNonce     `json:"nonce"`
	BaseFee      *hexutil.Big    `json:"baseFeePerGas"`
}

type headerJSON struct {
	partialHeaderJSON
	OmmersHash       *Hash `json:"sha3Uncles"`
	TransactionsRoot *Hash `json:"transactionsRoot"`
	Hash             *Hash `json:"hash,omitempty"`
}

// MarshalJSON encodes the header with hex quantities and includes its hash.
func (h *Header) MarshalJSON() ([]byte, error) {
	hash := h.Hash()
	enc := headerJSON{
		partialHeaderJSON: encodePartialJSON(PartialHeaderFromHeader(h)),
		OmmersHash:        &h.OmmersHash,
		TransactionsRoot:  &h.TransactionsRoot,
		Hash:              &hash,
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON decodes a header. Every field is required; a "hash" member
// is accepted and ignored.
func (h *Header) UnmarshalJSON(input []byte) error {
	var dec headerJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	var p PartialHeader
	if err := decodePartialJSON(&dec.partialHeaderJSON, &p); err != nil {
		return err
	}
	if dec.OmmersHash == nil {
		return fmt.Errorf("%w: sha3Uncles", ErrMissingField)
	}
	if dec.TransactionsRoot == nil {
		return fmt.Errorf("%w: transactionsRoot", ErrMissingField)
	}
	*h = *NewHeader(&p, *dec.OmmersHash, *dec.TransactionsRoot)
	return nil
}

// MarshalJSON encodes the partial header with hex quantities.
func (p *PartialHeader) MarshalJSON() ([]byte, error) {
	enc := encodePartialJSON(p)
	return json.Marshal(&enc)
}

// UnmarshalJSON decodes a partial header. Every field is required.
func (p *PartialHeader) UnmarshalJSON(input []byte) error {
	var dec partialHeaderJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	return decodePartialJSON(&dec, p)
}

func encodePartialJSON(p *PartialHeader) partialHeaderJSON {
	extra := hexutil.Bytes(p.ExtraData)
	if extra == nil {
		extra = hexutil.Bytes{}
	}
	ts := hexutil.Uint64(p.Timestamp)
	return partialHeaderJSON{
		ParentHash:   &p.ParentHash,
		Beneficiary:  &p.Beneficiary,
		StateRoot:    &p.StateRoot,
		ReceiptsRoot: &p.ReceiptsRoot,
		LogsBloom:    &p.LogsBloom,
		Difficulty:   (*hexutil.Big)(p.Difficulty.ToBig()),
		Number:       (*hexutil.Big)(p.Number.ToBig()),
		GasLimit:     (*hexutil.Big)(p.GasLimit.ToBig()),
		GasUsed:      (*hexutil.Big)(p.GasUsed.ToBig()),
		Timestamp:    &ts,
		ExtraData:    &extra,
		MixHash:      &p.MixHash,
		Nonce:        &p.Nonce,
		BaseFee:      (*hexutil.Big)(p.BaseFee.ToBig()),
	}
}

func decodePartialJSON(dec *partialHeaderJSON, p *PartialHeader) error {
	var out PartialHeader
	required := []struct {
		name    string
		present bool
	}{
		{"parentHash", dec.ParentHash != nil},
		{"miner", dec.Beneficiary != nil},
		{"stateRoot", dec.StateRoot != nil},
		{"receiptsRoot", dec.ReceiptsRoot != nil},
		{"logsBloom", dec.LogsBloom != nil},
		{"difficulty", dec.Difficulty != nil},
		{"number", dec.Number != nil},
		{"gasLimit", dec.GasLimit != nil},
		{"gasUsed", dec.GasUsed != nil},
		{"timestamp", dec.Timestamp != nil},
		{"extraData", dec.ExtraData != nil},
		{"mixHash", dec.MixHash != nil},
		{"nonce", dec.Nonce != nil},
		{"baseFeePerGas", dec.BaseFee != nil},
	}
	for _, r := range required {
		if !r.present {
			return fmt.Errorf("%w: %s", ErrMissingField, r.name)
		}
	}

	out.ParentHash = *dec.ParentHash
	out.Beneficiary = *dec.Beneficiary
	out.StateRoot = *dec.StateRoot
	out.ReceiptsRoot = *dec.ReceiptsRoot
	out.LogsBloom = *dec.LogsBloom
	out.Timestamp = uint64(*dec.Timestamp)
	if len(*dec.ExtraData) > 0 {
		out.ExtraData = []byte(*dec.ExtraData)
	}
	out.MixHash = *dec.MixHash
	out.Nonce = *dec.Nonce

	ints := []struct {
		name string
		src  *hexutil.Big
		dst  *uint256.Int
	}{
		{"difficulty", dec.Difficulty, &out.Difficulty},
		{"number", dec.Number, &out.Number},
		{"gasLimit", dec.GasLimit, &out.GasLimit},
		{"gasUsed", dec.GasUsed, &out.GasUsed},
		{"baseFeePerGas", dec.BaseFee, &out.BaseFee},
	}
	for _, f := range ints {
		if err := setUint256(f.dst, (*big.Int)(f.src)); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	*p = out
	return nil
}

func setUint256(dst *uint256.Int, v *big.Int) error {
	if v.Sign() < 0 {
		return ErrIntegerOverflow
	}
	if dst.SetFromBig(v) {
		return ErrIntegerOverflow
	}
	return nil
}
