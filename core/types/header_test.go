package types

import (
	"testing"

	"github.com/holiman/uint256"
)

// sampleHeader returns a populated header whose encoding and hash are
// pinned in header_rlp_test.go.
func sampleHeader() *Header {
	return &Header{
		ParentHash:       BytesToHash(repeatByte(0x11, HashLength)),
		OmmersHash:       EmptyOmmersHash,
		Beneficiary:      BytesToAddress(repeatByte(0xaa, AddressLength)),
		StateRoot:        EmptyRootHash,
		TransactionsRoot: EmptyRootHash,
		ReceiptsRoot:     EmptyRootHash,
		Difficulty:       *uint256.NewInt(131072),
		Number:           *uint256.NewInt(1),
		GasLimit:         *uint256.NewInt(30_000_000),
		GasUsed:          *uint256.NewInt(21_000),
		Timestamp:        1700000000,
		ExtraData:        []byte("headerid"),
		Nonce:            EncodeNonce(0x42),
		BaseFee:          *uint256.NewInt(1_000_000_000),
	}
}

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func TestNewHeaderCombinesPartial(t *testing.T) {
	h := sampleHeader()
	p := PartialHeaderFromHeader(h)
	ommers := HexToHash("0x0101")
	txRoot := HexToHash("0x0202")

	got := NewHeader(p, ommers, txRoot)
	if got.OmmersHash != ommers {
		t.Fatalf("OmmersHash = %s, want %s", got.OmmersHash, ommers)
	}
	if got.TransactionsRoot != txRoot {
		t.Fatalf("TransactionsRoot = %s, want %s", got.TransactionsRoot, txRoot)
	}
	if got.ParentHash != h.ParentHash {
		t.Fatal("ParentHash mismatch")
	}
	if got.Beneficiary != h.Beneficiary {
		t.Fatal("Beneficiary mismatch")
	}
	if got.StateRoot != h.StateRoot || got.ReceiptsRoot != h.ReceiptsRoot {
		t.Fatal("root mismatch")
	}
	if got.Difficulty != h.Difficulty || got.Number != h.Number {
		t.Fatal("Difficulty/Number mismatch")
	}
	if got.GasLimit != h.GasLimit || got.GasUsed != h.GasUsed {
		t.Fatal("gas mismatch")
	}
	if got.Timestamp != h.Timestamp {
		t.Fatalf("Timestamp = %d, want %d", got.Timestamp, h.Timestamp)
	}
	if string(got.ExtraData) != "headerid" {
		t.Fatalf("ExtraData = %q", got.ExtraData)
	}
	if got.Nonce != h.Nonce || got.MixHash != h.MixHash {
		t.Fatal("Nonce/MixHash mismatch")
	}
	if got.BaseFee != h.BaseFee {
		t.Fatal("BaseFee mismatch")
	}
}

func TestPartialHeaderFromHeaderDropsBodyRoots(t *testing.T) {
	h := sampleHeader()
	p := PartialHeaderFromHeader(h)

	// Rebuilding with different roots yields a different header: the
	// partial value alone does not determine them.
	other := NewHeader(p, Hash{}, Hash{})
	if other.Equal(h) {
		t.Fatal("header rebuilt with zero roots should differ")
	}
	if !PartialHeaderFromHeader(other).Equal(p) {
		t.Fatal("projection of rebuilt header should equal the original partial")
	}
}

func TestHeaderDecompositionRoundTrip(t *testing.T) {
	headers := []*Header{sampleHeader(), {}, maxHeader()}
	for i, h := range headers {
		rebuilt := NewHeader(PartialHeaderFromHeader(h.Copy()), h.OmmersHash, h.TransactionsRoot)
		if !rebuilt.Equal(h) {
			t.Fatalf("header %d: round trip through PartialHeader changed the value", i)
		}
		if rebuilt.Hash() != h.Hash() {
			t.Fatalf("header %d: round trip changed the hash", i)
		}
	}
}

func TestNewHeaderOwnsExtraData(t *testing.T) {
	p := PartialHeaderFromHeader(sampleHeader())
	h := NewHeader(p, Hash{}, Hash{})
	p.ExtraData[0] = 'X'
	if string(h.ExtraData) != "headerid" {
		t.Fatalf("header shares ExtraData with its partial: %q", h.ExtraData)
	}
}

func TestPartialHeaderFromHeaderOwnsExtraData(t *testing.T) {
	h := sampleHeader()
	p := PartialHeaderFromHeader(h)
	h.ExtraData[0] = 'X'
	if string(p.ExtraData) != "headerid" {
		t.Fatalf("partial shares ExtraData with its header: %q", p.ExtraData)
	}
}

func TestHeaderCopy(t *testing.T) {
	h := sampleHeader()
	cpy := h.Copy()
	if !cpy.Equal(h) {
		t.Fatal("copy differs from original")
	}
	cpy.ExtraData[0] = 'X'
	if h.ExtraData[0] != 'h' {
		t.Fatal("Copy did not deep-copy ExtraData")
	}
	pc := PartialHeaderFromHeader(h).Copy()
	if !pc.Equal(PartialHeaderFromHeader(h)) {
		t.Fatal("partial copy differs from original")
	}
}

func TestHeaderEqual(t *testing.T) {
	a := sampleHeader()
	b := sampleHeader()
	if !a.Equal(b) {
		t.Fatal("identical headers should be equal")
	}
	b.GasUsed = *uint256.NewInt(21_001)
	if a.Equal(b) {
		t.Fatal("headers with different GasUsed should differ")
	}

	var nilHeader *Header
	if !nilHeader.Equal(nil) {
		t.Fatal("nil should equal nil")
	}
	if a.Equal(nil) {
		t.Fatal("header should not equal nil")
	}

	// nil and empty ExtraData encode identically.
	x := &Header{ExtraData: nil}
	y := &Header{ExtraData: []byte{}}
	if !x.Equal(y) {
		t.Fatal("nil and empty ExtraData should be equal")
	}
	if x.Hash() != y.Hash() {
		t.Fatal("nil and empty ExtraData should hash identically")
	}
}

func TestPartialHeaderEqual(t *testing.T) {
	a := PartialHeaderFromHeader(sampleHeader())
	b := PartialHeaderFromHeader(sampleHeader())
	if !a.Equal(b) {
		t.Fatal("identical partial headers should be equal")
	}
	b.Timestamp++
	if a.Equal(b) {
		t.Fatal("partial headers with different Timestamp should differ")
	}
	var nilPartial *PartialHeader
	if a.Equal(nilPartial) {
		t.Fatal("partial header should not equal nil")
	}
}
