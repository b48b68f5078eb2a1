package rlp

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/holiman/uint256"
)

func TestStreamBytes(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{"empty string", []byte{0x80}, []byte{}},
		{"dog", []byte{0x83, 0x64, 0x6f, 0x67}, []byte("dog")},
		{"single byte", []byte{0x61}, []byte("a")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream(tt.input)
			got, err := s.Bytes()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("got %x, want %x", got, tt.want)
			}
			if err := s.Done(); err != nil {
				t.Fatalf("Done: %v", err)
			}
		})
	}
}

func TestStreamUint64(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  uint64
	}{
		{"uint(0)", []byte{0x80}, 0},
		{"uint(1)", []byte{0x01}, 1},
		{"uint(127)", []byte{0x7f}, 127},
		{"uint(128)", []byte{0x81, 0x80}, 128},
		{"uint(1024)", []byte{0x82, 0x04, 0x00}, 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStream(tt.input).Uint64()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreamUint256RoundTrip(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	for _, v := range []*uint256.Int{uint256.NewInt(0), uint256.NewInt(200), max} {
		enc := AppendUint256(nil, v)
		var got uint256.Int
		if err := NewStream(enc).Uint256(&got); err != nil {
			t.Fatalf("Uint256(%x): %v", enc, err)
		}
		if !got.Eq(v) {
			t.Fatalf("got %s, want %s", got.Hex(), v.Hex())
		}
	}
}

func TestStreamIntegerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"leading zero", []byte{0x82, 0x00, 0x01}, ErrCanonInt},
		{"zero byte", []byte{0x00}, ErrCanonInt},
		{"uint64 overflow", append([]byte{0x89}, bytes.Repeat([]byte{0xff}, 9)...), ErrUint64Range},
		{"list", []byte{0xc0}, ErrExpectedString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStream(tt.input).Uint64()
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	var z uint256.Int
	over := append([]byte{0xa1}, bytes.Repeat([]byte{0xff}, 33)...)
	if err := NewStream(over).Uint256(&z); !errors.Is(err, ErrUint256Range) {
		t.Fatalf("33-byte integer: err = %v, want ErrUint256Range", err)
	}
}

func TestStreamCanonicalSize(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"single byte in short form", []byte{0x81, 0x05}, ErrCanonSize},
		{"long form for short string", []byte{0xb8, 0x03, 'd', 'o', 'g'}, ErrCanonSize},
		{"leading zero length", []byte{0xb9, 0x00, 0x38}, ErrCanonSize},
		{"truncated payload", []byte{0x83, 'd', 'o'}, ErrValueTooLarge},
		{"truncated length", []byte{0xb9, 0x01}, io.ErrUnexpectedEOF},
		{"empty input", nil, io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStream(tt.input).Bytes()
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStreamFixedBytes(t *testing.T) {
	var dst [4]byte
	if err := NewStream([]byte{0x84, 1, 2, 3, 4}).FixedBytes(dst[:]); err != nil {
		t.Fatal(err)
	}
	if dst != [4]byte{1, 2, 3, 4} {
		t.Fatalf("got %x", dst)
	}
	if err := NewStream([]byte{0x83, 1, 2, 3}).FixedBytes(dst[:]); !errors.Is(err, ErrWrongSize) {
		t.Fatalf("short value: err = %v, want ErrWrongSize", err)
	}
}

func TestStreamList(t *testing.T) {
	// ["cat", ["dog"], 5]
	input := []byte{0xca, 0x83, 'c', 'a', 't', 0xc4, 0x83, 'd', 'o', 'g', 0x05}
	s := NewStream(input)
	if _, err := s.List(); err != nil {
		t.Fatal(err)
	}
	if b, err := s.Bytes(); err != nil || string(b) != "cat" {
		t.Fatalf("first item: %q, %v", b, err)
	}
	kind, size, err := s.Kind()
	if err != nil || kind != List || size != 4 {
		t.Fatalf("Kind = %v, %d, %v; want List, 4", kind, size, err)
	}
	if _, err := s.List(); err != nil {
		t.Fatal(err)
	}
	if b, err := s.Bytes(); err != nil || string(b) != "dog" {
		t.Fatalf("nested item: %q, %v", b, err)
	}
	if !s.AtListEnd() {
		t.Fatal("expected end of nested list")
	}
	if err := s.ListEnd(); err != nil {
		t.Fatal(err)
	}
	if s.AtListEnd() {
		t.Fatal("outer list ended early")
	}
	if v, err := s.Uint64(); err != nil || v != 5 {
		t.Fatalf("last item: %d, %v", v, err)
	}
	if err := s.ListEnd(); err != nil {
		t.Fatal(err)
	}
	if err := s.Done(); err != nil {
		t.Fatal(err)
	}
}

func TestStreamListErrors(t *testing.T) {
	if _, err := NewStream([]byte{0x80}).List(); !errors.Is(err, ErrExpectedList) {
		t.Fatalf("string as list: err = %v", err)
	}

	s := NewStream([]byte{0xc2, 0x01, 0x02})
	s.List()
	s.Uint64()
	if err := s.ListEnd(); !errors.Is(err, ErrEOL) {
		t.Fatalf("unread item: err = %v, want ErrEOL", err)
	}

	// Items may not run past the end of their list.
	s = NewStream([]byte{0xc1, 0x82, 0x01, 0x02})
	s.List()
	if _, err := s.Bytes(); !errors.Is(err, ErrValueTooLarge) {
		t.Fatalf("item past list end: err = %v", err)
	}

	if err := NewStream([]byte{0xc0}).ListEnd(); !errors.Is(err, ErrExpectedList) {
		t.Fatalf("ListEnd outside list: err = %v", err)
	}
}

func TestStreamDoneTrailingData(t *testing.T) {
	s := NewStream([]byte{0x01, 0x02})
	if _, err := s.Uint64(); err != nil {
		t.Fatal(err)
	}
	if err := s.Done(); !errors.Is(err, ErrMoreThanOneValue) {
		t.Fatalf("err = %v, want ErrMoreThanOneValue", err)
	}
}
