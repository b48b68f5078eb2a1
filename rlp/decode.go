package rlp

import (
	"io"

	"github.com/holiman/uint256"
)

// Kind represents the type of an RLP value.
type Kind int

const (
	Byte   Kind = iota // Single byte in [0x00, 0x7f].
	String             // RLP string (including empty string).
	List               // RLP list.
)

// Stream is a strict RLP decoder over an in-memory input. It rejects every
// non-canonical form, so a value that decodes without error re-encodes to
// exactly the consumed bytes.
type Stream struct {
	data  []byte
	pos   int
	stack []int // exclusive end positions of the enclosing lists
}

// NewStream creates a stream reading from data. The stream does not copy
// data; slices returned by Bytes alias it.
func NewStream(data []byte) *Stream {
	return &Stream{data: data}
}

// limit returns the current read boundary.
func (s *Stream) limit() int {
	if len(s.stack) > 0 {
		return s.stack[len(s.stack)-1]
	}
	return len(s.data)
}

// readHead parses the prefix at the current position and returns the kind,
// the payload bounds and any framing error. It does not advance the stream.
func (s *Stream) readHead() (kind Kind, start, end int, err error) {
	lim := s.limit()
	if s.pos >= lim {
		return 0, 0, 0, io.EOF
	}
	prefix := s.data[s.pos]

	var (
		size     uint64
		headLen  int
		longForm bool
	)
	switch {
	case prefix < offsetShortString:
		return Byte, s.pos, s.pos + 1, nil
	case prefix <= offsetLongString:
		kind, size, headLen = String, uint64(prefix-offsetShortString), 1
	case prefix < offsetShortList:
		kind, longForm = String, true
		headLen = 1 + int(prefix-offsetLongString)
	case prefix <= offsetLongList:
		kind, size, headLen = List, uint64(prefix-offsetShortList), 1
	default:
		kind, longForm = List, true
		headLen = 1 + int(prefix-offsetLongList)
	}

	if longForm {
		if s.pos+headLen > lim {
			return 0, 0, 0, io.ErrUnexpectedEOF
		}
		sizeBytes := s.data[s.pos+1 : s.pos+headLen]
		if sizeBytes[0] == 0 {
			return 0, 0, 0, ErrCanonSize
		}
		size = readBigEndian(sizeBytes)
		if size <= maxShortPayload {
			return 0, 0, 0, ErrCanonSize
		}
	}

	start = s.pos + headLen
	if size > uint64(lim-start) {
		return 0, 0, 0, ErrValueTooLarge
	}
	end = start + int(size)

	if kind == String && size == 1 && s.data[start] < offsetShortString {
		return 0, 0, 0, ErrCanonSize
	}
	return kind, start, end, nil
}

// Kind reports the type and payload size of the next value without
// consuming it.
func (s *Stream) Kind() (Kind, uint64, error) {
	kind, start, end, err := s.readHead()
	if err != nil {
		return 0, 0, err
	}
	return kind, uint64(end - start), nil
}

// Bytes reads an RLP string value. The returned slice aliases the input.
func (s *Stream) Bytes() ([]byte, error) {
	kind, start, end, err := s.readHead()
	if err != nil {
		return nil, err
	}
	if kind == List {
		return nil, ErrExpectedString
	}
	s.pos = end
	return s.data[start:end], nil
}

// FixedBytes reads an RLP string that must be exactly len(dst) bytes long
// and copies it into dst.
func (s *Stream) FixedBytes(dst []byte) error {
	b, err := s.Bytes()
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return ErrWrongSize
	}
	copy(dst, b)
	return nil
}

// Uint64 reads an RLP-encoded unsigned integer of at most 64 bits.
func (s *Stream) Uint64() (uint64, error) {
	b, err := s.intBytes()
	if err != nil {
		return 0, err
	}
	if len(b) > 8 {
		return 0, ErrUint64Range
	}
	return readBigEndian(b), nil
}

// Uint256 reads an RLP-encoded unsigned integer of at most 256 bits into z.
func (s *Stream) Uint256(z *uint256.Int) error {
	b, err := s.intBytes()
	if err != nil {
		return err
	}
	if len(b) > 32 {
		return ErrUint256Range
	}
	z.SetBytes(b)
	return nil
}

// intBytes reads a string and checks it is a canonical integer payload.
func (s *Stream) intBytes() ([]byte, error) {
	b, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	if len(b) > 0 && b[0] == 0 {
		return nil, ErrCanonInt
	}
	return b, nil
}

// List enters the next value, which must be a list, and returns its payload
// size. Subsequent reads are confined to the list until ListEnd.
func (s *Stream) List() (uint64, error) {
	kind, start, end, err := s.readHead()
	if err != nil {
		return 0, err
	}
	if kind != List {
		return 0, ErrExpectedList
	}
	s.stack = append(s.stack, end)
	s.pos = start
	return uint64(end - start), nil
}

// AtListEnd reports whether every item of the current list has been read.
func (s *Stream) AtListEnd() bool {
	return s.pos >= s.limit()
}

// ListEnd leaves the current list. It fails with ErrEOL if items remain.
func (s *Stream) ListEnd() error {
	if len(s.stack) == 0 {
		return ErrExpectedList
	}
	if s.pos != s.stack[len(s.stack)-1] {
		return ErrEOL
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// Done checks that the whole input has been consumed at the top level.
func (s *Stream) Done() error {
	if len(s.stack) != 0 {
		return ErrEOL
	}
	if s.pos != len(s.data) {
		return ErrMoreThanOneValue
	}
	return nil
}

func readBigEndian(b []byte) uint64 {
	var val uint64
	for _, x := range b {
		val = (val << 8) | uint64(x)
	}
	return val
}
