package rlp

import "errors"

var (
	// ErrExpectedString is returned when a list is encountered where a string was expected.
	ErrExpectedString = errors.New("rlp: expected string")

	// ErrExpectedList is returned when a string is encountered where a list was expected.
	ErrExpectedList = errors.New("rlp: expected list")

	// ErrCanonSize is returned when a string or list uses a non-canonical size encoding.
	ErrCanonSize = errors.New("rlp: non-canonical size information")

	// ErrEOL is returned when a list still holds unread items at ListEnd.
	ErrEOL = errors.New("rlp: end of list")

	// ErrCanonInt is returned when an integer uses non-canonical encoding (leading zeros).
	ErrCanonInt = errors.New("rlp: non-canonical integer encoding")

	// ErrUint64Range is returned when a decoded integer exceeds uint64 range.
	ErrUint64Range = errors.New("rlp: uint64 overflow")

	// ErrUint256Range is returned when a decoded integer exceeds 256 bits.
	ErrUint256Range = errors.New("rlp: uint256 overflow")

	// ErrWrongSize is returned when a fixed-width value has the wrong length.
	ErrWrongSize = errors.New("rlp: wrong size for fixed-width value")

	// ErrMoreThanOneValue is returned when input holds data past the first value.
	ErrMoreThanOneValue = errors.New("rlp: input contains more than one value")

	// ErrValueTooLarge is returned when a size prefix does not fit the input.
	ErrValueTooLarge = errors.New("rlp: value size exceeds available input")
)
