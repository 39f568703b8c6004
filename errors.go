package lzss

import "errors"

var (
	// ErrAllocation is returned when a working or output buffer cannot be
	// allocated: its size does not fit in an int, or it is larger than the
	// Decoder allows.
	ErrAllocation = errors.New("lzss: buffer allocation failed")

	// ErrInvalidMatch is returned by Encoder.Encode when its MatchFinder
	// returns a match that points outside the window or past the input.
	ErrInvalidMatch = errors.New("lzss: match finder returned an invalid match")
)
