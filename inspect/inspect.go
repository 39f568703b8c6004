// Package inspect looks inside lzss blobs without trusting them.
//
// Unlike lzss.Decompress, everything here checks the blob's lengths and
// match records and reports problems as errors. None of it is used on the
// compression or decompression path.
package inspect

import (
	"errors"
	"fmt"

	"github.com/packlab/lzss"
)

// Errors reported for malformed blobs.
var (
	ErrShortHeader     = errors.New("inspect: blob shorter than header")
	ErrTruncated       = errors.New("inspect: blob shorter than its header says")
	ErrTrailingData    = errors.New("inspect: trailing bytes after blob")
	ErrBadDisplacement = errors.New("inspect: match displacement outside output")
	ErrLengthMismatch  = errors.New("inspect: decoded length differs from header")
)

// A Token is one decision of a blob.
type Token struct {
	Index   int  // decision number
	Pos     int  // output position the token starts at
	Literal bool // a literal byte, otherwise a match
	Byte    byte // the literal byte
	Match   lzss.Match
}

// Len returns the number of output bytes the token produces.
func (t Token) Len() int {
	if t.Literal {
		return 1
	}
	return int(t.Match.Length)
}

// Split checks the header and sizes of blob and returns its Stream.
func Split(blob []byte) (lzss.Stream, error) {
	if len(blob) < lzss.HeaderSize {
		return lzss.Stream{}, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(blob))
	}
	h := lzss.ParseHeader(blob)
	body := uint64(len(blob) - lzss.HeaderSize)
	if h.FlagBytes() > body || h.ContentLength > body-h.FlagBytes() {
		return lzss.Stream{}, fmt.Errorf("%w: need %d flag and %d content bytes, have %d",
			ErrTruncated, h.FlagBytes(), h.ContentLength, body)
	}
	if extra := body - h.FlagBytes() - h.ContentLength; extra > 0 {
		return lzss.Stream{}, fmt.Errorf("%w: %d bytes", ErrTrailingData, extra)
	}
	return lzss.Unpack(blob), nil
}

// Walk calls fn for each token in blob, in order. It stops at the first
// error, from fn or from a malformed blob.
func Walk(blob []byte, fn func(Token) error) error {
	s, err := Split(blob)
	if err != nil {
		return err
	}
	return WalkStream(s, fn)
}

// WalkStream is like Walk, for a Stream that is already split.
func WalkStream(s lzss.Stream, fn func(Token) error) error {
	if uint64(len(s.Flags)) < (s.FlagCount+7)/8 {
		return fmt.Errorf("%w: %d decisions in %d flag bytes", ErrTruncated, s.FlagCount, len(s.Flags))
	}

	r := lzss.NewDecisionReader(s.Flags, s.FlagCount)
	c := 0
	var pos uint64
	for i := 0; r.Remaining() > 0; i++ {
		match, err := r.ReadBit()
		if err != nil {
			return err
		}

		t := Token{Index: i, Pos: int(pos)}
		if match {
			if len(s.Content)-c < lzss.MatchWidth {
				return fmt.Errorf("%w: match record %d at content offset %d", ErrTruncated, i, c)
			}
			t.Match = lzss.ReadMatch(s.Content[c:])
			c += lzss.MatchWidth
			if t.Match.Displacement == 0 || uint64(t.Match.Displacement) > pos {
				return fmt.Errorf("%w: displacement %d at output position %d", ErrBadDisplacement, t.Match.Displacement, pos)
			}
		} else {
			if c >= len(s.Content) {
				return fmt.Errorf("%w: literal %d at content offset %d", ErrTruncated, i, c)
			}
			t.Literal = true
			t.Byte = s.Content[c]
			c++
		}

		pos += uint64(t.Len())
		if pos > s.OriginalLength {
			return fmt.Errorf("%w: token %d ends at %d, original length %d", ErrLengthMismatch, i, pos, s.OriginalLength)
		}
		if err := fn(t); err != nil {
			return err
		}
	}

	if pos != s.OriginalLength {
		return fmt.Errorf("%w: decoded %d bytes, original length %d", ErrLengthMismatch, pos, s.OriginalLength)
	}
	if c != len(s.Content) {
		return fmt.Errorf("%w: %d content bytes unused", ErrTrailingData, len(s.Content)-c)
	}
	return nil
}

// Validate reports whether blob can be passed to lzss.Decompress safely.
func Validate(blob []byte) error {
	return Walk(blob, func(Token) error { return nil })
}
