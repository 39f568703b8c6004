package lzss

import (
	"fmt"
	"math"
)

// A Decoder rebuilds the original data from a Stream.
type Decoder struct {
	// MaxSize is the largest output the Decoder will allocate.
	// Zero means no limit.
	MaxSize int
}

// Decode replays the decisions in s against its content.
//
// PRECONDITION: s must come from Encode (or Unpack of a blob from Pack).
// The content length, match displacements and match lengths are trusted;
// a Stream that breaks this contract may cause an index-out-of-range
// panic. The only errors for a well-formed Stream are ErrAllocation and,
// if the flags are short, io.ErrUnexpectedEOF.
func (d Decoder) Decode(s Stream) ([]byte, error) {
	if s.OriginalLength > math.MaxInt || (d.MaxSize > 0 && s.OriginalLength > uint64(d.MaxSize)) {
		return nil, fmt.Errorf("%w: output of %d bytes", ErrAllocation, s.OriginalLength)
	}
	out := make([]byte, s.OriginalLength)

	decisions := NewDecisionReader(s.Flags, s.FlagCount)
	content := s.Content
	r, w := 0, 0
	for decisions.Remaining() > 0 {
		match, err := decisions.ReadBit()
		if err != nil {
			return nil, err
		}
		if !match {
			out[w] = content[r]
			r++
			w++
			continue
		}

		m := ReadMatch(content[r:])
		r += MatchWidth
		copyMatch(out, w, int(m.Displacement), int(m.Length))
		w += int(m.Length)
	}
	return out[:w], nil
}

// copyMatch copies length bytes from out[pos-dist:] to out[pos:].
//
// This MUST stay a byte-at-a-time loop in increasing order. When dist <
// length the source overlaps the destination, and each byte written has
// to be visible to the reads after it: that is how a match with
// displacement 1 expands into a run. The built-in copy (memmove semantics)
// would read the old bytes instead.
func copyMatch(out []byte, pos, dist, length int) {
	src := pos - dist
	for j := 0; j < length; j++ {
		out[pos+j] = out[src+j]
	}
}

// Decode decodes s with the default Decoder.
func Decode(s Stream) ([]byte, error) {
	return Decoder{}.Decode(s)
}
