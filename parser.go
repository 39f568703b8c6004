package lzss

import "fmt"

// A GreedyParser implements the greedy matching strategy: It goes from the
// start of the input to the end, taking the longest match at each position.
//
// When the longest match is shorter than MinMatch, its length (at least 1)
// is taken as literals in one step. Those bytes would not start a useful
// match either, so they are not searched again one by one.
type GreedyParser struct {
	// MatchFinder is used to look for matches. If it is nil,
	// WindowSearch{} is used.
	MatchFinder MatchFinder
}

// Parse appends the Sequences covering all of src to dst and returns dst.
// A MatchFinder with a Reset method is reset first.
// It returns ErrInvalidMatch if the MatchFinder answers with a match that
// does not fit the window or the remaining input.
func (p GreedyParser) Parse(dst []Sequence, src []byte) ([]Sequence, error) {
	mf := p.MatchFinder
	if mf == nil {
		mf = WindowSearch{}
	}
	if r, ok := mf.(interface{ Reset() }); ok {
		r.Reset()
	}

	pos := 0
	literals := 0
	for pos < len(src) {
		window := min(pos, WindowSize)
		m := mf.FindLongestMatch(src, pos, window)

		if m.Length < MinMatch {
			run := max(1, int(m.Length))
			if run > len(src)-pos {
				return dst, fmt.Errorf("%w: length %d at position %d exceeds input", ErrInvalidMatch, m.Length, pos)
			}
			literals += run
			pos += run
			continue
		}

		if int(m.Displacement) < 1 || int(m.Displacement) > window || int(m.Length) > len(src)-pos {
			return dst, fmt.Errorf("%w: displacement %d length %d at position %d", ErrInvalidMatch, m.Displacement, m.Length, pos)
		}
		dst = append(dst, Sequence{Literals: literals, Match: m})
		literals = 0
		pos += int(m.Length)
	}

	if literals > 0 {
		dst = append(dst, Sequence{Literals: literals})
	}
	return dst, nil
}
