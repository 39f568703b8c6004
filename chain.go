package lzss

import "math"

// HashChain is an implementation of the MatchFinder interface that uses
// hash chaining to find matches without trying every displacement.
//
// With SearchLen 0 it returns exactly what WindowSearch returns, so the
// compressed output is the same; it is only faster. A positive SearchLen
// stops the chain walk early, trading compression for speed.
//
// A HashChain indexes the input it is called with, so it is not safe for
// concurrent use. Positions should be queried in increasing order; going
// back, or passing a different input, rebuilds the index.
type HashChain struct {
	// SearchLen is how many entries to examine on the hash chain.
	// The default (0) examines all of them within the window.
	SearchLen int

	// MaxDistance is the maximum distance (in bytes) to look back for
	// a match. The default (and upper limit) is WindowSize.
	MaxDistance int

	src     []byte
	indexed int

	// Positions are stored plus one, so that 0 means "none".
	table    [maxTableSize]uint32
	chain    []uint32
	lastPair [1 << 16]uint32
	lastByte [256]uint32
}

const (
	maxTableSize = 1 << 16
	shift        = 32 - 16
	// tableMask is redundant, but helps the compiler eliminate bounds
	// checks.
	tableMask = maxTableSize - 1
)

const hashMul32 = 0x1e35a7bd

func hash3(b []byte) uint32 {
	u := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	return (u * hashMul32) >> shift
}

func pair(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

// Reset clears the index.
func (q *HashChain) Reset() {
	q.table = [maxTableSize]uint32{}
	q.lastPair = [1 << 16]uint32{}
	q.lastByte = [256]uint32{}
	q.chain = q.chain[:0]
	q.src = nil
	q.indexed = 0
}

// index adds the positions before pos to the tables.
func (q *HashChain) index(pos int) {
	src := q.src
	for p := q.indexed; p < pos; p++ {
		next := uint32(0)
		if p+2 < len(src) {
			h := hash3(src[p:]) & tableMask
			next = q.table[h]
			q.table[h] = uint32(p + 1)
		}
		q.chain = append(q.chain, next)
		if p+1 < len(src) {
			q.lastPair[pair(src[p:])] = uint32(p + 1)
		}
		q.lastByte[src[p]] = uint32(p + 1)
	}
	q.indexed = pos
}

func (q *HashChain) FindLongestMatch(src []byte, pos, windowLimit int) Match {
	if uint64(len(src)) >= math.MaxUint32 {
		return WindowSearch{MaxDistance: q.MaxDistance}.FindLongestMatch(src, pos, windowLimit)
	}

	limit := min(pos, windowLimit, WindowSize)
	if q.MaxDistance > 0 && q.MaxDistance < limit {
		limit = q.MaxDistance
	}
	end := min(len(src), pos+MaxMatch)
	longest := end - pos
	if limit <= 0 || longest <= 0 {
		return Match{}
	}

	if pos < q.indexed || len(src) != len(q.src) || &src[0] != &q.src[0] {
		q.Reset()
		q.src = src
	}
	q.index(pos)

	if longest >= MinMatch {
		var best Match
		n := 0
		for cand := q.table[hash3(src[pos:])&tableMask]; cand != 0; cand = q.chain[cand-1] {
			p := int(cand - 1)
			if pos-p > limit {
				break
			}
			if q.SearchLen > 0 && n == q.SearchLen {
				break
			}
			n++

			// Hash collisions come back shorter than MinMatch and are skipped.
			k := extendMatch(src[:end], p, pos) - pos
			if k >= MinMatch && k > int(best.Length) {
				best = Match{Displacement: uint16(pos - p), Length: uint8(k)}
				if k == longest {
					break
				}
			}
		}
		if best.Length > 0 {
			return best
		}
	}

	// Nothing of MinMatch or more. The nearest earlier occurrence of the
	// next two bytes, or the next byte, gives the same short match that a
	// full scan would.
	if longest >= 2 {
		if last := q.lastPair[pair(src[pos:])]; last != 0 && pos-int(last-1) <= limit {
			return Match{Displacement: uint16(pos - int(last-1)), Length: 2}
		}
	}
	if last := q.lastByte[src[pos]]; last != 0 && pos-int(last-1) <= limit {
		return Match{Displacement: uint16(pos - int(last-1)), Length: 1}
	}
	return Match{}
}
