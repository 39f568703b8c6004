package lzss

import (
	"encoding/binary"
	"math/bits"
	"runtime"
)

// WindowSearch is the reference implementation of the MatchFinder interface.
// It tries every displacement in the window, nearest first, so it always
// finds the longest match, and of equally long matches the closest one.
// It keeps no index, so each call costs O(window * match length).
type WindowSearch struct {
	// MaxDistance is the maximum distance (in bytes) to look back for
	// a match. The default (and upper limit) is WindowSize.
	MaxDistance int
}

// FindLongestMatch calls WindowSearch{}.FindLongestMatch.
func FindLongestMatch(src []byte, pos, windowLimit int) Match {
	return WindowSearch{}.FindLongestMatch(src, pos, windowLimit)
}

func (w WindowSearch) FindLongestMatch(src []byte, pos, windowLimit int) Match {
	limit := min(pos, windowLimit, WindowSize)
	if w.MaxDistance > 0 && w.MaxDistance < limit {
		limit = w.MaxDistance
	}
	end := min(len(src), pos+MaxMatch)
	longest := end - pos

	var best Match
	for d := 1; d <= limit; d++ {
		// The comparison may read into src[pos:] itself; that is what
		// lets a short displacement describe a long run.
		n := extendMatch(src[:end], pos-d, pos) - pos
		if n > int(best.Length) {
			best = Match{Displacement: uint16(d), Length: uint8(n)}
			if n == longest {
				break
			}
		}
	}
	return best
}

// extendMatch returns the largest k such that k <= len(src) and that
// src[i:i+k-j] and src[j:k] have the same contents.
//
// It assumes that:
//
//	0 <= i && i < j && j <= len(src)
func extendMatch(src []byte, i, j int) int {
	switch runtime.GOARCH {
	case "amd64":
		// As long as we are 8 or more bytes before the end of src, we can load and
		// compare 8 bytes at a time. If those 8 bytes are equal, repeat.
		for j+8 < len(src) {
			iBytes := binary.LittleEndian.Uint64(src[i:])
			jBytes := binary.LittleEndian.Uint64(src[j:])
			if iBytes != jBytes {
				// The first differing byte is the lowest set byte of the XOR,
				// since the load is little-endian.
				return j + bits.TrailingZeros64(iBytes^jBytes)>>3
			}
			i, j = i+8, j+8
		}
	case "386":
		// On a 32-bit CPU, we do it 4 bytes at a time.
		for j+4 < len(src) {
			iBytes := binary.LittleEndian.Uint32(src[i:])
			jBytes := binary.LittleEndian.Uint32(src[j:])
			if iBytes != jBytes {
				return j + bits.TrailingZeros32(iBytes^jBytes)>>3
			}
			i, j = i+4, j+4
		}
	}
	for ; j < len(src) && src[i] == src[j]; i, j = i+1, j+1 {
	}
	return j
}
