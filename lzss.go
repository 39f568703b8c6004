// Package lzss is an LZSS compressor for in-memory buffers.
//
// Compression happens in three stages, each of which can be used on its own:
//   - A MatchFinder looks backward from a position for the longest repeat.
//   - A GreedyParser turns its answers into Sequences (literal runs and
//     matches), the intermediate representation between the stages.
//   - An Encoder writes the Sequences as a decision stream (one bit per
//     token, literal or match) and a content stream (literal bytes and
//     3-byte match records), which Pack joins into one blob.
//
// Decompress reverses the process. It trusts its input: a blob that was
// not produced by Compress may make it panic. Use the inspect package to
// check blobs from untrusted sources first.
package lzss

const (
	// WindowSize is the largest displacement a match may have.
	WindowSize = 65535

	// MaxMatch is the longest match that fits in a match record.
	MaxMatch = 255

	// MinMatch is the shortest match the Encoder emits. Shorter repeats are
	// written as literals.
	MinMatch = 3

	// MatchWidth is the size of a serialized match record.
	MatchWidth = 3
)

// A Match is a back-reference: copy Length bytes starting Displacement bytes
// before the current output position.
type Match struct {
	Displacement uint16
	Length       uint8
}

// A Sequence is the basic unit of the intermediate representation: a run of
// literal bytes, followed by a match. The match may be empty (Length 0) at
// the end of the input.
type Sequence struct {
	Literals int // number of literal bytes before the match
	Match    Match
}

// A MatchFinder looks for the longest match at one position.
type MatchFinder interface {
	// FindLongestMatch returns the longest match for src[pos:], looking no
	// more than windowLimit bytes back. The match must not extend past the
	// end of src or beyond MaxMatch bytes. It returns the zero Match if
	// there is nothing to reference.
	FindLongestMatch(src []byte, pos, windowLimit int) Match
}

// Compress compresses src with the default Encoder and returns the packed
// blob.
func Compress(src []byte) ([]byte, error) {
	var e Encoder
	s, err := e.Encode(src)
	if err != nil {
		return nil, err
	}
	return Pack(s), nil
}

// Decompress unpacks and decodes a blob produced by Compress.
//
// PRECONDITION: blob must have been produced by Compress (or Pack of a
// Stream from Encode). Lengths stored in the header and match records are
// not checked against the data actually present; a blob that breaks this
// contract may cause an index-out-of-range panic. Run inspect.Validate on
// untrusted input first.
func Decompress(blob []byte) ([]byte, error) {
	var d Decoder
	return d.Decode(Unpack(blob))
}
