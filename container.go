package lzss

import "encoding/binary"

// HeaderSize is the size of the blob header: three little-endian uint64s.
const HeaderSize = 24

// A Stream holds the logical parts of a compressed blob.
type Stream struct {
	// OriginalLength is the length of the uncompressed data.
	OriginalLength uint64

	// FlagCount is the number of decisions packed in Flags.
	FlagCount uint64

	// Flags holds the decisions, MSB first, ceil(FlagCount/8) bytes.
	Flags []byte

	// Content holds the literal bytes and match records in decision order.
	Content []byte
}

// A Header is the fixed-size start of a blob.
type Header struct {
	OriginalLength uint64
	ContentLength  uint64
	FlagCount      uint64
}

// FlagBytes returns the number of bytes holding the decisions.
func (h Header) FlagBytes() uint64 {
	return (h.FlagCount + 7) / 8
}

// Size returns the total blob size the header describes.
func (h Header) Size() uint64 {
	return HeaderSize + h.FlagBytes() + h.ContentLength
}

// ParseHeader reads a Header from the start of b, which must be at least
// HeaderSize bytes long.
func ParseHeader(b []byte) Header {
	return Header{
		OriginalLength: binary.LittleEndian.Uint64(b[0:]),
		ContentLength:  binary.LittleEndian.Uint64(b[8:]),
		FlagCount:      binary.LittleEndian.Uint64(b[16:]),
	}
}

// Pack returns s as a single blob: header, flag bytes, content bytes.
func Pack(s Stream) []byte {
	dst := make([]byte, 0, HeaderSize+len(s.Flags)+len(s.Content))
	return AppendPack(dst, s)
}

// AppendPack appends the blob for s to dst and returns dst.
func AppendPack(dst []byte, s Stream) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, s.OriginalLength)
	dst = binary.LittleEndian.AppendUint64(dst, uint64(len(s.Content)))
	dst = binary.LittleEndian.AppendUint64(dst, s.FlagCount)
	dst = append(dst, s.Flags...)
	return append(dst, s.Content...)
}

// Unpack splits a blob into its Stream. The returned slices alias blob.
//
// PRECONDITION: blob must come from Pack. Unpack does no structural
// validation; if the lengths in the header exceed the data present, it
// panics with an index out of range. Use inspect.Validate for blobs of
// unknown origin.
func Unpack(blob []byte) Stream {
	h := ParseHeader(blob)
	flagEnd := HeaderSize + h.FlagBytes()
	return Stream{
		OriginalLength: h.OriginalLength,
		FlagCount:      h.FlagCount,
		Flags:          blob[HeaderSize:flagEnd],
		Content:        blob[flagEnd : flagEnd+h.ContentLength],
	}
}

// AppendMatch appends the 3-byte record for m to dst: displacement as a
// little-endian uint16, then length.
func AppendMatch(dst []byte, m Match) []byte {
	dst = binary.LittleEndian.AppendUint16(dst, m.Displacement)
	return append(dst, m.Length)
}

// ReadMatch decodes the match record at the start of b.
func ReadMatch(b []byte) Match {
	_ = b[MatchWidth-1]
	return Match{
		Displacement: binary.LittleEndian.Uint16(b),
		Length:       b[2],
	}
}
