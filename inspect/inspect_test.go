package inspect

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/packlab/lzss"
	"github.com/stretchr/testify/require"
)

func compress(t *testing.T, src []byte) []byte {
	t.Helper()
	blob, err := lzss.Compress(src)
	require.NoError(t, err)
	return blob
}

func TestValidateGoodBlobs(t *testing.T) {
	for _, src := range [][]byte{
		nil,
		[]byte("x"),
		[]byte("AAAAAAAAAA"),
		bytes.Repeat([]byte("the quick brown fox "), 50),
	} {
		require.NoError(t, Validate(compress(t, src)))
	}
}

func TestWalkTokens(t *testing.T) {
	var got []Token
	err := Walk(compress(t, []byte("AAAAAAAAAA")), func(tok Token) error {
		got = append(got, tok)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []Token{
		{Index: 0, Pos: 0, Literal: true, Byte: 'A'},
		{Index: 1, Pos: 1, Match: lzss.Match{Displacement: 1, Length: 9}},
	}, got)
}

func TestWalkStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	err := Walk(compress(t, []byte("abcdef")), func(Token) error {
		n++
		if n == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 2, n)
}

func TestValidateShortHeader(t *testing.T) {
	require.ErrorIs(t, Validate(nil), ErrShortHeader)
	require.ErrorIs(t, Validate(make([]byte, lzss.HeaderSize-1)), ErrShortHeader)
}

func TestValidateTruncated(t *testing.T) {
	blob := compress(t, []byte("hello hello hello"))
	require.ErrorIs(t, Validate(blob[:len(blob)-1]), ErrTruncated)
}

func TestValidateTrailingData(t *testing.T) {
	blob := compress(t, []byte("hello"))
	require.ErrorIs(t, Validate(append(blob, 0)), ErrTrailingData)
}

func TestValidateBadDisplacement(t *testing.T) {
	blob := compress(t, []byte("AAAAAAAAAA"))
	// Content is 'A' then the record for {1, 9}; point it 2 bytes back.
	blob[lzss.HeaderSize+1+1] = 2
	require.ErrorIs(t, Validate(blob), ErrBadDisplacement)
}

func TestValidateLengthMismatch(t *testing.T) {
	blob := compress(t, []byte("AAAAAAAAAA"))
	binary.LittleEndian.PutUint64(blob, 11)
	require.ErrorIs(t, Validate(blob), ErrLengthMismatch)

	binary.LittleEndian.PutUint64(blob, 5)
	require.ErrorIs(t, Validate(blob), ErrLengthMismatch)
}

func TestValidateUnusedContent(t *testing.T) {
	s, err := lzss.Encode([]byte("abc"))
	require.NoError(t, err)
	s.Content = append(s.Content, 'z')
	require.ErrorIs(t, Validate(lzss.Pack(s)), ErrTrailingData)
}

func TestValidateFlagCountTooLarge(t *testing.T) {
	blob := compress(t, []byte("abc"))
	binary.LittleEndian.PutUint64(blob[16:], 1<<40)
	require.ErrorIs(t, Validate(blob), ErrTruncated)
}

func TestSummarize(t *testing.T) {
	src := bytes.Repeat([]byte("z"), 1+2*lzss.MaxMatch)
	sum, err := Summarize(compress(t, src))
	require.NoError(t, err)
	require.Equal(t, len(src), sum.OriginalSize)
	require.Equal(t, 1, sum.Literals)
	require.Equal(t, 2, sum.Matches)
	require.Equal(t, 2*lzss.MaxMatch, sum.MatchedBytes)
	require.Equal(t, lzss.MaxMatch, sum.LongestMatch)
	require.Equal(t, 2, sum.Overlapping)
	require.Equal(t, 3, sum.FlagCount)
	require.Equal(t, 1+2*lzss.MatchWidth, sum.ContentSize)
	require.Equal(t, lzss.HeaderSize+1+sum.ContentSize, sum.CompressedSize)
	require.InDelta(t, float64(lzss.MaxMatch), sum.MeanMatch(), 1e-9)
	require.Less(t, sum.Ratio(), 1.0)
	require.Greater(t, sum.SpaceSavings(), 90.0)
}

func TestSummarizeEmpty(t *testing.T) {
	sum, err := Summarize(compress(t, nil))
	require.NoError(t, err)
	require.Zero(t, sum.Ratio())
	require.Zero(t, sum.SpaceSavings())
	require.Zero(t, sum.MeanMatch())
}

func TestText(t *testing.T) {
	out, err := Text(nil, compress(t, []byte("abcXabcYabc")))
	require.NoError(t, err)
	require.Equal(t, "abcX<3,4>Y<3,4>", string(out))
}

func TestBits(t *testing.T) {
	require.Equal(t, "", Bits(nil, 0))
	require.Equal(t, "01", Bits([]byte{0x40}, 2))
	require.Equal(t, "10110000 01", Bits([]byte{0xB0, 0x40}, 10))
	// n beyond the flag bytes stops at the data present.
	require.Equal(t, "1111", Bits([]byte{0xF0}, 4))
	require.Equal(t, "11110000", Bits([]byte{0xF0}, 20))
}
