package compare

import (
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ErrRoundTrip is returned when a codec does not give back its input.
var ErrRoundTrip = errors.New("compare: round trip mismatch")

// A Result is the outcome of one codec on one input.
type Result struct {
	Codec          string
	OriginalSize   int
	CompressedSize int
	Compression    time.Duration
	Decompression  time.Duration
}

// Ratio returns the compressed size divided by the original size
// (0 for empty input).
func (r Result) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.CompressedSize) / float64(r.OriginalSize)
}

// SpaceSavings returns the percentage of the original size saved.
func (r Result) SpaceSavings() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return (1 - r.Ratio()) * 100
}

func (r Result) String() string {
	return fmt.Sprintf("%-8s %10d -> %10d  ratio %.3f  savings %6.2f%%  enc %v  dec %v",
		r.Codec, r.OriginalSize, r.CompressedSize, r.Ratio(), r.SpaceSavings(), r.Compression, r.Decompression)
}

// Run compresses and decompresses data with each codec, in order, and
// checks that every codec reproduces data. With no codecs it uses
// Default().
func Run(data []byte, codecs ...Codec) ([]Result, error) {
	if len(codecs) == 0 {
		codecs = Default()
	}
	want := xxhash.Sum64(data)

	results := make([]Result, 0, len(codecs))
	for _, c := range codecs {
		start := time.Now()
		compressed, err := c.Compress(data)
		if err != nil {
			return results, fmt.Errorf("%s: compress: %w", c.Name(), err)
		}
		mid := time.Now()
		decompressed, err := c.Decompress(compressed)
		if err != nil {
			return results, fmt.Errorf("%s: decompress: %w", c.Name(), err)
		}
		end := time.Now()

		if len(decompressed) != len(data) || xxhash.Sum64(decompressed) != want {
			return results, fmt.Errorf("%w: %s gave %d bytes (xxhash %016x), want %d (xxhash %016x)",
				ErrRoundTrip, c.Name(), len(decompressed), xxhash.Sum64(decompressed), len(data), want)
		}

		results = append(results, Result{
			Codec:          c.Name(),
			OriginalSize:   len(data),
			CompressedSize: len(compressed),
			Compression:    mid.Sub(start),
			Decompression:  end.Sub(mid),
		})
	}
	return results, nil
}
