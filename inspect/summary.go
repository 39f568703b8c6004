package inspect

// Summary describes how a blob spends its bytes.
type Summary struct {
	OriginalSize   int
	CompressedSize int // whole blob, header included
	ContentSize    int
	FlagCount      int

	Literals     int
	Matches      int
	MatchedBytes int // output bytes produced by matches
	LongestMatch int
	Overlapping  int // matches whose source overlaps their destination
}

// Summarize walks blob and counts its tokens.
func Summarize(blob []byte) (Summary, error) {
	s, err := Split(blob)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		OriginalSize:   int(s.OriginalLength),
		CompressedSize: len(blob),
		ContentSize:    len(s.Content),
		FlagCount:      int(s.FlagCount),
	}
	err = WalkStream(s, func(t Token) error {
		if t.Literal {
			sum.Literals++
			return nil
		}
		n := int(t.Match.Length)
		sum.Matches++
		sum.MatchedBytes += n
		if n > sum.LongestMatch {
			sum.LongestMatch = n
		}
		if int(t.Match.Displacement) < n {
			sum.Overlapping++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

// MeanMatch returns the average match length, or 0 with no matches.
func (s Summary) MeanMatch() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.MatchedBytes) / float64(s.Matches)
}

// Ratio returns the compressed size divided by the original size
// (0 for empty input). Values below 1 mean the blob is smaller.
func (s Summary) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}
	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the percentage of the original size saved.
func (s Summary) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0
	}
	return (1 - s.Ratio()) * 100
}
