package lzss

import "fmt"

// An Encoder turns input into a Stream.
type Encoder struct {
	// MatchFinder is used to look for matches. If it is nil,
	// WindowSearch{} is used.
	MatchFinder MatchFinder

	seqCache []Sequence
}

// Encode compresses src. Every literal gets its own decision and content
// byte; every match gets one decision and a MatchWidth-byte record.
func (e *Encoder) Encode(src []byte) (Stream, error) {
	p := GreedyParser{MatchFinder: e.MatchFinder}
	seqs, err := p.Parse(e.seqCache[:0], src)
	e.seqCache = seqs[:0]
	if err != nil {
		return Stream{}, err
	}
	return e.encodeSequences(src, seqs)
}

// encodeSequences writes the decision and content streams for seqs, which
// must cover all of src.
func (e *Encoder) encodeSequences(src []byte, seqs []Sequence) (Stream, error) {
	// A match record is never longer than the MinMatch bytes it stands for,
	// so the content stream fits in len(src).
	content := make([]byte, 0, len(src))
	decisions := NewDecisionWriter(len(src))

	pos := 0
	for _, s := range seqs {
		for i := 0; i < s.Literals; i++ {
			if err := decisions.WriteBit(false); err != nil {
				return Stream{}, err
			}
			content = append(content, src[pos])
			pos++
		}
		if s.Match.Length > 0 {
			if err := decisions.WriteBit(true); err != nil {
				return Stream{}, err
			}
			content = AppendMatch(content, s.Match)
			pos += int(s.Match.Length)
		}
	}
	if pos != len(src) {
		return Stream{}, fmt.Errorf("lzss: sequences cover %d bytes of %d", pos, len(src))
	}

	flags, err := decisions.Finish()
	if err != nil {
		return Stream{}, err
	}
	return Stream{
		OriginalLength: uint64(len(src)),
		FlagCount:      decisions.Len(),
		Flags:          flags,
		Content:        content,
	}, nil
}

// Encode compresses src with the default Encoder.
func Encode(src []byte) (Stream, error) {
	var e Encoder
	return e.Encode(src)
}
