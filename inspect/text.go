package inspect

import (
	"strconv"
	"strings"
)

// Text appends a human-readable rendering of blob to dst. Literals are
// copied as-is; matches are replaced with <Length,Displacement> symbols.
func Text(dst []byte, blob []byte) ([]byte, error) {
	err := Walk(blob, func(t Token) error {
		if t.Literal {
			dst = append(dst, t.Byte)
			return nil
		}
		dst = append(dst, '<')
		dst = strconv.AppendInt(dst, int64(t.Match.Length), 10)
		dst = append(dst, ',')
		dst = strconv.AppendInt(dst, int64(t.Match.Displacement), 10)
		dst = append(dst, '>')
		return nil
	})
	return dst, err
}

// Bits renders the first n decisions in flags as 0s and 1s, a space
// between bytes.
func Bits(flags []byte, n uint64) string {
	var b strings.Builder
	for i := uint64(0); i < n && i/8 < uint64(len(flags)); i++ {
		if i > 0 && i%8 == 0 {
			b.WriteByte(' ')
		}
		if flags[i/8]>>(7-i%8)&1 == 1 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
