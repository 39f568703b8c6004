package lzss

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
)

// A DecisionWriter records one bit per token: false for a literal, true for
// a match. Bits are packed most significant bit first; the last byte is
// padded with zeros.
type DecisionWriter struct {
	buf bytes.Buffer
	w   *bitio.Writer
	n   uint64
}

// NewDecisionWriter returns a DecisionWriter with room for about n
// decisions.
func NewDecisionWriter(n int) *DecisionWriter {
	d := new(DecisionWriter)
	d.buf.Grow((n + 7) / 8)
	d.w = bitio.NewWriter(&d.buf)
	return d
}

// WriteBit appends one decision.
func (d *DecisionWriter) WriteBit(match bool) error {
	if err := d.w.WriteBool(match); err != nil {
		return err
	}
	d.n++
	return nil
}

// Len returns the number of decisions written so far.
func (d *DecisionWriter) Len() uint64 {
	return d.n
}

// Finish flushes the partial last byte and returns the packed decisions.
// The DecisionWriter must not be written to afterwards.
func (d *DecisionWriter) Finish() ([]byte, error) {
	if err := d.w.Close(); err != nil {
		return nil, err
	}
	return d.buf.Bytes(), nil
}

// A DecisionReader reads back the bits written by a DecisionWriter.
type DecisionReader struct {
	r   *bitio.Reader
	pos uint64
	n   uint64
}

// NewDecisionReader returns a reader over the first n decisions packed in
// flags.
func NewDecisionReader(flags []byte, n uint64) *DecisionReader {
	return &DecisionReader{
		r: bitio.NewReader(bytes.NewReader(flags)),
		n: n,
	}
}

// ReadBit returns the next decision. After the last one it returns io.EOF;
// if flags holds fewer than n bits it returns io.ErrUnexpectedEOF.
func (d *DecisionReader) ReadBit() (bool, error) {
	if d.pos >= d.n {
		return false, io.EOF
	}
	b, err := d.r.ReadBool()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return false, err
	}
	d.pos++
	return b, nil
}

// Remaining returns how many decisions are left to read.
func (d *DecisionReader) Remaining() uint64 {
	return d.n - d.pos
}
