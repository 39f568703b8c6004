// Package compare measures lzss against other compression codecs on the
// same data.
package compare

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/packlab/lzss"
)

// A Codec compresses and decompresses whole buffers.
//
// Returned slices are newly allocated and owned by the caller; the input is
// not modified.
type Codec interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Default returns one of each built-in codec, lzss first.
func Default() []Codec {
	return []Codec{
		LZSS{},
		Snappy{},
		S2{},
		LZ4{},
		Flate{Level: flate.DefaultCompression},
		NewZstd(zstd.SpeedDefault),
		Brotli{Level: brotli.DefaultCompression},
	}
}

// LZSS is the codec from this module.
type LZSS struct {
	// MaxSize bounds decompressed output; see lzss.Decoder.
	MaxSize int
}

func (LZSS) Name() string { return "lzss" }

func (c LZSS) Compress(data []byte) ([]byte, error) {
	return lzss.Compress(data)
}

func (c LZSS) Decompress(data []byte) ([]byte, error) {
	return lzss.Decoder{MaxSize: c.MaxSize}.Decode(lzss.Unpack(data))
}

// Snappy uses the snappy block format.
type Snappy struct{}

func (Snappy) Name() string { return "snappy" }

func (Snappy) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (Snappy) Decompress(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}

// S2 uses the S2 block format, a snappy extension.
type S2 struct{}

func (S2) Name() string { return "s2" }

func (S2) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (S2) Decompress(data []byte) ([]byte, error) {
	return s2.Decode(nil, data)
}

// lz4CompressorPool pools lz4.Compressor instances for reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4 uses the LZ4 block format. The block is prefixed with a uvarint
// holding the decompressed size, and a mode byte: 1 for an LZ4 block, 0
// for data lz4 could not shrink, stored as-is.
type LZ4 struct{}

func (LZ4) Name() string { return "lz4" }

func (LZ4) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{0, 0}, nil
	}
	dst := binary.AppendUvarint(nil, uint64(len(data)))
	head := len(dst) + 1
	dst = append(dst, 1)
	dst = append(dst, make([]byte, lz4.CompressBlockBound(len(data)))...)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[head:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		dst[head-1] = 0
		return append(dst[:head], data...), nil
	}
	return dst[:head+n], nil
}

func (LZ4) Decompress(data []byte) ([]byte, error) {
	size, k := binary.Uvarint(data)
	if k <= 0 || k >= len(data) {
		return nil, errors.New("lz4: bad size prefix")
	}
	mode, body := data[k], data[k+1:]
	if mode == 0 {
		return append([]byte(nil), body...), nil
	}
	out := make([]byte, size)
	n, err := lz4.UncompressBlock(body, out)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// Flate uses raw DEFLATE.
type Flate struct {
	Level int
}

func (Flate) Name() string { return "flate" }

func (c Flate) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, c.Level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Flate) Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}

// Zstd uses zstd frames. Its encoder and decoder are created once and are
// safe for concurrent use.
type Zstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
	err error
}

// NewZstd returns a Zstd codec at the given level.
func NewZstd(level zstd.EncoderLevel) *Zstd {
	z := new(Zstd)
	z.enc, z.err = zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if z.err != nil {
		return z
	}
	z.dec, z.err = zstd.NewReader(nil)
	return z
}

func (*Zstd) Name() string { return "zstd" }

func (z *Zstd) Compress(data []byte) ([]byte, error) {
	if z.err != nil {
		return nil, z.err
	}
	return z.enc.EncodeAll(data, nil), nil
}

func (z *Zstd) Decompress(data []byte) ([]byte, error) {
	if z.err != nil {
		return nil, z.err
	}
	return z.dec.DecodeAll(data, nil)
}

// Brotli uses the brotli stream format.
type Brotli struct {
	Level int
}

func (Brotli) Name() string { return "brotli" }

func (c Brotli) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, c.Level)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("brotli: %w", err)
	}
	return buf.Bytes(), nil
}

func (Brotli) Decompress(data []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
}
