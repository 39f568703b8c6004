package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/packlab/lzss"
	"github.com/packlab/lzss/inspect"
	"github.com/stretchr/testify/require"
)

var sample = bytes.Repeat([]byte("the rain in spain falls mainly on the plain. "), 30)

func runCmd(t *testing.T, stdin []byte, args ...string) ([]byte, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, bytes.NewReader(stdin), &stdout, &stderr)
	return stdout.Bytes(), stderr.String(), err
}

func TestCompressDecompressStdio(t *testing.T) {
	blob, _, err := runCmd(t, sample)
	require.NoError(t, err)
	require.NoError(t, inspect.Validate(blob))

	out, _, err := runCmd(t, blob, "-d")
	require.NoError(t, err)
	require.Equal(t, sample, out)
}

func TestCompressFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	packed := filepath.Join(dir, "in.lzss")
	require.NoError(t, os.WriteFile(src, sample, 0o644))

	_, stderr, err := runCmd(t, nil, "-v", "-o", packed, src)
	require.NoError(t, err)
	require.Contains(t, stderr, "compressed")

	blob, err := os.ReadFile(packed)
	require.NoError(t, err)
	out, err := lzss.Decompress(blob)
	require.NoError(t, err)
	require.Equal(t, sample, out)
}

func TestFastSameOutput(t *testing.T) {
	slow, _, err := runCmd(t, sample)
	require.NoError(t, err)
	fast, _, err := runCmd(t, sample, "-fast")
	require.NoError(t, err)
	require.Equal(t, slow, fast)
}

func TestDecompressRejectsGarbage(t *testing.T) {
	_, _, err := runCmd(t, []byte("not a blob"), "-d")
	require.ErrorIs(t, err, inspect.ErrShortHeader)
}

func TestDecompressMaxSize(t *testing.T) {
	blob, err := lzss.Compress(sample)
	require.NoError(t, err)
	_, _, err = runCmd(t, blob, "-d", "-max-size", "10")
	require.ErrorIs(t, err, lzss.ErrAllocation)
}

func TestStat(t *testing.T) {
	blob, err := lzss.Compress(sample)
	require.NoError(t, err)
	out, _, err := runCmd(t, blob, "-stat")
	require.NoError(t, err)
	require.Contains(t, string(out), "original size:   1350")
	require.Contains(t, string(out), "matches:")
}

func TestText(t *testing.T) {
	blob, err := lzss.Compress([]byte("AAAAAAAAAA"))
	require.NoError(t, err)
	out, _, err := runCmd(t, blob, "-text")
	require.NoError(t, err)
	require.Equal(t, "A<9,1>\n", string(out))
}

func TestBits(t *testing.T) {
	blob, err := lzss.Compress([]byte("AAAAAAAAAA"))
	require.NoError(t, err)
	out, _, err := runCmd(t, blob, "-bits")
	require.NoError(t, err)
	require.Equal(t, "01\n", string(out))
}

func TestCompare(t *testing.T) {
	out, _, err := runCmd(t, sample, "-compare")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.NotEmpty(t, lines)
	require.True(t, strings.HasPrefix(lines[0], "lzss"))
}

func TestTooManyArgs(t *testing.T) {
	_, _, err := runCmd(t, nil, "a", "b")
	require.Error(t, err)
}
