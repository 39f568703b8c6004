// Command lzss compresses and decompresses files with the lzss package.
//
// Usage:
//
//	lzss [flags] [file]
//
// With no file, lzss reads standard input. Output goes to standard output
// unless -o is given.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/packlab/lzss"
	"github.com/packlab/lzss/compare"
	"github.com/packlab/lzss/inspect"
)

type options struct {
	decompress bool
	output     string
	stat       bool
	text       bool
	bits       bool
	compare    bool
	maxSize    int
	fast       bool
	unsafe     bool
	verbose    bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("lzss: ")
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("lzss", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.decompress, "d", false, "decompress instead of compress")
	fs.StringVar(&opts.output, "o", "", "write output to `file` instead of stdout")
	fs.BoolVar(&opts.stat, "stat", false, "print statistics about a compressed blob")
	fs.BoolVar(&opts.text, "text", false, "print a compressed blob as text with <length,distance> matches")
	fs.BoolVar(&opts.bits, "bits", false, "print the decision bits of a compressed blob")
	fs.BoolVar(&opts.compare, "compare", false, "compare lzss with other codecs on the input")
	fs.IntVar(&opts.maxSize, "max-size", 0, "refuse to decompress more than `n` bytes (0 = no limit)")
	fs.BoolVar(&opts.fast, "fast", false, "compress with a hash-chain match finder (same output, less time)")
	fs.BoolVar(&opts.unsafe, "unsafe", false, "skip validation before decompressing")
	fs.BoolVar(&opts.verbose, "v", false, "enable verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("at most one input file, got %d", fs.NArg())
	}

	logger := log.New(io.Discard, "lzss: ", 0)
	if opts.verbose {
		logger.SetOutput(stderr)
	}

	in, name, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}
	logger.Printf("read %d bytes from %s", len(in), name)

	switch {
	case opts.compare:
		results, err := compare.Run(in)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Fprintln(stdout, r)
		}
		return nil

	case opts.stat:
		sum, err := inspect.Summarize(in)
		if err != nil {
			return err
		}
		printSummary(stdout, sum)
		return nil

	case opts.text:
		out, err := inspect.Text(nil, in)
		if err != nil {
			return err
		}
		_, err = stdout.Write(append(out, '\n'))
		return err

	case opts.bits:
		s, err := inspect.Split(in)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, inspect.Bits(s.Flags, s.FlagCount))
		return err
	}

	var out []byte
	if opts.decompress {
		if !opts.unsafe {
			if err := inspect.Validate(in); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		out, err = lzss.Decoder{MaxSize: opts.maxSize}.Decode(lzss.Unpack(in))
		if err != nil {
			return err
		}
		logger.Printf("decompressed %d bytes to %d", len(in), len(out))
	} else {
		var e lzss.Encoder
		if opts.fast {
			e.MatchFinder = new(lzss.HashChain)
		}
		s, err := e.Encode(in)
		if err != nil {
			return err
		}
		out = lzss.Pack(s)
		logger.Printf("compressed %d bytes to %d", len(in), len(out))
	}
	return writeOutput(opts.output, stdout, out)
}

func readInput(path string, stdin io.Reader) ([]byte, string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		return b, "stdin", err
	}
	b, err := os.ReadFile(path)
	return b, path, err
}

func writeOutput(path string, stdout io.Writer, b []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func printSummary(w io.Writer, s inspect.Summary) {
	fmt.Fprintf(w, "original size:   %d\n", s.OriginalSize)
	fmt.Fprintf(w, "compressed size: %d\n", s.CompressedSize)
	fmt.Fprintf(w, "content size:    %d\n", s.ContentSize)
	fmt.Fprintf(w, "decisions:       %d\n", s.FlagCount)
	fmt.Fprintf(w, "literals:        %d\n", s.Literals)
	fmt.Fprintf(w, "matches:         %d (%d overlapping)\n", s.Matches, s.Overlapping)
	fmt.Fprintf(w, "matched bytes:   %d\n", s.MatchedBytes)
	fmt.Fprintf(w, "longest match:   %d\n", s.LongestMatch)
	fmt.Fprintf(w, "mean match:      %.2f\n", s.MeanMatch())
	fmt.Fprintf(w, "ratio:           %.3f (%.2f%% saved)\n", s.Ratio(), s.SpaceSavings())
}
