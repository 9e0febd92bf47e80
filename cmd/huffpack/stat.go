package main

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/seiflotfy/huffpack"
)

type fileReport struct {
	name       string
	stats      huffpack.Stats
	minCodeLen uint8
	zstdSize   int
}

func runStat(args []string, stdout io.Writer) error {
	flags := newFlagSet("stat")
	if err := flags.Parse(args); err != nil {
		return wrapFlagError(err)
	}
	files := flags.Args()
	if len(files) == 0 {
		return usageErrorf("no input files")
	}

	zenc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer zenc.Close()

	enc := huffpack.NewEncoder()
	for _, in := range files {
		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("%w: %w", huffpack.ErrInputUnreadable, err)
		}
		report, err := analyze(in, data, enc, zenc)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		report.print(stdout)
	}
	return nil
}

func analyze(name string, data []byte, enc *huffpack.Encoder, zenc *zstd.Encoder) (fileReport, error) {
	a, stats, err := enc.EncodeWithStats(data)
	if err != nil {
		return fileReport{}, err
	}
	report := fileReport{
		name:     name,
		stats:    stats,
		zstdSize: len(zenc.EncodeAll(data, nil)),
	}
	if a.Tree == nil {
		return report, nil
	}

	codes, err := a.Tree.Codes()
	if err != nil {
		return fileReport{}, err
	}
	report.minCodeLen = codes.MaxLen()
	for _, sym := range a.Tree.Symbols() {
		if c, ok := codes.Lookup(sym); ok && c.Len < report.minCodeLen {
			report.minCodeLen = c.Len
		}
	}
	return report, nil
}

func ratio(compressed, original int) float64 {
	if original == 0 {
		return 0
	}
	return float64(compressed) / float64(original)
}

func (r fileReport) print(w io.Writer) {
	s := r.stats
	fmt.Fprintf(w, "%s\n", r.name)
	fmt.Fprintf(w, "  original:  %d bytes\n", s.OriginalSize)
	fmt.Fprintf(w, "  huffpack:  %d bytes (ratio %.4f, tree %d bytes, payload %d bits + %d padding)\n",
		s.CompressedSize, s.Ratio(), s.TreeBytes, s.PayloadBits, s.PaddingBits)
	fmt.Fprintf(w, "  codes:     %d symbols, lengths %d..%d, %.3f bits/symbol\n",
		s.Symbols, r.minCodeLen, s.MaxCodeLen, s.BitsPerSymbol())
	fmt.Fprintf(w, "  zstd:      %d bytes (ratio %.4f)\n", r.zstdSize, ratio(r.zstdSize, s.OriginalSize))
}
