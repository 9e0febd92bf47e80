package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/seiflotfy/huffpack"
)

func runDecompress(args []string, stdout io.Writer) error {
	flags := newFlagSet("decompress")
	outPath := flags.String("o", "", "")
	dir := flags.String("dir", "decompress", "")
	strict := flags.Bool("strict", false, "")
	if err := flags.Parse(args); err != nil {
		return wrapFlagError(err)
	}

	files := flags.Args()
	if len(files) == 0 {
		return usageErrorf("no input files")
	}
	if *outPath != "" && len(files) > 1 {
		return usageErrorf("-o takes exactly one input, got %d", len(files))
	}

	var opts []huffpack.Option
	if *strict {
		opts = append(opts, huffpack.WithLegacyFallback(false))
	}

	for _, in := range files {
		dst := *outPath
		if dst == "" {
			if err := os.MkdirAll(*dir, 0o755); err != nil {
				return err
			}
			dst = filepath.Join(*dir, restoredName(in))
		}

		n, err := huffpack.DecompressFile(in, dst, opts...)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s -> %s: %d bytes\n", in, dst, n)
	}
	return nil
}

// restoredName strips the artifact suffix from path's base name. Names
// without the suffix get ".out" appended.
func restoredName(path string) string {
	base := filepath.Base(path)
	if name, ok := strings.CutSuffix(base, artifactSuffix); ok && name != "" {
		return name
	}
	return base + ".out"
}
