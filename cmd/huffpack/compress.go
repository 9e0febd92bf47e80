package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/seiflotfy/huffpack"
)

const artifactSuffix = ".huf"

func runCompress(args []string, stdout io.Writer) error {
	flags := newFlagSet("compress")
	outPath := flags.String("o", "", "")
	dir := flags.String("dir", "compress", "")
	legacy := flags.Bool("legacy", false, "")
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
	if *legacy {
		opts = append(opts, huffpack.WithFormat(huffpack.FormatLegacy))
	}
	cache, err := newArtifactCache(huffpack.NewEncoder(opts...), defaultCacheSize)
	if err != nil {
		return err
	}

	for _, in := range files {
		dst := *outPath
		if dst == "" {
			if err := os.MkdirAll(*dir, 0o755); err != nil {
				return err
			}
			dst = filepath.Join(*dir, filepath.Base(in)+artifactSuffix)
		}

		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("%w: %w", huffpack.ErrInputUnreadable, err)
		}
		artifact, stats, hit, err := cache.compress(data)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		if hit {
			log.Debugf("%s: reusing artifact for identical contents", in)
		}
		if err := os.WriteFile(dst, artifact, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s -> %s: %s\n", in, dst, stats)
	}
	log.Debugf("compressed %d files, %d cache hits", len(files), cache.hits)
	return nil
}
