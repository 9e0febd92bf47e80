package huffpack

import (
	"fmt"
	"os"
)

// CompressFile compresses the file at inPath and writes the artifact to
// outPath.
func CompressFile(inPath, outPath string, opts ...Option) (Stats, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}

	a, stats, err := NewEncoder(opts...).EncodeWithStats(data)
	if err != nil {
		return Stats{}, fmt.Errorf("compress %s: %w", inPath, err)
	}
	if err := writeArtifactFile(outPath, a); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// DecompressFile decompresses the artifact at inPath and writes the original
// bytes to outPath. It returns the number of bytes written.
func DecompressFile(inPath, outPath string, opts ...Option) (int, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}

	out, err := NewDecoder(opts...).DecodeBytes(data)
	if err != nil {
		return 0, fmt.Errorf("decompress %s: %w", inPath, err)
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", outPath, err)
	}
	return len(out), nil
}

func writeArtifactFile(path string, a *Artifact) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err := a.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
