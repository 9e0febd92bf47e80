package huffpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/seiflotfy/huffpack/tree"
)

const artifactMagic = "HUF2"

// Wire format (current):
//
//	magic   [4] = "HUF2"
//	count   = uvarint, original byte count
//	-- the artifact ends here when count is 0 --
//	root    = 1 byte, the root's symbol if the root is a leaf, else 0x00
//	tree    = pre-order nodes: 0x01 symbol (leaf) | 0x00 left right (internal)
//	payload = remaining bytes, codes MSB-first, zero-padded to a byte
//
// Wire format (legacy): root, tree and payload only. A legacy artifact starts
// with 0x00 (internal root) or with a symbol followed by 0x01, so it can never
// begin with the magic.

// Artifact is the compressed form of one input.
type Artifact struct {
	Format  Format
	Count   uint64     // Original byte count; not stored by FormatLegacy
	Tree    *tree.Tree // Nil when Count is 0
	Payload []byte     // Packed codes
}

// rootField returns the legacy root-symbol byte.
func (a *Artifact) rootField() byte {
	if sym, ok := a.Tree.RootSymbol(); ok {
		return sym
	}
	return 0x00
}

func validateArtifact(a *Artifact) error {
	switch a.Format {
	case FormatCurrent:
		if a.Count == 0 {
			if a.Tree != nil || len(a.Payload) != 0 {
				return fmt.Errorf("empty artifact carries a tree or payload")
			}
			return nil
		}
		if a.Tree == nil || a.Tree.Len() == 0 {
			return fmt.Errorf("artifact of %d bytes has no tree", a.Count)
		}
	case FormatLegacy:
		if a.Tree == nil || a.Tree.Len() == 0 {
			return fmt.Errorf("legacy artifact has no tree: %w", ErrEmptyInput)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, a.Format)
	}
	return nil
}

// Size returns the serialized size of the artifact in bytes.
func (a *Artifact) Size() int {
	size := 0
	if a.Format == FormatCurrent {
		size += len(artifactMagic) + uvarintLen(a.Count)
		if a.Count == 0 {
			return size
		}
	}
	if a.Tree != nil {
		size += 1 + a.Tree.EncodedLen()
	}
	return size + len(a.Payload)
}

func uvarintLen(v uint64) int {
	var scratch [binary.MaxVarintLen64]byte
	return binary.PutUvarint(scratch[:], v)
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

// WriteTo writes the serialized artifact to w.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	if err := validateArtifact(a); err != nil {
		return 0, fmt.Errorf("invalid artifact: %w", err)
	}

	var total int64
	if a.Format == FormatCurrent {
		header := make([]byte, 0, len(artifactMagic)+binary.MaxVarintLen64)
		header = append(header, artifactMagic...)
		header = binary.AppendUvarint(header, a.Count)
		n, err := writeBytes(w, header)
		total += n
		if err != nil {
			return total, err
		}
		if a.Count == 0 {
			return total, nil
		}
	}

	n, err := writeBytes(w, []byte{a.rootField()})
	total += n
	if err != nil {
		return total, err
	}

	n, err = a.Tree.WriteTo(w)
	total += n
	if err != nil {
		return total, err
	}

	n, err = writeBytes(w, a.Payload)
	total += n
	return total, err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a *Artifact) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(a.Size())
	if _, err := a.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Input without the
// current magic is parsed as a legacy artifact.
func (a *Artifact) UnmarshalBinary(data []byte) error {
	parsed, err := parseArtifact(data, newConfig(nil))
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

// ReadFrom reads a whole artifact from r. The legacy layout has no length
// framing, so r is read to EOF.
func (a *Artifact) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	total := int64(len(data))
	if err != nil {
		return total, fmt.Errorf("read artifact: %w", err)
	}
	if err := a.UnmarshalBinary(data); err != nil {
		return total, err
	}
	return total, nil
}

func parseArtifact(data []byte, cfg Config) (*Artifact, error) {
	if !bytes.HasPrefix(data, []byte(artifactMagic)) {
		if !cfg.LegacyFallback {
			if len(data) < len(artifactMagic) && bytes.HasPrefix([]byte(artifactMagic), data) {
				return nil, fmt.Errorf("%w: artifact magic at offset 0: %d of %d bytes", ErrTruncatedStream, len(data), len(artifactMagic))
			}
			return nil, fmt.Errorf("%w: invalid artifact magic at offset 0", ErrUnknownFormat)
		}
		return parseBody(data, 0, &Artifact{Format: FormatLegacy})
	}

	offset := len(artifactMagic)
	count, n := binary.Uvarint(data[offset:])
	switch {
	case n == 0:
		return nil, fmt.Errorf("%w: symbol count at offset %d", ErrTruncatedStream, offset)
	case n < 0:
		return nil, fmt.Errorf("%w: symbol count overflows at offset %d", ErrUnknownFormat, offset)
	}
	if limit := resolveMaxOutput(cfg); count > limit {
		return nil, fmt.Errorf("%w: %d bytes declared, limit %d", ErrOutputTooLarge, count, limit)
	}
	offset += n

	a := &Artifact{Format: FormatCurrent, Count: count}
	if count == 0 {
		if offset != len(data) {
			return nil, fmt.Errorf("%w: %d trailing bytes after empty artifact at offset %d", ErrDecodeOverrun, len(data)-offset, offset)
		}
		return a, nil
	}
	return parseBody(data, offset, a)
}

// parseBody parses root byte, tree and payload starting at offset into a.
func parseBody(data []byte, offset int, a *Artifact) (*Artifact, error) {
	if offset >= len(data) {
		return nil, fmt.Errorf("%w: root symbol at offset %d", ErrTruncatedStream, offset)
	}
	root := data[offset]
	offset++

	t, n, err := tree.Parse(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("decode tree at offset %d: %w", offset, err)
	}
	a.Tree = t
	if a.Format == FormatCurrent && a.rootField() != root {
		return nil, fmt.Errorf("%w: root field 0x%02x does not match tree at offset %d", ErrMalformedTree, root, offset-1)
	}
	offset += n

	a.Payload = append([]byte(nil), data[offset:]...)
	return a, nil
}
