package huffpack

import (
	"fmt"

	"github.com/seiflotfy/huffpack/bitpack"
	"github.com/seiflotfy/huffpack/tree"
)

// Encoder compresses byte slices into artifacts. It holds only its
// configuration and may be reused.
type Encoder struct {
	config Config
}

// NewEncoder creates a new encoder with the given options.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{config: newConfig(opts)}
}

// Encode compresses data into an Artifact.
func (e *Encoder) Encode(data []byte) (*Artifact, error) {
	a, _, err := e.EncodeWithStats(data)
	return a, err
}

// EncodeWithStats compresses data and reports size statistics.
func (e *Encoder) EncodeWithStats(data []byte) (*Artifact, Stats, error) {
	format := e.config.Format
	if format != FormatCurrent && format != FormatLegacy {
		return nil, Stats{}, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}

	freq := tree.Count(data)
	if freq.Distinct() == 0 {
		if format == FormatLegacy {
			return nil, Stats{}, fmt.Errorf("legacy artifact: %w", ErrEmptyInput)
		}
		a := &Artifact{Format: format}
		stats := Stats{CompressedSize: a.Size()}
		log.Debugf("encoded empty input into %d bytes", stats.CompressedSize)
		return a, stats, nil
	}

	t, err := tree.Build(freq)
	if err != nil {
		return nil, Stats{}, err
	}
	codes, err := t.Codes()
	if err != nil {
		return nil, Stats{}, err
	}
	payload, bits, err := bitpack.PackSized(data, codes, codes.EncodedBits(freq))
	if err != nil {
		return nil, Stats{}, err
	}

	a := &Artifact{
		Format:  format,
		Count:   uint64(len(data)),
		Tree:    t,
		Payload: payload,
	}
	stats := Stats{
		OriginalSize:   len(data),
		CompressedSize: a.Size(),
		TreeBytes:      t.EncodedLen(),
		PayloadBits:    bits,
		PaddingBits:    bitpack.PaddingBits(bits),
		Symbols:        freq.Distinct(),
		MaxCodeLen:     codes.MaxLen(),
	}
	log.Debugf("encoded %d bytes into %d (%s format, %d symbols, ratio %.4f)",
		stats.OriginalSize, stats.CompressedSize, format, stats.Symbols, stats.Ratio())
	return a, stats, nil
}

// Decoder restores original bytes from artifacts. It holds only its
// configuration and may be reused.
type Decoder struct {
	config Config
}

// NewDecoder creates a new decoder with the given options.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{config: newConfig(opts)}
}

// Parse parses a serialized artifact according to the decoder's options.
func (d *Decoder) Parse(data []byte) (*Artifact, error) {
	return parseArtifact(data, d.config)
}

// DecodeBytes parses and decodes a serialized artifact.
func (d *Decoder) DecodeBytes(data []byte) ([]byte, error) {
	a, err := d.Parse(data)
	if err != nil {
		return nil, err
	}
	return d.Decode(a)
}

// Decode restores the original bytes of a.
func (d *Decoder) Decode(a *Artifact) ([]byte, error) {
	if err := validateArtifact(a); err != nil {
		return nil, fmt.Errorf("invalid artifact: %w", err)
	}

	switch a.Format {
	case FormatLegacy:
		out, err := bitpack.UnpackAll(a.Payload, a.Tree)
		if err != nil {
			return nil, fmt.Errorf("decode legacy payload: %w", err)
		}
		log.Debugf("decoded legacy artifact of %d payload bytes into %d bytes", len(a.Payload), len(out))
		return out, nil
	default:
		if limit := resolveMaxOutput(d.config); a.Count > limit {
			return nil, fmt.Errorf("%w: %d bytes declared, limit %d", ErrOutputTooLarge, a.Count, limit)
		}
		if a.Count == 0 {
			return []byte{}, nil
		}
		out, err := bitpack.Unpack(a.Payload, a.Tree, a.Count)
		if err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		log.Debugf("decoded %d payload bytes into %d bytes", len(a.Payload), len(out))
		return out, nil
	}
}
