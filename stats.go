package huffpack

import "fmt"

// Stats describes one compression.
type Stats struct {
	OriginalSize   int    // Input length in bytes
	CompressedSize int    // Serialized artifact length in bytes
	TreeBytes      int    // Serialized tree length, excluding the root field
	PayloadBits    uint64 // Meaningful payload bits
	PaddingBits    uint8  // Zero bits appended to the last payload byte
	Symbols        int    // Distinct input bytes
	MaxCodeLen     uint8  // Longest code in bits
}

// Ratio returns CompressedSize / OriginalSize, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}
	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// BitsPerSymbol returns the average payload bits spent per input byte.
func (s Stats) BitsPerSymbol() float64 {
	if s.OriginalSize == 0 {
		return 0
	}
	return float64(s.PayloadBits) / float64(s.OriginalSize)
}

func (s Stats) String() string {
	return fmt.Sprintf("%d -> %d bytes (ratio %.4f, %d symbols, %.3f bits/symbol)",
		s.OriginalSize, s.CompressedSize, s.Ratio(), s.Symbols, s.BitsPerSymbol())
}
