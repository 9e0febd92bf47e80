// Package huffpack is a lossless byte compressor based on static Huffman
// coding.
//
// Compress counts byte frequencies, builds a prefix tree, packs every input
// byte's code into a bit stream and stores the serialized tree next to it.
// Decompress reverses the process and reproduces the input exactly.
package huffpack

import (
	"errors"

	"github.com/op/go-logging"

	"github.com/seiflotfy/huffpack/bitpack"
	"github.com/seiflotfy/huffpack/tree"
)

var log = logging.MustGetLogger("huffpack")

var (
	// ErrEmptyInput indicates there were no bytes to build a code from.
	ErrEmptyInput = tree.ErrEmptyInput
	// ErrMissingCode indicates a byte with no code during packing.
	ErrMissingCode = bitpack.ErrMissingCode
	// ErrTruncatedStream indicates an artifact shorter than its structure requires.
	ErrTruncatedStream = tree.ErrTruncatedStream
	// ErrDecodeOverrun indicates a payload that does not end on the last symbol.
	ErrDecodeOverrun = bitpack.ErrDecodeOverrun
	// ErrMalformedTree indicates serialized tree bytes no encoder produces.
	ErrMalformedTree = tree.ErrMalformedTree

	// ErrInputUnreadable indicates the source file could not be read.
	ErrInputUnreadable = errors.New("input unreadable")
	// ErrUnknownFormat indicates bytes that are not a recognized artifact.
	ErrUnknownFormat = errors.New("unknown artifact format")
	// ErrOutputTooLarge indicates an artifact declaring more output than allowed.
	ErrOutputTooLarge = errors.New("declared output exceeds limit")
)

// Compress encodes data into a serialized artifact.
func Compress(data []byte, opts ...Option) ([]byte, error) {
	a, err := NewEncoder(opts...).Encode(data)
	if err != nil {
		return nil, err
	}
	return a.MarshalBinary()
}

// Decompress decodes a serialized artifact back into the original bytes.
func Decompress(artifact []byte, opts ...Option) ([]byte, error) {
	return NewDecoder(opts...).DecodeBytes(artifact)
}
