// Package bitpack packs Huffman codes into a padded, MSB-first byte stream
// and walks a tree over such a stream to recover the symbols.
package bitpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"

	"github.com/seiflotfy/huffpack/tree"
)

var (
	// ErrMissingCode indicates an input byte with no entry in the code table.
	ErrMissingCode = errors.New("missing code")
	// ErrDecodeOverrun indicates bits that do not end on the expected symbol boundary.
	ErrDecodeOverrun = errors.New("decode overrun")
)

// Pack encodes data with codes and pads the result with 0-bits to a whole
// byte. It returns the payload and the number of meaningful bits in it.
func Pack(data []byte, codes *tree.CodeTable) ([]byte, uint64, error) {
	return PackSized(data, codes, 0)
}

// PackSized is Pack with a hint of the encoded bit length, used to size the
// output buffer up front.
func PackSized(data []byte, codes *tree.CodeTable, bitsHint uint64) ([]byte, uint64, error) {
	var buf bytes.Buffer
	if bitsHint > 0 {
		buf.Grow(int((bitsHint + 7) / 8))
	}

	w := bitio.NewWriter(&buf)
	var bits uint64
	for i, b := range data {
		c, ok := codes.Lookup(b)
		if !ok {
			return nil, 0, fmt.Errorf("%w: symbol 0x%02x at offset %d", ErrMissingCode, b, i)
		}
		w.TryWriteBits(c.Bits, c.Len)
		bits += uint64(c.Len)
	}
	if w.TryError != nil {
		return nil, 0, w.TryError
	}
	// Close flushes the cached partial byte, zero-padded.
	if err := w.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), bits, nil
}

// Unpack decodes exactly count symbols from payload by walking t: a 0-bit
// descends left, a 1-bit right, and reaching a leaf emits its symbol. A tree
// made of a single leaf consumes one 0-bit per symbol.
//
// Running out of bits fails with tree.ErrTruncatedStream. After the last
// symbol only the zero padding of the final byte may remain; anything else
// fails with ErrDecodeOverrun.
func Unpack(payload []byte, t *tree.Tree, count uint64) ([]byte, error) {
	capacity := count
	if maxSymbols := uint64(len(payload)) * 8; capacity > maxSymbols {
		capacity = maxSymbols
	}
	out := make([]byte, 0, capacity)

	w := newWalker(payload, t)
	for n := uint64(0); n < count; n++ {
		sym, err := w.next()
		if err != nil {
			if errors.Is(err, tree.ErrTruncatedStream) {
				return nil, fmt.Errorf("%w: payload ended after %d of %d symbols", err, n, count)
			}
			return nil, fmt.Errorf("symbol %d: %w", n, err)
		}
		out = append(out, sym)
	}

	if err := checkPadding(payload, w.consumed); err != nil {
		return nil, err
	}
	return out, nil
}

// UnpackAll decodes symbols until the payload is exhausted. An unfinished
// path at the end is dropped as padding, but padding bits that happen to
// complete a path are emitted as symbols. It exists for payloads that carry
// no symbol count.
func UnpackAll(payload []byte, t *tree.Tree) ([]byte, error) {
	out := make([]byte, 0, len(payload)*2)
	w := newWalker(payload, t)
	for {
		sym, err := w.next()
		if err != nil {
			if errors.Is(err, tree.ErrTruncatedStream) {
				return out, nil
			}
			return nil, fmt.Errorf("symbol %d: %w", len(out), err)
		}
		out = append(out, sym)
	}
}

// PaddingBits returns the number of 0-bits needed after bits meaningful bits
// to reach a byte boundary.
func PaddingBits(bits uint64) uint8 {
	return uint8((8 - bits%8) % 8)
}

func checkPadding(payload []byte, consumed uint64) error {
	want := (consumed + 7) / 8
	if uint64(len(payload)) != want {
		return fmt.Errorf("%w: %d payload bytes, want %d for %d bits", ErrDecodeOverrun, len(payload), want, consumed)
	}
	if pad := PaddingBits(consumed); pad > 0 {
		last := payload[len(payload)-1]
		if last&(1<<pad-1) != 0 {
			return fmt.Errorf("%w: non-zero padding in final byte 0x%02x", ErrDecodeOverrun, last)
		}
	}
	return nil
}

type walker struct {
	r        *bitio.Reader
	t        *tree.Tree
	root     tree.Node
	consumed uint64
}

func newWalker(payload []byte, t *tree.Tree) *walker {
	return &walker{
		r:    bitio.NewReader(bytes.NewReader(payload)),
		t:    t,
		root: t.Node(t.Root()),
	}
}

func (w *walker) readBit() (bool, error) {
	bit, err := w.r.ReadBool()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, fmt.Errorf("%w: at bit %d", tree.ErrTruncatedStream, w.consumed)
		}
		return false, err
	}
	w.consumed++
	return bit, nil
}

// next walks from the root to a leaf and returns its symbol.
func (w *walker) next() (byte, error) {
	if w.root.IsLeaf() {
		bit, err := w.readBit()
		if err != nil {
			return 0, err
		}
		if bit {
			return 0, fmt.Errorf("%w: 1-bit at bit %d with a single-symbol tree", ErrDecodeOverrun, w.consumed-1)
		}
		return w.root.Symbol, nil
	}

	n := w.root
	for !n.IsLeaf() {
		bit, err := w.readBit()
		if err != nil {
			return 0, err
		}
		if bit {
			n = w.t.Node(n.Right)
		} else {
			n = w.t.Node(n.Left)
		}
	}
	return n.Symbol, nil
}
