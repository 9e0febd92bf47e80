package tree

import (
	"fmt"
	"io"
)

// Serialized node markers.
const (
	markerInternal = byte(0x00)
	markerLeaf     = byte(0x01)
)

// Wire format, pre-order:
//
//	leaf     = 0x01 symbol
//	internal = 0x00 left right

// EncodedLen returns the serialized size of t in bytes.
func (t *Tree) EncodedLen() int {
	leaves := t.Leaves()
	return 2*leaves + (len(t.nodes) - leaves)
}

// AppendBinary appends the pre-order serialization of t to dst.
func (t *Tree) AppendBinary(dst []byte) []byte {
	stack := make([]int32, 0, maxCodeLen)
	stack = append(stack, t.root)
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[index]
		if n.IsLeaf() {
			dst = append(dst, markerLeaf, n.Symbol)
			continue
		}
		dst = append(dst, markerInternal)
		stack = append(stack, n.Right, n.Left)
	}
	return dst
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Tree) MarshalBinary() ([]byte, error) {
	if len(t.nodes) == 0 {
		return nil, ErrEmptyInput
	}
	return t.AppendBinary(make([]byte, 0, t.EncodedLen())), nil
}

// WriteTo writes the serialized tree to w.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	b, err := t.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	if err == nil && n != len(b) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// Parse decodes a serialized tree from the front of src and returns it with
// the number of bytes consumed.
//
// A valid tree has at most 256 leaves, each with a distinct symbol, which
// bounds the work done on hostile input.
func Parse(src []byte) (*Tree, int, error) {
	type slot struct {
		parent int32
		right  bool
	}

	t := &Tree{root: noChild}
	pending := make([]slot, 0, maxCodeLen)
	pending = append(pending, slot{parent: noChild})

	var seen [alphabetSize]bool
	internal := 0
	pos := 0
	for len(pending) > 0 {
		s := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if pos >= len(src) {
			return nil, pos, fmt.Errorf("%w: tree node marker at offset %d", ErrTruncatedStream, pos)
		}
		marker := src[pos]
		pos++

		var index int32
		switch marker {
		case markerLeaf:
			if pos >= len(src) {
				return nil, pos, fmt.Errorf("%w: leaf symbol at offset %d", ErrTruncatedStream, pos)
			}
			sym := src[pos]
			pos++
			if seen[sym] {
				return nil, pos, fmt.Errorf("%w: duplicate leaf symbol 0x%02x at offset %d", ErrMalformedTree, sym, pos-1)
			}
			seen[sym] = true
			index = t.add(Node{Left: noChild, Right: noChild, Symbol: sym})

		case markerInternal:
			internal++
			if internal > maxInternal {
				return nil, pos, fmt.Errorf("%w: more than %d internal nodes at offset %d", ErrMalformedTree, maxInternal, pos-1)
			}
			index = t.add(Node{})
			pending = append(pending, slot{parent: index, right: true}, slot{parent: index})

		default:
			return nil, pos, fmt.Errorf("%w: invalid marker 0x%02x at offset %d", ErrMalformedTree, marker, pos-1)
		}

		switch {
		case s.parent == noChild:
			t.root = index
		case s.right:
			t.nodes[s.parent].Right = index
		default:
			t.nodes[s.parent].Left = index
		}
	}

	return t, pos, nil
}
