package tree

import (
	"fmt"
)

const maxCodeLen = 64

// Code is a prefix code held in the low Len bits of Bits, most significant
// bit first.
type Code struct {
	Bits uint64
	Len  uint8
}

// String renders the code as a string of '0' and '1'.
func (c Code) String() string {
	if c.Len == 0 {
		return ""
	}
	return fmt.Sprintf("%0*b", int(c.Len), c.Bits)
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	return c.Bits>>(c.Len-p.Len) == p.Bits
}

// CodeTable maps each symbol to its code. Absent symbols have a zero-length
// code.
type CodeTable struct {
	codes [alphabetSize]Code
}

// Lookup returns the code for sym.
func (ct *CodeTable) Lookup(sym byte) (Code, bool) {
	c := ct.codes[sym]
	return c, c.Len > 0
}

// Len returns the number of symbols with a code.
func (ct *CodeTable) Len() int {
	n := 0
	for _, c := range ct.codes {
		if c.Len > 0 {
			n++
		}
	}
	return n
}

// MaxLen returns the longest code length in the table.
func (ct *CodeTable) MaxLen() uint8 {
	var longest uint8
	for _, c := range ct.codes {
		longest = max(longest, c.Len)
	}
	return longest
}

// EncodedBits returns the number of payload bits needed to encode input with
// the given frequencies, excluding padding.
func (ct *CodeTable) EncodedBits(freq Frequencies) uint64 {
	var bits uint64
	for s, n := range freq {
		bits += n * uint64(ct.codes[s].Len)
	}
	return bits
}

// Codes derives the code table by walking the tree: a left edge appends a
// 0-bit, a right edge a 1-bit. A tree made of a single leaf assigns that
// symbol the one-bit code "0".
func (t *Tree) Codes() (*CodeTable, error) {
	if len(t.nodes) == 0 {
		return nil, ErrEmptyInput
	}

	ct := &CodeTable{}
	if root := t.nodes[t.root]; root.IsLeaf() {
		ct.codes[root.Symbol] = Code{Bits: 0, Len: 1}
		return ct, nil
	}

	type frame struct {
		index int32
		code  Code
	}
	stack := make([]frame, 0, maxCodeLen)
	stack = append(stack, frame{index: t.root})
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[f.index]
		if n.IsLeaf() {
			ct.codes[n.Symbol] = f.code
			continue
		}
		if f.code.Len == maxCodeLen {
			return nil, fmt.Errorf("%w: below node %d", ErrCodeTooLong, f.index)
		}
		stack = append(stack,
			frame{n.Right, Code{Bits: f.code.Bits<<1 | 1, Len: f.code.Len + 1}},
			frame{n.Left, Code{Bits: f.code.Bits << 1, Len: f.code.Len + 1}},
		)
	}
	return ct, nil
}
