package huffpack

// simplePRNG is a linear congruential generator so test inputs are the same
// on every platform.
type simplePRNG struct {
	state uint64
}

func newSimplePRNG(seed uint64) *simplePRNG {
	return &simplePRNG{state: seed}
}

func (p *simplePRNG) next() uint64 {
	p.state = p.state*6364136223846793005 + 1442695040888963407
	return p.state
}

// uniformBytes returns n bytes drawn evenly from the whole alphabet.
func uniformBytes(seed uint64, n int) []byte {
	p := newSimplePRNG(seed)
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(p.next() >> 56)
	}
	return out
}

// skewedBytes returns n bytes where low symbol values are far more common,
// which is the case Huffman coding compresses well.
func skewedBytes(seed uint64, n int) []byte {
	p := newSimplePRNG(seed)
	out := make([]byte, n)
	for i := range out {
		r := p.next() >> 32
		// Count trailing ones: P(k) halves with each extra symbol.
		k := 0
		for r&1 == 1 && k < 31 {
			r >>= 1
			k++
		}
		out[i] = 'a' + byte(k)
	}
	return out
}

func allSymbols(repeat int) []byte {
	out := make([]byte, 0, 256*repeat)
	for r := 0; r < repeat; r++ {
		for i := 0; i < 256; i++ {
			out = append(out, byte(i))
		}
	}
	return out
}

const proseSample = `It is a truth universally acknowledged, that a single man in possession
of a good fortune, must be in want of a wife. However little known the
feelings or views of such a man may be on his first entering a
neighbourhood, this truth is so well fixed in the minds of the surrounding
families, that he is considered as the rightful property of some one or
other of their daughters.`
