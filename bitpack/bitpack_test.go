package bitpack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seiflotfy/huffpack/tree"
)

func buildCodes(t *testing.T, input []byte) (*tree.Tree, *tree.CodeTable) {
	t.Helper()
	tr, err := tree.Build(tree.Count(input))
	require.NoError(t, err)
	codes, err := tr.Codes()
	require.NoError(t, err)
	return tr, codes
}

func TestPackKnownVector(t *testing.T) {
	input := []byte("aaabbc")
	_, codes := buildCodes(t, input)

	payload, bits, err := Pack(input, codes)
	require.NoError(t, err)

	// a=0 a=0 a=0 b=11 b=11 c=10 -> 000 11 11 10 | 0000000 padding
	require.Equal(t, uint64(9), bits)
	require.Equal(t, []byte{0b00011111, 0b00000000}, payload)
}

func TestPackMSBFirst(t *testing.T) {
	input := []byte("abbb")
	tr, codes := buildCodes(t, input)

	payload, bits, err := Pack(input, codes)
	require.NoError(t, err)
	require.Equal(t, uint64(4), bits)

	// a is the lighter leaf, popped first, so it takes the left (0) edge.
	depth, ok := tr.Depth('a')
	require.True(t, ok)
	require.Equal(t, 1, depth)
	require.Equal(t, []byte{0b01110000}, payload)
}

func TestPackMissingCode(t *testing.T) {
	_, codes := buildCodes(t, []byte("abc"))

	_, _, err := Pack([]byte("abcd"), codes)
	require.ErrorIs(t, err, ErrMissingCode)
	require.Contains(t, err.Error(), "offset 3")
}

func TestPackEmpty(t *testing.T) {
	_, codes := buildCodes(t, []byte("abc"))

	payload, bits, err := Pack(nil, codes)
	require.NoError(t, err)
	require.Zero(t, bits)
	require.Empty(t, payload)
}

func TestPackSizedMatchesPack(t *testing.T) {
	input := []byte("the rain in spain stays mainly in the plain")
	freq := tree.Count(input)
	_, codes := buildCodes(t, input)

	want, wantBits, err := Pack(input, codes)
	require.NoError(t, err)
	got, gotBits, err := PackSized(input, codes, codes.EncodedBits(freq))
	require.NoError(t, err)

	require.Equal(t, want, got)
	require.Equal(t, wantBits, gotBits)
	require.Equal(t, codes.EncodedBits(freq), gotBits)
	require.Equal(t, (gotBits+7)/8, uint64(len(got)))
}

func TestUnpackRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"known vector", []byte("aaabbc")},
		{"single symbol", []byte("aaaa")},
		{"single byte", []byte{0x42}},
		{"byte aligned", []byte("aaaaaaaa")},
		{"text", []byte("Huffman coding assigns short codes to frequent symbols.")},
		{"binary", bytes.Repeat([]byte{0x00, 0xFF, 0x7F, 0x80, 0x01}, 97)},
		{"full alphabet", allBytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, codes := buildCodes(t, tt.input)

			payload, bits, err := Pack(tt.input, codes)
			require.NoError(t, err)
			require.Less(t, uint64(len(payload))*8-bits, uint64(8))

			got, err := Unpack(payload, tr, uint64(len(tt.input)))
			require.NoError(t, err)
			require.Equal(t, tt.input, got)
		})
	}
}

func TestUnpackTruncated(t *testing.T) {
	input := []byte("abracadabra, abracadabra")
	tr, codes := buildCodes(t, input)
	payload, _, err := Pack(input, codes)
	require.NoError(t, err)

	_, err = Unpack(payload[:len(payload)-1], tr, uint64(len(input)))
	require.ErrorIs(t, err, tree.ErrTruncatedStream)

	_, err = Unpack(payload, tr, uint64(len(input))+100)
	require.ErrorIs(t, err, tree.ErrTruncatedStream)
}

func TestUnpackOverrun(t *testing.T) {
	input := []byte("aaabbc")
	tr, codes := buildCodes(t, input)
	payload, _, err := Pack(input, codes)
	require.NoError(t, err)

	t.Run("trailing byte", func(t *testing.T) {
		_, err := Unpack(append(append([]byte(nil), payload...), 0x00), tr, uint64(len(input)))
		require.ErrorIs(t, err, ErrDecodeOverrun)
	})

	t.Run("non-zero padding", func(t *testing.T) {
		dirty := append([]byte(nil), payload...)
		dirty[len(dirty)-1] |= 0x01
		_, err := Unpack(dirty, tr, uint64(len(input)))
		require.ErrorIs(t, err, ErrDecodeOverrun)
	})

	t.Run("fewer symbols than encoded", func(t *testing.T) {
		_, err := Unpack(payload, tr, 2)
		require.ErrorIs(t, err, ErrDecodeOverrun)
	})

	t.Run("single symbol with 1-bit", func(t *testing.T) {
		single, _ := buildCodes(t, []byte("zz"))
		_, err := Unpack([]byte{0b01000000}, single, 2)
		require.ErrorIs(t, err, ErrDecodeOverrun)
	})
}

func TestUnpackAll(t *testing.T) {
	// 9 bits of payload; the 7 padding zeros decode to seven extra 'a's,
	// which is the ambiguity an explicit symbol count removes.
	input := []byte("aaabbc")
	tr, codes := buildCodes(t, input)
	payload, _, err := Pack(input, codes)
	require.NoError(t, err)

	got, err := UnpackAll(payload, tr)
	require.NoError(t, err)
	require.Equal(t, []byte("aaabbcaaaaaaa"), got)

	// "cb" packs to 1011 0000; the four padding zeros become four 'a's.
	payload, _, err = Pack([]byte("cb"), codes)
	require.NoError(t, err)
	got, err = UnpackAll(payload, tr)
	require.NoError(t, err)
	require.Equal(t, []byte("cbaaaa"), got)
}

func TestUnpackAllUnfinishedPath(t *testing.T) {
	input := []byte("aaabbc")
	tr, _ := buildCodes(t, input)

	// 11111111 -> b b b b; 01111111 -> a b b b and a dangling 1-bit.
	got, err := UnpackAll([]byte{0xFF}, tr)
	require.NoError(t, err)
	require.Equal(t, []byte("bbbb"), got)

	got, err = UnpackAll([]byte{0b01111111}, tr)
	require.NoError(t, err)
	require.Equal(t, []byte("abbb"), got)
}

func TestPaddingBits(t *testing.T) {
	require.Equal(t, uint8(0), PaddingBits(0))
	require.Equal(t, uint8(7), PaddingBits(1))
	require.Equal(t, uint8(0), PaddingBits(8))
	require.Equal(t, uint8(7), PaddingBits(9))
	require.Equal(t, uint8(1), PaddingBits(15))
}

func BenchmarkPack(b *testing.B) {
	input := bytes.Repeat([]byte("lorem ipsum dolor sit amet, consectetur adipiscing elit. "), 2048)
	tr, err := tree.Build(tree.Count(input))
	if err != nil {
		b.Fatal(err)
	}
	codes, err := tr.Codes()
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Pack(input, codes); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnpack(b *testing.B) {
	input := bytes.Repeat([]byte("lorem ipsum dolor sit amet, consectetur adipiscing elit. "), 2048)
	tr, err := tree.Build(tree.Count(input))
	if err != nil {
		b.Fatal(err)
	}
	codes, err := tr.Codes()
	if err != nil {
		b.Fatal(err)
	}
	payload, _, err := Pack(input, codes)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Unpack(payload, tr, uint64(len(input))); err != nil {
			b.Fatal(err)
		}
	}
}

func allBytes() []byte {
	out := make([]byte, 256)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}
