package huffpack_test

import (
	"bytes"
	"fmt"

	"github.com/seiflotfy/huffpack"
)

// Example demonstrates a compress/decompress round trip.
func Example() {
	artifact, err := huffpack.Compress([]byte("aaabbc"))
	if err != nil {
		panic(err)
	}
	fmt.Printf("Compressed to %d bytes: % x\n", len(artifact), artifact)

	original, err := huffpack.Decompress(artifact)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Decompressed: %s\n", original)

	// Output:
	// Compressed to 16 bytes: 48 55 46 32 06 00 00 01 61 00 01 63 01 62 1f 00
	// Decompressed: aaabbc
}

// ExampleEncoder_EncodeWithStats shows the code assigned to each symbol and
// the size statistics of one compression.
func ExampleEncoder_EncodeWithStats() {
	a, stats, err := huffpack.NewEncoder().EncodeWithStats([]byte("aaabbc"))
	if err != nil {
		panic(err)
	}

	codes, err := a.Tree.Codes()
	if err != nil {
		panic(err)
	}
	for _, sym := range a.Tree.Symbols() {
		code, _ := codes.Lookup(sym)
		fmt.Printf("%c: %s\n", sym, code)
	}
	fmt.Printf("payload bits: %d, padding: %d\n", stats.PayloadBits, stats.PaddingBits)

	// Output:
	// a: 0
	// b: 11
	// c: 10
	// payload bits: 9, padding: 7
}

// ExampleArtifact_ReadFrom demonstrates serializing an artifact and loading
// it back.
func ExampleArtifact_ReadFrom() {
	a, err := huffpack.NewEncoder().Encode([]byte("hello world"))
	if err != nil {
		panic(err)
	}

	var buf bytes.Buffer
	if _, err := a.WriteTo(&buf); err != nil {
		panic(err)
	}

	var loaded huffpack.Artifact
	if _, err := loaded.ReadFrom(&buf); err != nil {
		panic(err)
	}
	out, err := huffpack.NewDecoder().Decode(&loaded)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s (%s format, %d bytes)\n", out, loaded.Format, loaded.Count)

	// Output:
	// hello world (current format, 11 bytes)
}
