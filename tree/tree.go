// Package tree builds, walks and serializes the Huffman prefix tree.
//
// Nodes live in a flat arena and reference their children by index, so a
// tree can be built, walked and serialized without recursion.
package tree

import (
	"container/heap"
	"errors"
)

const (
	alphabetSize = 256 // alphabetSize is the number of distinct byte symbols.
	noChild      = -1  // noChild marks the child slots of a leaf.
	firstMergeID = 256 // firstMergeID is the tie-break sequence of the first internal node.
	maxInternal  = alphabetSize - 1
)

var (
	// ErrEmptyInput indicates a tree was requested for input with no symbols.
	ErrEmptyInput = errors.New("empty input")
	// ErrTruncatedStream indicates the source ended before a structure was complete.
	ErrTruncatedStream = errors.New("truncated stream")
	// ErrMalformedTree indicates serialized tree bytes that no encoder produces.
	ErrMalformedTree = errors.New("malformed tree")
	// ErrCodeTooLong indicates a leaf deeper than 64 levels.
	ErrCodeTooLong = errors.New("code longer than 64 bits")
)

// Frequencies counts the occurrences of each byte value.
type Frequencies [alphabetSize]uint64

// Count returns the frequency table of data.
func Count(data []byte) Frequencies {
	var f Frequencies
	f.Add(data)
	return f
}

// Add counts the bytes of data into f.
func (f *Frequencies) Add(data []byte) {
	for _, b := range data {
		f[b]++
	}
}

// Total returns the number of bytes counted.
func (f *Frequencies) Total() uint64 {
	var total uint64
	for _, n := range f {
		total += n
	}
	return total
}

// Distinct returns the number of symbols with a non-zero count.
func (f *Frequencies) Distinct() int {
	distinct := 0
	for _, n := range f {
		if n > 0 {
			distinct++
		}
	}
	return distinct
}

// Symbols returns the present symbols in ascending order.
func (f *Frequencies) Symbols() []byte {
	symbols := make([]byte, 0, alphabetSize)
	for s, n := range f {
		if n > 0 {
			symbols = append(symbols, byte(s))
		}
	}
	return symbols
}

// Node is one arena slot. A leaf has both children set to -1; an internal
// node has two valid children and no symbol.
type Node struct {
	Weight uint64 // Sum of leaf frequencies below the node (0 for parsed trees)
	Left   int32
	Right  int32
	Symbol byte
}

// IsLeaf reports whether n holds a symbol.
func (n Node) IsLeaf() bool {
	return n.Left == noChild
}

// Tree is a strict binary prefix tree stored as an arena of nodes.
type Tree struct {
	nodes []Node
	root  int32
}

func (t *Tree) add(n Node) int32 {
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// Root returns the arena index of the root node.
func (t *Tree) Root() int32 {
	return t.root
}

// Node returns the node at index i.
func (t *Tree) Node(i int32) Node {
	return t.nodes[i]
}

// Len returns the total number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Leaves returns the number of leaf nodes.
func (t *Tree) Leaves() int {
	leaves := 0
	for _, n := range t.nodes {
		if n.IsLeaf() {
			leaves++
		}
	}
	return leaves
}

// Internal returns the number of internal nodes.
func (t *Tree) Internal() int {
	return len(t.nodes) - t.Leaves()
}

// RootSymbol returns the root's symbol when the root is a leaf.
func (t *Tree) RootSymbol() (byte, bool) {
	root := t.nodes[t.root]
	return root.Symbol, root.IsLeaf()
}

// Symbols returns the leaf symbols in ascending order.
func (t *Tree) Symbols() []byte {
	var present [alphabetSize]bool
	for _, n := range t.nodes {
		if n.IsLeaf() {
			present[n.Symbol] = true
		}
	}
	symbols := make([]byte, 0, alphabetSize)
	for s, ok := range present {
		if ok {
			symbols = append(symbols, byte(s))
		}
	}
	return symbols
}

// Depth returns the depth of the leaf holding sym. The root has depth 0.
func (t *Tree) Depth(sym byte) (int, bool) {
	type frame struct {
		index int32
		depth int
	}
	stack := []frame{{index: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[f.index]
		if n.IsLeaf() {
			if n.Symbol == sym {
				return f.depth, true
			}
			continue
		}
		stack = append(stack, frame{n.Right, f.depth + 1}, frame{n.Left, f.depth + 1})
	}
	return 0, false
}

// Equal reports whether t and other have the same shape and the same leaf
// symbols in the same positions. Weights and arena order are ignored.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.nodes) != len(other.nodes) {
		return false
	}
	stack := [][2]int32{{t.root, other.root}}
	for len(stack) > 0 {
		pair := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a, b := t.nodes[pair[0]], other.nodes[pair[1]]
		if a.IsLeaf() != b.IsLeaf() {
			return false
		}
		if a.IsLeaf() {
			if a.Symbol != b.Symbol {
				return false
			}
			continue
		}
		stack = append(stack, [2]int32{a.Right, b.Right}, [2]int32{a.Left, b.Left})
	}
	return true
}

// Build constructs the Huffman tree for freq.
//
// The two lightest nodes are merged repeatedly; the first one popped becomes
// the left child. Equal weights are ordered by sequence number: a leaf uses
// its symbol value and internal nodes are numbered from 256 in creation
// order, so the result depends only on freq.
func Build(freq Frequencies) (*Tree, error) {
	distinct := freq.Distinct()
	if distinct == 0 {
		return nil, ErrEmptyInput
	}

	t := &Tree{nodes: make([]Node, 0, 2*distinct-1)}
	queue := make(nodeQueue, 0, distinct)
	for s, weight := range freq {
		if weight == 0 {
			continue
		}
		index := t.add(Node{Weight: weight, Left: noChild, Right: noChild, Symbol: byte(s)})
		queue = append(queue, queueItem{weight: weight, seq: uint32(s), index: index})
	}
	heap.Init(&queue)

	seq := uint32(firstMergeID)
	for queue.Len() > 1 {
		left := heap.Pop(&queue).(queueItem)
		right := heap.Pop(&queue).(queueItem)
		weight := left.weight + right.weight
		index := t.add(Node{Weight: weight, Left: left.index, Right: right.index})
		heap.Push(&queue, queueItem{weight: weight, seq: seq, index: index})
		seq++
	}

	t.root = queue[0].index
	return t, nil
}

type queueItem struct {
	weight uint64
	seq    uint32
	index  int32
}

// nodeQueue is a min-heap ordered by (weight, seq).
type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].weight != q[j].weight {
		return q[i].weight < q[j].weight
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
