// Package radix is a path-compressed prefix trie over case-folded words.
//
// Every inserted word ends with utility.Sentinel, which is stored as an
// ordinary edge, so full words and bare prefixes are told apart without a
// flag. Non-branching chains are flattened into a node's run; the last real
// rune of a word and its terminator are always kept out of shared runs.
//
// Nodes live in an arena and refer to their children by index, which turns
// edge splitting into handle reassignment.
//
// A Tree is not safe for concurrent mutation. Readers may run in parallel
// while no Add is in progress.
package radix

import (
	"slices"

	"gitlab.com/pnathan/trieit/src/lib/utility"
)

type nodeID uint32

const root nodeID = 0

type node struct {
	// char is the rune on the edge into this node. Unused for the root.
	char rune
	// depth is the number of word positions consumed once char matched.
	depth int
	// run holds the flattened single-child chain following char.
	run []rune
	// children are scanned linearly; the fan-out is bounded by the alphabet.
	children []nodeID
}

func (n *node) terminal() bool {
	if n.char == utility.Sentinel {
		return true
	}
	return len(n.run) > 0 && n.run[len(n.run)-1] == utility.Sentinel
}

// Tree is the compressed trie. The zero value is not usable; call New.
type Tree struct {
	nodes []node
}

func New() *Tree {
	t := &Tree{nodes: make([]node, 1, 64)}
	return t
}

// NewFrom builds a tree from words, stopping at the first invalid one.
func NewFrom(words []string) (*Tree, error) {
	t := New()
	for _, w := range words {
		if err := t.Add(w); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tree) newNode(char rune, depth int, run []rune, children []nodeID) nodeID {
	id := nodeID(len(t.nodes))
	if len(run) == 0 {
		run = nil
	}
	t.nodes = append(t.nodes, node{char: char, depth: depth, run: run, children: children})
	return id
}

func (t *Tree) attach(parent, child nodeID) {
	t.nodes[parent].children = append(t.nodes[parent].children, child)
}

func (t *Tree) child(parent nodeID, char rune) (nodeID, bool) {
	for _, c := range t.nodes[parent].children {
		if t.nodes[c].char == char {
			return c, true
		}
	}
	return 0, false
}

// Len reports the number of nodes in the arena, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func clip(r []rune) []rune {
	if len(r) == 0 {
		return nil
	}
	return slices.Clip(r)
}
