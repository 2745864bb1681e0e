package radix

import (
	"slices"

	"gitlab.com/pnathan/trieit/src/lib/utility"
)

// Add folds and terminates word, then inserts it. Adding a word twice
// changes nothing a query can observe.
func (t *Tree) Add(word string) error {
	normalized, err := utility.Normalize(word)
	if err != nil {
		return err
	}
	t.insert(normalized)
	return nil
}

// AddRunes inserts an already normalized word. It must end with the
// sentinel and hold no other one.
func (t *Tree) AddRunes(word []rune) error {
	last := len(word) - 1
	if last < 0 || word[last] != utility.Sentinel {
		return &utility.InvalidInputError{Word: string(word), Offset: len(word), Reason: "missing terminator"}
	}
	if i := slices.Index(word[:last], utility.Sentinel); i >= 0 {
		return &utility.InvalidInputError{Word: string(word), Offset: i, Reason: "reserved terminator"}
	}
	t.insert(word)
	return nil
}

func (t *Tree) insert(word []rune) {
	cur := root
	for {
		d := t.nodes[cur].depth
		if d == len(word) {
			return
		}

		if run := t.nodes[cur].run; run != nil {
			// split trails i by one once only the last real rune and the
			// terminator are left, so those two never land in a shared run.
			i, split := 0, 0
			for d < len(word) && i < len(run) && run[i] == word[d] {
				d++
				i++
				if d < len(word)-1 {
					split++
				}
			}
			if d == len(word) {
				return
			}
			if split < i {
				d -= i - split
				i = split
			}
			if i < len(run) {
				t.split(cur, i, d)
			}
		}

		if next, ok := t.child(cur, word[d]); ok {
			cur = next
			continue
		}

		t.attach(cur, t.branch(word, d))
		return
	}
}

// split cuts the run of n at i. The remainder moves into a new child that
// takes over n's children and becomes n's only child. d is the word
// position of run[i].
func (t *Tree) split(n nodeID, i, d int) {
	run := t.nodes[n].run
	rest := run[i:]
	moved := t.newNode(rest[0], d+1, clip(rest[1:]), t.nodes[n].children)
	t.nodes[n].run = clip(run[:i])
	t.nodes[n].children = []nodeID{moved}
}

// branch builds the nodes holding word[d:] and returns the top one.
func (t *Tree) branch(word []rune, d int) nodeID {
	rest := word[d+1:]
	if len(rest) <= 1 {
		return t.newNode(word[d], d+1, slices.Clone(rest), nil)
	}

	flat := rest[:len(rest)-2]
	tail := t.newNode(rest[len(rest)-2], len(word)-1, slices.Clone(rest[len(rest)-1:]), nil)
	return t.newNode(word[d], d+1, slices.Clone(flat), []nodeID{tail})
}
