package radix

import "gitlab.com/pnathan/trieit/src/lib/utility"

// ContainsPrefix reports whether some inserted word starts with prefix.
// The empty prefix is never reported as present.
func (t *Tree) ContainsPrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	query, ok := utility.Fold(prefix)
	if !ok {
		return false
	}
	_, found := t.locate(query)
	return found
}

// IsWord reports whether word itself was inserted.
func (t *Tree) IsWord(word string) bool {
	normalized, err := utility.Normalize(word)
	if err != nil {
		return false
	}
	_, found := t.locate(normalized)
	return found
}

// CountPrefix returns how many inserted words start with prefix. The empty
// prefix counts every word.
func (t *Tree) CountPrefix(prefix string) int {
	query, ok := utility.Fold(prefix)
	if !ok {
		return 0
	}
	n, found := t.locate(query)
	if !found {
		return 0
	}
	return t.words(n)
}

// locate walks query from the root and returns the node in which the query
// ran out, inside its run or at its end.
func (t *Tree) locate(query []rune) (nodeID, bool) {
	cur := root
	for {
		n := &t.nodes[cur]
		d := n.depth
		if d == len(query) {
			return cur, true
		}

		for i := 0; d < len(query) && i < len(n.run); i, d = i+1, d+1 {
			if n.run[i] != query[d] {
				return 0, false
			}
		}
		if d == len(query) {
			return cur, true
		}

		next, ok := t.child(cur, query[d])
		if !ok {
			return 0, false
		}
		cur = next
	}
}
