package radix

import (
	"fmt"
	"strings"

	"gitlab.com/pnathan/trieit/src/lib/utility"
)

// BranchCount is the number of nodes, root excluded, whose edge rune is not
// the terminator.
func (t *Tree) BranchCount() int {
	return t.count(root, func(n *node) bool { return n.char != utility.Sentinel })
}

// WordCount is the number of distinct words inserted.
func (t *Tree) WordCount() int {
	return t.words(root)
}

// words counts terminators in the subtree of n, n included.
func (t *Tree) words(n nodeID) int {
	total := 0
	if n != root && t.nodes[n].terminal() {
		total++
	}
	return total + t.count(n, (*node).terminal)
}

// count visits the descendants of n and counts those matching keep.
func (t *Tree) count(n nodeID, keep func(*node) bool) int {
	total := 0
	for _, c := range t.nodes[n].children {
		if keep(&t.nodes[c]) {
			total++
		}
		total += t.count(c, keep)
	}
	return total
}

// String dumps the tree one node per line, indented by level. The
// terminator is shown as '^'.
func (t *Tree) String() string {
	var sb strings.Builder
	t.dump(&sb, root, 0)
	return sb.String()
}

func (t *Tree) dump(sb *strings.Builder, id nodeID, level int) {
	n := &t.nodes[id]
	if id == root {
		sb.WriteString("(root)")
	} else {
		sb.WriteString(strings.Repeat("  ", level-1))
		sb.WriteString(printable(n.char))
		for _, r := range n.run {
			sb.WriteString(printable(r))
		}
	}
	if len(n.children) > 0 {
		fmt.Fprintf(sb, " [%d]", len(n.children))
	}
	sb.WriteByte('\n')
	for _, c := range n.children {
		t.dump(sb, c, level+1)
	}
}

func printable(r rune) string {
	if r == utility.Sentinel {
		return "^"
	}
	return string(r)
}
