// Package trie is the uncompressed word trie: one map level per rune, with
// the terminator stored as an ordinary key.
package trie

import "gitlab.com/pnathan/trieit/src/lib/utility"

type node map[rune]node

type Trie struct {
	data node
}

// New builds a trie from ss, skipping words the normalizer refuses.
func New(ss []string) *Trie {
	result := &Trie{data: node{}}
	for _, s := range ss {
		_ = result.Add(s)
	}
	return result
}

func (t Trie) ContainsPrefix(s string) bool {
	// definitionally either the empty string always exists or does not exist
	// here we define it as non existent.
	if s == "" {
		return false
	}
	query, ok := utility.Fold(s)
	if !ok {
		return false
	}
	return exists(t.data, query)
}

func (t Trie) IsWord(s string) bool {
	word, err := utility.Normalize(s)
	if err != nil {
		return false
	}
	return exists(t.data, word)
}

func (t Trie) Add(s string) error {
	word, err := utility.Normalize(s)
	if err != nil {
		return err
	}
	insert(t.data, word)
	return nil
}

// BranchCount is the number of non-terminator edges.
func (t Trie) BranchCount() int {
	return count(t.data, func(r rune) bool { return r != utility.Sentinel })
}

func (t Trie) WordCount() int {
	return count(t.data, func(r rune) bool { return r == utility.Sentinel })
}

func insert(t node, s []rune) {
	temp := t
	for _, c := range s {
		val, ok := temp[c]
		if !ok {
			val = node{}
			temp[c] = val
		}
		temp = val
	}
}

func exists(t node, s []rune) bool {
	temp := t
	for _, c := range s {
		val, ok := temp[c]
		if !ok {
			return false
		}
		temp = val
	}
	return true
}

func count(t node, keep func(rune) bool) int {
	total := 0
	for c, child := range t {
		if keep(c) {
			total++
		}
		total += count(child, keep)
	}
	return total
}
