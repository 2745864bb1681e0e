package index

import "gitlab.com/pnathan/trieit/src/lib/utility"

// NaiveIndex stores every strict prefix and every full word in maps. It is
// kept as the baseline the tries are measured against.
type NaiveIndex struct {
	prefixes map[string]struct{}
	words    map[string]struct{}
}

func NewNaive() *NaiveIndex {
	return &NaiveIndex{
		prefixes: map[string]struct{}{},
		words:    map[string]struct{}{},
	}
}

func (n *NaiveIndex) Add(word string) error {
	folded, err := utility.Normalize(word)
	if err != nil {
		return err
	}
	folded = folded[:len(folded)-1]
	n.words[string(folded)] = struct{}{}
	for i := 1; i < len(folded); i++ {
		n.prefixes[string(folded[:i])] = struct{}{}
	}
	return nil
}

func (n *NaiveIndex) ContainsPrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	folded, ok := utility.FoldString(prefix)
	if !ok {
		return false
	}
	if _, ok := n.prefixes[folded]; ok {
		return true
	}
	_, ok = n.words[folded]
	return ok
}

func (n *NaiveIndex) IsWord(word string) bool {
	folded, ok := utility.FoldString(word)
	if !ok {
		return false
	}
	_, ok = n.words[folded]
	return ok
}

func (n *NaiveIndex) WordCount() int {
	return len(n.words)
}
