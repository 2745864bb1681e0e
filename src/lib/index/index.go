// Package index selects between the word index implementations.
package index

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/pnathan/trieit/src/lib/radix"
	"gitlab.com/pnathan/trieit/src/lib/utility/trie"
)

// WordIndex is the contract every implementation shares.
type WordIndex interface {
	Add(word string) error
	ContainsPrefix(prefix string) bool
	IsWord(word string) bool
	WordCount() int
}

// Brancher is implemented by the tries, which know their edge count.
type Brancher interface {
	BranchCount() int
}

type Kind int

const (
	Naive Kind = iota + 1
	Letters
	Compressed
)

// Kinds lists every Kind in selection order.
var Kinds = []Kind{Naive, Letters, Compressed}

func (k Kind) String() string {
	switch k {
	case Naive:
		return "naive"
	case Letters:
		return "letters"
	case Compressed:
		return "compressed"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts either the number or the name of a kind.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		for _, k := range Kinds {
			if int(k) == n {
				return k, nil
			}
		}
		return 0, fmt.Errorf("unknown index kind %d", n)
	}
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown index kind %q", s)
}

// Usage describes the kinds, one per line, for command line help.
func Usage() string {
	var sb strings.Builder
	for _, k := range Kinds {
		fmt.Fprintf(&sb, "%d %s\n", int(k), k)
	}
	return sb.String()
}

func New(k Kind) (WordIndex, error) {
	switch k {
	case Naive:
		return NewNaive(), nil
	case Letters:
		return trie.New(nil), nil
	case Compressed:
		return radix.New(), nil
	}
	return nil, fmt.Errorf("unknown index kind %v", k)
}
