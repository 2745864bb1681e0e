package utility

import (
	"fmt"
	"unicode/utf8"
)

// Sentinel terminates every normalized word. Folding never produces it, and
// words carrying it are refused.
const Sentinel rune = 0

// InvalidInputError reports a word that cannot be indexed.
type InvalidInputError struct {
	Word   string
	Offset int
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s at rune %d", e.Word, e.Reason, e.Offset)
}

const (
	reasonSentinel = "reserved terminator"
	reasonEncoding = "malformed UTF-8"
)

func fold(r rune) rune {
	// unsigned compare: one branch for 'A' <= r <= 'Z'
	if uint32(r-'A') <= 'Z'-'A' {
		return r | 0x20
	}
	return r
}

// foldInto appends the folded runes of word to out. Malformed bytes are
// refused rather than decoded to utf8.RuneError, so distinct byte strings
// never collapse onto one word.
func foldInto(out []rune, word string) ([]rune, error) {
	for i := 0; i < len(word); {
		r, size := utf8.DecodeRuneInString(word[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			return nil, &InvalidInputError{Word: word, Offset: len(out), Reason: reasonEncoding}
		case r == Sentinel:
			return nil, &InvalidInputError{Word: word, Offset: len(out), Reason: reasonSentinel}
		}
		out = append(out, fold(r))
		i += size
	}
	return out, nil
}

// Normalize folds ASCII upper case letters and appends the Sentinel.
func Normalize(word string) ([]rune, error) {
	out, err := foldInto(make([]rune, 0, len(word)+1), word)
	if err != nil {
		return nil, err
	}
	return append(out, Sentinel), nil
}

// Fold is Normalize for queries: no terminator is appended. ok is false
// when the query could never have been added, because it holds the Sentinel
// or is not valid UTF-8.
func Fold(word string) (folded []rune, ok bool) {
	folded, err := foldInto(make([]rune, 0, len(word)), word)
	return folded, err == nil
}

// FoldString is Fold returned as a string, for map keyed indexes.
func FoldString(word string) (string, bool) {
	folded, ok := Fold(word)
	if !ok {
		return "", false
	}
	return string(folded), true
}
