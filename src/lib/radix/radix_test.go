package radix

import (
	"errors"
	"fmt"
	"testing"

	"gitlab.com/pnathan/trieit/src/lib/utility"
)

func mustTree(t *testing.T, words ...string) *Tree {
	t.Helper()
	tree, err := NewFrom(words)
	if err != nil {
		t.Fatalf("NewFrom(%v): %v", words, err)
	}
	return tree
}

func TestPrefixesOfInsertedWords(t *testing.T) {
	tests := []struct {
		name  string
		words []string
	}{
		{name: "one", words: []string{"x"}},
		{name: "two", words: []string{"xo"}},
		{name: "three", words: []string{"xox"}},
		{name: "shared stem", words: []string{"testing", "test", "tester", "team", "tea"}},
		{name: "misc", words: []string{"XoXoXo", "XUXoXo"}},
		{name: "misc more", words: []string{"XoXoX1", "XoXoX2"}},
		{name: "nested", words: []string{"a", "ab", "abc", "abcd", "abcde"}},
		{name: "reverse nested", words: []string{"abcde", "abcd", "abc", "ab", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustTree(t, tt.words...)
			for _, w := range tt.words {
				for i := 1; i <= len(w); i++ {
					if !tree.ContainsPrefix(w[:i]) {
						t.Errorf("prefix %q of %q not found\n%v", w[:i], w, tree)
					}
				}
				if !tree.IsWord(w) {
					t.Errorf("word %q not found\n%v", w, tree)
				}
			}
			if got := tree.WordCount(); got != len(tt.words) {
				t.Errorf("WordCount() = %d, want %d\n%v", got, len(tt.words), tree)
			}
		})
	}
}

func TestExactCases(t *testing.T) {
	tree := mustTree(t,
		"XoXoX",
		"XoXoX1",
		"XoXoX2",
		"YoXoX",
	)
	if tree.ContainsPrefix("") {
		t.Errorf("found empty string")
	}
	if tree.ContainsPrefix("o") {
		t.Error("character wrongly installed")
	}
	if tree.ContainsPrefix("XoXoX2-AND") {
		t.Error("too long string detected")
	}
	if tree.IsWord("XoXo") {
		t.Error("prefix reported as word")
	}

	checks := []string{
		"X",
		"Y",
		"Xo",
		"Yo",
		"XoXoX",
		"XoXoX2",
	}
	for _, s := range checks {
		if !tree.ContainsPrefix(s) {
			t.Errorf("%q not installed", s)
		}
	}
}

func TestCaseInsensitive(t *testing.T) {
	tree := mustTree(t, "Apple")
	for _, q := range []string{"apple", "APPLE", "ApPlE", "app", "A"} {
		if !tree.ContainsPrefix(q) {
			t.Errorf("ContainsPrefix(%q) = false", q)
		}
	}
	for _, q := range []string{"apple", "APPLE", "ApPlE"} {
		if !tree.IsWord(q) {
			t.Errorf("IsWord(%q) = false", q)
		}
	}
}

func TestIdempotent(t *testing.T) {
	words := []string{"test", "team", "tes", "testing", "cat", "car", "cart", "a"}
	once := mustTree(t, words...)
	twice := mustTree(t, append(append([]string{}, words...), words...)...)

	if once.WordCount() != twice.WordCount() {
		t.Errorf("WordCount() %d != %d", once.WordCount(), twice.WordCount())
	}
	if once.BranchCount() != twice.BranchCount() {
		t.Errorf("BranchCount() %d != %d", once.BranchCount(), twice.BranchCount())
	}
	if once.String() != twice.String() {
		t.Errorf("structure differs:\n%v\nvs\n%v", once, twice)
	}
	for _, q := range []string{"te", "tes", "tea", "teas", "ca", "care", "b", "testing", "testings"} {
		if once.ContainsPrefix(q) != twice.ContainsPrefix(q) {
			t.Errorf("ContainsPrefix(%q) differs", q)
		}
		if once.IsWord(q) != twice.IsWord(q) {
			t.Errorf("IsWord(%q) differs", q)
		}
	}
}

func TestEdgeSplit(t *testing.T) {
	tree := mustTree(t, "test")
	if err := tree.Add("team"); err != nil {
		t.Fatal(err)
	}
	for _, q := range []string{"te", "tes", "tea", "test", "team"} {
		if !tree.ContainsPrefix(q) {
			t.Errorf("ContainsPrefix(%q) = false", q)
		}
	}
	for _, q := range []string{"tease", "tets", "x", "teamo"} {
		if tree.ContainsPrefix(q) {
			t.Errorf("ContainsPrefix(%q) = true", q)
		}
	}
	if got := tree.CountPrefix("te"); got != 2 {
		t.Errorf("CountPrefix(te) = %d, want 2", got)
	}
	if got := tree.WordCount(); got != 2 {
		t.Errorf("WordCount() = %d, want 2", got)
	}

	want := "(root) [1]\n" +
		"te [2]\n" +
		"  s [1]\n" +
		"    t^\n" +
		"  a [1]\n" +
		"    m^\n"
	if got := tree.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if got := tree.BranchCount(); got != 5 {
		t.Errorf("BranchCount() = %d, want 5", got)
	}
}

func TestTailNodes(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		dump  string
	}{
		{
			name:  "fresh branch keeps last rune apart",
			words: []string{"test"},
			dump:  "(root) [1]\ntes [1]\n  t^\n",
		},
		{
			name:  "two runes",
			words: []string{"ab"},
			dump:  "(root) [1]\na [1]\n  b^\n",
		},
		{
			name:  "one rune",
			words: []string{"a"},
			dump:  "(root) [1]\na^\n",
		},
		{
			name:  "empty word",
			words: []string{""},
			dump:  "(root) [1]\n^\n",
		},
		{
			name:  "split early before the last two",
			words: []string{"test", "tes"},
			dump:  "(root) [1]\nte [1]\n  s [2]\n    t^\n    ^\n",
		},
		{
			name:  "split inside the terminal run",
			words: []string{"cat", "car", "cart"},
			dump:  "(root) [1]\nca [2]\n  t^\n  r [2]\n    ^\n    t^\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustTree(t, tt.words...)
			if got := tree.String(); got != tt.dump {
				t.Errorf("String() =\n%s\nwant\n%s", got, tt.dump)
			}
			if got := tree.WordCount(); got != len(tt.words) {
				t.Errorf("WordCount() = %d, want %d", got, len(tt.words))
			}
		})
	}
}

func TestCatCarCart(t *testing.T) {
	tree := mustTree(t, "cat", "car", "cart")
	if !tree.ContainsPrefix("ca") {
		t.Error("ca not found")
	}
	// no child for 'e' below "car": the walk must report a miss
	if tree.ContainsPrefix("care") {
		t.Error("care found")
	}
	if tree.ContainsPrefix("cartoon") {
		t.Error("cartoon found")
	}
	if got := tree.WordCount(); got != 3 {
		t.Errorf("WordCount() = %d, want 3", got)
	}
	if got := tree.BranchCount(); got != 4 {
		t.Errorf("BranchCount() = %d, want 4", got)
	}
	if got := tree.CountPrefix("car"); got != 2 {
		t.Errorf("CountPrefix(car) = %d, want 2", got)
	}
	if !tree.IsWord("car") || tree.IsWord("ca") {
		t.Error("IsWord mismatch")
	}
}

func TestNegativeQueries(t *testing.T) {
	tree := mustTree(t, "alpha", "alphabet", "beta", "gamma")
	for _, q := range []string{"alpine", "alphas", "alphabets", "bet a", "c", "gam ma", "gammas", "zeta", "a\x00"} {
		if tree.ContainsPrefix(q) {
			t.Errorf("ContainsPrefix(%q) = true", q)
		}
	}
	if got := tree.CountPrefix("delta"); got != 0 {
		t.Errorf("CountPrefix(delta) = %d", got)
	}
}

func TestBranchFactor(t *testing.T) {
	tests := []string{"abc", "abcdefghijklmnopqrstuvwxyz"}
	for _, alphabet := range tests {
		t.Run(fmt.Sprintf("k=%d", len(alphabet)), func(t *testing.T) {
			tree := New()
			for _, a := range alphabet {
				for _, b := range alphabet {
					if err := tree.Add(string([]rune{a, b})); err != nil {
						t.Fatal(err)
					}
				}
			}
			k := len(alphabet)
			if got := tree.BranchCount(); got != k+k*k {
				t.Errorf("BranchCount() = %d, want %d", got, k+k*k)
			}
			if got := tree.WordCount(); got != k*k {
				t.Errorf("WordCount() = %d, want %d", got, k*k)
			}
			if got := tree.CountPrefix(alphabet[:1]); got != k {
				t.Errorf("CountPrefix() = %d, want %d", got, k)
			}
			if tree.ContainsPrefix("a!") {
				t.Error("a! found")
			}
		})
	}
}

func TestInvalidInput(t *testing.T) {
	tree := New()
	err := tree.Add("bad\x00word")
	var invalid *utility.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("Add() error = %v, want InvalidInputError", err)
	}
	if tree.Len() != 1 {
		t.Errorf("tree grew on invalid input: %d nodes", tree.Len())
	}
	if _, err := NewFrom([]string{"ok", "\x00"}); err == nil {
		t.Error("NewFrom accepted the terminator")
	}
}

func TestMalformedBytesStayDistinct(t *testing.T) {
	tree := New()
	if err := tree.Add("\xff"); err == nil {
		t.Fatal("Add() accepted malformed UTF-8")
	}
	if err := tree.Add("ok"); err != nil {
		t.Fatal(err)
	}
	for _, q := range []string{"\xff", "\xfe", "o\xfe"} {
		if tree.IsWord(q) || tree.ContainsPrefix(q) {
			t.Errorf("%q found", q)
		}
	}
	if got := tree.WordCount(); got != 1 {
		t.Errorf("WordCount() = %d, want 1", got)
	}
}

func TestAddRunes(t *testing.T) {
	tree := New()
	if err := tree.AddRunes([]rune("abc")); err == nil {
		t.Error("unterminated word accepted")
	}
	if err := tree.AddRunes([]rune{'a', utility.Sentinel, 'b', utility.Sentinel}); err == nil {
		t.Error("inner terminator accepted")
	}
	if err := tree.AddRunes(nil); err == nil {
		t.Error("empty slice accepted")
	}
	if err := tree.AddRunes([]rune{'a', 'b', utility.Sentinel}); err != nil {
		t.Fatal(err)
	}
	if !tree.IsWord("AB") {
		t.Error("ab not found")
	}
}

func TestCountPrefixEmpty(t *testing.T) {
	tree := mustTree(t, "one", "two", "three")
	if got := tree.CountPrefix(""); got != 3 {
		t.Errorf("CountPrefix(\"\") = %d, want 3", got)
	}
	if got := tree.CountPrefix("t"); got != 2 {
		t.Errorf("CountPrefix(t) = %d, want 2", got)
	}
	if got := tree.CountPrefix("thr"); got != 1 {
		t.Errorf("CountPrefix(thr) = %d, want 1", got)
	}
}
