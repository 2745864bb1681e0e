package utility_test

import (
	"errors"
	"reflect"
	"testing"

	"gitlab.com/pnathan/trieit/src/lib/utility"
)

func TestCaseInt(t *testing.T) {
	b1 := []int{1, 2}
	b2 := []int{3, 4}
	b3 := utility.Concat(b1, b2)
	if !reflect.DeepEqual(b3, []int{1, 2, 3, 4}) {
		t.Errorf("Concat() = %v", b3)
	}
}

func TestCaseByte(t *testing.T) {
	b1 := []byte{1, 2}
	b2 := []byte{3, 4}
	b3 := utility.Concat(b1, b2)
	if !reflect.DeepEqual(b3, []byte{1, 2, 3, 4}) {
		t.Errorf("Concat() = %v", b3)
	}
}

func TestVarints(t *testing.T) {
	if got := utility.UintToBytes(1); !reflect.DeepEqual(got, []byte{1}) {
		t.Errorf("UintToBytes(1) = %v", got)
	}
	if got := utility.IntToBytes(-1); !reflect.DeepEqual(got, []byte{1}) {
		t.Errorf("IntToBytes(-1) = %v", got)
	}
	if got := utility.UintToBytes(300); len(got) != 2 {
		t.Errorf("UintToBytes(300) = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	s := utility.Sentinel
	tests := []struct {
		name string
		word string
		want []rune
	}{
		{name: "empty", word: "", want: []rune{s}},
		{name: "lower", word: "abc", want: []rune{'a', 'b', 'c', s}},
		{name: "upper", word: "ApPlE", want: []rune{'a', 'p', 'p', 'l', 'e', s}},
		{name: "boundaries", word: "@AZ[", want: []rune{'@', 'a', 'z', '[', s}},
		{name: "digits and marks", word: "R2-D2", want: []rune{'r', '2', '-', 'd', '2', s}},
		{name: "non ascii untouched", word: "Ärger", want: []rune{'Ä', 'r', 'g', 'e', 'r', s}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utility.Normalize(tt.word)
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.word, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestNormalizeRejectsSentinel(t *testing.T) {
	_, err := utility.Normalize("ab\x00c")
	var invalid *utility.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("Normalize() error = %v, want InvalidInputError", err)
	}
	if invalid.Offset != 2 {
		t.Errorf("Offset = %d, want 2", invalid.Offset)
	}
}

func TestFold(t *testing.T) {
	got, ok := utility.Fold("HeLLo")
	if !ok || string(got) != "hello" {
		t.Errorf("Fold() = %q, %v", string(got), ok)
	}
	if _, ok := utility.Fold("he\x00"); ok {
		t.Error("Fold() accepted the terminator")
	}
	if s, ok := utility.FoldString("ABC"); !ok || s != "abc" {
		t.Errorf("FoldString() = %q, %v", s, ok)
	}
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		word   string
		offset int
	}{
		{name: "lone byte", word: "\xff", offset: 0},
		{name: "after text", word: "ab\xfe", offset: 2},
		{name: "truncated", word: "na\xc3", offset: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := utility.Normalize(tt.word)
			var invalid *utility.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("Normalize(%q) error = %v, want InvalidInputError", tt.word, err)
			}
			if invalid.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", invalid.Offset, tt.offset)
			}
			if _, ok := utility.Fold(tt.word); ok {
				t.Errorf("Fold(%q) accepted malformed input", tt.word)
			}
		})
	}

	// an encoded replacement character is a real rune
	if got, err := utility.Normalize("\uFFFD"); err != nil || len(got) != 2 {
		t.Errorf("Normalize(U+FFFD) = %v, %v", got, err)
	}
}
