package seqdiff

import (
	"strings"

	"github.com/Hanaasagi/ocrdiff/pkg/textnorm"
)

// Report holds the line and character level comparison of two normalized texts
type Report struct {
	Lines []Entry
	Chars []Entry
	Ratio float64
}

// CompareText compares actual against expected.
// Both texts are expected to be normalized already.
func CompareText(actual, expected string) Report {
	return Report{
		Lines: Compare(textnorm.Lines(actual), textnorm.Lines(expected)),
		Chars: Compare(splitRunes(actual), splitRunes(expected)),
		Ratio: Similarity(actual, expected),
	}
}

// Similarity returns the character level ratio of two texts.
//
// The greedy block search is order sensitive, so the pair is put in
// lexicographic order first and Similarity(a, b) == Similarity(b, a).
func Similarity(a, b string) float64 {
	if strings.Compare(b, a) < 0 {
		a, b = b, a
	}
	return NewMatcher([]rune(a), []rune(b)).Ratio()
}

// Changes keeps only Added and Removed entries
func Changes(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Tag == Added || e.Tag == Removed {
			out = append(out, e)
		}
	}
	return out
}

// HasChanges reports whether the report contains any Added or Removed entry
func (r Report) HasChanges() bool {
	return len(Changes(r.Chars)) > 0 || len(Changes(r.Lines)) > 0
}

// Count returns how many entries carry the given tag
func Count(entries []Entry, tag Tag) int {
	n := 0
	for _, e := range entries {
		if e.Tag == tag {
			n++
		}
	}
	return n
}

func splitRunes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
