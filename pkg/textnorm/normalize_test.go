package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single line", input: "abc", want: []string{"abc"}},
		{name: "trailing newline", input: "abc\n", want: []string{"abc"}},
		{name: "crlf", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "lone cr", input: "a\rb", want: []string{"a", "b"}},
		{name: "blank lines kept", input: "a\n\nb", want: []string{"a", "", "b"}},
		{name: "form feed and vertical tab", input: "a\fb\vc", want: []string{"a", "b", "c"}},
		{name: "unicode separators", input: "a\u2028b\u2029c\u0085d", want: []string{"a", "b", "c", "d"}},
		{name: "cr then lf counts once", input: "a\r\n\nb", want: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only blanks", input: "\n \n\t\n\u3000\n", want: ""},
		{name: "collapses blank lines", input: "Hello\n\nWorld", want: "Hello\nWorld"},
		{name: "windows terminators", input: "Hello\r\n\r\nWorld\r\n", want: "Hello\nWorld"},
		{name: "leading and trailing blank lines", input: "\n\nHello\n  \n", want: "Hello"},
		{name: "keeps inner spaces", input: "  indented  \nnext", want: "  indented  \nnext"},
		{name: "japanese text", input: "こんにちは\n\n世界\f", want: "こんにちは\n世界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"a\n\n\nb\r\n\r\nc",
		"\u3000\nx  y\n ",
		"line one\nline two",
		"\r\r\n\n",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
		assert.NotContains(t, once, Separator+Separator)
		if once != "" {
			assert.NotEqual(t, Separator, once[:1])
			assert.NotEqual(t, Separator, once[len(once)-1:])
		}
	}
}

func TestNormalize_FixedPoint(t *testing.T) {
	text := "first line\nsecond line\n三行目"
	assert.Equal(t, text, Normalize(text))
}

func TestLines(t *testing.T) {
	assert.Nil(t, Lines(""))
	assert.Equal(t, []string{"a"}, Lines("a"))
	assert.Equal(t, []string{"a", "b"}, Lines("a\nb"))
}

func TestCountCharacters(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		ignoreSpaces bool
		want         int
	}{
		{name: "empty", input: "", want: 0},
		{name: "separators excluded", input: "ab\ncd", want: 4},
		{name: "spaces counted", input: "a b\u3000c", want: 5},
		{name: "spaces ignored", input: "a b\u3000c", ignoreSpaces: true, want: 3},
		{name: "wide characters count once", input: "日本語\nテキスト", want: 7},
		{name: "tabs are not spaces", input: "a\tb", ignoreSpaces: true, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountCharacters(tt.input, tt.ignoreSpaces))
		})
	}
}

func TestCountCharacters_IgnoreSpacesNeverLarger(t *testing.T) {
	inputs := []string{"", " ", "a b c", "\u3000\u3000x", "no spaces", "日 本\n語"}
	for _, input := range inputs {
		assert.LessOrEqual(t, CountCharacters(input, true), CountCharacters(input, false), "input %q", input)
	}
}
