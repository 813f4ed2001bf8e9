package textnorm

import (
	"strings"
	"unicode/utf8"
)

// Separator is the line terminator used by normalized text
const Separator = "\n"

const (
	halfWidthSpace = " "
	fullWidthSpace = "\u3000"
)

// isLineBoundary reports whether r terminates a line. \r\n is handled by the caller.
func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// SplitLines splits text on every recognized line boundary.
// A trailing boundary does not produce an empty final line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBoundary(r) {
			i += size
			continue
		}

		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}

	if start < len(text) {
		lines = append(lines, text[start:])
	}

	return lines
}

// Normalize drops blank lines and joins the rest with Separator
func Normalize(text string) string {
	lines := SplitLines(text)
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, Separator)
}

// Lines splits normalized text back into its lines
func Lines(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, Separator)
}

// CountCharacters counts the runes of text, excluding line separators.
// With ignoreSpaces, half-width and full-width spaces are excluded as well.
func CountCharacters(text string, ignoreSpaces bool) int {
	cleaned := strings.ReplaceAll(text, Separator, "")

	if ignoreSpaces {
		cleaned = strings.ReplaceAll(cleaned, halfWidthSpace, "")
		cleaned = strings.ReplaceAll(cleaned, fullWidthSpace, "")
	}

	return utf8.RuneCountInString(cleaned)
}
