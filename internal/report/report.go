package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leaanthony/go-ansi-parser"
	"github.com/mattn/go-runewidth"

	"github.com/Hanaasagi/ocrdiff/internal/pipeline"
	"github.com/Hanaasagi/ocrdiff/pkg/seqdiff"
)

// Options controls what the report shows
type Options struct {
	// IgnoreSpaces excludes half and full width spaces from the counts
	IgnoreSpaces bool
	// CharDiff prints the character level changes under the differ header
	CharDiff bool
	// ShowUnchanged also prints unchanged characters of the character diff
	ShowUnchanged bool
	Styles        Styles
}

func DefaultOptions() Options {
	return Options{
		IgnoreSpaces: true,
		CharDiff:     true,
		Styles:       DefaultStyles(),
	}
}

// Render formats the console report of one run
func Render(res *pipeline.Result, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "----actual[count : %d]----\n", res.ActualCount(opts.IgnoreSpaces))
	writeBlock(&b, res.Actual)
	fmt.Fprintf(&b, "----expected[count : %d]----\n", res.ExpectedCount(opts.IgnoreSpaces))
	writeBlock(&b, res.Expected)

	b.WriteString("----differ----\n")
	if opts.CharDiff {
		for _, e := range res.Diff.Chars {
			if e.Tag == seqdiff.Unchanged && !opts.ShowUnchanged {
				continue
			}
			b.WriteString(opts.Styles.paint(e.Tag, e.String()))
			b.WriteByte('\n')
		}
	}

	var prev string
	for _, e := range res.Diff.Lines {
		line := e.String()
		if e.Tag == seqdiff.Marker {
			line = e.Tag.Prefix() + AlignMarker(prev, e.Text)
		} else {
			prev = e.Text
		}
		b.WriteString(opts.Styles.paint(e.Tag, line))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "similarity : %s\n", FormatRatio(res.Diff.Ratio))
	return b.String()
}

// Plain removes every ANSI style from rendered output
func Plain(rendered string) (string, error) {
	return ansi.Cleanse(rendered)
}

func writeBlock(b *strings.Builder, text string) {
	b.WriteString(text)
	b.WriteByte('\n')
}

func (s Styles) paint(tag seqdiff.Tag, text string) string {
	var c Color
	switch tag {
	case seqdiff.Added:
		c = s.Added
	case seqdiff.Removed:
		c = s.Removed
	case seqdiff.Marker:
		c = s.Marker
	}
	if c == nil {
		return text
	}
	return c.Sprint(text)
}

// AlignMarker widens a guide line so that each guide character sits under
// its rune of line when wide runes take two terminal cells.
func AlignMarker(line, guide string) string {
	runes := []rune(line)

	var b strings.Builder
	for i, g := range []rune(guide) {
		if g == '\t' || i >= len(runes) {
			b.WriteRune(g)
			continue
		}
		b.WriteString(strings.Repeat(string(g), runewidth.RuneWidth(runes[i])))
	}
	return b.String()
}

// FormatRatio prints the shortest representation that keeps one decimal
func FormatRatio(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
