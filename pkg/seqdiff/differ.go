package seqdiff

import (
	"strings"
	"unicode"
)

// Tag classifies a diff entry
type Tag int

const (
	// Unchanged elements are present in both sequences
	Unchanged Tag = iota
	// Added elements are only present in the second (expected) sequence
	Added
	// Removed elements are only present in the first (actual) sequence
	Removed
	// Marker entries are guide lines pointing at intraline changes of the
	// preceding Removed or Added line
	Marker
)

// Prefix returns the two character prefix of the classic differ output
func (t Tag) Prefix() string {
	switch t {
	case Added:
		return "+ "
	case Removed:
		return "- "
	case Marker:
		return "? "
	default:
		return "  "
	}
}

// String returns the tag name
func (t Tag) String() string {
	switch t {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Marker:
		return "marker"
	default:
		return "unknown"
	}
}

// Entry is one element of a diff
type Entry struct {
	Tag  Tag
	Text string
}

// String renders the entry with its prefix
func (e Entry) String() string {
	return e.Tag.Prefix() + e.Text
}

const (
	// a replaced pair is only synced up when its ratio exceeds this
	syncCutoff = 0.75
	// initial best ratio while searching for the closest pair
	syncFloor = 0.74
)

// Compare diffs two sequences of lines.
//
// Regions that were replaced are searched for their most similar pair of
// lines; such a pair is emitted as a Removed/Added couple with Marker guide
// lines showing the intraline edits, and the lines around it are processed
// recursively.
func Compare(a, b []string) []Entry {
	d := &differ{}
	m := NewMatcher(a, b)
	for _, op := range m.OpCodes() {
		switch op.Tag {
		case OpReplace:
			d.fancyReplace(a, op.I1, op.I2, b, op.J1, op.J2)
		case OpDelete:
			d.dump(Removed, a, op.I1, op.I2)
		case OpInsert:
			d.dump(Added, b, op.J1, op.J2)
		case OpEqual:
			d.dump(Unchanged, a, op.I1, op.I2)
		}
	}
	return d.out
}

type differ struct {
	out []Entry
}

func (d *differ) dump(tag Tag, x []string, lo, hi int) {
	for i := lo; i < hi; i++ {
		d.out = append(d.out, Entry{Tag: tag, Text: x[i]})
	}
}

func (d *differ) plainReplace(a []string, alo, ahi int, b []string, blo, bhi int) {
	// the shorter side goes first
	if bhi-blo < ahi-alo {
		d.dump(Added, b, blo, bhi)
		d.dump(Removed, a, alo, ahi)
		return
	}
	d.dump(Removed, a, alo, ahi)
	d.dump(Added, b, blo, bhi)
}

func (d *differ) fancyReplace(a []string, alo, ahi int, b []string, blo, bhi int) {
	bestRatio := syncFloor
	bestI, bestJ := -1, -1
	eqI, eqJ := -1, -1

	aRunes := make([][]rune, ahi-alo)
	for i := alo; i < ahi; i++ {
		aRunes[i-alo] = []rune(a[i])
	}

	cruncher := NewMatcher[rune](nil, nil)
	for j := blo; j < bhi; j++ {
		cruncher.SetSeq2([]rune(b[j]))
		for i := alo; i < ahi; i++ {
			if a[i] == b[j] {
				if eqI < 0 {
					eqI, eqJ = i, j
				}
				continue
			}
			cruncher.SetSeq1(aRunes[i-alo])
			if cruncher.RealQuickRatio() > bestRatio &&
				cruncher.QuickRatio() > bestRatio &&
				cruncher.Ratio() > bestRatio {
				bestRatio, bestI, bestJ = cruncher.Ratio(), i, j
			}
		}
	}

	if bestRatio < syncCutoff {
		if eqI < 0 {
			d.plainReplace(a, alo, ahi, b, blo, bhi)
			return
		}
		bestI, bestJ = eqI, eqJ
	} else {
		eqI = -1
	}

	d.fancyHelper(a, alo, bestI, b, blo, bestJ)

	aLine, bLine := a[bestI], b[bestJ]
	if eqI >= 0 {
		d.out = append(d.out, Entry{Tag: Unchanged, Text: aLine})
	} else {
		var aTags, bTags strings.Builder
		cruncher.SetSeqs([]rune(aLine), []rune(bLine))
		for _, op := range cruncher.OpCodes() {
			la, lb := op.I2-op.I1, op.J2-op.J1
			switch op.Tag {
			case OpReplace:
				aTags.WriteString(strings.Repeat("^", la))
				bTags.WriteString(strings.Repeat("^", lb))
			case OpDelete:
				aTags.WriteString(strings.Repeat("-", la))
			case OpInsert:
				bTags.WriteString(strings.Repeat("+", lb))
			case OpEqual:
				aTags.WriteString(strings.Repeat(" ", la))
				bTags.WriteString(strings.Repeat(" ", lb))
			}
		}
		d.qformat(aLine, bLine, aTags.String(), bTags.String())
	}

	d.fancyHelper(a, bestI+1, ahi, b, bestJ+1, bhi)
}

func (d *differ) fancyHelper(a []string, alo, ahi int, b []string, blo, bhi int) {
	switch {
	case alo < ahi && blo < bhi:
		d.fancyReplace(a, alo, ahi, b, blo, bhi)
	case alo < ahi:
		d.dump(Removed, a, alo, ahi)
	case blo < bhi:
		d.dump(Added, b, blo, bhi)
	}
}

func (d *differ) qformat(aLine, bLine, aTags, bTags string) {
	aTags = strings.TrimRightFunc(keepOriginalWhitespace(aLine, aTags), unicode.IsSpace)
	bTags = strings.TrimRightFunc(keepOriginalWhitespace(bLine, bTags), unicode.IsSpace)

	d.out = append(d.out, Entry{Tag: Removed, Text: aLine})
	if aTags != "" {
		d.out = append(d.out, Entry{Tag: Marker, Text: aTags})
	}
	d.out = append(d.out, Entry{Tag: Added, Text: bLine})
	if bTags != "" {
		d.out = append(d.out, Entry{Tag: Marker, Text: bTags})
	}
}

// keepOriginalWhitespace replaces blank tags with the whitespace they sit
// under, so tabs in the line keep the guide aligned
func keepOriginalWhitespace(line, tags string) string {
	lineRunes := []rune(line)
	var sb strings.Builder
	for i, tag := range []rune(tags) {
		if tag == ' ' && i < len(lineRunes) && unicode.IsSpace(lineRunes[i]) {
			sb.WriteRune(lineRunes[i])
			continue
		}
		sb.WriteRune(tag)
	}
	return sb.String()
}
