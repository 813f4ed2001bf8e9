package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Hanaasagi/ocrdiff/internal/pipeline"
	"github.com/Hanaasagi/ocrdiff/pkg/seqdiff"
)

var summaryHeader = []string{"NAME", "ACTUAL", "EXPECTED", "SIMILARITY"}

// RenderSummary formats one row per case, in case order, followed by the
// mean similarity of the cases that completed.
func RenderSummary(results []pipeline.CaseResult, opts Options) string {
	rows := make([][]string, 0, len(results))
	failed := make([]bool, 0, len(results))

	for _, r := range results {
		if r.Err != nil {
			kind := string(pipeline.KindOf(r.Err))
			if kind == "" {
				kind = "ERROR"
			}
			rows = append(rows, []string{r.Case.Name, "-", "-", "FAILED " + kind})
			failed = append(failed, true)
			continue
		}
		rows = append(rows, []string{
			r.Case.Name,
			strconv.Itoa(r.Result.ActualCount(opts.IgnoreSpaces)),
			strconv.Itoa(r.Result.ExpectedCount(opts.IgnoreSpaces)),
			FormatRatio(r.Result.Diff.Ratio),
		})
		failed = append(failed, false)
	}

	widths := make([]int, len(summaryHeader))
	for i, h := range summaryHeader {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	writeRow(&b, summaryHeader, widths)
	for i, row := range rows {
		line := formatRow(row, widths)
		if failed[i] {
			line = opts.Styles.paint(seqdiff.Removed, line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	s := pipeline.Summarize(results)
	fmt.Fprintf(&b, "mean similarity : %s (%d/%d ok)\n", FormatRatio(s.MeanRatio), s.Total-s.Failed, s.Total)
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteString(formatRow(cells, widths))
	b.WriteByte('\n')
}

// formatRow left aligns the name column and right aligns the numbers
func formatRow(cells []string, widths []int) string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		if i == 0 {
			out[i] = runewidth.FillRight(cell, widths[i])
		} else {
			out[i] = runewidth.FillLeft(cell, widths[i])
		}
	}
	return strings.Join(out, "  ")
}
