package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// table lays out text columns padded to their widest cell.
type table struct {
	headers    []string
	rows       [][]string
	rightAlign map[int]bool
	// maxWidth truncates cells of a column; 0 means unlimited
	maxWidth map[int]int
}

func (t table) lines() []string {
	colCount := len(t.headers)
	for _, row := range t.rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	measure := func(row []string) {
		for i := 0; i < colCount; i++ {
			if w := runewidth.StringWidth(t.cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}

	out := make([]string, 0, len(t.rows)+1)
	if len(t.headers) > 0 {
		out = append(out, t.format(t.headers, widths))
	}
	for _, row := range t.rows {
		out = append(out, t.format(row, widths))
	}
	return out
}

func (t table) cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	if limit := t.maxWidth[i]; limit > 0 {
		return runewidth.Truncate(row[i], limit, "…")
	}
	return row[i]
}

func (t table) format(row []string, widths []int) string {
	cells := make([]string, len(widths))
	for i, w := range widths {
		value := t.cell(row, i)
		if t.rightAlign[i] {
			cells[i] = runewidth.FillLeft(value, w)
		} else {
			cells[i] = runewidth.FillRight(value, w)
		}
	}
	return strings.Join(cells, " ")
}
