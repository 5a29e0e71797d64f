package completion

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type CellKind int

const (
	CellHeader   CellKind = iota // scope label row
	CellEntry                    // plain grid cell, left-justified and padded
	CellSelected                 // the highlighted grid cell
	CellMore                     // truncation marker, columns exist past the window
)

// Cell is one styled span of a rendered row. PrefixLen is the number of
// leading characters matching the typed filter; renderers may style that
// span distinctly. Styling is advisory: a plain-text renderer can mark the
// selected cell with a leading marker instead.
type Cell struct {
	Text      string
	Kind      CellKind
	PrefixLen int
}

type Row []Cell

// Marker is the truncation marker shown when grid columns continue past the
// right edge of the terminal.
const Marker = ".."

// columnPad is the gap kept to the right of the longest entry of a column.
const columnPad = 2

// Render lays the popup out as structured rows; the number of rows written
// is len(rows).
//
// Cleared state yields minHeight blank rows, closed yields nothing. An open
// popup gets one header row plus a column-major grid of R rows, horizontally
// scrolled so the selected column stays visible, padded with blank rows up
// to minHeight.
func (e *Engine) Render(maxHeight, minHeight int) []Row {
	if minHeight < 0 {
		minHeight = 0
	}
	switch e.visibility {
	case Cleared:
		rows := make([]Row, minHeight)
		return rows
	case Closed:
		return nil
	}
	if maxHeight <= 1 {
		return nil
	}

	rows := []Row{{Cell{Text: e.scope + ":", Kind: CellHeader}}}
	if len(e.entries) == 0 {
		return padRows(rows, minHeight)
	}

	termWidth := e.width()
	gridRows := e.computeRows(maxHeight - 1)
	cols := columnize(e.entries, gridRows)
	widths := make([]int, len(cols))
	for c, col := range cols {
		widths[c] = columnWidth(col)
	}

	// Count the columns fitting left to right, then shift the window right
	// when the selected entry's column falls past it.
	colStart := 0
	fit := fitForward(widths, 0, termWidth)
	if e.selection >= 0 {
		if sc := e.selection / gridRows; sc >= fit {
			fit = fitBackward(widths, sc, termWidth)
			colStart = sc - fit + 1
		}
	}

	truncated := colStart+fit < len(cols)
	for r := 0; r < gridRows; r++ {
		row := make(Row, 0, fit)
		for c := colStart; c < colStart+fit; c++ {
			entry := cols[c][r]
			kind := CellEntry
			if e.selection >= 0 && c*gridRows+r == e.selection {
				kind = CellSelected
			}
			width := widths[c]
			if truncated && r == gridRows-1 && c == colStart+fit-1 {
				width -= len(Marker)
			}
			prefix := 0
			if entry != "" {
				prefix = len([]rune(e.filter))
			}
			row = append(row, Cell{Text: pad(entry, width), Kind: kind, PrefixLen: prefix})
		}
		if truncated && r == gridRows-1 {
			row = append(row, Cell{Text: Marker, Kind: CellMore})
		}
		rows = append(rows, row)
	}
	return padRows(rows, minHeight)
}

// computeRows picks the grid row count: small candidate sets favor a single
// column, larger ones take the smallest row count whose total column width
// fits strictly inside the terminal.
func (e *Engine) computeRows(maxRows int) int {
	if maxRows < 1 {
		maxRows = 1
	}
	if len(e.entries) <= 10 {
		if len(e.entries) < maxRows {
			return len(e.entries)
		}
		return maxRows
	}
	termWidth := e.width()
	for r := 1; r <= maxRows; r++ {
		total := 0
		for _, col := range columnize(e.entries, r) {
			total += columnWidth(col)
		}
		if total < termWidth {
			return r
		}
	}
	return maxRows
}

// columnize partitions entries column-major into groups of rows entries, the
// last group padded with empty strings.
func columnize(entries []string, rows int) [][]string {
	if rows < 1 {
		rows = 1
	}
	cols := make([][]string, 0, (len(entries)+rows-1)/rows)
	for start := 0; start < len(entries); start += rows {
		end := start + rows
		if end > len(entries) {
			end = len(entries)
		}
		col := make([]string, rows)
		copy(col, entries[start:end])
		cols = append(cols, col)
	}
	return cols
}

func columnWidth(col []string) int {
	widest := 0
	for _, entry := range col {
		if w := runewidth.StringWidth(entry); w > widest {
			widest = w
		}
	}
	return widest + columnPad
}

// fitForward counts how many columns starting at first fit within budget.
// At least one column is always shown.
func fitForward(widths []int, first, budget int) int {
	fit, total := 0, 0
	for c := first; c < len(widths); c++ {
		total += widths[c]
		if total > budget {
			break
		}
		fit++
	}
	if fit == 0 {
		fit = 1
	}
	return fit
}

// fitBackward counts how many columns ending at last fit within budget.
func fitBackward(widths []int, last, budget int) int {
	fit, total := 0, 0
	for c := last; c >= 0; c-- {
		total += widths[c]
		if total > budget {
			break
		}
		fit++
	}
	if fit == 0 {
		fit = 1
	}
	return fit
}

func pad(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padRows(rows []Row, minHeight int) []Row {
	for len(rows) < minHeight {
		rows = append(rows, Row{})
	}
	return rows
}
