package completion

import (
	"fmt"
	"strings"
	"testing"
)

func queried(t *testing.T, e *Engine, filter string) *Engine {
	t.Helper()
	if _, _, err := e.Query(filter, ""); err != nil {
		t.Fatalf("Query error: %v", err)
	}
	e.Open()
	return e
}

func rowText(row Row) string {
	var sb strings.Builder
	for _, cell := range row {
		sb.WriteString(cell.Text)
	}
	return sb.String()
}

func TestRenderClosedWritesNothing(t *testing.T) {
	e := newTestEngine(80, "a")
	if rows := e.Render(10, 3); rows != nil {
		t.Fatalf("closed render = %d rows, want none", len(rows))
	}
}

func TestRenderClearedWritesBlankRows(t *testing.T) {
	e := newTestEngine(80, "a")
	e.Clear()
	rows := e.Render(10, 3)
	if len(rows) != 3 {
		t.Fatalf("cleared render = %d rows, want 3", len(rows))
	}
	for _, row := range rows {
		if len(row) != 0 {
			t.Fatalf("cleared row has cells: %v", row)
		}
	}
}

func TestRenderNegativeMinHeight(t *testing.T) {
	e := newTestEngine(80, "a")
	e.Clear()
	if rows := e.Render(10, -3); len(rows) != 0 {
		t.Fatalf("cleared render with negative minHeight = %d rows, want none", len(rows))
	}
	queried(t, e, "")
	if rows := e.Render(10, -3); len(rows) != 2 {
		t.Fatalf("open render with negative minHeight = %d rows, want header and entry", len(rows))
	}
}

func TestRenderOpenTooSmall(t *testing.T) {
	e := queried(t, newTestEngine(80, "a", "b"), "")
	if rows := e.Render(1, 0); rows != nil {
		t.Fatalf("render with maxHeight 1 = %d rows, want none", len(rows))
	}
}

func TestRenderHeaderAndSingleColumn(t *testing.T) {
	e := queried(t, newTestEngine(80, "alpha", "beta"), "")
	rows := e.Render(10, 0)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0].Kind != CellHeader || rows[0][0].Text != "Test:" {
		t.Fatalf("header = %+v", rows[0][0])
	}
	// Column width is the longest entry plus two columns of padding.
	if got := rows[1][0].Text; got != "alpha  " {
		t.Fatalf("cell = %q, want %q", got, "alpha  ")
	}
	if got := rows[2][0].Text; got != "beta   " {
		t.Fatalf("cell = %q, want %q", got, "beta   ")
	}
}

func TestRenderEmptyEntriesPadsToMinHeight(t *testing.T) {
	e := newTestEngine(80)
	queried(t, e, "")
	rows := e.Render(10, 4)
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0][0].Kind != CellHeader {
		t.Fatalf("first row is not the header")
	}
	rows = e.Render(10, 0)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
}

func TestRenderColumnMajorOrder(t *testing.T) {
	e := queried(t, newTestEngine(80, "a", "b", "c", "d", "e", "f"), "")
	rows := e.Render(4, 0) // header + 3 grid rows
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	// Column-major: consecutive entries run down a column first.
	if got := rowText(rows[1]); got != "a  d  " {
		t.Fatalf("row 1 = %q, want %q", got, "a  d  ")
	}
	if got := rowText(rows[2]); got != "b  e  " {
		t.Fatalf("row 2 = %q, want %q", got, "b  e  ")
	}
	if got := rowText(rows[3]); got != "c  f  " {
		t.Fatalf("row 3 = %q, want %q", got, "c  f  ")
	}
}

func TestRenderMarksSelectedCell(t *testing.T) {
	e := queried(t, newTestEngine(80, "a", "b", "c", "d", "e", "f"), "")
	e.SelectNext() // a
	e.SelectNext() // b
	rows := e.Render(4, 0)
	if rows[2][0].Kind != CellSelected {
		t.Fatalf("cell (2,0) kind = %v, want selected", rows[2][0].Kind)
	}
	if rows[1][0].Kind != CellEntry {
		t.Fatalf("cell (1,0) kind = %v, want entry", rows[1][0].Kind)
	}
}

func TestRenderFilterPrefixLen(t *testing.T) {
	e := queried(t, newTestEngine(80, "foo", "foobar"), "foo")
	rows := e.Render(10, 0)
	if got := rows[1][0].PrefixLen; got != 3 {
		t.Fatalf("prefix len = %d, want 3", got)
	}
}

func TestComputeRowsFavorsSingleColumn(t *testing.T) {
	e := queried(t, newTestEngine(80, "a", "b", "c"), "")
	if got := e.computeRows(10); got != 3 {
		t.Fatalf("computeRows = %d, want 3", got)
	}
	if got := e.computeRows(2); got != 2 {
		t.Fatalf("computeRows capped = %d, want 2", got)
	}
}

func TestComputeRowsFitsWidth(t *testing.T) {
	// 15 two-character candidates: a column costs 4 cells. One row would
	// need 60 cells, two rows 32; at width 33 two rows are the answer.
	names := make([]string, 15)
	for i := range names {
		names[i] = fmt.Sprintf("a%c", 'a'+i)
	}
	e := queried(t, newTestEngine(33, names...), "")
	if got := e.computeRows(10); got != 2 {
		t.Fatalf("computeRows = %d, want 2", got)
	}
}

func TestComputeRowsFallsBackToMaxRows(t *testing.T) {
	names := make([]string, 40)
	for i := range names {
		names[i] = fmt.Sprintf("entry%02d", i)
	}
	e := queried(t, newTestEngine(10, names...), "")
	if got := e.computeRows(5); got != 5 {
		t.Fatalf("computeRows = %d, want 5", got)
	}
}

func wideTestEngine(t *testing.T) *Engine {
	// 20 three-character entries at terminal width 20: the grid settles on
	// 4 rows and 5 columns of width 5, of which 4 fit.
	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("s%02d", i)
	}
	return queried(t, newTestEngine(20, names...), "")
}

func TestRenderTruncationMarker(t *testing.T) {
	e := wideTestEngine(t)
	rows := e.Render(5, 0)
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	last := rows[len(rows)-1]
	marker := last[len(last)-1]
	if marker.Kind != CellMore || marker.Text != Marker {
		t.Fatalf("last cell = %+v, want truncation marker", marker)
	}
	// Rows above the last carry no marker.
	for _, cell := range rows[1] {
		if cell.Kind == CellMore {
			t.Fatalf("marker on a non-final row")
		}
	}
}

func TestRenderScrollsSelectionIntoView(t *testing.T) {
	e := wideTestEngine(t)
	// Walk the selection into the fifth column (entries 16..19).
	var selected string
	for i := 0; i < 17; i++ {
		selected, _ = e.SelectNext()
	}
	if selected != "s16" {
		t.Fatalf("selected = %q, want s16", selected)
	}
	rows := e.Render(5, 0)
	// The selected column becomes the last visible one: its top entry is
	// the final cell of the first grid row.
	firstRow := rows[1]
	lastCell := firstRow[len(firstRow)-1]
	if !strings.HasPrefix(lastCell.Text, "s16") {
		t.Fatalf("last visible column starts with %q, want s16", lastCell.Text)
	}
	// The first column scrolled out of view.
	if strings.HasPrefix(firstRow[0].Text, "s00") {
		t.Fatalf("first column still visible after scroll")
	}
	if lastCell.Kind != CellSelected {
		t.Fatalf("selected cell kind = %v, want selected", lastCell.Kind)
	}
}

func TestRenderPadsToMinHeight(t *testing.T) {
	e := queried(t, newTestEngine(80, "a", "b"), "")
	rows := e.Render(10, 8)
	if len(rows) != 8 {
		t.Fatalf("rows = %d, want 8", len(rows))
	}
	for _, row := range rows[3:] {
		if len(row) != 0 {
			t.Fatalf("padding row has cells: %v", row)
		}
	}
}
