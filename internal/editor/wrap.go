package editor

import (
	"os"

	"golang.org/x/term"
)

// lineGeom describes how one logical line maps onto screen rows: the first
// row loses prompt columns, continuation rows span the full terminal width.
// A line that exactly fills a row still wraps onto one more row so the cell
// past the last character is always addressable.
type lineGeom struct {
	width  int
	prompt int
}

// firstRowWidth returns the writable columns on the line's first screen row.
func (g lineGeom) firstRowWidth() int {
	w := g.width - g.prompt
	if w < 1 {
		w = 1
	}
	return w
}

func (g lineGeom) fullWidth() int {
	if g.width < 1 {
		return 1
	}
	return g.width
}

// row returns the screen row (within the logical line) holding column x.
func (g lineGeom) row(x int) int {
	first := g.firstRowWidth()
	if x < first {
		return 0
	}
	return 1 + (x-first)/g.fullWidth()
}

// col returns the screen column of logical column x, including the prompt
// offset on the first row.
func (g lineGeom) col(x int) int {
	first := g.firstRowWidth()
	if x < first {
		return g.prompt + x
	}
	return (x - first) % g.fullWidth()
}

// pos is the inverse of row/col: the logical column shown at (row, col). The
// column is clamped into the row's valid span; the result may still exceed
// the line length on its last row, which the caller clamps.
func (g lineGeom) pos(row, col int) int {
	first := g.firstRowWidth()
	if row <= 0 {
		x := col - g.prompt
		if x < 0 {
			x = 0
		}
		if x > first-1 {
			x = first - 1
		}
		return x
	}
	w := g.fullWidth()
	if col < 0 {
		col = 0
	}
	if col > w-1 {
		col = w - 1
	}
	return first + (row-1)*w + col
}

// rows returns how many screen rows a line of lineLen characters occupies.
func (g lineGeom) rows(lineLen int) int {
	return g.row(lineLen) + 1
}

// geometry returns the wrap geometry of logical line y under the current
// terminal width.
func (b *Buffer) geometry(y int) lineGeom {
	prompt := b.promptWidth
	if y > 0 {
		prompt = b.contPromptWidth
	}
	return lineGeom{width: b.width(), prompt: prompt}
}

// ExpressionHeight returns the number of screen rows the whole buffer needs.
func (b *Buffer) ExpressionHeight() int {
	total := 0
	for y := range b.lines {
		total += b.geometry(y).rows(len(b.lines[y]))
	}
	return total
}

// ScreenCursor returns the cursor position in wrapped-screen coordinates:
// the row within the whole expression and the column including the prompt
// offset on first rows.
func (b *Buffer) ScreenCursor() (row, col int) {
	for y := 0; y < b.cursor.Y; y++ {
		row += b.geometry(y).rows(len(b.lines[y]))
	}
	g := b.geometry(b.cursor.Y)
	return row + g.row(b.cursor.X), g.col(b.cursor.X)
}

// WrapLine slices line y into its screen-row chunks. The first chunk is
// shortened by the prompt width; every line yields at least one chunk, and a
// chunk boundary at the exact line end yields a trailing empty chunk.
func (b *Buffer) WrapLine(y int) []string {
	if y < 0 || y >= len(b.lines) {
		return nil
	}
	line := b.lines[y]
	g := b.geometry(y)
	chunks := make([]string, 0, g.rows(len(line)))
	first := g.firstRowWidth()
	end := first
	if end > len(line) {
		end = len(line)
	}
	chunks = append(chunks, string(line[:end]))
	for start := end; start < len(line) || g.row(len(line)) >= len(chunks); {
		next := start + g.fullWidth()
		if next > len(line) {
			next = len(line)
		}
		chunks = append(chunks, string(line[start:next]))
		start = next
	}
	return chunks
}

// TerminalWidth is the default WidthFunc: the width of the terminal attached
// to stdout, or 80 when that cannot be determined.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
