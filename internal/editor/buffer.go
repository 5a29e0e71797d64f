package editor

import (
	"strings"
	"unicode"
)

// Cursor is a logical position in the buffer: X is the column within the
// line, Y the line index. X == len(line) is valid (one past the last char).
type Cursor struct {
	X int
	Y int
}

// WidthFunc reports the current terminal width. It is queried fresh on every
// layout computation so a resize between calls is picked up.
type WidthFunc func() int

// Buffer is a multi-line expression under active editing. Lines are held as
// rune slices; the buffer is never empty (at minimum one empty line).
type Buffer struct {
	lines  [][]rune
	cursor Cursor

	// Columns reserved by the prompt on the first screen row of line 0 and
	// of every following logical line. Wrapped continuation rows get the
	// full terminal width.
	promptWidth     int
	contPromptWidth int

	width    WidthFunc
	onScroll func(allow bool)
}

// New creates an empty buffer. width may be nil, in which case the terminal
// width of stdout is queried.
func New(width WidthFunc, promptWidth, contPromptWidth int) *Buffer {
	if width == nil {
		width = TerminalWidth
	}
	return &Buffer{
		lines:           [][]rune{{}},
		promptWidth:     promptWidth,
		contPromptWidth: contPromptWidth,
		width:           width,
	}
}

// SetScrollFunc installs the callback that receives the allow-scrolling flag
// from MoveTo. The buffer forwards the flag without interpreting it; viewport
// scrolling is the caller's concern.
func (b *Buffer) SetScrollFunc(fn func(allow bool)) {
	b.onScroll = fn
}

func (b *Buffer) Cursor() Cursor { return b.cursor }

func (b *Buffer) LineCount() int { return len(b.lines) }

// Empty reports whether the buffer is in its initial single-empty-line state.
func (b *Buffer) Empty() bool { return len(b.lines) == 1 && len(b.lines[0]) == 0 }

// Line returns the text of line y, or "" when y is out of range.
func (b *Buffer) Line(y int) string {
	if y < 0 || y >= len(b.lines) {
		return ""
	}
	return string(b.lines[y])
}

// Lines returns a copy of the buffer content as strings.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = string(line)
	}
	return out
}

// Text returns the whole buffer joined with newlines.
func (b *Buffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// Insert processes text one character at a time: a newline splits the current
// line at the cursor, other control characters are dropped, and printable
// characters are inserted at the cursor which then advances one column.
func (b *Buffer) Insert(text string) {
	for _, r := range text {
		switch {
		case r == '\n':
			b.splitLine(0)
		case r < 0x20 || r == 0x7f:
			// Control characters never enter the buffer.
		default:
			b.insertRune(r)
		}
	}
}

// InsertNewLine splits the current line at the cursor and prefixes the new
// line with indent spaces; the cursor lands just after the indentation.
func (b *Buffer) InsertNewLine(indent int) {
	if indent < 0 {
		indent = 0
	}
	b.splitLine(indent)
}

func (b *Buffer) insertRune(r rune) {
	line := b.lines[b.cursor.Y]
	newLine := make([]rune, 0, len(line)+1)
	newLine = append(newLine, line[:b.cursor.X]...)
	newLine = append(newLine, r)
	newLine = append(newLine, line[b.cursor.X:]...)
	b.lines[b.cursor.Y] = newLine
	b.cursor.X++
}

func (b *Buffer) splitLine(indent int) {
	line := b.lines[b.cursor.Y]
	left := append([]rune(nil), line[:b.cursor.X]...)
	right := make([]rune, 0, indent+len(line)-b.cursor.X)
	for i := 0; i < indent; i++ {
		right = append(right, ' ')
	}
	right = append(right, line[b.cursor.X:]...)

	newLines := make([][]rune, 0, len(b.lines)+1)
	newLines = append(newLines, b.lines[:b.cursor.Y]...)
	newLines = append(newLines, left, right)
	newLines = append(newLines, b.lines[b.cursor.Y+1:]...)
	b.lines = newLines

	b.cursor = Cursor{X: indent, Y: b.cursor.Y + 1}
}

// DeleteForward removes the character under the cursor; at the end of a line
// it merges the next line onto the current one. The cursor does not move.
func (b *Buffer) DeleteForward() {
	line := b.lines[b.cursor.Y]
	if b.cursor.X < len(line) {
		b.lines[b.cursor.Y] = append(line[:b.cursor.X], line[b.cursor.X+1:]...)
		return
	}
	if b.cursor.Y >= len(b.lines)-1 {
		return
	}
	b.joinWithNext(b.cursor.Y)
}

// DeleteBackward removes the character before the cursor and moves left; at
// column 0 it joins the current line onto the previous one. A no-op at (0,0).
func (b *Buffer) DeleteBackward() {
	if b.cursor.X > 0 {
		line := b.lines[b.cursor.Y]
		b.lines[b.cursor.Y] = append(line[:b.cursor.X-1], line[b.cursor.X:]...)
		b.cursor.X--
		return
	}
	if b.cursor.Y == 0 {
		return
	}
	prevLen := len(b.lines[b.cursor.Y-1])
	b.joinWithNext(b.cursor.Y - 1)
	b.cursor = Cursor{X: prevLen, Y: b.cursor.Y - 1}
}

func (b *Buffer) joinWithNext(y int) {
	b.lines[y] = append(b.lines[y], b.lines[y+1]...)
	b.lines = append(b.lines[:y+1], b.lines[y+2:]...)
}

// DeleteLine removes line i entirely, including its break. The index is
// clamped; emptying the buffer resets it to a single empty line.
func (b *Buffer) DeleteLine(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(b.lines) {
		i = len(b.lines) - 1
	}
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
	}
	if b.cursor.Y > i {
		b.cursor.Y--
	}
	b.clampCursor()
}

// Clear resets the buffer to its initial state.
func (b *Buffer) Clear() {
	b.lines = [][]rune{{}}
	b.cursor = Cursor{}
}

// Replace swaps in a whole new content. An empty slice is substituted with a
// single empty line. The cursor is re-clamped rather than reset, so the user
// keeps their place across programmatic replacements.
func (b *Buffer) Replace(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = make([][]rune, len(lines))
	for i, s := range lines {
		b.lines[i] = []rune(s)
	}
	b.clampCursor()
}

func (b *Buffer) clampCursor() {
	if b.cursor.Y < 0 {
		b.cursor.Y = 0
	}
	if b.cursor.Y >= len(b.lines) {
		b.cursor.Y = len(b.lines) - 1
	}
	if b.cursor.X < 0 {
		b.cursor.X = 0
	}
	if b.cursor.X > len(b.lines[b.cursor.Y]) {
		b.cursor.X = len(b.lines[b.cursor.Y])
	}
}

// CurrentLine returns the text of the line the cursor is on.
func (b *Buffer) CurrentLine() string {
	return string(b.lines[b.cursor.Y])
}

// SetCurrentLine replaces the text of the cursor's line. The cursor row does
// not move; its column clamps when the new text is shorter.
func (b *Buffer) SetCurrentLine(s string) {
	b.lines[b.cursor.Y] = []rune(s)
	if b.cursor.X > len(b.lines[b.cursor.Y]) {
		b.cursor.X = len(b.lines[b.cursor.Y])
	}
}

// PreviousLine returns the line above the cursor, reporting false on line 0.
func (b *Buffer) PreviousLine() (string, bool) {
	if b.cursor.Y == 0 {
		return "", false
	}
	return string(b.lines[b.cursor.Y-1]), true
}

// NextLine returns the line below the cursor, reporting false on the last line.
func (b *Buffer) NextLine() (string, bool) {
	if b.cursor.Y >= len(b.lines)-1 {
		return "", false
	}
	return string(b.lines[b.cursor.Y+1]), true
}

// SetPreviousLine replaces the line above the cursor, reporting false on line 0.
func (b *Buffer) SetPreviousLine(s string) bool {
	if b.cursor.Y == 0 {
		return false
	}
	b.lines[b.cursor.Y-1] = []rune(s)
	return true
}

// SetNextLine replaces the line below the cursor, reporting false on the last line.
func (b *Buffer) SetNextLine(s string) bool {
	if b.cursor.Y >= len(b.lines)-1 {
		return false
	}
	b.lines[b.cursor.Y+1] = []rune(s)
	return true
}

// ExpressionBefore returns all lines strictly before row y, newline-joined,
// plus the prefix of line y up to column x.
func (b *Buffer) ExpressionBefore(x, y int) string {
	if y < 0 {
		y = 0
	}
	if y >= len(b.lines) {
		y = len(b.lines) - 1
	}
	if x < 0 {
		x = 0
	}
	if x > len(b.lines[y]) {
		x = len(b.lines[y])
	}
	var sb strings.Builder
	for i := 0; i < y; i++ {
		sb.WriteString(string(b.lines[i]))
		sb.WriteByte('\n')
	}
	sb.WriteString(string(b.lines[y][:x]))
	return sb.String()
}

// ExpressionBeforeCursor is ExpressionBefore at the cursor position.
func (b *Buffer) ExpressionBeforeCursor() string {
	return b.ExpressionBefore(b.cursor.X, b.cursor.Y)
}

// WordUnderCursor returns the identifier-like run ending at the cursor and
// the column where it starts. The run is what a completion query filters on.
func (b *Buffer) WordUnderCursor() (string, int) {
	line := b.lines[b.cursor.Y]
	start := b.cursor.X
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	return string(line[start:b.cursor.X]), start
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
