package editor

// MoveLeft steps one character back in logical order, crossing to the end of
// the previous line at column 0. A no-op at the buffer start.
func (b *Buffer) MoveLeft() {
	if b.cursor.X > 0 {
		b.cursor.X--
		return
	}
	if b.cursor.Y == 0 {
		return
	}
	b.cursor.Y--
	b.cursor.X = len(b.lines[b.cursor.Y])
}

// MoveRight steps one character forward, crossing to column 0 of the next
// line at a line end. A no-op at the buffer end.
func (b *Buffer) MoveRight() {
	if b.cursor.X < len(b.lines[b.cursor.Y]) {
		b.cursor.X++
		return
	}
	if b.cursor.Y >= len(b.lines)-1 {
		return
	}
	b.cursor.Y++
	b.cursor.X = 0
}

// MoveUp steps exactly one screen row, staying within the current logical
// line's wrapped rows before crossing into the previous line's last row. The
// screen column is preserved, clamped when the destination row is shorter.
func (b *Buffer) MoveUp() {
	g := b.geometry(b.cursor.Y)
	row := g.row(b.cursor.X)
	col := g.col(b.cursor.X)
	if row > 0 {
		b.setClamped(g.pos(row-1, col))
		return
	}
	if b.cursor.Y == 0 {
		return
	}
	b.cursor.Y--
	up := b.geometry(b.cursor.Y)
	last := up.row(len(b.lines[b.cursor.Y]))
	b.setClamped(up.pos(last, col))
}

// MoveDown steps exactly one screen row, the mirror of MoveUp.
func (b *Buffer) MoveDown() {
	g := b.geometry(b.cursor.Y)
	row := g.row(b.cursor.X)
	col := g.col(b.cursor.X)
	if row < g.row(len(b.lines[b.cursor.Y])) {
		b.setClamped(g.pos(row+1, col))
		return
	}
	if b.cursor.Y >= len(b.lines)-1 {
		return
	}
	b.cursor.Y++
	b.setClamped(b.geometry(b.cursor.Y).pos(0, col))
}

func (b *Buffer) setClamped(x int) {
	if x > len(b.lines[b.cursor.Y]) {
		x = len(b.lines[b.cursor.Y])
	}
	if x < 0 {
		x = 0
	}
	b.cursor.X = x
}

// MoveTo places the cursor directly, clamping to buffer bounds. The
// allowScroll flag belongs to the external viewport concern and is forwarded
// to the scroll callback untouched.
func (b *Buffer) MoveTo(x, y int, allowScroll bool) {
	b.cursor = Cursor{X: x, Y: y}
	b.clampCursor()
	if b.onScroll != nil {
		b.onScroll(allowScroll)
	}
}

// MoveToBegin places the cursor at (0,0).
func (b *Buffer) MoveToBegin() {
	b.cursor = Cursor{}
}

// MoveToEnd places the cursor after the last character of the last line.
func (b *Buffer) MoveToEnd() {
	b.cursor.Y = len(b.lines) - 1
	b.cursor.X = len(b.lines[b.cursor.Y])
}

// MoveToEndOfLine places the cursor after the last character of line y.
func (b *Buffer) MoveToEndOfLine(y int) {
	if y < 0 {
		y = 0
	}
	if y >= len(b.lines) {
		y = len(b.lines) - 1
	}
	b.cursor = Cursor{X: len(b.lines[y]), Y: y}
}

// CursorOnLastLine reports whether the cursor sits on the last logical line.
func (b *Buffer) CursorOnLastLine() bool {
	return b.cursor.Y == len(b.lines)-1
}
