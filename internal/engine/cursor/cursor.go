package cursor

import "unicode/utf8"

// Cursor is an insertion point with sticky-column memory.
// Motions mutate the cursor in place against a borrowed line slice.
type Cursor struct {
	pos        Position
	desiredCol int
}

// New creates a cursor at the origin.
func New() *Cursor {
	return &Cursor{}
}

// Position returns the cursor's current position.
func (c *Cursor) Position() Position {
	return c.pos
}

// DesiredCol returns the sticky column remembered for vertical motion.
func (c *Cursor) DesiredCol() int {
	return c.desiredCol
}

// MoveTo places the cursor at an absolute position and resets the
// desired column to the new column.
func (c *Cursor) MoveTo(pos Position) {
	c.pos = pos
	c.desiredCol = pos.Col
}

// MoveToColumn sets the column within the current row and resets the
// desired column.
func (c *Cursor) MoveToColumn(col int) {
	c.pos.Col = col
	c.desiredCol = col
}

// MoveLeft steps one codepoint left. At column 0 it wraps to the end of
// the previous line, if one exists.
func (c *Cursor) MoveLeft(lines []string) {
	if c.pos.Col > 0 {
		c.pos.Col--
		c.desiredCol = c.pos.Col
		return
	}
	if c.pos.Row > 0 {
		c.pos.Row--
		c.pos.Col = lineLen(lines, c.pos.Row)
		c.desiredCol = c.pos.Col
	}
}

// MoveRight steps one codepoint right. At end of line it wraps to
// column 0 of the next line, if one exists.
func (c *Cursor) MoveRight(lines []string) {
	if c.pos.Row >= len(lines) {
		return
	}
	if c.pos.Col < lineLen(lines, c.pos.Row) {
		c.pos.Col++
		c.desiredCol = c.pos.Col
		return
	}
	if c.pos.Row+1 < len(lines) {
		c.pos.Row++
		c.pos.Col = 0
		c.desiredCol = 0
	}
}

// MoveUp moves one row up. The column clamps to the target line's length
// but the desired column is preserved, so a later move onto a longer line
// restores the intended column.
func (c *Cursor) MoveUp(lines []string) {
	if c.pos.Row > 0 {
		c.pos.Row--
		c.pos.Col = c.clampColumn(lines, c.desiredCol)
	}
}

// MoveDown moves one row down, clamping the column like MoveUp.
func (c *Cursor) MoveDown(lines []string) {
	if c.pos.Row+1 < len(lines) {
		c.pos.Row++
		c.pos.Col = c.clampColumn(lines, c.desiredCol)
	}
}

// Clamp forces the cursor back into bounds for the given lines.
// Used after content replacement (undo/redo, file reload).
func (c *Cursor) Clamp(lines []string) {
	if len(lines) == 0 {
		c.pos = Position{}
		return
	}
	if c.pos.Row < 0 {
		c.pos.Row = 0
	}
	if c.pos.Row >= len(lines) {
		c.pos.Row = len(lines) - 1
	}
	if c.pos.Col < 0 {
		c.pos.Col = 0
	}
	if max := lineLen(lines, c.pos.Row); c.pos.Col > max {
		c.pos.Col = max
	}
}

// clampColumn limits a column to the current row's line length.
func (c *Cursor) clampColumn(lines []string, col int) int {
	if c.pos.Row >= len(lines) {
		return 0
	}
	if max := lineLen(lines, c.pos.Row); col > max {
		return max
	}
	return col
}

// lineLen returns the codepoint length of the given row, or 0 if the
// row is out of range.
func lineLen(lines []string, row int) int {
	if row < 0 || row >= len(lines) {
		return 0
	}
	return utf8.RuneCountInString(lines[row])
}
