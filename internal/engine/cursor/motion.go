package cursor

import "unicode"

// Word motions classify characters into three classes: word characters
// (alphanumerics and underscore), other non-whitespace (punctuation), and
// whitespace. A word motion stops at the boundary between classes.
// WORD motions collapse the first two classes, so only whitespace
// separates WORDs.

// isWordRune reports whether r belongs to the word class.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isPunctRune reports whether r is non-whitespace outside the word class.
func isPunctRune(r rune) bool {
	return !isWordRune(r) && !unicode.IsSpace(r)
}

// WordForward moves to the first character of the next word or
// punctuation run, crossing to the next line's column 0 when the current
// line is exhausted.
func (c *Cursor) WordForward(lines []string) {
	if c.pos.Row >= len(lines) {
		return
	}
	chars := []rune(lines[c.pos.Row])
	if len(chars) == 0 || c.pos.Col >= len(chars) {
		c.nextLineStart(lines)
		return
	}

	pos := c.pos.Col
	switch {
	case isWordRune(chars[pos]):
		for pos < len(chars) && isWordRune(chars[pos]) {
			pos++
		}
	case isPunctRune(chars[pos]):
		for pos < len(chars) && isPunctRune(chars[pos]) {
			pos++
		}
	}
	for pos < len(chars) && unicode.IsSpace(chars[pos]) {
		pos++
	}

	if pos < len(chars) {
		c.pos.Col = pos
		c.desiredCol = pos
	} else {
		c.nextLineStart(lines)
	}
}

// WordBackward mirrors WordForward scanning left, crossing to the end of
// the previous line when at column 0.
func (c *Cursor) WordBackward(lines []string) {
	if c.pos.Col == 0 {
		c.prevLineEnd(lines)
		return
	}
	if c.pos.Row >= len(lines) {
		return
	}
	chars := []rune(lines[c.pos.Row])

	pos := c.pos.Col - 1
	for pos > 0 && runeIs(chars, pos, unicode.IsSpace) {
		pos--
	}
	switch {
	case runeIs(chars, pos, isWordRune):
		for pos > 0 && runeIs(chars, pos-1, isWordRune) {
			pos--
		}
	case runeIs(chars, pos, isPunctRune):
		for pos > 0 && runeIs(chars, pos-1, isPunctRune) {
			pos--
		}
	}

	c.pos.Col = pos
	c.desiredCol = pos
}

// WORDForward moves to the start of the next whitespace-separated WORD.
func (c *Cursor) WORDForward(lines []string) {
	if c.pos.Row >= len(lines) {
		return
	}
	chars := []rune(lines[c.pos.Row])
	if len(chars) == 0 || c.pos.Col >= len(chars) {
		c.nextLineStart(lines)
		return
	}

	pos := c.pos.Col
	for pos < len(chars) && !unicode.IsSpace(chars[pos]) {
		pos++
	}
	for pos < len(chars) && unicode.IsSpace(chars[pos]) {
		pos++
	}

	if pos < len(chars) {
		c.pos.Col = pos
		c.desiredCol = pos
	} else {
		c.nextLineStart(lines)
	}
}

// WORDBackward moves to the start of the previous whitespace-separated
// WORD, crossing to the end of the previous line when at column 0.
func (c *Cursor) WORDBackward(lines []string) {
	if c.pos.Col == 0 {
		c.prevLineEnd(lines)
		return
	}
	if c.pos.Row >= len(lines) {
		return
	}
	chars := []rune(lines[c.pos.Row])

	pos := c.pos.Col - 1
	for pos > 0 && runeIs(chars, pos, unicode.IsSpace) {
		pos--
	}
	for pos > 0 && !runeIs(chars, pos-1, unicode.IsSpace) {
		pos--
	}

	c.pos.Col = pos
	c.desiredCol = pos
}

// WordEnd moves onto the last character of the current or next word,
// never past the end of the line.
func (c *Cursor) WordEnd(lines []string) {
	if c.pos.Row >= len(lines) {
		return
	}
	chars := []rune(lines[c.pos.Row])
	if len(chars) == 0 {
		return
	}

	pos := c.pos.Col
	for pos < len(chars) && isWordRune(chars[pos]) {
		pos++
	}
	for pos < len(chars) && !isWordRune(chars[pos]) {
		pos++
	}
	for pos < len(chars) && isWordRune(chars[pos]) {
		pos++
	}
	if pos > 0 {
		pos--
	}
	if pos > len(chars)-1 {
		pos = len(chars) - 1
	}

	c.pos.Col = pos
	c.desiredCol = pos
}

// nextLineStart moves to column 0 of the next line, if one exists.
func (c *Cursor) nextLineStart(lines []string) {
	if c.pos.Row+1 < len(lines) {
		c.pos.Row++
		c.pos.Col = 0
		c.desiredCol = 0
	}
}

// prevLineEnd moves to the last column of the previous line, if one exists.
func (c *Cursor) prevLineEnd(lines []string) {
	if c.pos.Row > 0 {
		c.pos.Row--
		c.pos.Col = lineLen(lines, c.pos.Row)
		c.desiredCol = c.pos.Col
	}
}

// runeIs safely tests a predicate against chars[i].
func runeIs(chars []rune, i int, pred func(rune) bool) bool {
	if i < 0 || i >= len(chars) {
		return false
	}
	return pred(chars[i])
}
