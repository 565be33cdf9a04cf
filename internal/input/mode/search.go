package mode

import (
	"unicode"

	"github.com/zenvim/zenvim/internal/engine/buffer"
	"github.com/zenvim/zenvim/internal/engine/cursor"
)

// Plain substring search, case-sensitive, columns in codepoints.
// A miss leaves the cursor unchanged; it is never an error.

// searchForward scans from one column past the cursor to the end of the
// buffer, then wraps to scan the rows before the starting row.
func (m *Manager) searchForward(pattern string, bufs *buffer.Manager) {
	b := bufs.Current()
	if b == nil || pattern == "" {
		return
	}
	pat := []rune(pattern)
	start := b.CursorPos()

	for row := start.Row; row < b.LineCount(); row++ {
		from := 0
		if row == start.Row {
			from = start.Col + 1
		}
		if col := indexRunes([]rune(b.Line(row)), pat, from); col >= 0 {
			b.MoveCursorTo(cursor.Position{Row: row, Col: col})
			return
		}
	}
	for row := 0; row < start.Row; row++ {
		if col := indexRunes([]rune(b.Line(row)), pat, 0); col >= 0 {
			b.MoveCursorTo(cursor.Position{Row: row, Col: col})
			return
		}
	}
}

// searchBackward scans from one column before the cursor back to row 0,
// then wraps to scan from the end of the buffer down to the rows after
// the starting row.
func (m *Manager) searchBackward(pattern string, bufs *buffer.Manager) {
	b := bufs.Current()
	if b == nil || pattern == "" {
		return
	}
	pat := []rune(pattern)
	start := b.CursorPos()

	for row := start.Row; row >= 0; row-- {
		chars := []rune(b.Line(row))
		end := len(chars)
		if row == start.Row {
			end = start.Col - 1
			if end < 0 {
				end = 0
			}
		}
		if col := lastIndexRunes(chars, pat, end); col >= 0 {
			b.MoveCursorTo(cursor.Position{Row: row, Col: col})
			return
		}
	}
	for row := b.LineCount() - 1; row > start.Row; row-- {
		chars := []rune(b.Line(row))
		if col := lastIndexRunes(chars, pat, len(chars)); col >= 0 {
			b.MoveCursorTo(cursor.Position{Row: row, Col: col})
			return
		}
	}
}

// wordUnderCursor returns the alphanumeric run under the cursor of the
// current buffer, or "" if the cursor is not on one.
func wordUnderCursor(bufs *buffer.Manager) string {
	b := bufs.Current()
	if b == nil {
		return ""
	}
	pos := b.CursorPos()
	chars := []rune(b.Line(pos.Row))
	if pos.Col >= len(chars) {
		return ""
	}

	start := pos.Col
	for start > 0 && isAlnum(chars[start-1]) {
		start--
	}
	end := pos.Col
	for end < len(chars) && isAlnum(chars[end]) {
		end++
	}
	if end <= start {
		return ""
	}
	return string(chars[start:end])
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// indexRunes returns the lowest codepoint index >= from at which pat
// occurs in chars, or -1.
func indexRunes(chars, pat []rune, from int) int {
	if from < 0 {
		from = 0
	}
	for s := from; s+len(pat) <= len(chars); s++ {
		if runesMatch(chars, pat, s) {
			return s
		}
	}
	return -1
}

// lastIndexRunes returns the highest codepoint index at which pat occurs
// entirely within chars[:end], or -1.
func lastIndexRunes(chars, pat []rune, end int) int {
	if end > len(chars) {
		end = len(chars)
	}
	for s := end - len(pat); s >= 0; s-- {
		if runesMatch(chars, pat, s) {
			return s
		}
	}
	return -1
}

func runesMatch(chars, pat []rune, at int) bool {
	for i, r := range pat {
		if chars[at+i] != r {
			return false
		}
	}
	return true
}
