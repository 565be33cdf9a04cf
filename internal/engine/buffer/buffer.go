package buffer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zenvim/zenvim/internal/engine/cursor"
)

// maxUndoDepth bounds the undo stack. The oldest snapshot is evicted
// once the stack is full.
const maxUndoDepth = 100

// Buffer is a line-oriented text buffer with a cursor, modified tracking,
// and snapshot-based undo/redo history.
//
// Content always holds at least one line, and the cursor never leaves the
// content's bounds. Every mutator records a full-content snapshot before
// changing anything and invalidates the redo stack.
type Buffer struct {
	id       int
	path     string
	name     string
	content  []string
	cursor   *cursor.Cursor
	modified bool

	undoStack [][]string
	redoStack [][]string
}

// New creates an empty buffer containing a single blank line.
func New(id int, name string) *Buffer {
	return &Buffer{
		id:      id,
		name:    name,
		content: []string{""},
		cursor:  cursor.New(),
	}
}

// NewFromFile creates a buffer with the contents of path.
// A non-existent path yields a buffer with a single blank line; this is
// not an error. Read failures on existing files are.
func NewFromFile(id int, path string) (*Buffer, error) {
	content := []string{""}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		content = splitLines(string(data))
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "untitled"
	}

	return &Buffer{
		id:      id,
		path:    path,
		name:    name,
		content: content,
		cursor:  cursor.New(),
	}, nil
}

// splitLines splits file text into lines. A trailing newline does not
// produce a trailing empty line, and empty text yields one blank line.
func splitLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ID returns the buffer's unique id.
func (b *Buffer) ID() int { return b.id }

// Name returns the display name.
func (b *Buffer) Name() string { return b.name }

// Path returns the file path, or empty string if the buffer has none.
func (b *Buffer) Path() string { return b.path }

// Modified reports whether the buffer has unsaved changes.
func (b *Buffer) Modified() bool { return b.modified }

// LineCount returns the number of lines. Always at least 1.
func (b *Buffer) LineCount() int { return len(b.content) }

// Line returns the text of one row, or "" if the row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.content) {
		return ""
	}
	return b.content[row]
}

// Lines returns a copy of the buffer content. Mutating the returned
// slice does not affect the buffer.
func (b *Buffer) Lines() []string {
	return cloneLines(b.content)
}

// CursorPos returns the cursor's position.
func (b *Buffer) CursorPos() cursor.Position {
	return b.cursor.Position()
}

// Cursor motions. Each delegates to the cursor against the buffer's
// current content; all clamp at boundaries and never fail.

// CursorLeft steps left, wrapping to the previous line end.
func (b *Buffer) CursorLeft() { b.cursor.MoveLeft(b.content) }

// CursorRight steps right, wrapping to the next line start.
func (b *Buffer) CursorRight() { b.cursor.MoveRight(b.content) }

// CursorUp moves up one row with sticky-column behavior.
func (b *Buffer) CursorUp() { b.cursor.MoveUp(b.content) }

// CursorDown moves down one row with sticky-column behavior.
func (b *Buffer) CursorDown() { b.cursor.MoveDown(b.content) }

// WordForward moves to the next word or punctuation run.
func (b *Buffer) WordForward() { b.cursor.WordForward(b.content) }

// WordBackward moves to the previous word or punctuation run.
func (b *Buffer) WordBackward() { b.cursor.WordBackward(b.content) }

// WORDForward moves to the next whitespace-separated WORD.
func (b *Buffer) WORDForward() { b.cursor.WORDForward(b.content) }

// WORDBackward moves to the previous whitespace-separated WORD.
func (b *Buffer) WORDBackward() { b.cursor.WORDBackward(b.content) }

// WordEnd moves onto the last character of the current or next word.
func (b *Buffer) WordEnd() { b.cursor.WordEnd(b.content) }

// MoveToLineStart moves the cursor to column 0.
func (b *Buffer) MoveToLineStart() { b.cursor.MoveToColumn(0) }

// MoveToLineEnd moves the cursor one past the last character of the line.
func (b *Buffer) MoveToLineEnd() {
	b.cursor.MoveToColumn(runeLen(b.Line(b.CursorPos().Row)))
}

// MoveToFileStart moves the cursor to the first row, column 0.
func (b *Buffer) MoveToFileStart() {
	b.cursor.MoveTo(cursor.Position{})
}

// MoveToFileEnd moves the cursor to the end of the last line.
func (b *Buffer) MoveToFileEnd() {
	row := len(b.content) - 1
	b.cursor.MoveTo(cursor.Position{Row: row, Col: runeLen(b.content[row])})
}

// MoveCursorTo places the cursor at pos, clamped into bounds.
func (b *Buffer) MoveCursorTo(pos cursor.Position) {
	b.cursor.MoveTo(pos)
	b.cursor.Clamp(b.content)
}

// InsertChar inserts ch at the cursor and advances it one column.
func (b *Buffer) InsertChar(ch rune) {
	b.pushUndo()
	pos := b.cursor.Position()
	if pos.Row >= len(b.content) {
		return
	}
	line := []rune(b.content[pos.Row])
	col := pos.Col
	if col > len(line) {
		col = len(line)
	}
	line = append(line[:col], append([]rune{ch}, line[col:]...)...)
	b.content[pos.Row] = string(line)
	b.cursor.MoveRight(b.content)
	b.modified = true
}

// InsertNewline splits the current line at the cursor and places the
// cursor at column 0 of the new line.
func (b *Buffer) InsertNewline() {
	b.pushUndo()
	pos := b.cursor.Position()
	if pos.Row >= len(b.content) {
		return
	}
	line := []rune(b.content[pos.Row])
	col := pos.Col
	if col > len(line) {
		col = len(line)
	}
	rest := string(line[col:])
	b.content[pos.Row] = string(line[:col])
	b.content = append(b.content[:pos.Row+1], append([]string{rest}, b.content[pos.Row+1:]...)...)
	b.cursor.MoveDown(b.content)
	b.cursor.MoveToColumn(0)
	b.modified = true
}

// Backspace deletes the codepoint left of the cursor, or merges the
// current line onto the previous one when at column 0.
func (b *Buffer) Backspace() {
	b.pushUndo()
	pos := b.cursor.Position()
	switch {
	case pos.Col > 0:
		line := []rune(b.content[pos.Row])
		if pos.Col-1 < len(line) {
			b.content[pos.Row] = string(append(line[:pos.Col-1], line[pos.Col:]...))
			b.cursor.MoveLeft(b.content)
			b.modified = true
		}
	case pos.Row > 0:
		merged := b.content[pos.Row]
		prevLen := runeLen(b.content[pos.Row-1])
		b.content = append(b.content[:pos.Row], b.content[pos.Row+1:]...)
		b.content[pos.Row-1] += merged
		b.cursor.MoveUp(b.content)
		b.cursor.MoveToColumn(prevLen)
		b.modified = true
	}
}

// DeleteChar deletes the codepoint under the cursor. At end of line it
// merges the next line onto the current one instead.
func (b *Buffer) DeleteChar() {
	b.pushUndo()
	pos := b.cursor.Position()
	if pos.Row >= len(b.content) {
		return
	}
	line := []rune(b.content[pos.Row])
	switch {
	case pos.Col < len(line):
		b.content[pos.Row] = string(append(line[:pos.Col], line[pos.Col+1:]...))
		b.modified = true
	case pos.Row+1 < len(b.content):
		b.content[pos.Row] += b.content[pos.Row+1]
		b.content = append(b.content[:pos.Row+1], b.content[pos.Row+2:]...)
		b.modified = true
	}
}

// DeleteLine removes the current line, or clears it when it is the only
// line. The cursor moves up if the removed row was the last one, and the
// column resets to 0.
func (b *Buffer) DeleteLine() {
	b.pushUndo()
	pos := b.cursor.Position()
	if len(b.content) == 1 {
		b.content[0] = ""
	} else {
		b.content = append(b.content[:pos.Row], b.content[pos.Row+1:]...)
		if pos.Row >= len(b.content) && pos.Row > 0 {
			b.cursor.MoveUp(b.content)
		}
	}
	b.cursor.MoveToColumn(0)
	b.modified = true
}

// InsertLineBelow opens a blank line below the cursor and moves onto it.
func (b *Buffer) InsertLineBelow() {
	b.pushUndo()
	pos := b.cursor.Position()
	b.content = append(b.content[:pos.Row+1], append([]string{""}, b.content[pos.Row+1:]...)...)
	b.cursor.MoveDown(b.content)
	b.cursor.MoveToColumn(0)
	b.modified = true
}

// InsertLineAbove opens a blank line above the cursor and moves onto it.
func (b *Buffer) InsertLineAbove() {
	b.pushUndo()
	pos := b.cursor.Position()
	b.content = append(b.content[:pos.Row], append([]string{""}, b.content[pos.Row:]...)...)
	b.cursor.MoveToColumn(0)
	b.modified = true
}

// Undo restores the most recent snapshot, pushing the current content
// onto the redo stack. No-op when the undo stack is empty.
func (b *Buffer) Undo() {
	if len(b.undoStack) == 0 {
		return
	}
	prev := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.redoStack = append(b.redoStack, cloneLines(b.content))
	b.content = prev
	b.cursor.Clamp(b.content)
	b.modified = true
}

// Redo reverses the most recent Undo. No-op when the redo stack is empty.
func (b *Buffer) Redo() {
	if len(b.redoStack) == 0 {
		return
	}
	next := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	b.undoStack = append(b.undoStack, cloneLines(b.content))
	b.content = next
	b.cursor.Clamp(b.content)
	b.modified = true
}

// UndoDepth returns the current undo stack depth.
func (b *Buffer) UndoDepth() int { return len(b.undoStack) }

// Save writes the buffer to its file path, joining lines with "\n" and
// appending no trailing newline. Returns ErrNoFilePath if no path is set.
func (b *Buffer) Save() error {
	if b.path == "" {
		return ErrNoFilePath
	}
	if err := os.WriteFile(b.path, []byte(strings.Join(b.content, "\n")), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", b.path, err)
	}
	b.modified = false
	return nil
}

// SaveAs writes the buffer to path and adopts it as the buffer's path.
func (b *Buffer) SaveAs(path string) error {
	if err := os.WriteFile(path, []byte(strings.Join(b.content, "\n")), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	b.path = path
	b.name = filepath.Base(path)
	b.modified = false
	return nil
}

// pushUndo snapshots the current content onto the undo stack, evicting
// the oldest snapshot at capacity, and clears the redo stack.
func (b *Buffer) pushUndo() {
	if len(b.undoStack) >= maxUndoDepth {
		b.undoStack = b.undoStack[1:]
	}
	b.undoStack = append(b.undoStack, cloneLines(b.content))
	b.redoStack = nil
}

// cloneLines copies a line slice.
func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// runeLen returns the codepoint length of s.
func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
