package buffer

import (
	"fmt"
	"sort"
)

// Manager owns every open buffer and tracks which one is current.
//
// Buffers are keyed by a monotonically increasing id, starting at 1.
// The Manager is exclusively owned by a single caller; it is not safe
// for concurrent use.
type Manager struct {
	buffers   map[int]*Buffer
	currentID int // 0 means no current buffer
	nextID    int
}

// NewManager creates an empty buffer registry.
func NewManager() *Manager {
	return &Manager{
		buffers: make(map[int]*Buffer),
		nextID:  1,
	}
}

// IsEmpty reports whether no buffers are open.
func (m *Manager) IsEmpty() bool {
	return len(m.buffers) == 0
}

// Count returns the number of open buffers.
func (m *Manager) Count() int {
	return len(m.buffers)
}

// Create registers a new empty buffer and makes it current.
// Returns the new buffer's id.
func (m *Manager) Create(name string) int {
	id := m.nextID
	m.nextID++
	m.buffers[id] = New(id, name)
	m.currentID = id
	return id
}

// OpenFile opens path into a new buffer and makes it current.
// A non-existent path opens an empty buffer bound to that path.
func (m *Manager) OpenFile(path string) (int, error) {
	id := m.nextID
	m.nextID++
	buf, err := NewFromFile(id, path)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	m.buffers[id] = buf
	m.currentID = id
	return id, nil
}

// Current returns the current buffer, or nil when none is selected.
func (m *Manager) Current() *Buffer {
	if m.currentID == 0 {
		return nil
	}
	return m.buffers[m.currentID]
}

// CurrentID returns the current buffer id, or 0 when none is selected.
func (m *Manager) CurrentID() int {
	return m.currentID
}

// Get returns the buffer with the given id, or nil.
func (m *Manager) Get(id int) *Buffer {
	return m.buffers[id]
}

// Switch makes the buffer with the given id current.
// Returns ErrBufferNotFound if the id is not registered.
func (m *Manager) Switch(id int) error {
	if _, ok := m.buffers[id]; !ok {
		return ErrBufferNotFound
	}
	m.currentID = id
	return nil
}

// Close removes the buffer with the given id.
// A modified buffer is never removed; Close returns ErrUnsavedChanges
// and leaves it registered. If the closed buffer was current, an
// arbitrary remaining buffer becomes current, or none if empty.
func (m *Manager) Close(id int) error {
	buf, ok := m.buffers[id]
	if !ok {
		return ErrBufferNotFound
	}
	if buf.Modified() {
		return ErrUnsavedChanges
	}
	delete(m.buffers, id)
	if m.currentID == id {
		m.currentID = 0
		for remaining := range m.buffers {
			m.currentID = remaining
			break
		}
	}
	return nil
}

// List returns all open buffers ordered by id.
func (m *Manager) List() []*Buffer {
	out := make([]*Buffer, 0, len(m.buffers))
	for _, buf := range m.buffers {
		out = append(out, buf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// NextBuffer cycles the current buffer to the next id, wrapping around.
func (m *Manager) NextBuffer() {
	m.cycle(1)
}

// PrevBuffer cycles the current buffer to the previous id, wrapping around.
func (m *Manager) PrevBuffer() {
	m.cycle(-1)
}

func (m *Manager) cycle(step int) {
	if len(m.buffers) < 2 || m.currentID == 0 {
		return
	}
	ids := make([]int, 0, len(m.buffers))
	for id := range m.buffers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for i, id := range ids {
		if id == m.currentID {
			m.currentID = ids[(i+step+len(ids))%len(ids)]
			return
		}
	}
}

// Delegated cursor and edit operations. Every call is a no-op when there
// is no current buffer.

// MoveCursorLeft steps the current buffer's cursor left.
func (m *Manager) MoveCursorLeft() {
	if b := m.Current(); b != nil {
		b.CursorLeft()
	}
}

// MoveCursorRight steps the current buffer's cursor right.
func (m *Manager) MoveCursorRight() {
	if b := m.Current(); b != nil {
		b.CursorRight()
	}
}

// MoveCursorUp moves the current buffer's cursor up one row.
func (m *Manager) MoveCursorUp() {
	if b := m.Current(); b != nil {
		b.CursorUp()
	}
}

// MoveCursorDown moves the current buffer's cursor down one row.
func (m *Manager) MoveCursorDown() {
	if b := m.Current(); b != nil {
		b.CursorDown()
	}
}

// MoveWordForward moves to the next word run.
func (m *Manager) MoveWordForward() {
	if b := m.Current(); b != nil {
		b.WordForward()
	}
}

// MoveWordBackward moves to the previous word run.
func (m *Manager) MoveWordBackward() {
	if b := m.Current(); b != nil {
		b.WordBackward()
	}
}

// MoveWORDForward moves to the next whitespace-separated WORD.
func (m *Manager) MoveWORDForward() {
	if b := m.Current(); b != nil {
		b.WORDForward()
	}
}

// MoveWORDBackward moves to the previous whitespace-separated WORD.
func (m *Manager) MoveWORDBackward() {
	if b := m.Current(); b != nil {
		b.WORDBackward()
	}
}

// MoveWordEnd moves onto the last character of the current or next word.
func (m *Manager) MoveWordEnd() {
	if b := m.Current(); b != nil {
		b.WordEnd()
	}
}

// MoveToLineStart moves the cursor to column 0.
func (m *Manager) MoveToLineStart() {
	if b := m.Current(); b != nil {
		b.MoveToLineStart()
	}
}

// MoveToLineEnd moves the cursor past the last character of the line.
func (m *Manager) MoveToLineEnd() {
	if b := m.Current(); b != nil {
		b.MoveToLineEnd()
	}
}

// MoveToFileStart moves the cursor to the first row, column 0.
func (m *Manager) MoveToFileStart() {
	if b := m.Current(); b != nil {
		b.MoveToFileStart()
	}
}

// MoveToFileEnd moves the cursor to the end of the last line.
func (m *Manager) MoveToFileEnd() {
	if b := m.Current(); b != nil {
		b.MoveToFileEnd()
	}
}

// InsertChar inserts ch at the cursor of the current buffer.
func (m *Manager) InsertChar(ch rune) {
	if b := m.Current(); b != nil {
		b.InsertChar(ch)
	}
}

// InsertNewline splits the current line at the cursor.
func (m *Manager) InsertNewline() {
	if b := m.Current(); b != nil {
		b.InsertNewline()
	}
}

// InsertTab inserts a literal tab character.
func (m *Manager) InsertTab() {
	if b := m.Current(); b != nil {
		b.InsertChar('\t')
	}
}

// Backspace deletes the codepoint left of the cursor.
func (m *Manager) Backspace() {
	if b := m.Current(); b != nil {
		b.Backspace()
	}
}

// DeleteChar deletes the codepoint under the cursor.
func (m *Manager) DeleteChar() {
	if b := m.Current(); b != nil {
		b.DeleteChar()
	}
}

// DeleteLine removes the current line.
func (m *Manager) DeleteLine() {
	if b := m.Current(); b != nil {
		b.DeleteLine()
	}
}

// InsertLineBelow opens a blank line below the cursor.
func (m *Manager) InsertLineBelow() {
	if b := m.Current(); b != nil {
		b.InsertLineBelow()
	}
}

// InsertLineAbove opens a blank line above the cursor.
func (m *Manager) InsertLineAbove() {
	if b := m.Current(); b != nil {
		b.InsertLineAbove()
	}
}

// Undo reverts the most recent edit in the current buffer.
func (m *Manager) Undo() {
	if b := m.Current(); b != nil {
		b.Undo()
	}
}

// Redo reapplies the most recently undone edit.
func (m *Manager) Redo() {
	if b := m.Current(); b != nil {
		b.Redo()
	}
}

// SaveCurrent saves the current buffer to its file path.
func (m *Manager) SaveCurrent() error {
	b := m.Current()
	if b == nil {
		return ErrNoCurrentBuffer
	}
	return b.Save()
}
