package mode

import (
	"strings"

	"github.com/zenvim/zenvim/internal/engine/buffer"
	"github.com/zenvim/zenvim/internal/input/key"
)

// Manager is the modal state machine. It processes one key event to
// completion per call; no operation blocks or spawns work.
type Manager struct {
	current           Mode
	last              Mode
	commandBuffer     []rune
	lastSearchPattern string
	quitRequested     bool
}

// NewManager creates a manager in Normal mode.
func NewManager() *Manager {
	return &Manager{current: Normal, last: Normal}
}

// Current returns the active mode.
func (m *Manager) Current() Mode {
	return m.current
}

// LastMode returns the mode before the most recent transition.
func (m *Manager) LastMode() Mode {
	return m.last
}

// CommandBuffer returns the pending command-line text.
func (m *Manager) CommandBuffer() string {
	return string(m.commandBuffer)
}

// LastSearchPattern returns the most recent search pattern.
func (m *Manager) LastSearchPattern() string {
	return m.lastSearchPattern
}

// QuitRequested reports whether an ex command signalled quit intent.
// Actual termination is the dispatcher's responsibility.
func (m *Manager) QuitRequested() bool {
	return m.quitRequested
}

// setMode transitions to a new mode, remembering the previous one.
func (m *Manager) setMode(mode Mode) {
	m.last = m.current
	m.current = mode
}

// enterCommand switches to Command mode with an empty command buffer.
func (m *Manager) enterCommand() {
	m.setMode(Command)
	m.commandBuffer = m.commandBuffer[:0]
}

// enterSearch switches to Command mode with the buffer pre-seeded
// with the search prefix.
func (m *Manager) enterSearch() {
	m.setMode(Command)
	m.commandBuffer = append(m.commandBuffer[:0], '/')
}

// HandleKey processes a single key event against the current mode.
// File-operation errors from ex commands surface unmodified; everything
// else is total.
func (m *Manager) HandleKey(ev key.Event, bufs *buffer.Manager) error {
	switch m.current {
	case Normal:
		return m.handleNormal(ev, bufs)
	case Insert:
		m.handleInsert(ev, bufs)
	case Visual:
		m.handleVisual(ev)
	case Command:
		return m.handleCommand(ev, bufs)
	}
	return nil
}

func (m *Manager) handleNormal(ev key.Event, bufs *buffer.Manager) error {
	// Ctrl chords before plain characters.
	switch {
	case ev.IsCtrl('r'):
		bufs.Redo()
		return nil
	case ev.IsCtrl('n'):
		bufs.NextBuffer()
		return nil
	case ev.IsCtrl('p'):
		bufs.PrevBuffer()
		return nil
	}

	switch ev.Key {
	case key.KeyLeft:
		bufs.MoveCursorLeft()
		return nil
	case key.KeyDown:
		bufs.MoveCursorDown()
		return nil
	case key.KeyUp:
		bufs.MoveCursorUp()
		return nil
	case key.KeyRight:
		bufs.MoveCursorRight()
		return nil
	}

	if !ev.IsChar() {
		return nil
	}

	switch ev.Rune {
	// Motion
	case 'h':
		bufs.MoveCursorLeft()
	case 'j':
		bufs.MoveCursorDown()
	case 'k':
		bufs.MoveCursorUp()
	case 'l':
		bufs.MoveCursorRight()
	case 'w':
		bufs.MoveWordForward()
	case 'b':
		bufs.MoveWordBackward()
	case 'W':
		bufs.MoveWORDForward()
	case 'B':
		bufs.MoveWORDBackward()
	case 'e', 'E':
		bufs.MoveWordEnd()
	case '0':
		bufs.MoveToLineStart()
	case '$':
		bufs.MoveToLineEnd()
	case 'g':
		bufs.MoveToFileStart()
	case 'G':
		bufs.MoveToFileEnd()

	// Mode switches
	case 'i':
		m.setMode(Insert)
	case 'I':
		bufs.MoveToLineStart()
		m.setMode(Insert)
	case 'a':
		bufs.MoveCursorRight()
		m.setMode(Insert)
	case 'A':
		bufs.MoveToLineEnd()
		m.setMode(Insert)
	case 'o':
		bufs.InsertLineBelow()
		m.setMode(Insert)
	case 'O':
		bufs.InsertLineAbove()
		m.setMode(Insert)
	case 'v':
		m.setMode(Visual)
	case ':':
		m.enterCommand()
	case '/':
		m.enterSearch()

	// Editing
	case 'x':
		bufs.DeleteChar()
	case 'd':
		bufs.DeleteLine()
	case 'u':
		bufs.Undo()

	// Search
	case 'n':
		if m.lastSearchPattern != "" {
			m.searchForward(m.lastSearchPattern, bufs)
		}
	case 'N':
		if m.lastSearchPattern != "" {
			m.searchBackward(m.lastSearchPattern, bufs)
		}
	case '*':
		if word := wordUnderCursor(bufs); word != "" {
			m.lastSearchPattern = word
			m.searchForward(word, bufs)
		}
	}
	return nil
}

func (m *Manager) handleInsert(ev key.Event, bufs *buffer.Manager) {
	switch {
	case ev.Key == key.KeyEscape:
		m.setMode(Normal)
	case ev.Key == key.KeyEnter:
		bufs.InsertNewline()
	case ev.Key == key.KeyBackspace:
		bufs.Backspace()
	case ev.Key == key.KeyDelete:
		bufs.DeleteChar()
	case ev.Key == key.KeyTab:
		bufs.InsertTab()
	case ev.IsChar():
		bufs.InsertChar(ev.Rune)
	}
}

func (m *Manager) handleVisual(ev key.Event) {
	// Selection operators are not implemented; Visual is only
	// enterable and exitable.
	if ev.Key == key.KeyEscape {
		m.setMode(Normal)
	}
}

func (m *Manager) handleCommand(ev key.Event, bufs *buffer.Manager) error {
	switch {
	case ev.Key == key.KeyEscape:
		m.setMode(Normal)
	case ev.Key == key.KeyEnter:
		cmd := string(m.commandBuffer)
		m.setMode(Normal)
		return m.execute(cmd, bufs)
	case ev.Key == key.KeyBackspace:
		if n := len(m.commandBuffer); n > 0 {
			m.commandBuffer = m.commandBuffer[:n-1]
		}
	case ev.IsChar():
		m.commandBuffer = append(m.commandBuffer, ev.Rune)
	}
	return nil
}

// execute runs one ex-style command. Unknown commands are silently
// ignored; that is deliberate, not an error.
func (m *Manager) execute(cmd string, bufs *buffer.Manager) error {
	trimmed := strings.TrimSpace(cmd)

	if pattern, ok := strings.CutPrefix(trimmed, "/"); ok {
		if pattern != "" {
			m.lastSearchPattern = pattern
			m.searchForward(pattern, bufs)
		}
		return nil
	}

	switch {
	case trimmed == "q" || trimmed == "quit" || trimmed == "q!":
		m.quitRequested = true
	case trimmed == "w" || trimmed == "write":
		return bufs.SaveCurrent()
	case trimmed == "wq" || trimmed == "x" || trimmed == "wq!":
		if err := bufs.SaveCurrent(); err != nil {
			return err
		}
		m.quitRequested = true
	case strings.HasPrefix(trimmed, "w "):
		name := strings.TrimSpace(trimmed[2:])
		if b := bufs.Current(); b != nil && name != "" {
			return b.SaveAs(name)
		}
	case strings.HasPrefix(trimmed, "e "):
		name := strings.TrimSpace(trimmed[2:])
		if name != "" {
			if _, err := bufs.OpenFile(name); err != nil {
				return err
			}
		}
	}
	return nil
}
