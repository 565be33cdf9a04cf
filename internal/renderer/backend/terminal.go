// Package backend wraps tcell behind a small terminal surface. It owns
// screen lifecycle, cell output, and the translation of raw terminal
// events into key events.
package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/zenvim/zenvim/internal/input/key"
	"github.com/zenvim/zenvim/internal/input/mode"
)

// EventType classifies a terminal event.
type EventType int

const (
	// EventNone is an event the editor ignores.
	EventNone EventType = iota
	// EventKey carries a keyboard event.
	EventKey
	// EventResize reports a new terminal size.
	EventResize
	// EventWake is a posted interrupt used to unblock the event loop.
	EventWake
)

// Event is one terminal event, already translated for the editor.
type Event struct {
	Type          EventType
	Key           key.Event
	Width, Height int
}

// Terminal drives a tcell screen. All drawing methods are safe for
// concurrent use; PollEvent must be called from a single goroutine.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal backend on the real terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewFromScreen wraps an existing screen. Tests use this with
// tcell.NewSimulationScreen.
func NewFromScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init puts the terminal into raw mode.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Init()
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the screen dimensions in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// SetContent writes one cell.
func (t *Terminal) SetContent(x, y int, r rune, style tcell.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, r, nil, style)
}

// Fill paints a rectangle with a single rune and style.
func (t *Terminal) Fill(left, top, right, bottom int, r rune, style tcell.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	for y := top; y < bottom && y < height; y++ {
		for x := left; x < right && x < width; x++ {
			if x >= 0 && y >= 0 {
				t.screen.SetContent(x, y, r, nil, style)
			}
		}
	}
}

// Clear blanks the whole screen.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

// Show flushes pending output to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// ShowCursor places the hardware cursor.
func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

// HideCursor hides the hardware cursor.
func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// SetCursorShape applies a mode's cursor shape.
func (t *Terminal) SetCursorShape(shape mode.CursorShape) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch shape {
	case mode.ShapeBar:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	default:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	}
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

// PollEvent blocks for the next event.
func (t *Terminal) PollEvent() Event {
	return translateEvent(t.screen.PollEvent())
}

// Wake posts an interrupt so a blocked PollEvent returns.
func (t *Terminal) Wake() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // queue may be full
}

// translateEvent converts a tcell event into an editor event.
func translateEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: translateKey(e)}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventWake}
	default:
		return Event{Type: EventNone}
	}
}

// translateKey converts a tcell key event into a key.Event.
// Named keys are matched before the control-chord range because tcell
// aliases Enter, Tab and Backspace into it.
func translateKey(e *tcell.EventKey) key.Event {
	switch e.Key() {
	case tcell.KeyRune:
		ev := key.NewRuneEvent(e.Rune())
		if e.Modifiers()&tcell.ModAlt != 0 {
			ev.Modifiers = ev.Modifiers.With(key.ModAlt)
		}
		return ev
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape)
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter)
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace)
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete)
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome)
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd)
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp)
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown)
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp)
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown)
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft)
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight)
	}

	if k := e.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.NewCtrlEvent(rune('a' + k - tcell.KeyCtrlA))
	}
	return key.Event{Key: key.KeyNone}
}
