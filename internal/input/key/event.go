package key

import (
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// NewSpecialEvent creates an event for a special key.
func NewSpecialEvent(k Key) Event {
	return Event{Key: k}
}

// NewCtrlEvent creates an event for Ctrl plus a character.
func NewCtrlEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: ModCtrl}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character with no Ctrl or
// Alt held. Shift alone is part of the character itself.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) &&
		e.Modifiers&(ModCtrl|ModAlt) == 0
}

// IsCtrl returns true if this is Ctrl plus the given character.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Rune == r && e.Modifiers.HasCtrl()
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key && e.Rune == other.Rune && e.Modifiers == other.Modifiers
}

// String returns a canonical representation like "a", "C-n" or "Esc".
func (e Event) String() string {
	var parts []string
	if mods := e.Modifiers.String(); mods != "" {
		parts = append(parts, mods)
	}
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.Key == KeyRune:
		parts = append(parts, string(e.Rune))
	default:
		parts = append(parts, e.Key.String())
	}
	return strings.Join(parts, "-")
}
