package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "@"
//   - Key names: "Enter", "Esc", "Tab", "Space", "BS"
//   - With modifiers: "C-n", "A-x", "C-S-p"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// A lone "-" is the hyphen character, not a modifier separator.
	if spec == "-" {
		return NewRuneEvent('-'), nil
	}

	parts := strings.Split(spec, "-")
	keyPart := parts[len(parts)-1]

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c", "ctrl":
			mods = mods.With(ModCtrl)
		case "a", "alt":
			mods = mods.With(ModAlt)
		case "s", "shift":
			mods = mods.With(ModShift)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	if k := KeyFromName(strings.ToLower(keyPart)); k != KeyNone {
		return Event{Key: k, Modifiers: mods}, nil
	}
	if strings.EqualFold(keyPart, "space") {
		return Event{Key: KeyRune, Rune: ' ', Modifiers: mods}, nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	return Event{Key: KeyRune, Rune: runes[0], Modifiers: mods}, nil
}
