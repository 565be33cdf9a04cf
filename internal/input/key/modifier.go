package key

import "strings"

// Modifier is a bitmask of modifier keys held during a key press.
type Modifier uint8

const (
	// ModNone means no modifiers are active.
	ModNone Modifier = 0

	// ModShift is the Shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl is the Control key.
	ModCtrl
	// ModAlt is the Alt/Option key.
	ModAlt
)

// With returns the modifier set with m added.
func (mod Modifier) With(m Modifier) Modifier {
	return mod | m
}

// HasShift reports whether Shift is active.
func (mod Modifier) HasShift() bool { return mod&ModShift != 0 }

// HasCtrl reports whether Control is active.
func (mod Modifier) HasCtrl() bool { return mod&ModCtrl != 0 }

// HasAlt reports whether Alt is active.
func (mod Modifier) HasAlt() bool { return mod&ModAlt != 0 }

// String returns a representation like "C-A" or "" for no modifiers.
func (mod Modifier) String() string {
	var parts []string
	if mod.HasCtrl() {
		parts = append(parts, "C")
	}
	if mod.HasAlt() {
		parts = append(parts, "A")
	}
	if mod.HasShift() {
		parts = append(parts, "S")
	}
	return strings.Join(parts, "-")
}
