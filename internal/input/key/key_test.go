package key

import (
	"errors"
	"testing"
)

func TestParseSingleCharacter(t *testing.T) {
	ev, err := Parse("a")
	if err != nil {
		t.Fatal(err)
	}
	if !ev.Equals(NewRuneEvent('a')) {
		t.Errorf("expected rune event 'a', got %s", ev)
	}
}

func TestParseNamedKeys(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"Enter", NewSpecialEvent(KeyEnter)},
		{"Esc", NewSpecialEvent(KeyEscape)},
		{"Tab", NewSpecialEvent(KeyTab)},
		{"Space", NewRuneEvent(' ')},
	}
	for _, tt := range tests {
		ev, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.spec, err)
			continue
		}
		if !ev.Equals(tt.want) {
			t.Errorf("Parse(%q) = %s, want %s", tt.spec, ev, tt.want)
		}
	}
}

func TestParseCtrlChord(t *testing.T) {
	ev, err := Parse("C-n")
	if err != nil {
		t.Fatal(err)
	}
	if !ev.IsCtrl('n') {
		t.Errorf("expected Ctrl-n, got %s", ev)
	}
}

func TestParseStackedModifiers(t *testing.T) {
	ev, err := Parse("C-S-p")
	if err != nil {
		t.Fatal(err)
	}
	if !ev.Modifiers.HasCtrl() || !ev.Modifiers.HasShift() {
		t.Errorf("expected ctrl and shift, got %s", ev.Modifiers)
	}
	if ev.Rune != 'p' {
		t.Errorf("expected rune 'p', got %q", ev.Rune)
	}
}

func TestParseLoneHyphen(t *testing.T) {
	ev, err := Parse("-")
	if err != nil {
		t.Fatal(err)
	}
	if !ev.Equals(NewRuneEvent('-')) {
		t.Errorf("expected '-', got %s", ev)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("expected ErrEmptySpec, got %v", err)
	}
	if _, err := Parse("X-a"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec for unknown modifier, got %v", err)
	}
	if _, err := Parse("notakey"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec for multi-rune key, got %v", err)
	}
}

func TestIsCharExcludesChords(t *testing.T) {
	if !NewRuneEvent('x').IsChar() {
		t.Error("plain rune should be a char")
	}
	if NewCtrlEvent('x').IsChar() {
		t.Error("ctrl chord should not be a char")
	}
	if NewSpecialEvent(KeyEnter).IsChar() {
		t.Error("special key should not be a char")
	}
	if !NewRuneEvent(' ').IsChar() {
		t.Error("space should be a char")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewRuneEvent('a'), "a"},
		{NewRuneEvent(' '), "Space"},
		{NewCtrlEvent('n'), "C-n"},
		{NewSpecialEvent(KeyEscape), "Esc"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, spec := range []string{"a", "Space", "C-n", "Esc", "Enter"} {
		ev, err := Parse(spec)
		if err != nil {
			t.Fatalf("Parse(%q): %v", spec, err)
		}
		again, err := Parse(ev.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", ev.String(), err)
		}
		if !ev.Equals(again) {
			t.Errorf("round trip of %q changed %s to %s", spec, ev, again)
		}
	}
}
