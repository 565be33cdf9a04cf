package mode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zenvim/zenvim/internal/engine/buffer"
	"github.com/zenvim/zenvim/internal/engine/cursor"
	"github.com/zenvim/zenvim/internal/input/key"
)

// helpers

func newTestEditor(t *testing.T, lines ...string) (*Manager, *buffer.Manager) {
	t.Helper()
	bufs := buffer.NewManager()
	bufs.Create("test")
	b := bufs.Current()
	for i, line := range lines {
		for _, r := range line {
			b.InsertChar(r)
		}
		if i < len(lines)-1 {
			b.InsertNewline()
		}
	}
	b.MoveToFileStart()
	return NewManager(), bufs
}

func press(t *testing.T, m *Manager, bufs *buffer.Manager, keys string) {
	t.Helper()
	for _, r := range keys {
		if err := m.HandleKey(key.NewRuneEvent(r), bufs); err != nil {
			t.Fatalf("key %q: %v", r, err)
		}
	}
}

func pressSpecial(t *testing.T, m *Manager, bufs *buffer.Manager, k key.Key) {
	t.Helper()
	if err := m.HandleKey(key.NewSpecialEvent(k), bufs); err != nil {
		t.Fatalf("key %s: %v", k, err)
	}
}

func cursorAt(t *testing.T, bufs *buffer.Manager, row, col int) {
	t.Helper()
	pos := bufs.Current().CursorPos()
	if !pos.Equals(cursor.Position{Row: row, Col: col}) {
		t.Errorf("expected cursor %d:%d, got %s", row, col, pos)
	}
}

// Mode transitions

func TestStartsInNormalMode(t *testing.T) {
	m := NewManager()
	if m.Current() != Normal {
		t.Errorf("expected Normal, got %s", m.Current())
	}
}

func TestInsertModeRoundTrip(t *testing.T) {
	m, bufs := newTestEditor(t, "")
	press(t, m, bufs, "i")
	if m.Current() != Insert {
		t.Fatalf("expected Insert, got %s", m.Current())
	}
	pressSpecial(t, m, bufs, key.KeyEscape)
	if m.Current() != Normal {
		t.Errorf("expected Normal, got %s", m.Current())
	}
	if m.LastMode() != Insert {
		t.Errorf("expected last mode Insert, got %s", m.LastMode())
	}
}

func TestVisualModeEnterAndExit(t *testing.T) {
	m, bufs := newTestEditor(t, "")
	press(t, m, bufs, "v")
	if m.Current() != Visual {
		t.Fatalf("expected Visual, got %s", m.Current())
	}
	pressSpecial(t, m, bufs, key.KeyEscape)
	if m.Current() != Normal {
		t.Errorf("expected Normal, got %s", m.Current())
	}
}

func TestAppendMovesRightBeforeInsert(t *testing.T) {
	m, bufs := newTestEditor(t, "ab")
	press(t, m, bufs, "a")
	if m.Current() != Insert {
		t.Fatalf("expected Insert, got %s", m.Current())
	}
	cursorAt(t, bufs, 0, 1)
}

func TestOpenLineBelowEntersInsert(t *testing.T) {
	m, bufs := newTestEditor(t, "ab")
	press(t, m, bufs, "o")
	if m.Current() != Insert {
		t.Fatalf("expected Insert, got %s", m.Current())
	}
	if bufs.Current().LineCount() != 2 || bufs.Current().Line(1) != "" {
		t.Errorf("expected blank line below, got %v", bufs.Current().Lines())
	}
	cursorAt(t, bufs, 1, 0)
}

func TestShiftAEntersInsertAtLineEnd(t *testing.T) {
	m, bufs := newTestEditor(t, "hello")
	press(t, m, bufs, "A")
	if m.Current() != Insert {
		t.Fatalf("expected Insert, got %s", m.Current())
	}
	cursorAt(t, bufs, 0, 5)
}

// Normal-mode operations

func TestNormalModeMotions(t *testing.T) {
	m, bufs := newTestEditor(t, "hello world", "second")
	press(t, m, bufs, "w")
	cursorAt(t, bufs, 0, 6)
	press(t, m, bufs, "b")
	cursorAt(t, bufs, 0, 0)
	press(t, m, bufs, "j")
	cursorAt(t, bufs, 1, 0)
	press(t, m, bufs, "$")
	cursorAt(t, bufs, 1, 6)
	press(t, m, bufs, "0")
	cursorAt(t, bufs, 1, 0)
	press(t, m, bufs, "G")
	cursorAt(t, bufs, 1, 6)
	press(t, m, bufs, "g")
	cursorAt(t, bufs, 0, 0)
}

func TestDeleteCharAndLine(t *testing.T) {
	m, bufs := newTestEditor(t, "abc", "def")
	press(t, m, bufs, "x")
	if bufs.Current().Line(0) != "bc" {
		t.Errorf("expected \"bc\", got %q", bufs.Current().Line(0))
	}
	press(t, m, bufs, "d")
	if bufs.Current().LineCount() != 1 || bufs.Current().Line(0) != "def" {
		t.Errorf("expected [\"def\"], got %v", bufs.Current().Lines())
	}
}

func TestUndoRedoKeys(t *testing.T) {
	m, bufs := newTestEditor(t, "abc")
	press(t, m, bufs, "x")
	press(t, m, bufs, "u")
	if bufs.Current().Line(0) != "abc" {
		t.Fatalf("expected undo back to \"abc\", got %q", bufs.Current().Line(0))
	}
	if err := m.HandleKey(key.NewCtrlEvent('r'), bufs); err != nil {
		t.Fatal(err)
	}
	if bufs.Current().Line(0) != "bc" {
		t.Errorf("expected redo to \"bc\", got %q", bufs.Current().Line(0))
	}
}

func TestBufferCycleKeys(t *testing.T) {
	m, bufs := newTestEditor(t, "one")
	bufs.Create("second")
	if err := m.HandleKey(key.NewCtrlEvent('n'), bufs); err != nil {
		t.Fatal(err)
	}
	if bufs.CurrentID() != 1 {
		t.Errorf("expected cycle to buffer 1, got %d", bufs.CurrentID())
	}
	if err := m.HandleKey(key.NewCtrlEvent('p'), bufs); err != nil {
		t.Fatal(err)
	}
	if bufs.CurrentID() != 2 {
		t.Errorf("expected cycle back to buffer 2, got %d", bufs.CurrentID())
	}
}

// Insert mode

func TestInsertModeTyping(t *testing.T) {
	m, bufs := newTestEditor(t, "")
	press(t, m, bufs, "ihi")
	if bufs.Current().Line(0) != "hi" {
		t.Errorf("expected \"hi\", got %q", bufs.Current().Line(0))
	}
	pressSpecial(t, m, bufs, key.KeyEnter)
	press(t, m, bufs, "yo")
	if bufs.Current().Line(1) != "yo" {
		t.Errorf("expected \"yo\" on line 2, got %q", bufs.Current().Line(1))
	}
	pressSpecial(t, m, bufs, key.KeyBackspace)
	if bufs.Current().Line(1) != "y" {
		t.Errorf("expected backspace to leave \"y\", got %q", bufs.Current().Line(1))
	}
	pressSpecial(t, m, bufs, key.KeyTab)
	if bufs.Current().Line(1) != "y\t" {
		t.Errorf("expected literal tab, got %q", bufs.Current().Line(1))
	}
}

// Command mode

func TestCommandBufferEditing(t *testing.T) {
	m, bufs := newTestEditor(t, "")
	press(t, m, bufs, ":wx")
	if m.CommandBuffer() != "wx" {
		t.Fatalf("expected command buffer \"wx\", got %q", m.CommandBuffer())
	}
	pressSpecial(t, m, bufs, key.KeyBackspace)
	if m.CommandBuffer() != "w" {
		t.Errorf("expected \"w\" after backspace, got %q", m.CommandBuffer())
	}
	pressSpecial(t, m, bufs, key.KeyEscape)
	if m.Current() != Normal {
		t.Errorf("expected Escape to discard and return to Normal, got %s", m.Current())
	}
}

func TestQuitCommandSignalsIntent(t *testing.T) {
	m, bufs := newTestEditor(t, "")
	press(t, m, bufs, ":q")
	pressSpecial(t, m, bufs, key.KeyEnter)
	if !m.QuitRequested() {
		t.Error("expected quit to be requested")
	}
	if m.Current() != Normal {
		t.Errorf("expected Normal after command, got %s", m.Current())
	}
}

func TestWriteCommandSavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	bufs := buffer.NewManager()
	if _, err := bufs.OpenFile(path); err != nil {
		t.Fatal(err)
	}
	m := NewManager()
	press(t, m, bufs, "ihello")
	pressSpecial(t, m, bufs, key.KeyEscape)
	press(t, m, bufs, ":w")
	pressSpecial(t, m, bufs, key.KeyEnter)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("expected \"hello\" on disk, got %q", data)
	}
}

func TestWriteWithoutPathSurfacesError(t *testing.T) {
	m, bufs := newTestEditor(t, "x")
	press(t, m, bufs, ":w")
	err := m.HandleKey(key.NewSpecialEvent(key.KeyEnter), bufs)
	if err != buffer.ErrNoFilePath {
		t.Errorf("expected ErrNoFilePath, got %v", err)
	}
}

func TestWriteQuitAbortsOnSaveError(t *testing.T) {
	m, bufs := newTestEditor(t, "x")
	press(t, m, bufs, ":wq")
	if err := m.HandleKey(key.NewSpecialEvent(key.KeyEnter), bufs); err == nil {
		t.Fatal("expected save error")
	}
	if m.QuitRequested() {
		t.Error("failed save must not request quit")
	}
}

func TestEditCommandOpensFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.txt")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, bufs := newTestEditor(t, "")
	press(t, m, bufs, ":e "+path)
	pressSpecial(t, m, bufs, key.KeyEnter)
	if bufs.Count() != 2 {
		t.Fatalf("expected 2 buffers, got %d", bufs.Count())
	}
	if bufs.Current().Line(0) != "content" {
		t.Errorf("expected opened content, got %q", bufs.Current().Line(0))
	}
}

func TestUnknownCommandIsIgnored(t *testing.T) {
	m, bufs := newTestEditor(t, "")
	press(t, m, bufs, ":frobnicate")
	if err := m.HandleKey(key.NewSpecialEvent(key.KeyEnter), bufs); err != nil {
		t.Errorf("unknown command should be silent, got %v", err)
	}
	if m.QuitRequested() {
		t.Error("unknown command must not quit")
	}
}

// Search

func TestSearchMovesToMatch(t *testing.T) {
	m, bufs := newTestEditor(t, "one", "two", "three")
	press(t, m, bufs, "/two")
	pressSpecial(t, m, bufs, key.KeyEnter)
	cursorAt(t, bufs, 1, 0)
	if m.LastSearchPattern() != "two" {
		t.Errorf("expected pattern \"two\", got %q", m.LastSearchPattern())
	}
}

func TestSearchWrapsAround(t *testing.T) {
	m, bufs := newTestEditor(t, "foo", "bar", "baz")
	bufs.Current().MoveCursorTo(cursor.Position{Row: 2, Col: 0})
	press(t, m, bufs, "/foo")
	pressSpecial(t, m, bufs, key.KeyEnter)
	cursorAt(t, bufs, 0, 0)
}

func TestSearchMissLeavesCursor(t *testing.T) {
	m, bufs := newTestEditor(t, "foo", "bar")
	bufs.Current().MoveCursorTo(cursor.Position{Row: 1, Col: 1})
	press(t, m, bufs, "/nothing")
	pressSpecial(t, m, bufs, key.KeyEnter)
	cursorAt(t, bufs, 1, 1)
}

func TestRepeatSearchForwardAndBackward(t *testing.T) {
	m, bufs := newTestEditor(t, "hit", "miss", "hit")
	press(t, m, bufs, "/hit")
	pressSpecial(t, m, bufs, key.KeyEnter)
	cursorAt(t, bufs, 2, 0)
	press(t, m, bufs, "n")
	cursorAt(t, bufs, 0, 0)
	press(t, m, bufs, "N")
	cursorAt(t, bufs, 2, 0)
}

func TestRepeatWithoutPatternIsNoop(t *testing.T) {
	m, bufs := newTestEditor(t, "abc")
	press(t, m, bufs, "n")
	cursorAt(t, bufs, 0, 0)
}

func TestStarSearchesWordUnderCursor(t *testing.T) {
	m, bufs := newTestEditor(t, "word other", "word again")
	press(t, m, bufs, "*")
	cursorAt(t, bufs, 1, 0)
	if m.LastSearchPattern() != "word" {
		t.Errorf("expected pattern \"word\", got %q", m.LastSearchPattern())
	}
}

func TestSearchOnSameLineAfterCursor(t *testing.T) {
	m, bufs := newTestEditor(t, "abcabc")
	press(t, m, bufs, "/abc")
	pressSpecial(t, m, bufs, key.KeyEnter)
	cursorAt(t, bufs, 0, 3)
}
