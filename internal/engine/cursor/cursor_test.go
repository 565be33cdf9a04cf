package cursor

import "testing"

func TestNewCursorAtOrigin(t *testing.T) {
	c := New()
	if !c.Position().Equals(Position{}) {
		t.Errorf("expected origin, got %s", c.Position())
	}
}

func TestMoveToResetsDesiredColumn(t *testing.T) {
	c := New()
	c.MoveTo(Position{Row: 2, Col: 7})
	if c.DesiredCol() != 7 {
		t.Errorf("expected desired column 7, got %d", c.DesiredCol())
	}
}

func TestMoveRightStopsAtLineEnd(t *testing.T) {
	lines := []string{"ab"}
	c := New()
	for i := 0; i < 5; i++ {
		c.MoveRight(lines)
	}
	if !c.Position().Equals(Position{Row: 0, Col: 2}) {
		t.Errorf("expected 0:2, got %s", c.Position())
	}
}

func TestMoveRightWrapsToNextLine(t *testing.T) {
	lines := []string{"abc", ""}
	c := New()
	c.MoveRight(lines)
	c.MoveRight(lines)
	c.MoveRight(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 3}) {
		t.Fatalf("expected 0:3, got %s", c.Position())
	}
	c.MoveRight(lines)
	if !c.Position().Equals(Position{Row: 1, Col: 0}) {
		t.Errorf("expected wrap to 1:0, got %s", c.Position())
	}
}

func TestMoveLeftWrapsToPreviousLineEnd(t *testing.T) {
	lines := []string{"hello", "world"}
	c := New()
	c.MoveTo(Position{Row: 1, Col: 0})
	c.MoveLeft(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 5}) {
		t.Errorf("expected 0:5, got %s", c.Position())
	}
}

func TestMoveLeftAtOriginIsNoop(t *testing.T) {
	lines := []string{"abc"}
	c := New()
	c.MoveLeft(lines)
	if !c.Position().Equals(Position{}) {
		t.Errorf("expected origin, got %s", c.Position())
	}
}

func TestStickyColumnSurvivesShortLine(t *testing.T) {
	lines := []string{"long line here", "ab", "another long line"}
	c := New()
	c.MoveTo(Position{Row: 0, Col: 10})

	c.MoveDown(lines)
	if !c.Position().Equals(Position{Row: 1, Col: 2}) {
		t.Fatalf("expected clamp to 1:2, got %s", c.Position())
	}
	if c.DesiredCol() != 10 {
		t.Fatalf("expected desired column 10, got %d", c.DesiredCol())
	}

	c.MoveDown(lines)
	if !c.Position().Equals(Position{Row: 2, Col: 10}) {
		t.Errorf("expected restored column 2:10, got %s", c.Position())
	}
}

func TestHorizontalMoveForgetsDesiredColumn(t *testing.T) {
	lines := []string{"long line here", "ab"}
	c := New()
	c.MoveTo(Position{Row: 0, Col: 10})
	c.MoveLeft(lines)
	if c.DesiredCol() != 9 {
		t.Errorf("expected desired column 9 after MoveLeft, got %d", c.DesiredCol())
	}
}

func TestMoveUpClampsToShorterLine(t *testing.T) {
	lines := []string{"ab", "a much longer line"}
	c := New()
	c.MoveTo(Position{Row: 1, Col: 10})
	c.MoveUp(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 2}) {
		t.Errorf("expected 0:2, got %s", c.Position())
	}
}

func TestClampAfterContentShrink(t *testing.T) {
	c := New()
	c.MoveTo(Position{Row: 9, Col: 40})
	c.Clamp([]string{"short"})
	if !c.Position().Equals(Position{Row: 0, Col: 5}) {
		t.Errorf("expected 0:5, got %s", c.Position())
	}
}

func TestClampFloorsNegativePosition(t *testing.T) {
	c := New()
	c.MoveTo(Position{Row: -3, Col: -2})
	c.Clamp([]string{"hello", "world"})
	if !c.Position().Equals(Position{Row: 0, Col: 0}) {
		t.Errorf("expected 0:0, got %s", c.Position())
	}
}

func TestColumnsCountCodepoints(t *testing.T) {
	lines := []string{"héllo"}
	c := New()
	c.MoveToColumn(0)
	for i := 0; i < 10; i++ {
		c.MoveRight(lines)
	}
	if c.Position().Col != 5 {
		t.Errorf("expected column 5 for 5 codepoints, got %d", c.Position().Col)
	}
}

// Word motion tests

func TestWordForwardHelloWorld(t *testing.T) {
	lines := []string{"hello world"}
	c := New()
	c.WordForward(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 6}) {
		t.Errorf("expected 0:6, got %s", c.Position())
	}
}

func TestWordForwardStopsAtPunctuation(t *testing.T) {
	lines := []string{"foo.bar"}
	c := New()
	c.WordForward(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 3}) {
		t.Errorf("expected stop at '.', got %s", c.Position())
	}
}

func TestWORDForwardSkipsPunctuation(t *testing.T) {
	lines := []string{"foo.bar baz"}
	c := New()
	c.WORDForward(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 8}) {
		t.Errorf("expected 0:8, got %s", c.Position())
	}
}

func TestWordForwardWrapsToNextLine(t *testing.T) {
	lines := []string{"one", "two"}
	c := New()
	c.MoveTo(Position{Row: 0, Col: 2})
	c.WordForward(lines)
	if !c.Position().Equals(Position{Row: 1, Col: 0}) {
		t.Errorf("expected 1:0, got %s", c.Position())
	}
}

func TestWordForwardAtBufferEndStays(t *testing.T) {
	lines := []string{"end"}
	c := New()
	c.MoveTo(Position{Row: 0, Col: 2})
	c.WordForward(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 2}) {
		t.Errorf("expected to stay at 0:2 with no next line, got %s", c.Position())
	}
}

func TestWordBackwardToWordStart(t *testing.T) {
	lines := []string{"hello world"}
	c := New()
	c.MoveTo(Position{Row: 0, Col: 8})
	c.WordBackward(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 6}) {
		t.Errorf("expected 0:6, got %s", c.Position())
	}
	c.WordBackward(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 0}) {
		t.Errorf("expected 0:0, got %s", c.Position())
	}
}

func TestWordBackwardWrapsToPreviousLine(t *testing.T) {
	lines := []string{"one", "two"}
	c := New()
	c.MoveTo(Position{Row: 1, Col: 0})
	c.WordBackward(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 3}) {
		t.Errorf("expected 0:3, got %s", c.Position())
	}
}

func TestWordEndSkipsToNextWordEnd(t *testing.T) {
	lines := []string{"hello world"}
	c := New()
	c.WordEnd(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 10}) {
		t.Errorf("expected 0:10, got %s", c.Position())
	}
}

func TestWordEndFromWhitespace(t *testing.T) {
	lines := []string{"hello world"}
	c := New()
	c.MoveTo(Position{Row: 0, Col: 5})
	c.WordEnd(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 10}) {
		t.Errorf("expected 0:10, got %s", c.Position())
	}
}

func TestWordEndNeverPassesLineEnd(t *testing.T) {
	lines := []string{"word"}
	c := New()
	c.MoveTo(Position{Row: 0, Col: 3})
	c.WordEnd(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 3}) {
		t.Errorf("expected clamp at 0:3, got %s", c.Position())
	}
}

func TestUnderscoreIsWordRune(t *testing.T) {
	lines := []string{"foo_bar baz"}
	c := New()
	c.WordForward(lines)
	if !c.Position().Equals(Position{Row: 0, Col: 8}) {
		t.Errorf("expected underscore to join the word, got %s", c.Position())
	}
}

func TestMotionsTotalOnEmptyBuffer(t *testing.T) {
	lines := []string{""}
	c := New()
	c.WordForward(lines)
	c.WordBackward(lines)
	c.WORDForward(lines)
	c.WORDBackward(lines)
	c.WordEnd(lines)
	c.MoveUp(lines)
	c.MoveDown(lines)
	if !c.Position().Equals(Position{}) {
		t.Errorf("expected origin on empty buffer, got %s", c.Position())
	}
}

// Position tests

func TestPositionBefore(t *testing.T) {
	a := Position{Row: 1, Col: 5}
	b := Position{Row: 2, Col: 0}
	if !a.Before(b) {
		t.Error("1:5 should come before 2:0")
	}
	if b.Before(a) {
		t.Error("2:0 should not come before 1:5")
	}
	if a.Before(a) {
		t.Error("a position does not come before itself")
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Row: 3, Col: 14}
	if p.String() != "3:14" {
		t.Errorf("expected 3:14, got %s", p.String())
	}
}
