package picker

import "testing"

func indexOf(matches []Match, idx int) int {
	for i, m := range matches {
		if m.Index == idx {
			return i
		}
	}
	return -1
}

func TestEmptyQueryMatchesAllInOrder(t *testing.T) {
	items := []string{"b.go", "a.go", "c.go"}
	matches := FuzzyFilter("", items)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i, m := range matches {
		if m.Index != i {
			t.Errorf("expected input order, got index %d at position %d", m.Index, i)
		}
	}
}

func TestSubsequenceMatching(t *testing.T) {
	items := []string{"main.go", "manager.go", "readme.md"}
	matches := FuzzyFilter("mgo", items)
	if indexOf(matches, 0) < 0 {
		t.Error("main.go should match mgo")
	}
	if indexOf(matches, 1) < 0 {
		t.Error("manager.go should match mgo")
	}
	if indexOf(matches, 2) >= 0 {
		t.Error("readme.md should not match mgo")
	}
}

func TestMatchingIsCaseInsensitive(t *testing.T) {
	matches := FuzzyFilter("READ", []string{"readme.md"})
	if len(matches) != 1 {
		t.Errorf("expected case-insensitive match, got %d matches", len(matches))
	}
}

func TestExactPrefixRanksFirst(t *testing.T) {
	items := []string{"x_config_test.go", "config.go"}
	matches := FuzzyFilter("config", items)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Index != 1 {
		t.Errorf("expected config.go ranked first, got item %d", matches[0].Index)
	}
}

func TestConsecutiveRunBeatsScattered(t *testing.T) {
	items := []string{"abxcxdx", "xabcdxx"}
	matches := FuzzyFilter("abcd", items)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Index != 1 {
		t.Errorf("expected consecutive match ranked first, got item %d", matches[0].Index)
	}
}

func TestNoMatchReturnsEmpty(t *testing.T) {
	if matches := FuzzyFilter("zzz", []string{"abc", "def"}); len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestScoreNeverBelowOne(t *testing.T) {
	long := make([]rune, 200)
	for i := range long {
		long[i] = 'x'
	}
	text := "a" + string(long) + "b"
	matches := FuzzyFilter("ab", []string{text})
	if len(matches) != 1 {
		t.Fatal("expected a match")
	}
	if matches[0].Score < 1 {
		t.Errorf("score must stay positive, got %d", matches[0].Score)
	}
}

func TestBoundaryDetection(t *testing.T) {
	tests := []struct {
		text string
		idx  int
		want bool
	}{
		{"foo", 0, true},
		{"foo bar", 4, true},
		{"foo/bar", 4, true},
		{"fooBar", 3, true},
		{"foobar", 3, false},
	}
	for _, tt := range tests {
		if got := isBoundary([]rune(tt.text), tt.idx); got != tt.want {
			t.Errorf("isBoundary(%q, %d) = %v, want %v", tt.text, tt.idx, got, tt.want)
		}
	}
}
