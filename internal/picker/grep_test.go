package picker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestParseMatchLine(t *testing.T) {
	m, ok := parseMatchLine("src/main.go:42:	fmt.Println(x)")
	if !ok {
		t.Fatal("expected a parse")
	}
	if m.Path != "src/main.go" {
		t.Errorf("expected path src/main.go, got %q", m.Path)
	}
	if m.Line != 42 {
		t.Errorf("expected line 42, got %d", m.Line)
	}
	if m.Text != "\tfmt.Println(x)" {
		t.Errorf("unexpected text %q", m.Text)
	}
}

func TestParseMatchLineKeepsColonsInText(t *testing.T) {
	m, ok := parseMatchLine("a.go:7:key: value")
	if !ok {
		t.Fatal("expected a parse")
	}
	if m.Text != "key: value" {
		t.Errorf("expected text to keep later colons, got %q", m.Text)
	}
}

func TestParseMatchLineRejectsGarbage(t *testing.T) {
	for _, line := range []string{"", "no-colons-here", ":starts-with-colon", "a.go:notanumber:x", "a.go:0:zero"} {
		if _, ok := parseMatchLine(line); ok {
			t.Errorf("expected rejection of %q", line)
		}
	}
}

func TestParseMatchesSkipsBadLines(t *testing.T) {
	out := []byte("a.go:1:first\ngarbage line\nb.go:2:second\n")
	matches := parseMatches(out)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Path != "a.go" || matches[1].Path != "b.go" {
		t.Errorf("unexpected paths: %+v", matches)
	}
}

func TestGrepJobStates(t *testing.T) {
	j := NewGrepJob("needle", t.TempDir())
	if j.State() != JobCreated {
		t.Errorf("expected JobCreated, got %s", j.State())
	}
	if j.ID == uuid.Nil {
		t.Error("expected a non-zero job id")
	}
	if j.Elapsed() != 0 {
		t.Errorf("expected zero elapsed before a run, got %s", j.Elapsed())
	}
}

func TestGrepJobFindsMatches(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("hay\nneedle here\nhay\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	j := NewGrepJob("needle", dir)
	matches, err := j.Run()
	if err != nil {
		t.Skipf("no search tool available: %v", err)
	}
	if j.State() != JobDone {
		t.Errorf("expected JobDone, got %s", j.State())
	}
	if j.Elapsed() <= 0 {
		t.Errorf("expected a positive elapsed time, got %s", j.Elapsed())
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Line != 2 {
		t.Errorf("expected line 2, got %d", matches[0].Line)
	}
}

func TestGrepJobNoMatchesIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("nothing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	matches, err := NewGrepJob("absent-pattern", dir).Run()
	if err != nil {
		t.Skipf("no search tool available: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}
