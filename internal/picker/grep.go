package picker

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// GrepMatch is one line hit from a grep run.
type GrepMatch struct {
	Path string
	Line int // 1-based
	Text string
}

// JobState tracks a grep job's lifecycle.
type JobState int32

const (
	// JobCreated indicates the job has not started.
	JobCreated JobState = iota
	// JobRunning indicates the search tool is executing.
	JobRunning
	// JobDone indicates the job finished, successfully or not.
	JobDone
)

// String returns a human-readable state name.
func (s JobState) String() string {
	switch s {
	case JobCreated:
		return "created"
	case JobRunning:
		return "running"
	case JobDone:
		return "done"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// GrepJob runs an external search tool and collects its matches.
// The tool is ripgrep when available, plain grep otherwise; the picker
// never implements content search itself.
type GrepJob struct {
	// ID uniquely identifies the job, so a picker can tell a finished
	// run from one its input has already superseded.
	ID uuid.UUID

	// Pattern is the literal text to search for.
	Pattern string

	// Dir is the directory to search in.
	Dir string

	state    atomic.Int32
	started  time.Time
	finished time.Time
}

// NewGrepJob creates a job searching for pattern under dir.
func NewGrepJob(pattern, dir string) *GrepJob {
	j := &GrepJob{
		ID:      uuid.New(),
		Pattern: pattern,
		Dir:     dir,
	}
	j.state.Store(int32(JobCreated))
	return j
}

// State returns the job's current state.
func (j *GrepJob) State() JobState {
	return JobState(j.state.Load())
}

// Elapsed returns how long the run took, or zero before it finishes.
func (j *GrepJob) Elapsed() time.Duration {
	if j.finished.IsZero() {
		return 0
	}
	return j.finished.Sub(j.started)
}

// Run executes the search and returns its matches. The picker calls
// this on its own goroutine. No matches is not an error; a missing
// search tool is.
func (j *GrepJob) Run() ([]GrepMatch, error) {
	cmd, err := j.command()
	if err != nil {
		return nil, err
	}

	j.started = time.Now()
	j.state.Store(int32(JobRunning))
	defer func() {
		j.finished = time.Now()
		j.state.Store(int32(JobDone))
	}()

	out, err := cmd.Output()
	if err != nil {
		// Exit status 1 means "no matches" for both rg and grep.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("grep %q: %w", j.Pattern, err)
	}

	return parseMatches(out), nil
}

// command builds the search invocation, preferring ripgrep.
func (j *GrepJob) command() (*exec.Cmd, error) {
	if path, err := exec.LookPath("rg"); err == nil {
		return exec.Command(path, "--no-heading", "--line-number", "--fixed-strings", j.Pattern, j.Dir), nil
	}
	if path, err := exec.LookPath("grep"); err == nil {
		return exec.Command(path, "-rn", "--fixed-strings", j.Pattern, j.Dir), nil
	}
	return nil, fmt.Errorf("no search tool found (tried rg, grep)")
}

// parseMatches parses "path:line:text" output.
func parseMatches(out []byte) []GrepMatch {
	var matches []GrepMatch
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if m, ok := parseMatchLine(scanner.Text()); ok {
			matches = append(matches, m)
		}
	}
	return matches
}

// parseMatchLine splits one "path:line:text" line.
func parseMatchLine(line string) (GrepMatch, bool) {
	first := strings.Index(line, ":")
	if first <= 0 {
		return GrepMatch{}, false
	}
	second := strings.Index(line[first+1:], ":")
	if second < 0 {
		return GrepMatch{}, false
	}
	second += first + 1

	lineNo, err := strconv.Atoi(line[first+1 : second])
	if err != nil || lineNo < 1 {
		return GrepMatch{}, false
	}
	return GrepMatch{
		Path: line[:first],
		Line: lineNo,
		Text: line[second+1:],
	}, true
}
