package picker

import (
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/zenvim/zenvim/internal/config"
	"github.com/zenvim/zenvim/internal/engine/buffer"
	"github.com/zenvim/zenvim/internal/input/key"
)

// Kind selects what a picker picks.
type Kind int

const (
	// Files picks a file from the working tree.
	Files Kind = iota
	// Buffers picks an open buffer.
	Buffers
	// Grep picks a file location from search-tool matches.
	Grep
)

// String returns the picker title.
func (k Kind) String() string {
	switch k {
	case Files:
		return "Files"
	case Buffers:
		return "Buffers"
	case Grep:
		return "Grep"
	default:
		return "Picker"
	}
}

// Item is one selectable entry.
type Item struct {
	// Display is the text shown in the list.
	Display string

	// Path is the file path, if the item refers to a file.
	Path string

	// BufferID is the buffer id, if the item refers to an open buffer.
	BufferID int

	// Line is a 1-based line number for grep hits, 0 otherwise.
	Line int
}

// Result is a resolved selection. Exactly one of Path or BufferID is
// set; these two values are the editor's entire selection surface.
type Result struct {
	Path     string
	BufferID int
	Line     int
}

// Picker is an interactive filtered list. Grep runs execute on their
// own goroutine; everything else happens on the event loop.
type Picker struct {
	kind       Kind
	items      []Item
	filtered   []int // indices into items, best match first
	selected   int   // index into filtered
	input      []rune
	root       string
	maxResults int
	minGrepLen int

	grepMu  sync.Mutex
	grepJob *GrepJob     // job matching the current input
	parked  *grepOutcome // finished run awaiting the event loop
	notify  func()
}

// grepOutcome is a finished grep run parked until the event loop
// collects it with TakeGrepResults.
type grepOutcome struct {
	job     *GrepJob
	matches []GrepMatch
	err     error
}

// GrepReport summarizes an applied grep run for the caller's log.
type GrepReport struct {
	Job     *GrepJob
	Matches int
	Err     error
}

// NewFilePicker builds a picker over the files beneath root, honoring
// the configured ignore patterns and result cap.
func NewFilePicker(root string, cfg config.PickerConfig) (*Picker, error) {
	p := &Picker{
		kind:       Files,
		root:       root,
		maxResults: maxResults(cfg),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if ignored(rel, cfg.FileIgnorePatterns) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if len(p.items) >= p.maxResults {
			return fs.SkipAll
		}
		p.items = append(p.items, Item{Display: rel, Path: path})
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.refilter()
	return p, nil
}

// NewBufferPicker builds a picker over the open buffers.
func NewBufferPicker(bufs *buffer.Manager) *Picker {
	p := &Picker{kind: Buffers, maxResults: 1000}
	for _, b := range bufs.List() {
		display := b.Name()
		if b.Modified() {
			display += " [+]"
		}
		p.items = append(p.items, Item{Display: display, BufferID: b.ID()})
	}
	p.refilter()
	return p
}

// NewGrepPicker builds an initially empty picker that searches file
// contents under root as the user types.
func NewGrepPicker(root string, cfg config.PickerConfig) *Picker {
	return &Picker{
		kind:       Grep,
		root:       root,
		maxResults: maxResults(cfg),
		minGrepLen: 2,
	}
}

// Kind returns what this picker picks.
func (p *Picker) Kind() Kind { return p.kind }

// Input returns the current query text.
func (p *Picker) Input() string { return string(p.input) }

// Selected returns the index of the highlighted entry within Visible.
func (p *Picker) Selected() int { return p.selected }

// Visible returns the display strings of the filtered entries.
func (p *Picker) Visible() []string {
	out := make([]string, len(p.filtered))
	for i, idx := range p.filtered {
		out[i] = p.items[idx].Display
	}
	return out
}

// HandleKey feeds one key event into the picker.
// done is true when the picker should close; result is nil on cancel.
func (p *Picker) HandleKey(ev key.Event) (result *Result, done bool) {
	switch {
	case ev.Key == key.KeyEscape:
		return nil, true
	case ev.Key == key.KeyEnter:
		return p.resolve(), true
	case ev.Key == key.KeyUp || ev.IsCtrl('p'):
		if p.selected > 0 {
			p.selected--
		}
	case ev.Key == key.KeyDown || ev.IsCtrl('n'):
		if p.selected+1 < len(p.filtered) {
			p.selected++
		}
	case ev.Key == key.KeyBackspace:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
			p.refresh()
		}
	case ev.IsChar():
		p.input = append(p.input, ev.Rune)
		p.refresh()
	}
	return nil, false
}

// resolve turns the highlighted entry into a Result.
func (p *Picker) resolve() *Result {
	if p.selected >= len(p.filtered) {
		return nil
	}
	item := p.items[p.filtered[p.selected]]
	if item.Path == "" && item.BufferID == 0 {
		return nil
	}
	return &Result{Path: item.Path, BufferID: item.BufferID, Line: item.Line}
}

// refresh re-runs filtering (or the grep) after an input change.
func (p *Picker) refresh() {
	if p.kind == Grep {
		p.regrep()
		return
	}
	p.refilter()
}

// refilter fuzzy-filters items against the current input.
func (p *Picker) refilter() {
	displays := make([]string, len(p.items))
	for i, item := range p.items {
		displays[i] = item.Display
	}
	matches := FuzzyFilter(string(p.input), displays)
	p.filtered = p.filtered[:0]
	for _, m := range matches {
		p.filtered = append(p.filtered, m.Index)
	}
	p.clampSelection()
}

// SetNotify registers a callback invoked off the event loop when a
// grep run finishes. Callers use it to wake a blocked event poll.
func (p *Picker) SetNotify(fn func()) {
	p.grepMu.Lock()
	p.notify = fn
	p.grepMu.Unlock()
}

// regrep starts a new search for the current input. The previous job,
// if still running, is abandoned; its id no longer matches, so its
// results are dropped when it finishes.
func (p *Picker) regrep() {
	p.items = p.items[:0]
	p.filtered = p.filtered[:0]
	p.clampSelection()

	query := string(p.input)
	if len([]rune(query)) < p.minGrepLen {
		p.grepMu.Lock()
		p.grepJob = nil
		p.parked = nil
		p.grepMu.Unlock()
		return
	}

	job := NewGrepJob(query, p.root)
	p.grepMu.Lock()
	p.grepJob = job
	p.parked = nil // outcomes of older jobs are stale now
	p.grepMu.Unlock()

	go func() {
		matches, err := job.Run()

		p.grepMu.Lock()
		if p.grepJob == nil || p.grepJob.ID != job.ID {
			p.grepMu.Unlock()
			return
		}
		p.parked = &grepOutcome{job: job, matches: matches, err: err}
		notify := p.notify
		p.grepMu.Unlock()

		if notify != nil {
			notify()
		}
	}()
}

// TakeGrepResults applies a parked grep run to the visible list.
// It must run on the event loop, typically after the notify callback
// woke it. ok is false when no run has finished since the last call.
func (p *Picker) TakeGrepResults() (report GrepReport, ok bool) {
	p.grepMu.Lock()
	outcome := p.parked
	p.parked = nil
	p.grepMu.Unlock()

	if outcome == nil {
		return GrepReport{}, false
	}

	p.items = p.items[:0]
	p.filtered = p.filtered[:0]
	for _, m := range outcome.matches {
		if len(p.items) >= p.maxResults {
			break
		}
		rel, relErr := filepath.Rel(p.root, m.Path)
		if relErr != nil {
			rel = m.Path
		}
		p.items = append(p.items, Item{
			Display: rel + ":" + strconv.Itoa(m.Line) + " " + strings.TrimSpace(m.Text),
			Path:    m.Path,
			Line:    m.Line,
		})
	}
	for i := range p.items {
		p.filtered = append(p.filtered, i)
	}
	p.clampSelection()

	return GrepReport{Job: outcome.job, Matches: len(p.items), Err: outcome.err}, true
}

func (p *Picker) clampSelection() {
	if p.selected >= len(p.filtered) {
		p.selected = 0
	}
}

// ignored reports whether a relative path matches any ignore pattern.
// Patterns are plain substrings, as in the picker configuration.
func ignored(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern != "" && strings.Contains(rel, pattern) {
			return true
		}
	}
	return false
}

func maxResults(cfg config.PickerConfig) int {
	if cfg.MaxResults > 0 {
		return cfg.MaxResults
	}
	return 100
}

