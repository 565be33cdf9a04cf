package renderer

import "github.com/zenvim/zenvim/internal/input/key"

// DashboardAction is what a dashboard key press asks the editor to do.
type DashboardAction int

const (
	// DashNone means the key did not complete a menu entry.
	DashNone DashboardAction = iota
	// DashFindFiles opens the file picker.
	DashFindFiles
	// DashGrep opens the grep picker.
	DashGrep
	// DashBuffers opens the buffer picker.
	DashBuffers
	// DashResume restores the previous session.
	DashResume
	// DashQuit exits the editor.
	DashQuit
)

// dashEntry is one menu row. Hint is the full key sequence shown to
// the user, one or two characters long.
type dashEntry struct {
	hint   string
	label  string
	action DashboardAction
}

var dashEntries = []dashEntry{
	{"pf", "Find Files", DashFindFiles},
	{"pt", "Grep Text", DashGrep},
	{"pb", "Buffers", DashBuffers},
	{"pr", "Resume Session", DashResume},
	{"q", "Quit", DashQuit},
}

var dashboardArt = []string{
	`███████╗███████╗███╗   ██╗   ██╗   ██╗██╗███╗   ███╗`,
	`╚══███╔╝██╔════╝████╗  ██║   ██║   ██║██║████╗ ████║`,
	`  ███╔╝ █████╗  ██╔██╗ ██║   ██║   ██║██║██╔████╔██║`,
	` ███╔╝  ██╔══╝  ██║╚██╗██║   ╚██╗ ██╔╝ ██║██║╚██╔╝██║`,
	`███████╗███████╗██║ ╚████║    ╚████╔╝  ██║██║ ╚═╝ ██║`,
	`╚══════╝╚══════╝╚═╝  ╚═══╝     ╚═══╝   ╚═╝╚═╝     ╚═╝`,
	``,
	`Minimalist + Fast + Zen`,
}

// Dashboard is the start screen shown when no file was opened. Menu
// entries use two-key hints, so a leading 'p' is held as a pending
// prefix until the second key arrives.
type Dashboard struct {
	pending rune
	header  string
}

// NewDashboard creates the start screen. A non-empty header replaces
// the built-in banner.
func NewDashboard(header string) *Dashboard {
	return &Dashboard{header: header}
}

// HandleKey consumes one key press and reports the completed action,
// if any. Escape clears a pending prefix.
func (d *Dashboard) HandleKey(ev key.Event) DashboardAction {
	if ev.Key == key.KeyEscape {
		d.pending = 0
		return DashNone
	}
	if !ev.IsChar() {
		return DashNone
	}

	seq := string(ev.Rune)
	if d.pending != 0 {
		seq = string(d.pending) + seq
	}

	for _, entry := range dashEntries {
		if entry.hint == seq {
			d.pending = 0
			return entry.action
		}
	}

	// hold the key if it could still start a longer hint
	d.pending = 0
	for _, entry := range dashEntries {
		if len(entry.hint) > len(seq) && entry.hint[:len(seq)] == seq {
			d.pending = ev.Rune
			break
		}
	}
	return DashNone
}
