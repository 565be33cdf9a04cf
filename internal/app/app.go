package app

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/zenvim/zenvim/internal/config"
	"github.com/zenvim/zenvim/internal/engine/buffer"
	"github.com/zenvim/zenvim/internal/engine/cursor"
	"github.com/zenvim/zenvim/internal/input/key"
	"github.com/zenvim/zenvim/internal/input/mode"
	"github.com/zenvim/zenvim/internal/picker"
	"github.com/zenvim/zenvim/internal/renderer"
	"github.com/zenvim/zenvim/internal/renderer/backend"
	"github.com/zenvim/zenvim/internal/session"
)

// Options configures a new App.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// Files are opened at startup.
	Files []string

	// Dashboard forces the start screen even when files are given.
	Dashboard bool

	// Logger receives diagnostics. Nil means no logging.
	Logger *Logger

	// Screen, when non-nil, replaces the real terminal. Tests pass a
	// tcell simulation screen here.
	Screen tcell.Screen
}

// App is the running editor.
type App struct {
	term   *backend.Terminal
	render *renderer.Renderer
	bufs   *buffer.Manager
	modes  *mode.Manager
	log    *Logger

	cfg       config.Config
	cfgDir    string
	cfgMu     sync.Mutex
	cfgNext   *config.Config
	cfgWatch  *config.Watcher
	leaderKey key.Event

	pick      *picker.Picker
	dash      *renderer.Dashboard
	message   string
	leaderSeq []rune
	leaderOn  bool

	workDir string
	running atomic.Bool
	quit    bool
	done    chan struct{}
	events  chan backend.Event
}

// New builds the editor but does not touch the terminal yet.
func New(opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = NullLogger
	}

	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		// a broken config file falls back to defaults, but is worth a note
		log.Warn("config: %v", err)
	}

	var term *backend.Terminal
	if opts.Screen != nil {
		term = backend.NewFromScreen(opts.Screen)
	} else {
		term, err = backend.NewTerminal()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoTerminal, err)
		}
	}

	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	a := &App{
		term:    term,
		render:  renderer.New(term, cfg.UI),
		bufs:    buffer.NewManager(),
		modes:   mode.NewManager(),
		log:     log,
		cfg:     cfg,
		cfgDir:  opts.ConfigDir,
		workDir: workDir,
		done:    make(chan struct{}),
		events:  make(chan backend.Event, 16),
	}
	a.leaderKey = parseLeader(cfg.Keymaps.Leader)

	for _, path := range opts.Files {
		if _, err := a.bufs.OpenFile(path); err != nil {
			log.Error("open %s: %v", path, err)
			a.message = NewOperationError("open", path, err).Error()
		}
	}
	if a.bufs.IsEmpty() || opts.Dashboard {
		a.dash = renderer.NewDashboard(cfg.Dashboard.CustomHeader)
	}
	return a, nil
}

// parseLeader resolves the configured leader key, defaulting to space.
func parseLeader(spec string) key.Event {
	ev, err := key.Parse(spec)
	if err != nil {
		return key.NewRuneEvent(' ')
	}
	return ev
}

// Buffers exposes the buffer registry, mainly for tests.
func (a *App) Buffers() *buffer.Manager { return a.bufs }

// Modes exposes the modal state machine, mainly for tests.
func (a *App) Modes() *mode.Manager { return a.modes }

// Run initializes the terminal and processes events until quit.
func (a *App) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	if err := a.term.Init(); err != nil {
		return NewOperationError("init", "terminal", err)
	}
	defer a.term.Shutdown()

	a.watchConfig()
	defer a.unwatchConfig()

	go a.pump()
	defer close(a.done)

	a.log.Info("editor started, %d buffers", a.bufs.Count())
	a.loop()
	a.saveSession()
	a.log.Info("editor stopped")
	return nil
}

// pump feeds terminal events into the loop's channel.
func (a *App) pump() {
	for {
		ev := a.term.PollEvent()
		select {
		case <-a.done:
			return
		case a.events <- ev:
		}
	}
}

// loop is the redraw-then-wait cycle. A pending leader key waits with
// the configured timeout instead of blocking forever.
func (a *App) loop() {
	for !a.quit {
		a.render.Draw(a.frame())

		var ev backend.Event
		if a.leaderOn {
			select {
			case ev = <-a.events:
			case <-time.After(a.leaderTimeout()):
				a.clearLeader()
				continue
			}
		} else {
			ev = <-a.events
		}
		a.handleEvent(ev)
	}
}

func (a *App) leaderTimeout() time.Duration {
	ms := a.cfg.Keymaps.TimeoutMS
	if ms <= 0 {
		ms = 1000
	}
	return time.Duration(ms) * time.Millisecond
}

// frame assembles the current screen state for the renderer.
func (a *App) frame() renderer.Frame {
	f := renderer.Frame{
		Buffer:        a.bufs.Current(),
		Mode:          a.modes.Current(),
		Message:       a.message,
		Picker:        a.pick,
		Dashboard:     a.dash,
		LeaderPending: a.leaderOn,
	}
	if a.modes.Current() == mode.Command {
		buf := a.modes.CommandBuffer()
		if len(buf) > 0 && buf[0] == '/' {
			f.CommandLine = buf
		} else {
			f.CommandLine = ":" + buf
		}
	}
	return f
}

// handleEvent dispatches one terminal event.
func (a *App) handleEvent(ev backend.Event) {
	switch ev.Type {
	case backend.EventResize:
		// the next Draw picks up the new size
	case backend.EventWake:
		a.applyPendingConfig()
		a.applyGrepResults()
	case backend.EventKey:
		a.message = ""
		a.handleKey(ev.Key)
	}
}

// handleKey routes a key to the active overlay or the modal engine.
func (a *App) handleKey(ev key.Event) {
	if a.pick != nil {
		a.handlePickerKey(ev)
		return
	}
	if a.dash != nil {
		a.handleDashboardKey(ev)
		return
	}

	if a.leaderOn {
		a.handleLeaderKey(ev)
		return
	}
	if a.modes.Current() == mode.Normal && ev.Equals(a.leaderKey) {
		a.leaderOn = true
		a.leaderSeq = a.leaderSeq[:0]
		return
	}

	if err := a.modes.HandleKey(ev, a.bufs); err != nil {
		a.log.Error("command: %v", err)
		a.message = err.Error()
	}
	if a.modes.QuitRequested() {
		a.quit = true
	}
}

// handleLeaderKey collects the keys after the leader until a mapping
// matches or cannot match.
func (a *App) handleLeaderKey(ev key.Event) {
	if !ev.IsChar() {
		a.clearLeader()
		return
	}
	a.leaderSeq = append(a.leaderSeq, ev.Rune)

	switch string(a.leaderSeq) {
	case "pf":
		a.clearLeader()
		a.openFilePicker()
	case "pt":
		a.clearLeader()
		a.openGrepPicker()
	case "pb":
		a.clearLeader()
		a.pick = picker.NewBufferPicker(a.bufs)
	case "pr":
		a.clearLeader()
		a.restoreSession()
	case "p":
		// still a prefix, keep waiting
	default:
		a.clearLeader()
	}
}

func (a *App) clearLeader() {
	a.leaderOn = false
	a.leaderSeq = a.leaderSeq[:0]
}

// handleDashboardKey feeds the start screen until it yields an action.
func (a *App) handleDashboardKey(ev key.Event) {
	switch a.dash.HandleKey(ev) {
	case renderer.DashFindFiles:
		a.openFilePicker()
	case renderer.DashGrep:
		a.openGrepPicker()
	case renderer.DashBuffers:
		a.pick = picker.NewBufferPicker(a.bufs)
	case renderer.DashResume:
		a.restoreSession()
	case renderer.DashQuit:
		a.quit = true
	}
}

// handlePickerKey feeds the picker and applies a completed selection.
func (a *App) handlePickerKey(ev key.Event) {
	result, done := a.pick.HandleKey(ev)
	if !done {
		return
	}
	a.pick = nil
	if result == nil {
		return
	}

	switch {
	case result.BufferID != 0:
		if err := a.bufs.Switch(result.BufferID); err != nil {
			a.message = err.Error()
			return
		}
	case result.Path != "":
		if _, err := a.bufs.OpenFile(result.Path); err != nil {
			a.log.Error("open %s: %v", result.Path, err)
			a.message = NewOperationError("open", result.Path, err).Error()
			return
		}
		if result.Line > 0 {
			a.bufs.Current().MoveCursorTo(cursor.Position{Row: result.Line - 1})
		}
	}
	a.dash = nil
}

// openGrepPicker builds the grep picker, whose searches run off the
// event loop; finished runs wake the loop through the terminal.
func (a *App) openGrepPicker() {
	p := picker.NewGrepPicker(a.workDir, a.cfg.Picker)
	p.SetNotify(a.term.Wake)
	a.pick = p
}

// applyGrepResults installs a finished grep run into the open picker.
func (a *App) applyGrepResults() {
	if a.pick == nil || a.pick.Kind() != picker.Grep {
		return
	}
	report, ok := a.pick.TakeGrepResults()
	if !ok {
		return
	}
	if report.Err != nil {
		a.log.Error("grep %s: %v", report.Job.ID, report.Err)
		a.message = report.Err.Error()
		return
	}
	a.log.Debug("grep %s %q: %d matches in %s", report.Job.ID, report.Job.Pattern, report.Matches, report.Job.Elapsed())
}

// openFilePicker builds the file picker; walk errors become a status
// message instead of aborting.
func (a *App) openFilePicker() {
	p, err := picker.NewFilePicker(a.workDir, a.cfg.Picker)
	if err != nil {
		a.log.Error("file picker: %v", err)
		a.message = NewOperationError("scan", a.workDir, err).Error()
		return
	}
	a.pick = p
}

// restoreSession reopens the buffers recorded by the last shutdown.
func (a *App) restoreSession() {
	data, err := session.Load(session.DefaultPath(a.cfgDir))
	if err != nil {
		a.log.Warn("session load: %v", err)
		a.message = NewOperationError("restore", "session", err).Error()
		return
	}
	if len(data.Buffers) == 0 {
		a.message = "no session to restore"
		return
	}
	session.Restore(data, a.bufs)
	if !a.bufs.IsEmpty() {
		a.dash = nil
	}
}

// saveSession records the open buffers for the next start.
func (a *App) saveSession() {
	data := session.Capture(a.bufs)
	if err := session.Save(data, session.DefaultPath(a.cfgDir)); err != nil {
		a.log.Warn("session save: %v", err)
	}
}

// watchConfig reloads the configuration when the file changes on disk.
// The watcher runs on its own goroutine, so it parks the new config and
// wakes the event loop to apply it.
func (a *App) watchConfig() {
	w, err := config.NewWatcher(a.cfgDir, func(cfg config.Config) {
		a.cfgMu.Lock()
		a.cfgNext = &cfg
		a.cfgMu.Unlock()
		a.term.Wake()
	})
	if err != nil {
		a.log.Warn("config watcher: %v", err)
		return
	}
	a.cfgWatch = w
}

func (a *App) unwatchConfig() {
	if a.cfgWatch != nil {
		_ = a.cfgWatch.Close()
	}
}

// applyPendingConfig installs a config parked by the watcher.
func (a *App) applyPendingConfig() {
	a.cfgMu.Lock()
	next := a.cfgNext
	a.cfgNext = nil
	a.cfgMu.Unlock()

	if next == nil {
		return
	}
	a.cfg = *next
	a.leaderKey = parseLeader(next.Keymaps.Leader)
	a.render.SetUIConfig(next.UI)
	a.log.Info("config reloaded")
	a.message = "config reloaded"
}
