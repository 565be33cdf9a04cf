package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed indicates operations on a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// defaultDebounce coalesces rapid write bursts from editors that write
// config files in several syscalls.
const defaultDebounce = 200 * time.Millisecond

// Watcher reloads the configuration when its file changes on disk.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	dir      string
	path     string
	debounce time.Duration
	onChange func(Config)

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher watches the config file in dir and calls onChange with the
// freshly loaded configuration after each change.
func NewWatcher(dir string, onChange func(Config)) (*Watcher, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory rather than the file: most editors replace
	// the file on save, which drops a file-level watch.
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		dir:      dir,
		path:     Path(dir),
		debounce: defaultDebounce,
		onChange: onChange,
		closeCh:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.closeCh)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerCh:
			timer = nil
			timerCh = nil
			if cfg, err := Load(w.dir); err == nil && w.onChange != nil {
				w.onChange(cfg)
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.closeCh:
			return
		}
	}
}
