// Package session persists and restores the editing session: which
// files were open, which buffer was current, and where each cursor was.
//
// The session file is JSON, but the core owns no persisted-format
// contract; restore happens purely through the buffer manager's
// OpenFile, Switch, and cursor-positioning calls.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/zenvim/zenvim/internal/engine/buffer"
	"github.com/zenvim/zenvim/internal/engine/cursor"
)

// fileName is the session file name inside the config directory.
const fileName = "session.json"

// BufferState captures one buffer's restorable state.
type BufferState struct {
	Path     string
	Row      int
	Col      int
	Modified bool
}

// Data is a saved session.
type Data struct {
	Buffers     []BufferState
	CurrentPath string
}

// DefaultPath returns the session file path inside dir, falling back to
// the user config directory when dir is empty.
func DefaultPath(dir string) string {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".config", "zenvim")
	}
	return filepath.Join(dir, fileName)
}

// Capture reads the restorable state out of the buffer manager.
// Buffers without a file path cannot be restored and are skipped.
func Capture(bufs *buffer.Manager) Data {
	var data Data
	for _, b := range bufs.List() {
		if b.Path() == "" {
			continue
		}
		pos := b.CursorPos()
		data.Buffers = append(data.Buffers, BufferState{
			Path:     b.Path(),
			Row:      pos.Row,
			Col:      pos.Col,
			Modified: b.Modified(),
		})
		if b.ID() == bufs.CurrentID() {
			data.CurrentPath = b.Path()
		}
	}
	return data
}

// Save writes a session to path, creating parent directories as needed.
func Save(data Data, path string) error {
	json := "{}"
	var err error
	for i, b := range data.Buffers {
		prefix := fmt.Sprintf("buffers.%d.", i)
		if json, err = sjson.Set(json, prefix+"path", b.Path); err != nil {
			return fmt.Errorf("encoding session: %w", err)
		}
		if json, err = sjson.Set(json, prefix+"row", b.Row); err != nil {
			return fmt.Errorf("encoding session: %w", err)
		}
		if json, err = sjson.Set(json, prefix+"col", b.Col); err != nil {
			return fmt.Errorf("encoding session: %w", err)
		}
		if json, err = sjson.Set(json, prefix+"modified", b.Modified); err != nil {
			return fmt.Errorf("encoding session: %w", err)
		}
	}
	if data.CurrentPath != "" {
		if json, err = sjson.Set(json, "current_path", data.CurrentPath); err != nil {
			return fmt.Errorf("encoding session: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(json), 0o644); err != nil {
		return fmt.Errorf("writing session %s: %w", path, err)
	}
	return nil
}

// Load reads a session from path. A missing file yields an empty
// session and no error.
func Load(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Data{}, nil
		}
		return Data{}, fmt.Errorf("reading session %s: %w", path, err)
	}

	var data Data
	for _, entry := range gjson.GetBytes(raw, "buffers").Array() {
		data.Buffers = append(data.Buffers, BufferState{
			Path:     entry.Get("path").String(),
			Row:      int(entry.Get("row").Int()),
			Col:      int(entry.Get("col").Int()),
			Modified: entry.Get("modified").Bool(),
		})
	}
	data.CurrentPath = gjson.GetBytes(raw, "current_path").String()
	return data, nil
}

// Restore reopens the session's files through the buffer manager and
// repositions each cursor. Cursor positions clamp to the file's current
// content; files that fail to open are skipped.
func Restore(data Data, bufs *buffer.Manager) {
	currentID := 0
	for _, state := range data.Buffers {
		id, err := bufs.OpenFile(state.Path)
		if err != nil {
			continue
		}
		if b := bufs.Get(id); b != nil {
			b.MoveCursorTo(cursor.Position{Row: state.Row, Col: state.Col})
		}
		if state.Path == data.CurrentPath {
			currentID = id
		}
	}
	if currentID != 0 {
		_ = bufs.Switch(currentID)
	}
}

// Clear removes the session file. Missing files are ignored.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
