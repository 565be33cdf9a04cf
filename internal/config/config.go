// Package config loads, saves, and watches the editor configuration.
//
// Configuration lives in a TOML file under the user's config directory
// (~/.config/zenvim/config.toml by default). A missing file is not an
// error: the defaults are written out on first run, matching the
// behavior users expect from a fresh install.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// fileName is the configuration file name inside the config directory.
const fileName = "config.toml"

// Config is the root configuration.
type Config struct {
	UI        UIConfig        `toml:"ui"`
	Keymaps   KeymapConfig    `toml:"keymaps"`
	Picker    PickerConfig    `toml:"picker"`
	Dashboard DashboardConfig `toml:"dashboard"`
}

// UIConfig controls rendering.
type UIConfig struct {
	Theme           string `toml:"theme"`
	ShowLineNumbers bool   `toml:"show_line_numbers"`
	ShowStatusLine  bool   `toml:"show_status_line"`
	TabWidth        int    `toml:"tab_width"`
	WrapLines       bool   `toml:"wrap_lines"`

	// Colors are hex strings like "#7aa2f7"; empty means terminal default.
	ForegroundColor string `toml:"foreground_color"`
	BackgroundColor string `toml:"background_color"`
	StatusColor     string `toml:"status_color"`
	AccentColor     string `toml:"accent_color"`
}

// KeymapConfig controls the leader key.
type KeymapConfig struct {
	// Leader is a key specification such as "Space" or "C-l".
	Leader string `toml:"leader"`

	// TimeoutMS is how long to wait for the key after the leader.
	TimeoutMS int `toml:"timeout_ms"`
}

// PickerConfig controls the file and grep pickers.
type PickerConfig struct {
	FileIgnorePatterns []string `toml:"file_ignore_patterns"`
	MaxResults         int      `toml:"max_results"`
	PreviewEnabled     bool     `toml:"preview_enabled"`
}

// DashboardConfig controls the startup dashboard.
type DashboardConfig struct {
	ShowRecentFiles bool   `toml:"show_recent_files"`
	MaxRecentFiles  int    `toml:"max_recent_files"`
	CustomHeader    string `toml:"custom_header"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		UI: UIConfig{
			Theme:           "zen",
			ShowLineNumbers: false,
			ShowStatusLine:  true,
			TabWidth:        2,
			WrapLines:       false,
			StatusColor:     "#2a2a3a",
			AccentColor:     "#7aa2f7",
		},
		Keymaps: KeymapConfig{
			Leader:    "Space",
			TimeoutMS: 1000,
		},
		Picker: PickerConfig{
			FileIgnorePatterns: []string{".git", "node_modules", "target"},
			MaxResults:         100,
			PreviewEnabled:     true,
		},
		Dashboard: DashboardConfig{
			ShowRecentFiles: true,
			MaxRecentFiles:  5,
		},
	}
}

// DefaultDir returns the default configuration directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "zenvim")
}

// Load reads the configuration from dir. If the file does not exist the
// defaults are written there and returned.
func Load(dir string) (Config, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	path := filepath.Join(dir, fileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(cfg, dir); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return Default(), fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to dir, creating it if needed.
func Save(cfg Config, dir string) error {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Path returns the configuration file path inside dir.
func Path(dir string) string {
	if dir == "" {
		dir = DefaultDir()
	}
	return filepath.Join(dir, fileName)
}
