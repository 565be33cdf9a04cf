package renderer

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/zenvim/zenvim/internal/config"
)

// Theme holds the resolved styles for every screen region.
type Theme struct {
	Base       tcell.Style
	LineNumber tcell.Style
	Status     tcell.Style
	Accent     tcell.Style
	Message    tcell.Style
	Overlay    tcell.Style
	Selected   tcell.Style
	Dim        tcell.Style
}

// ThemeFromConfig resolves the configured hex colors into styles.
// Empty or malformed colors fall back to the terminal defaults.
func ThemeFromConfig(ui config.UIConfig) Theme {
	base := tcell.StyleDefault
	if c, ok := parseHex(ui.ForegroundColor); ok {
		base = base.Foreground(c)
	}
	if c, ok := parseHex(ui.BackgroundColor); ok {
		base = base.Background(c)
	}

	status := base.Reverse(true)
	if c, ok := parseHex(ui.StatusColor); ok {
		status = base.Background(c)
	}

	accent := base.Bold(true)
	if c, ok := parseHex(ui.AccentColor); ok {
		accent = base.Foreground(c).Bold(true)
	}

	return Theme{
		Base:       base,
		LineNumber: base.Dim(true),
		Status:     status,
		Accent:     accent,
		Message:    base,
		Overlay:    base,
		Selected:   base.Reverse(true),
		Dim:        base.Dim(true),
	}
}

// parseHex converts a "#rrggbb" string to a terminal color.
func parseHex(hex string) (tcell.Color, bool) {
	if hex == "" {
		return tcell.ColorDefault, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault, false
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), true
}
