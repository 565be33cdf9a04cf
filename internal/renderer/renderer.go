// Package renderer draws the editor onto a terminal backend: the text
// area with its viewport, the status line, the command echo line, and
// the dashboard and picker overlays.
package renderer

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/zenvim/zenvim/internal/config"
	"github.com/zenvim/zenvim/internal/engine/buffer"
	"github.com/zenvim/zenvim/internal/input/mode"
	"github.com/zenvim/zenvim/internal/picker"
	"github.com/zenvim/zenvim/internal/renderer/backend"
)

// Frame is everything one redraw needs. The renderer holds no editor
// state beyond the viewport scroll position.
type Frame struct {
	// Buffer is the current buffer, nil when none is open.
	Buffer *buffer.Buffer

	// Mode is the active editing mode.
	Mode mode.Mode

	// CommandLine is the pending ex command, echoed on the bottom row.
	CommandLine string

	// Message is a transient status message, shown when no command is
	// being typed.
	Message string

	// Picker, when non-nil, is drawn as a centered overlay.
	Picker *picker.Picker

	// Dashboard, when non-nil, replaces the text area.
	Dashboard *Dashboard

	// LeaderPending marks that a leader key is waiting for its
	// follow-up.
	LeaderPending bool
}

// Renderer draws frames onto a terminal.
type Renderer struct {
	term    *backend.Terminal
	theme   Theme
	ui      config.UIConfig
	topLine int
}

// New creates a renderer for the given terminal and UI settings.
func New(term *backend.Terminal, ui config.UIConfig) *Renderer {
	return &Renderer{
		term:  term,
		theme: ThemeFromConfig(ui),
		ui:    ui,
	}
}

// SetUIConfig applies new UI settings, as after a config reload.
func (r *Renderer) SetUIConfig(ui config.UIConfig) {
	r.ui = ui
	r.theme = ThemeFromConfig(ui)
}

// TopLine returns the first visible buffer row.
func (r *Renderer) TopLine() int { return r.topLine }

// Draw renders one frame and flushes it to the terminal.
func (r *Renderer) Draw(frame Frame) {
	width, height := r.term.Size()
	if width <= 0 || height <= 0 {
		return
	}
	r.term.Clear()

	textHeight := height - r.chromeRows()
	if textHeight < 1 {
		textHeight = 1
	}

	switch {
	case frame.Dashboard != nil:
		r.drawDashboard(frame.Dashboard, width, textHeight)
		r.term.HideCursor()
	case frame.Buffer != nil:
		r.drawBuffer(frame.Buffer, frame.Mode, width, textHeight)
	default:
		r.term.HideCursor()
	}

	if r.ui.ShowStatusLine && height >= 2 {
		r.drawStatusLine(frame, width, height-2)
	}
	r.drawEchoLine(frame, width, height-1)

	if frame.Picker != nil {
		r.drawPicker(frame.Picker, width, height)
		r.term.HideCursor()
	}

	r.term.SetCursorShape(frame.Mode.CursorShape())
	r.term.Show()
}

// chromeRows is how many bottom rows the status and echo lines use.
func (r *Renderer) chromeRows() int {
	if r.ui.ShowStatusLine {
		return 2
	}
	return 1
}

// drawBuffer renders the text area and places the cursor, scrolling
// the viewport just enough to keep the cursor visible.
func (r *Renderer) drawBuffer(buf *buffer.Buffer, m mode.Mode, width, height int) {
	pos := buf.CursorPos()
	if pos.Row < r.topLine {
		r.topLine = pos.Row
	}
	if pos.Row >= r.topLine+height {
		r.topLine = pos.Row - height + 1
	}

	gutter := 0
	if r.ui.ShowLineNumbers {
		gutter = numberWidth(buf.LineCount()) + 1
	}

	for y := 0; y < height; y++ {
		row := r.topLine + y
		if row >= buf.LineCount() {
			r.term.SetContent(0, y, '~', r.theme.Dim)
			continue
		}
		if gutter > 0 {
			num := strconv.Itoa(row + 1)
			r.drawText(gutter-1-len(num), y, num, r.theme.LineNumber, gutter)
		}
		r.drawText(gutter, y, buf.Line(row), r.theme.Base, width-gutter)
	}

	cursorX := gutter + displayColumn(buf.Line(pos.Row), pos.Col)
	r.term.ShowCursor(cursorX, pos.Row-r.topLine)
}

// drawStatusLine renders "mode | name [+] | row:col" on a styled bar.
func (r *Renderer) drawStatusLine(frame Frame, width, y int) {
	r.term.Fill(0, y, width, y+1, ' ', r.theme.Status)

	modeTag := " " + frame.Mode.String() + " "
	r.drawText(0, y, modeTag, r.theme.Accent.Reverse(true), width)

	x := uniseg.StringWidth(modeTag) + 1
	if frame.Buffer != nil {
		name := frame.Buffer.Name()
		if frame.Buffer.Modified() {
			name += " [+]"
		}
		r.drawText(x, y, name, r.theme.Status, width-x)

		pos := frame.Buffer.CursorPos()
		coord := fmt.Sprintf("%d:%d ", pos.Row+1, pos.Col+1)
		r.drawText(width-uniseg.StringWidth(coord), y, coord, r.theme.Status, width)
	}
}

// drawEchoLine renders the pending ex command or the status message.
func (r *Renderer) drawEchoLine(frame Frame, width, y int) {
	switch {
	case frame.CommandLine != "":
		r.drawText(0, y, frame.CommandLine, r.theme.Base, width)
		r.term.ShowCursor(uniseg.StringWidth(frame.CommandLine), y)
	case frame.LeaderPending:
		r.drawText(0, y, "<leader>", r.theme.Dim, width)
	case frame.Message != "":
		r.drawText(0, y, frame.Message, r.theme.Message, width)
	}
}

// drawDashboard centers the banner and menu in the text area.
func (r *Renderer) drawDashboard(d *Dashboard, width, height int) {
	art := dashboardArt
	if d.header != "" {
		art = []string{d.header}
	}

	menuRows := len(dashEntries) + 2
	total := len(art) + 1 + menuRows
	if total > height {
		// small terminal, banner goes first
		art = nil
		total = menuRows
	}
	top := (height - total) / 2
	if top < 0 {
		top = 0
	}

	for i, line := range art {
		x := (width - uniseg.StringWidth(line)) / 2
		r.drawText(max(x, 0), top+i, line, r.theme.Accent, width)
	}

	menuTop := top + len(art) + 1
	menuLeft := (width - 24) / 2
	if menuLeft < 0 {
		menuLeft = 0
	}
	for i, entry := range dashEntries {
		hint := "[" + entry.hint + "]"
		r.drawText(menuLeft, menuTop+i, hint, r.theme.Accent, width)
		r.drawText(menuLeft+6, menuTop+i, entry.label, r.theme.Base, width)
	}
	r.drawText(menuLeft, menuTop+len(dashEntries)+1, "leader: <space>", r.theme.Dim, width)
}

// drawPicker renders a centered bordered overlay with the query on
// top and the filtered list below it.
func (r *Renderer) drawPicker(p *picker.Picker, width, height int) {
	boxW := width * 3 / 4
	if boxW < 20 {
		boxW = width
	}
	boxH := height * 2 / 3
	if boxH < 5 {
		boxH = height
	}
	left := (width - boxW) / 2
	top := (height - boxH) / 2

	r.term.Fill(left, top, left+boxW, top+boxH, ' ', r.theme.Overlay)
	r.drawBorder(left, top, left+boxW, top+boxH, " "+p.Kind().String()+" ")

	query := "> " + p.Input()
	r.drawText(left+1, top+1, query, r.theme.Base, boxW-2)

	visible := p.Visible()
	listTop := top + 2
	listHeight := boxH - 3
	first := 0
	if p.Selected() >= listHeight {
		first = p.Selected() - listHeight + 1
	}
	for i := 0; i < listHeight && first+i < len(visible); i++ {
		style := r.theme.Base
		if first+i == p.Selected() {
			style = r.theme.Selected
			r.term.Fill(left+1, listTop+i, left+boxW-1, listTop+i+1, ' ', style)
		}
		r.drawText(left+2, listTop+i, visible[first+i], style, boxW-3)
	}
}

// drawBorder draws a box with a title on the top edge.
func (r *Renderer) drawBorder(left, top, right, bottom int, title string) {
	style := r.theme.Overlay
	for x := left; x < right; x++ {
		r.term.SetContent(x, top, tcell.RuneHLine, style)
		r.term.SetContent(x, bottom-1, tcell.RuneHLine, style)
	}
	for y := top; y < bottom; y++ {
		r.term.SetContent(left, y, tcell.RuneVLine, style)
		r.term.SetContent(right-1, y, tcell.RuneVLine, style)
	}
	r.term.SetContent(left, top, tcell.RuneULCorner, style)
	r.term.SetContent(right-1, top, tcell.RuneURCorner, style)
	r.term.SetContent(left, bottom-1, tcell.RuneLLCorner, style)
	r.term.SetContent(right-1, bottom-1, tcell.RuneLRCorner, style)
	r.drawText(left+2, top, title, r.theme.Accent, right-left-4)
}

// drawText writes a string starting at (x, y), clipped to max cells.
// Wide characters advance by their display width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style, maxCells int) {
	if maxCells <= 0 {
		return
	}
	col := x
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if col+w > x+maxCells {
			break
		}
		runes := g.Runes()
		if len(runes) > 0 && col >= 0 {
			r.term.SetContent(col, y, runes[0], style)
		}
		col += w
	}
}

// displayColumn converts a codepoint column into a screen column for
// the given line, accounting for wide characters.
func displayColumn(line string, col int) int {
	width := 0
	i := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		if i >= col {
			break
		}
		width += g.Width()
		i += len(g.Runes())
	}
	return width
}

// numberWidth is how many digits the largest line number needs.
func numberWidth(lineCount int) int {
	w := len(strconv.Itoa(lineCount))
	if w < 3 {
		w = 3
	}
	return w
}
