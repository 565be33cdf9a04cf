// Package mode implements the modal key-dispatch state machine.
//
// The Manager receives one key event at a time and either transitions
// between modes (Normal, Insert, Visual, Command) or delegates to the
// buffer manager. Modal dispatch is a single transition function over an
// enumerated mode tag; there are no per-mode objects.
package mode

// Mode is the editor's modal state.
type Mode uint8

const (
	// Normal is the initial mode; keys are commands.
	Normal Mode = iota
	// Insert feeds printable keys into the buffer.
	Insert
	// Visual is enterable and exitable; selection operators are not
	// implemented.
	Visual
	// Command collects an ex-style command line.
	Command
)

// String returns the status-line name of the mode.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case Visual:
		return "VISUAL"
	case Command:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// CursorShape describes how the cursor should be drawn for a mode.
type CursorShape uint8

const (
	// ShapeBlock is a full-cell block cursor.
	ShapeBlock CursorShape = iota
	// ShapeBar is a thin vertical bar cursor.
	ShapeBar
)

// CursorShape returns the cursor shape for the mode.
func (m Mode) CursorShape() CursorShape {
	if m == Insert || m == Command {
		return ShapeBar
	}
	return ShapeBlock
}
