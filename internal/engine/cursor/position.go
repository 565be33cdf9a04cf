package cursor

import "fmt"

// Position is a (row, column) coordinate within a buffer.
// Columns are counted in Unicode codepoints, not bytes.
// Position is a value type with no identity.
type Position struct {
	Row int
	Col int
}

// String returns a human-readable representation, e.g. "3:14".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Equals returns true if both positions refer to the same coordinate.
func (p Position) Equals(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}

// Before returns true if p comes before other in reading order.
func (p Position) Before(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}
