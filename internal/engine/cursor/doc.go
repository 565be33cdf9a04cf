// Package cursor implements the editing cursor and its motion algorithms.
//
// A Cursor holds a Position plus a "desired column": the last column the
// user intentionally chose. Vertical motion clamps the column to the target
// line's length without forgetting the desired column, so moving across a
// short line and back onto a long one restores the original column.
//
// Motions operate against a borrowed view of the buffer's lines. They are
// total: every motion clamps at buffer boundaries and a no-op result at an
// edge is an expected outcome, never an error.
package cursor
