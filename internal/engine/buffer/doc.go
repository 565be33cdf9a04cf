// Package buffer implements the line-oriented text buffer at the heart of
// the editor, along with the Manager that owns every open buffer.
//
// A Buffer stores its content as an ordered slice of lines and tracks a
// cursor, a modified flag, and bounded undo/redo history. Every mutating
// operation snapshots the full content before changing it, so undo and
// redo are simple stack swaps. Columns are measured in Unicode codepoints,
// never bytes.
//
// The Manager is the single owner of all buffers. Collaborators (renderer,
// pickers, session restore) interact with buffers exclusively through
// accessor and delegation methods; no external aliasing of buffer content
// is permitted.
package buffer
