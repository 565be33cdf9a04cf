package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrNoFilePath indicates a save was attempted on a buffer that has
	// no file path. Use SaveAs instead.
	ErrNoFilePath = errors.New("no file path set")

	// ErrUnsavedChanges indicates an attempt to close a modified buffer.
	// The buffer is left untouched.
	ErrUnsavedChanges = errors.New("buffer has unsaved changes")

	// ErrBufferNotFound indicates the requested buffer id is not
	// registered with the manager.
	ErrBufferNotFound = errors.New("buffer not found")

	// ErrNoCurrentBuffer indicates an operation that requires a current
	// buffer was invoked while none is selected.
	ErrNoCurrentBuffer = errors.New("no current buffer")
)
