package app

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("editor already running")

	// ErrNoTerminal indicates the terminal could not be initialized.
	ErrNoTerminal = errors.New("terminal unavailable")
)

// OperationError wraps an error with the operation and its target, so
// a status message can say what failed on what.
type OperationError struct {
	Op     string // operation name, such as "open" or "save"
	Target string // file path or buffer name
	Err    error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}
