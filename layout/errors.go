package layout

import "fmt"

// Error reports a layout configuration that could not be decoded, planned
// or rendered.
type Error struct {
	Op  string // "memory" or "image"
	Err error
}

// Error fulfills the error interface for Error.
func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s layout configuration: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
