// Package output delivers a generated layout to standard output and/or a
// file.
package output

import (
	"fmt"
	"io"
	"os"
)

// ResourceError reports an output file that could not be created or
// written.
type ResourceError struct {
	Path string
	Err  error
}

// Error fulfills the error interface for ResourceError.
func (e *ResourceError) Error() string {
	return fmt.Sprintf("cannot create output file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Sink writes artifacts to Stdout and to files.
type Sink struct {
	Stdout io.Writer
}

// NewSink returns a Sink printing to os.Stdout.
func NewSink() *Sink {
	return &Sink{Stdout: os.Stdout}
}

// Deliver writes artifact verbatim to Stdout if toStdout is set, then to path,
// creating or truncating it, if path is not empty. With neither requested
// Deliver does nothing.
func (s *Sink) Deliver(artifact string, toStdout bool, path string) error {
	if toStdout {
		if _, err := io.WriteString(s.Stdout, artifact); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	if path != "" {
		if err := os.WriteFile(path, []byte(artifact), 0644); err != nil {
			return &ResourceError{Path: path, Err: err}
		}
	}
	return nil
}
