package app

import (
	"fmt"

	"github.com/rorycl/tdlayout/address"
)

// UsageError reports an invalid combination of command line arguments.
type UsageError struct {
	Msg string
	Err error
}

// Error fulfills the error interface for UsageError.
func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("usage error: %s: %v", e.Msg, e.Err)
	}
	return "usage error: " + e.Msg
}

// Unwrap returns the underlying error, if any.
func (e *UsageError) Unwrap() error {
	return e.Err
}

// RangeError reports a firmware top above the 4GB ceiling.
type RangeError struct {
	Value uint64
}

// Error fulfills the error interface for RangeError.
func (e *RangeError) Error() string {
	return fmt.Sprintf("fw_top exceeds 4GB ceiling: %s > %s", address.Hex(e.Value), address.Hex(address.Ceiling4G))
}

// AlignmentError reports a firmware top that is not on a 4KB boundary.
type AlignmentError struct {
	Value uint64
}

// Error fulfills the error interface for AlignmentError.
func (e *AlignmentError) Error() string {
	return fmt.Sprintf("fw_top not 4KB-aligned: %s", address.Hex(e.Value))
}
