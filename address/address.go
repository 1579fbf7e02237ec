// Package address parses the address literals accepted on the command line
// and in layout configuration files.
package address

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Ceiling4G is the top of the 32-bit address space, the highest firmware top
// a layout may use.
const Ceiling4G uint64 = 0x1_0000_0000

// PageSize is the alignment unit for firmware and memory regions.
const PageSize uint64 = 0x1000

// hexPrefix selects base 16. Only the lower case form is recognised.
const hexPrefix = "0x"

// ParseError reports an address literal that could not be parsed.
type ParseError struct {
	Literal string
	Err     error
}

// Error fulfills the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("address literal invalid: %q: %v", e.Literal, e.Err)
}

// Unwrap returns the underlying strconv error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts s into an unsigned 64 bit value. A "0x" prefix selects
// hexadecimal, otherwise s is read as decimal. Signs, underscores and
// whitespace are rejected.
func Parse(s string) (uint64, error) {
	digits, base := s, 10
	if rest, ok := strings.CutPrefix(s, hexPrefix); ok {
		digits, base = rest, 16
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			err = ne.Err
		}
		return 0, &ParseError{Literal: s, Err: err}
	}
	return v, nil
}

// Hex renders v as a lower case "0x" literal that Parse accepts.
func Hex(v uint64) string {
	return hexPrefix + strconv.FormatUint(v, 16)
}
