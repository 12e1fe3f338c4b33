package entry

import (
	"errors"
	"fmt"
)

// ErrMalformedEntry is wrapped by every *ParseError.
var ErrMalformedEntry = errors.New("malformed entry")

// ParseError describes a bracket structure that could not be parsed.
type ParseError struct {
	Input  string
	Offset int // Byte offset of the offending bracket
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d in %q: %s", e.Offset, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedEntry
}
