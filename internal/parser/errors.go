package parser

import (
	"errors"
	"fmt"
)

// IOError is a failure of the underlying source or sink, including a frame
// that ends before all of its fields were read.
type IOError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("i/o error while %s data: %v", e.opVerb(), e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) opVerb() string {
	if e.Op == "write" {
		return "writing"
	}
	return "reading"
}

// ParseError reports malformed content. Index is the 0-based position of the
// offending record (-1 when unknown) and Raw holds the offending fragment.
type ParseError struct {
	Format Format
	Index  int
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: malformed record", e.Format)
	if e.Index >= 0 {
		msg += fmt.Sprintf(" %d", e.Index)
	}
	if e.Raw != "" {
		msg += fmt.Sprintf(" %q", e.Raw)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

func IsIO(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

func IsParse(err error) bool {
	var pErr *ParseError
	return errors.As(err, &pErr)
}

func readErr(err error) error  { return &IOError{Op: "read", Err: err} }
func writeErr(err error) error { return &IOError{Op: "write", Err: err} }
