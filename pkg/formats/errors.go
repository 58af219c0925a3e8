package formats

import (
	"errors"
	"fmt"
)

// Parse failure kinds, matched with errors.Is.
var (
	ErrMalformedLine      = errors.New("malformed line")
	ErrTruncatedFile      = errors.New("truncated file")
	ErrUnsupportedPolygon = errors.New("unsupported polygon")
	ErrUnresolvedParent   = errors.New("unresolved parent")
	ErrIO                 = errors.New("i/o failure")

	// ErrIndexOutOfRange also matches ErrMalformedLine.
	ErrIndexOutOfRange = fmt.Errorf("%w: vertex index out of range", ErrMalformedLine)
)

// ParseError describes where a load failed.
// Line is 1-based; 0 means the failure is not tied to a single line.
type ParseError struct {
	Kind error  // One of the Err* sentinels above
	Line int    // Line number of the offending record
	Text string // Offending line, verbatim
	Err  error  // Underlying cause (strconv, os), may be nil
}

// Error implements error.
func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Text != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Text)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func lineError(kind error, c *LineCursor, err error) *ParseError {
	return &ParseError{Kind: kind, Line: c.LineNumber(), Text: c.Text(), Err: err}
}

func truncatedError(c *LineCursor, block string) *ParseError {
	return &ParseError{
		Kind: ErrTruncatedFile,
		Line: c.LineNumber(),
		Err:  fmt.Errorf("end of input inside %q block", block),
	}
}
