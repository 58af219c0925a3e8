package formats

import (
	"math"
	"strconv"
	"strings"
)

// LineCursor is a single advancing position over the lines of a text file.
// Nested parsers share one *LineCursor: whatever an inner parser consumes is
// already consumed when control returns to its caller.
type LineCursor struct {
	lines []string
	pos   int // index of the current line, -1 before the first Next
}

// NewLineCursor splits data into lines. The trailing "\n" (and "\r\n") of each
// line is stripped; nothing else is normalized.
func NewLineCursor(data []byte) *LineCursor {
	text := string(data)
	text = strings.TrimSuffix(text, "\n")
	var lines []string
	if text != "" || len(data) > 0 {
		lines = strings.Split(text, "\n")
		for i, l := range lines {
			lines[i] = strings.TrimSuffix(l, "\r")
		}
	}
	return &LineCursor{lines: lines, pos: -1}
}

// Next advances to the following line. It returns false at end of input.
func (c *LineCursor) Next() bool {
	if c.pos+1 >= len(c.lines) {
		c.pos = len(c.lines)
		return false
	}
	c.pos++
	return true
}

// Text returns the current line, or "" before the first Next / after the last.
func (c *LineCursor) Text() string {
	if c.pos < 0 || c.pos >= len(c.lines) {
		return ""
	}
	return c.lines[c.pos]
}

// LineNumber returns the 1-based number of the current line.
// At end of input it is the number of the last line.
func (c *LineCursor) LineNumber() int {
	if c.pos >= len(c.lines) {
		return len(c.lines)
	}
	return c.pos + 1
}

// Len returns the total number of lines.
func (c *LineCursor) Len() int {
	return len(c.lines)
}

// Reset rewinds the cursor to before the first line.
func (c *LineCursor) Reset() {
	c.pos = -1
}

// SplitFields splits a line on single ASCII spaces. Repeated spaces produce
// empty fields; they are not collapsed.
func SplitFields(line string) []string {
	return strings.Split(line, " ")
}

// expectFields fails unless fields has exactly n entries.
func expectFields(c *LineCursor, fields []string, n int) error {
	if len(fields) != n {
		return lineError(ErrMalformedLine, c, strconv.ErrSyntax)
	}
	for _, f := range fields {
		if f == "" {
			return lineError(ErrMalformedLine, c, strconv.ErrSyntax)
		}
	}
	return nil
}

// parseFloats parses every entry of fields as a float32.
func parseFloats(c *LineCursor, fields []string) ([]float32, error) {
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := parseFinite(c, f, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// parseFloats64 parses every entry of fields as a float64.
func parseFloats64(c *LineCursor, fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseFinite(c, f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseFinite parses one float and rejects NaN and infinities.
func parseFinite(c *LineCursor, field string, bitSize int) (float64, error) {
	v, err := strconv.ParseFloat(field, bitSize)
	if err != nil {
		return 0, lineError(ErrMalformedLine, c, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, lineError(ErrMalformedLine, c, strconv.ErrRange)
	}
	return v, nil
}

// parseIndex parses a 1-based unsigned 16-bit index and returns it 0-based.
func parseIndex(c *LineCursor, field string) (uint16, error) {
	v, err := strconv.ParseUint(field, 10, 16)
	if err != nil {
		return 0, lineError(ErrMalformedLine, c, err)
	}
	if v == 0 {
		return 0, lineError(ErrMalformedLine, c, strconv.ErrRange)
	}
	return uint16(v - 1), nil
}
