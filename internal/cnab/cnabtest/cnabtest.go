// Package cnabtest builds fixed-width CNAB lines for tests.
package cnabtest

import (
	"fmt"
	"strings"
)

// LineWidth is the CNAB400 record width.
const LineWidth = 400

// Line is a mutable fixed-width line.
type Line struct {
	cols []rune
}

// NewLine returns a blank 400-column line whose first column is recordType.
func NewLine(recordType byte) *Line {
	l := &Line{cols: []rune(strings.Repeat(" ", LineWidth))}
	l.cols[0] = rune(recordType)
	return l
}

// Set writes value starting at the 1-based column start.
// Text past the end of the line is dropped.
func (l *Line) Set(start int, value string) *Line {
	for i, r := range []rune(value) {
		pos := start - 1 + i
		if pos < 0 || pos >= len(l.cols) {
			continue
		}
		l.cols[pos] = r
	}
	return l
}

// SetRange writes value into columns start..end, left-aligned and
// space-padded, truncating when it does not fit.
func (l *Line) SetRange(start, end int, value string) *Line {
	width := end - start + 1
	runes := []rune(value)
	if len(runes) > width {
		runes = runes[:width]
	}
	return l.Set(start, string(runes)+strings.Repeat(" ", width-len(runes)))
}

// Num writes n zero-padded into columns start..end.
func (l *Line) Num(start, end int, n int64) *Line {
	width := end - start + 1
	return l.Set(start, fmt.Sprintf("%0*d", width, n))
}

// String returns the line text.
func (l *Line) String() string {
	return string(l.cols)
}

// Join renders lines as a file body with CRLF terminators.
func Join(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}
