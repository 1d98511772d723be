package cnab

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// dateLayout is the ddmmyy layout used by every CNAB400 date field.
const dateLayout = "020106"

// Range is a 1-based inclusive column range within a fixed-width line.
// The zero Range means the bank does not carry the field.
type Range struct {
	Start int
	End   int
}

// Cols builds a Range.
func Cols(start, end int) Range {
	return Range{Start: start, End: end}
}

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool {
	return r.Start == 0 && r.End == 0
}

// Cut extracts the range from line. An unset range yields "".
func (r Range) Cut(line string) string {
	if r.IsZero() {
		return ""
	}
	return Cut(r.Start, r.End, line)
}

// Width is the number of columns covered by the range.
func (r Range) Width() int {
	if r.IsZero() || r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Cut returns the text between columns start and end (1-based, inclusive).
// Columns past the end of the line are dropped, so a range lying entirely
// beyond the line yields "". Nothing is trimmed.
func Cut(start, end int, line string) string {
	if start < 1 {
		start = 1
	}
	if end < start {
		return ""
	}

	// Fast path for the common all-ASCII line.
	if utf8.RuneCountInString(line) == len(line) {
		if start > len(line) {
			return ""
		}
		if end > len(line) {
			end = len(line)
		}
		return line[start-1 : end]
	}

	runes := []rune(line)
	if start > len(runes) {
		return ""
	}
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start-1 : end])
}

// ToDecimal reads raw as an implied two-decimal fixed-point amount.
// Blank or non-numeric input degrades to zero.
func ToDecimal(raw string) decimal.Decimal {
	return ToDecimalScale(raw, 2)
}

// ToDecimalScale reads raw as a fixed-point amount with scale implied decimals.
func ToDecimalScale(raw string, scale int32) decimal.Decimal {
	digits := strings.TrimSpace(raw)
	if digits == "" || !isDigits(digits) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return d.Shift(-scale)
}

// ToDate parses a ddmmyy field. Blank, all-zero and invalid values return nil.
// Two-digit years follow the time package pivot: 69-99 map to 19xx, 00-68 to 20xx.
func ToDate(raw string) *civil.Date {
	s := strings.TrimSpace(raw)
	if len(s) != len(dateLayout) || !isDigits(s) || strings.Trim(s, "0") == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	d := civil.DateOf(t)
	return &d
}

// ToInt reads raw as a non-negative integer, returning 0 when it is not one.
func ToInt(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" || !isDigits(s) {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
