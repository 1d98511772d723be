package cnab

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// eofMarker is the DOS end-of-file byte some bank systems still append.
const eofMarker = "\x1a"

// Decode reads a Latin-1 return file and splits it into lines.
// Carriage returns are trimmed and trailing empty lines (including a lone
// EOF marker) are dropped. Blank lines inside the file are kept so the
// parser can report them.
func Decode(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("Decode: reading input: %w", err)
	}
	return SplitLines(string(data)), nil
}

// DecodeBytes is Decode over an in-memory file.
func DecodeBytes(data []byte) ([]string, error) {
	return Decode(bytes.NewReader(data))
}

// SplitLines splits already-decoded text into lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}

	for len(lines) > 0 {
		last := strings.TrimRight(lines[len(lines)-1], eofMarker)
		if strings.TrimSpace(last) != "" {
			lines[len(lines)-1] = last
			break
		}
		lines = lines[:len(lines)-1]
	}
	return lines
}
