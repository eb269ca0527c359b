// Package lines slices a file's line sequence.
//
// A line keeps its terminator, so Join(Split(b)) == b for any input.
// Positions exposed to callers are 1-based; slice bounds past the end of
// the sequence are clamped rather than rejected.
package lines

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sokinpui/lnstrip/model"
)

var (
	// ErrInvalidRange is returned for ranges that can never be valid, whatever the file length.
	ErrInvalidRange = errors.New("invalid line range")
	// ErrOutOfBounds is returned by CheckBounds when a range ends past the last line.
	ErrOutOfBounds = errors.New("line range exceeds file length")
)

// Split breaks data into lines, each keeping its trailing "\n" (or "\r\n").
// A final line without a terminator is kept as-is.
func Split(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	parts := bytes.SplitAfter(data, []byte("\n"))
	// SplitAfter leaves an empty element when data ends with a separator.
	if len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

// Join concatenates lines back into file content.
func Join(lines []string) []byte {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
	}
	return buf.Bytes()
}

// Truncate keeps the first n lines. Files shorter than n are kept whole.
func Truncate(lines []string, n int) (kept []string, removed []model.RemovedLine, err error) {
	if n < 0 {
		return nil, nil, fmt.Errorf("%w: cannot keep %d lines", ErrInvalidRange, n)
	}
	cut := clamp(n, len(lines))
	return lines[:cut:cut], numbered(lines, cut, len(lines)), nil
}

// Excise removes lines start..end (1-based, inclusive) and returns the
// concatenation of what came before and after the range.
func Excise(lines []string, start, end int) (kept []string, removed []model.RemovedLine, err error) {
	if start < 1 || end < start {
		return nil, nil, fmt.Errorf("%w: %d-%d", ErrInvalidRange, start, end)
	}
	lo := clamp(start-1, len(lines))
	hi := clamp(end, len(lines))

	kept = make([]string, 0, len(lines)-(hi-lo))
	kept = append(kept, lines[:lo]...)
	kept = append(kept, lines[hi:]...)
	return kept, numbered(lines, lo, hi), nil
}

// CheckBounds reports ErrOutOfBounds when rng ends past a file of total lines.
func CheckBounds(total int, rng model.LineRange) error {
	if rng.End > total {
		return fmt.Errorf("%w: range %d-%d, file has %d lines", ErrOutOfBounds, rng.Start, rng.End, total)
	}
	return nil
}

func numbered(lines []string, lo, hi int) []model.RemovedLine {
	out := make([]model.RemovedLine, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, model.RemovedLine{Number: i + 1, Text: lines[i]})
	}
	return out
}

func clamp(i, n int) int {
	if i > n {
		return n
	}
	return i
}
