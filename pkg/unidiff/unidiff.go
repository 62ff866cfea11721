// Package unidiff renders line-based unified diffs.
//
// The line alignment comes from go-difflib's SequenceMatcher; this package only
// formats the hunks, including the "\ No newline at end of file" marker that
// go-difflib does not emit, so the output can be fed to patch(1).
package unidiff

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines shown around each change
const DefaultContext = 3

const noNewlineMarker = "\\ No newline at end of file\n"

// SplitLines splits text into lines that keep their trailing newline.
// The last line has no newline when the text does not end with one.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Write writes the unified diff turning before into after.
// Nothing is written when both texts are equal.
func Write(w io.Writer, fromLabel, toLabel, before, after string) error {
	a := SplitLines(before)
	b := SplitLines(after)

	buf := bufio.NewWriter(w)
	started := false

	m := difflib.NewMatcher(a, b)
	for _, group := range m.GetGroupedOpCodes(DefaultContext) {
		if unchanged(group) {
			continue
		}

		if !started {
			started = true
			fmt.Fprintf(buf, "--- %s\n+++ %s\n", fromLabel, toLabel)
		}

		first, last := group[0], group[len(group)-1]
		fmt.Fprintf(buf, "@@ -%s +%s @@\n",
			formatRange(first.I1, last.I2), formatRange(first.J1, last.J2))

		for _, op := range group {
			switch op.Tag {
			case 'e':
				writeLines(buf, ' ', a[op.I1:op.I2])
			case 'd':
				writeLines(buf, '-', a[op.I1:op.I2])
			case 'i':
				writeLines(buf, '+', b[op.J1:op.J2])
			case 'r':
				writeLines(buf, '-', a[op.I1:op.I2])
				writeLines(buf, '+', b[op.J1:op.J2])
			}
		}
	}

	return buf.Flush()
}

// String returns the unified diff as a string
func String(fromLabel, toLabel, before, after string) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, fromLabel, toLabel, before, after); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func unchanged(group []difflib.OpCode) bool {
	for _, op := range group {
		if op.Tag != 'e' {
			return false
		}
	}
	return true
}

func writeLines(buf *bufio.Writer, prefix byte, lines []string) {
	for _, line := range lines {
		buf.WriteByte(prefix)
		buf.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			buf.WriteByte('\n')
			buf.WriteString(noNewlineMarker)
		}
	}
}

// formatRange follows the POSIX unified range format: a single line is
// written without a length and an empty range starts at the preceding line.
func formatRange(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}
