// Package ansistrip removes terminal escape sequences from text so that
// colored output piped from other tools can be matched as plain text.
package ansistrip

import (
	"strings"

	"github.com/leaanthony/go-ansi-parser"
)

// HasEscapes reports whether the line contains an escape character
func HasEscapes(line string) bool {
	return strings.ContainsAny(line, "\033\x1b")
}

// Strip returns the visible text of line. Lines the parser cannot handle are
// returned unchanged, together with the parse error.
func Strip(line string) (string, error) {
	if !HasEscapes(line) {
		return line, nil
	}

	elements, err := ansi.Parse(line)
	if err != nil {
		return line, err
	}

	var sb strings.Builder
	sb.Grow(len(line))
	for _, element := range elements {
		sb.WriteString(element.Label)
	}
	return sb.String(), nil
}
