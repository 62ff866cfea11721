package main

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"golang.org/x/term"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// Terminal is the output sink after the one-time terminal setup
type Terminal struct {
	Writer io.Writer
	file   *os.File
}

// setupTerminal prepares the output for ANSI sequences. On Windows consoles
// colorable translates them; elsewhere the file is used as is. Writers that
// are not files pass through untouched.
func setupTerminal(w io.Writer) *Terminal {
	file, ok := w.(*os.File)
	if !ok {
		return &Terminal{Writer: w}
	}
	return &Terminal{Writer: colorable.NewColorable(file), file: file}
}

// IsTerminal reports whether the output is an interactive terminal
func (t *Terminal) IsTerminal() bool {
	return t.file != nil && term.IsTerminal(int(t.file.Fd()))
}

// colorEnabled resolves the color mode against the output
func colorEnabled(mode string, t *Terminal) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		if _, set := os.LookupEnv("NO_COLOR"); set {
			return false
		}
		return t.IsTerminal()
	}
}
