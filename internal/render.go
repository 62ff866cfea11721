package internal

import (
	"fmt"
	"io"
	"regexp"
	"unicode/utf8"
)

// Run is a contiguous stretch of bytes drawn with one owner
type Run struct {
	Start int
	End   int
	Owner int
}

// SplitRuns partitions the line into runs. A run ends where the owner changes
// and at every offset that has queued expansions, so insertions always land
// on a run boundary.
func SplitRuns(owners OwnerArray, expansions ExpansionMap) []Run {
	if len(owners) == 0 {
		return nil
	}

	var runs []Run
	start := 0
	for i := 1; i <= len(owners); i++ {
		if i < len(owners) && owners[i] == owners[start] && len(expansions[i]) == 0 {
			continue
		}
		runs = append(runs, Run{Start: start, End: i, Owner: owners[start]})
		start = i
	}

	return runs
}

// Renderer draws annotated lines
type Renderer struct {
	palette *Palette
}

// NewRenderer creates a renderer drawing with the given palette
func NewRenderer(palette *Palette) *Renderer {
	return &Renderer{palette: palette}
}

// Render writes line with every owned run decorated and every expansion
// inserted right after the offset it is keyed on, followed by a newline.
func (r *Renderer) Render(w io.Writer, line string, owners OwnerArray, expansions ExpansionMap) error {
	if err := r.writeExpansions(w, expansions[0]); err != nil {
		return err
	}

	for _, run := range SplitRuns(owners, expansions) {
		if err := r.writeRun(w, line[run.Start:run.End], run.Owner); err != nil {
			return err
		}
		if err := r.writeExpansions(w, expansions[run.End]); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// RenderLine runs the whole pipeline for a single line
func (r *Renderer) RenderLine(w io.Writer, line string, re *regexp.Regexp, template string) error {
	matches := Collect(line, re)
	owners := Annotate(len(line), matches)
	expansions := IndexExpansions(line, re, matches, template)
	return r.Render(w, line, owners, expansions)
}

func (r *Renderer) writeRun(w io.Writer, text string, owner int) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: run %q", ErrNonUTF8, text)
	}

	var err error
	if owner == Unowned {
		_, err = io.WriteString(w, text)
	} else {
		_, err = io.WriteString(w, r.palette.Group(owner).Sprint(text))
	}
	return err
}

func (r *Renderer) writeExpansions(w io.Writer, expanded []string) error {
	for _, text := range expanded {
		if _, err := io.WriteString(w, r.palette.Insertion().Sprint(text)); err != nil {
			return err
		}
	}
	return nil
}
