package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Hanaasagi/repat/pkg/ansistrip"
	"github.com/Hanaasagi/repat/pkg/unidiff"
)

// StdinPath selects standard input as a source
const StdinPath = "-"

const defaultReadSize = 4096

// ProcessorOptions configures a Processor
type ProcessorOptions struct {
	Pattern   *regexp.Regexp
	Template  string
	Diff      bool
	StripANSI bool
	Renderer  *Renderer
}

// Processor turns input sources into annotated lines or unified diffs
type Processor struct {
	re        *regexp.Regexp
	template  string
	diff      bool
	stripANSI bool
	renderer  *Renderer
	stdin     io.Reader
}

// NewProcessor creates a processor. A nil renderer falls back to the default
// palette with colors disabled.
func NewProcessor(opts ProcessorOptions) *Processor {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = NewRenderer(DefaultPalette(false))
	}
	return &Processor{
		re:        opts.Pattern,
		template:  opts.Template,
		diff:      opts.Diff,
		stripANSI: opts.StripANSI,
		renderer:  renderer,
		stdin:     os.Stdin,
	}
}

// ProcessPath processes a file, or standard input when path is "-"
func (p *Processor) ProcessPath(w io.Writer, path string) error {
	if path == StdinPath {
		return p.Process(p.stdin, w, StdinPath)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	defer file.Close() // nolint: errcheck

	return p.Process(file, w, path)
}

// Process reads one source and writes its rendering. The label names the
// source in errors and in the diff headers.
func (p *Processor) Process(r io.Reader, w io.Writer, label string) error {
	slog.Debug("Processing source", "source", label, "diff", p.diff)
	if p.diff {
		return p.processDiff(r, w, label)
	}
	return p.processLines(r, w, label)
}

func (p *Processor) processLines(r io.Reader, w io.Writer, label string) error {
	reader := bufio.NewReaderSize(r, defaultReadSize)
	lineNo := 0

	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("%w: reading %s: %v", ErrIO, label, err)
		}

		if line != "" {
			lineNo++
			if rerr := p.processLine(w, trimNewline(line), label, lineNo); rerr != nil {
				return rerr
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

func (p *Processor) processLine(w io.Writer, line, label string, lineNo int) error {
	if !utf8.ValidString(line) {
		return fmt.Errorf("%w: %s:%d", ErrNonUTF8, label, lineNo)
	}

	if p.stripANSI {
		stripped, err := ansistrip.Strip(line)
		if err != nil {
			slog.Debug("Keeping line with unparsable escapes", "source", label, "line", lineNo, "error", err)
		}
		line = stripped
	}

	if err := p.renderer.RenderLine(w, line, p.re, p.template); err != nil {
		if errors.Is(err, ErrNonUTF8) {
			return fmt.Errorf("%s:%d: %w", label, lineNo, err)
		}
		return fmt.Errorf("%w: writing %s: %v", ErrIO, label, err)
	}
	return nil
}

func (p *Processor) processDiff(r io.Reader, w io.Writer, label string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrIO, label, err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: %s", ErrNonUTF8, label)
	}

	before := string(data)
	after := p.re.ReplaceAllString(before, p.template)

	if err := unidiff.Write(w, label, label, before, after); err != nil {
		return fmt.Errorf("%w: writing diff for %s: %v", ErrIO, label, err)
	}
	return nil
}

// trimNewline drops the line terminator, accepting both \n and \r\n. A lone
// \r at EOF is kept as content.
func trimNewline(line string) string {
	trimmed, found := strings.CutSuffix(line, "\n")
	if !found {
		return line
	}
	return strings.TrimSuffix(trimmed, "\r")
}
