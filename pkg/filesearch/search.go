// Package filesearch asks an external search program, ripgrep by default,
// for the files that contain a pattern.
package filesearch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Tool describes the search program. The pattern and the search roots are
// appended to Args, in that order. The program must print NUL separated paths.
type Tool struct {
	Command string
	Args    []string
}

// DefaultTool runs ripgrep
func DefaultTool() Tool {
	return Tool{
		Command: "rg",
		Args:    []string{"--files-with-matches", "--null", "-e"},
	}
}

// Search runs the tool and returns the files it lists. An exit status of 1
// means nothing matched and yields an empty list.
func Search(ctx context.Context, tool Tool, pattern string, roots []string) ([]string, error) {
	if tool.Command == "" {
		return nil, errors.New("search command is empty")
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}

	args := make([]string, 0, len(tool.Args)+1+len(roots))
	args = append(args, tool.Args...)
	args = append(args, pattern)
	args = append(args, roots...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool.Command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("Running search tool", "command", tool.Command, "args", args)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", tool.Command, err, msg)
		}
		return nil, fmt.Errorf("running %s: %w", tool.Command, err)
	}

	files := parseOutput(stdout.Bytes())
	slog.Debug("Search tool finished", "files", len(files))
	return files, nil
}

func parseOutput(out []byte) []string {
	var files []string
	for _, field := range bytes.Split(out, []byte{0}) {
		path := strings.TrimRight(string(field), "\r\n")
		if path != "" {
			files = append(files, path)
		}
	}
	return files
}
