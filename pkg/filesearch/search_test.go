package filesearch

import (
	"context"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{"empty", "", nil},
		{"nul separated", "a.go\x00dir/b.go\x00", []string{"a.go", "dir/b.go"}},
		{"trailing newline", "a.go\x00\n", []string{"a.go"}},
		{"spaces kept", "my file.txt\x00", []string{"my file.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseOutput([]byte(tt.out))); diff != "" {
				t.Errorf("parseOutput mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearch_ListsFiles(t *testing.T) {
	requireShell(t)

	tool := Tool{Command: "sh", Args: []string{"-c", `printf 'a.txt\000b.txt\000'`, "sh"}}
	files, err := Search(context.Background(), tool, "foo", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a.txt", "b.txt"}, files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_PassesPatternAndRoots(t *testing.T) {
	requireShell(t)

	tool := Tool{Command: "sh", Args: []string{"-c", `printf '%s\000' "$@"`, "sh"}}
	files, err := Search(context.Background(), tool, "fo+", []string{"src", "docs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"fo+", "src", "docs"}, files); diff != "" {
		t.Errorf("arguments mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	requireShell(t)

	tool := Tool{Command: "sh", Args: []string{"-c", "exit 1", "sh"}}
	files, err := Search(context.Background(), tool, "foo", nil)
	if err != nil {
		t.Fatalf("exit status 1 should not be an error, got %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestSearch_Failure(t *testing.T) {
	requireShell(t)

	tool := Tool{Command: "sh", Args: []string{"-c", "echo boom >&2; exit 2", "sh"}}
	if _, err := Search(context.Background(), tool, "foo", nil); err == nil {
		t.Error("expected an error for exit status 2")
	}
}

func TestSearch_EmptyCommand(t *testing.T) {
	if _, err := Search(context.Background(), Tool{}, "foo", nil); err == nil {
		t.Error("expected an error for an empty command")
	}
}

func TestDefaultTool(t *testing.T) {
	tool := DefaultTool()
	if tool.Command != "rg" {
		t.Errorf("expected rg, got %q", tool.Command)
	}
	if tool.Args[len(tool.Args)-1] != "-e" {
		t.Errorf("pattern must follow -e, got args %v", tool.Args)
	}
}
