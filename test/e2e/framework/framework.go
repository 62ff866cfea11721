package framework

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/creack/pty"
)

// findProjectRoot searches for the project root directory containing go.mod
func findProjectRoot(startDir string) string {
	dir := startDir
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if content, err := os.ReadFile(goModPath); err == nil {
			// Check if this go.mod declares the main module (not just requires it)
			if strings.HasPrefix(strings.TrimSpace(string(content)), "module github.com/Hanaasagi/repat\n") {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root directory
		}
		dir = parent
	}
	return ""
}

// Framework provides utilities for running e2e tests
type Framework struct {
	BinaryPath string
	Timeout    time.Duration
}

// TestCase represents a single e2e test case
type TestCase struct {
	Name string
	// Input is written to a temporary file whose path is appended to Args
	Input string
	Args  []string
	Env   []string
	// Terminal runs the binary attached to a pseudo terminal instead of a pipe
	Terminal       bool
	ExpectedOutput string
	// UnexpectedOutput must not appear anywhere in the output
	UnexpectedOutput string
	ExpectFailure    bool
	Timeout          time.Duration
}

// TestResult represents the result of a test case
type TestResult struct {
	Name     string
	Passed   bool
	Error    string
	Output   string
	ExitCode int
	Elapsed  time.Duration
}

// NewFramework creates a new e2e test framework
func NewFramework() *Framework {
	return &Framework{
		BinaryPath: "",
		Timeout:    5 * time.Second,
	}
}

// SetBinaryPath sets the path to the repat binary
func (f *Framework) SetBinaryPath(path string) {
	f.BinaryPath = path
}

// BuildBinary builds the repat binary for testing
func (f *Framework) BuildBinary() error {
	if f.BinaryPath != "" {
		return nil // Already set
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	projectRoot := findProjectRoot(wd)
	if projectRoot == "" {
		return fmt.Errorf("could not find project root directory from %s", wd)
	}

	buildDir := filepath.Join(projectRoot, "build")
	binaryPath := filepath.Join(buildDir, "repat")

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/repat")
	cmd.Dir = projectRoot

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to build binary: %w, output: %s", err, string(output))
	}

	f.BinaryPath = binaryPath
	return nil
}

// RunTest executes a single test case
func (f *Framework) RunTest(testCase TestCase) TestResult {
	start := time.Now()
	result := TestResult{Name: testCase.Name}

	fail := func(format string, args ...any) TestResult {
		result.Error = fmt.Sprintf(format, args...)
		result.Elapsed = time.Since(start)
		return result
	}

	if err := f.BuildBinary(); err != nil {
		return fail("failed to build binary: %v", err)
	}

	stateDir, err := os.MkdirTemp("", "repat-state-*")
	if err != nil {
		return fail("failed to create state dir: %v", err)
	}
	defer os.RemoveAll(stateDir)

	tmpFile, err := os.CreateTemp("", "repat-test-*.txt")
	if err != nil {
		return fail("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(testCase.Input); err != nil {
		tmpFile.Close()
		return fail("failed to write to temp file: %v", err)
	}
	tmpFile.Close()

	args := append([]string{"--config", filepath.Join(stateDir, "none.toml")}, testCase.Args...)
	args = append(args, tmpFile.Name())

	cmd := exec.Command(f.BinaryPath, args...)
	cmd.Env = append(os.Environ(), "XDG_STATE_HOME="+stateDir)
	cmd.Env = append(cmd.Env, testCase.Env...)

	timeout := testCase.Timeout
	if timeout == 0 {
		timeout = f.Timeout
	}

	var output string
	if testCase.Terminal {
		output, err = runWithTerminal(cmd, timeout)
	} else {
		output, err = runWithPipe(cmd, timeout)
	}
	result.Output = output

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		return fail("failed to run command: %v", err)
	}

	if testCase.ExpectFailure != (result.ExitCode != 0) {
		return fail("unexpected exit code %d, output: %q", result.ExitCode, output)
	}
	if !strings.Contains(output, testCase.ExpectedOutput) {
		return fail("output %q does not contain %q", output, testCase.ExpectedOutput)
	}
	if testCase.UnexpectedOutput != "" && strings.Contains(output, testCase.UnexpectedOutput) {
		return fail("output %q contains %q", output, testCase.UnexpectedOutput)
	}

	result.Passed = true
	result.Elapsed = time.Since(start)
	return result
}

func runWithPipe(cmd *exec.Cmd, timeout time.Duration) (string, error) {
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Start(); err != nil {
		return "", err
	}
	return wait(cmd, timeout, func() string { return out.String() })
}

func runWithTerminal(cmd *exec.Cmd, timeout time.Duration) (string, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return "", err
	}
	defer ptmx.Close()

	var out bytes.Buffer
	done := make(chan struct{})
	go func() {
		// reading the pty fails with EIO once the child exits
		_, _ = io.Copy(&out, ptmx)
		close(done)
	}()

	output, err := wait(cmd, timeout, func() string {
		select {
		case <-done:
		case <-time.After(time.Second):
		}
		return out.String()
	})
	// pty output uses CRLF line endings
	return strings.ReplaceAll(output, "\r\n", "\n"), err
}

func wait(cmd *exec.Cmd, timeout time.Duration, collect func() string) (string, error) {
	errCh := make(chan error, 1)
	go func() { errCh <- cmd.Wait() }()

	select {
	case err := <-errCh:
		return collect(), err
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		<-errCh
		return collect(), errors.New("test timed out")
	}
}

// RunTests executes multiple test cases
func (f *Framework) RunTests(testCases []TestCase) []TestResult {
	results := make([]TestResult, len(testCases))
	for i, testCase := range testCases {
		fmt.Printf("Running test: %s\n", testCase.Name)
		results[i] = f.RunTest(testCase)
		if results[i].Passed {
			fmt.Printf("PASS %s (%.2fs)\n", testCase.Name, results[i].Elapsed.Seconds())
		} else {
			fmt.Printf("FAIL %s (%.2fs): %s\n", testCase.Name, results[i].Elapsed.Seconds(), results[i].Error)
		}
	}
	return results
}
