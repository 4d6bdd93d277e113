// Package osascript implements the host automation ports with AppleScript.
package osascript

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultBinary is the AppleScript interpreter.
const DefaultBinary = "osascript"

// ScriptError is returned when the interpreter fails or writes to stderr.
type ScriptError struct {
	Stderr string
	Err    error
}

func (e *ScriptError) Error() string {
	switch {
	case e.Err != nil && e.Stderr != "":
		return fmt.Sprintf("applescript: %v: %s", e.Err, e.Stderr)
	case e.Err != nil:
		return fmt.Sprintf("applescript: %v", e.Err)
	default:
		return "applescript: " + e.Stderr
	}
}

func (e *ScriptError) Unwrap() error { return e.Err }

// Runner writes each script to a temporary file and runs the interpreter on it.
type Runner struct {
	binary string
	tmpDir string
}

// NewRunner creates a runner. An empty binary selects DefaultBinary and an
// empty tmpDir selects os.TempDir.
func NewRunner(binary, tmpDir string) *Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Runner{binary: binary, tmpDir: tmpDir}
}

// Run executes script and returns its trimmed stdout.
// Any stderr output is treated as failure.
func (r *Runner) Run(ctx context.Context, script string) (string, error) {
	f, err := os.CreateTemp(r.tmpDir, "xhspost-*.scpt")
	if err != nil {
		return "", fmt.Errorf("create script file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(script); err != nil {
		f.Close()
		return "", fmt.Errorf("write script file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close script file: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	errText := strings.TrimSpace(stderr.String())
	if runErr != nil || errText != "" {
		return "", &ScriptError{Stderr: errText, Err: runErr}
	}
	return strings.TrimSpace(stdout.String()), nil
}
