package proc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Starter implements ports.ProcessStarter.
type Starter struct {
	open string
}

// NewStarter creates a starter that uses the macOS open command.
func NewStarter() *Starter {
	return &Starter{open: "open"}
}

// OpenApp runs open -a app --args args... and waits for open itself to return.
func (s *Starter) OpenApp(ctx context.Context, app string, args []string) error {
	argv := append([]string{"-a", app, "--args"}, args...)
	if out, err := exec.CommandContext(ctx, s.open, argv...).CombinedOutput(); err != nil {
		return fmt.Errorf("open -a %s: %w: %s", app, err, out)
	}
	return nil
}

// StartDetached spawns the executable and returns without waiting.
func (s *Starter) StartDetached(path string, args []string) error {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	// Reap the child in the background so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// Exists reports whether path names an existing file or bundle.
func (s *Starter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
