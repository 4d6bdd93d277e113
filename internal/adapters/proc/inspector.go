// Package proc implements process inspection and launching with host tools.
package proc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// Inspector implements ports.ProcessInspector with lsof and ps.
type Inspector struct {
	lsof string
	ps   string
}

// NewInspector creates an inspector using the binaries on PATH.
func NewInspector() *Inspector {
	return &Inspector{lsof: "lsof", ps: "ps"}
}

// ListeningOn returns lsof's listing for port. lsof exits 1 when nothing
// holds the port, which is reported as an empty listing.
func (i *Inspector) ListeningOn(ctx context.Context, port int) (string, error) {
	out, err := exec.CommandContext(ctx, i.lsof, "-i", ":"+strconv.Itoa(port)).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && len(exitErr.Stderr) == 0 {
			return "", nil
		}
		return "", fmt.Errorf("lsof port %d: %w", port, err)
	}
	return string(out), nil
}

// ProcessList returns the output of ps -ax.
func (i *Inspector) ProcessList(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, i.ps, "-ax").Output()
	if err != nil {
		return "", fmt.Errorf("ps: %w", err)
	}
	return string(out), nil
}
