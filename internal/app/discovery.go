package app

import (
	"context"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/bft-labs/xhspost/internal/domain"
	"github.com/bft-labs/xhspost/internal/ports"
)

var debugPortFlag = regexp.MustCompile(`--remote-debugging-port=(\d+)`)

// Discovery finds the remote-debugging port of a running browser.
type Discovery struct {
	inspector   ports.ProcessInspector
	match       string
	defaultPort int
	selfPID     int
	logger      ports.Logger
}

// NewDiscovery creates a discovery for processes whose name contains match.
func NewDiscovery(inspector ports.ProcessInspector, match string, defaultPort int, logger ports.Logger) *Discovery {
	return &Discovery{
		inspector:   inspector,
		match:       match,
		defaultPort: defaultPort,
		selfPID:     os.Getpid(),
		logger:      logger,
	}
}

// Discover returns the browser's debugging port in a single pass:
// the default port when the browser holds it, else the port named on the
// browser's command line, else the default port when any browser process
// exists. It returns ErrBrowserNotRunning otherwise.
func (d *Discovery) Discover(ctx context.Context) (int, error) {
	listing, err := d.inspector.ListeningOn(ctx, d.defaultPort)
	if err != nil {
		d.logger.Debug("listener probe failed", ports.Int("port", d.defaultPort), ports.Err(err))
	} else if ownedBy(listing, d.match) {
		d.logger.Info("browser holds default debugging port", ports.Int("port", d.defaultPort))
		return d.defaultPort, nil
	}

	procs, err := d.inspector.ProcessList(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		d.logger.Warn("process list failed", ports.Err(err))
		return 0, domain.ErrBrowserNotRunning
	}

	browserLines := matchingLines(procs, d.match, d.selfPID)
	for _, line := range browserLines {
		if m := debugPortFlag.FindStringSubmatch(line); m != nil {
			port, err := strconv.Atoi(m[1])
			if err == nil {
				d.logger.Info("found debugging port on command line", ports.Int("port", port))
				return port, nil
			}
		}
	}

	if len(browserLines) > 0 {
		d.logger.Info("browser running without visible debugging flag, trying default port",
			ports.Int("port", d.defaultPort))
		return d.defaultPort, nil
	}

	return 0, domain.ErrBrowserNotRunning
}

// ownedBy reports whether any listing row names the process.
// The match is case-sensitive, like grepping lsof output.
func ownedBy(listing, match string) bool {
	for _, line := range strings.Split(listing, "\n") {
		if strings.Contains(line, match) {
			return true
		}
	}
	return false
}

// matchingLines returns process rows containing match, ignoring case.
// The row of selfPID is skipped: our own arguments may contain match.
func matchingLines(procs, match string, selfPID int) []string {
	needle := strings.ToLower(match)
	var out []string
	for _, line := range strings.Split(procs, "\n") {
		if rowPID(line) == selfPID {
			continue
		}
		if strings.Contains(strings.ToLower(line), needle) {
			out = append(out, line)
		}
	}
	return out
}

// rowPID returns the leading PID column of a ps row, or -1.
func rowPID(line string) int {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return -1
	}
	pid, err := strconv.Atoi(fields[0])
	if err != nil {
		return -1
	}
	return pid
}
