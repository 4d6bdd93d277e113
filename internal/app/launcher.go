package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bft-labs/xhspost/internal/domain"
	"github.com/bft-labs/xhspost/internal/ports"
)

// LaunchOptions describes the browser to start.
type LaunchOptions struct {
	App         string
	ExecPath    string
	Match       string
	DefaultPort int
	ScanStart   int
	ScanEnd     int
	Settle      time.Duration
}

// Launcher starts the browser with a remote-debugging port.
type Launcher struct {
	starter   ports.ProcessStarter
	inspector ports.ProcessInspector
	opts      LaunchOptions
	logger    ports.Logger
}

// NewLauncher creates a launcher.
func NewLauncher(starter ports.ProcessStarter, inspector ports.ProcessInspector, opts LaunchOptions, logger ports.Logger) *Launcher {
	return &Launcher{
		starter:   starter,
		inspector: inspector,
		opts:      opts,
		logger:    logger,
	}
}

func portFlag(port int) []string {
	return []string{fmt.Sprintf("--remote-debugging-port=%d", port)}
}

// Launch starts the browser and returns the debugging port it was given.
// A default port already held by the browser is reused without launching.
func (l *Launcher) Launch(ctx context.Context) (int, error) {
	if !l.starter.Exists(l.opts.ExecPath) {
		return 0, fmt.Errorf("%w: %s", domain.ErrBrowserNotInstalled, l.opts.ExecPath)
	}

	listing := l.listing(ctx, l.opts.DefaultPort)
	if listing == "" {
		l.logger.Info("launching browser on default port", ports.Int("port", l.opts.DefaultPort))
		if err := l.starter.OpenApp(ctx, l.opts.App, portFlag(l.opts.DefaultPort)); err != nil {
			l.logger.Warn("open -a failed, starting executable directly", ports.Err(err))
			if err := l.starter.StartDetached(l.opts.ExecPath, portFlag(l.opts.DefaultPort)); err != nil {
				l.logger.Error("start browser failed", ports.Err(err))
			}
		}
		return l.opts.DefaultPort, sleep(ctx, l.opts.Settle)
	}

	if strings.Contains(listing, l.opts.Match) {
		l.logger.Info("default port already held by browser", ports.Int("port", l.opts.DefaultPort))
		return l.opts.DefaultPort, nil
	}

	l.logger.Info("default port busy, scanning", ports.Int("from", l.opts.ScanStart), ports.Int("to", l.opts.ScanEnd))
	for port := l.opts.ScanStart; port <= l.opts.ScanEnd; port++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if l.listing(ctx, port) != "" {
			continue
		}
		l.logger.Info("launching browser", ports.Int("port", port))
		if err := l.starter.StartDetached(l.opts.ExecPath, portFlag(port)); err != nil {
			l.logger.Error("start browser failed", ports.Err(err))
		}
		return port, sleep(ctx, l.opts.Settle)
	}

	return 0, domain.ErrNoFreePort
}

// listing returns the socket listing for port. Probe failures count as free.
func (l *Launcher) listing(ctx context.Context, port int) string {
	out, err := l.inspector.ListeningOn(ctx, port)
	if err != nil {
		l.logger.Debug("port probe failed", ports.Int("port", port), ports.Err(err))
		return ""
	}
	return strings.TrimSpace(out)
}
