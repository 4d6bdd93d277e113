// Package pwcdp drives an already-running Chromium browser over the
// DevTools protocol using playwright-go.
package pwcdp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/bft-labs/xhspost/internal/ports"
)

// Dialer implements ports.BrowserDialer. The playwright driver is started on
// the first Dial and stopped by Close or by releasing a session.
type Dialer struct {
	connectTimeout time.Duration
	logger         ports.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	pw        *playwright.Playwright
	startErr  error
}

// NewDialer creates a dialer. connectTimeout bounds each connection attempt.
func NewDialer(connectTimeout time.Duration, logger ports.Logger) *Dialer {
	return &Dialer{connectTimeout: connectTimeout, logger: logger}
}

func (d *Dialer) start() (*playwright.Playwright, error) {
	d.startOnce.Do(func() {
		// Only the driver is needed; the browser is the user's own.
		if err := playwright.Install(&playwright.RunOptions{SkipInstallBrowsers: true}); err != nil {
			d.startErr = fmt.Errorf("install playwright driver: %w", err)
			return
		}
		pw, err := playwright.Run(&playwright.RunOptions{SkipInstallBrowsers: true})
		if err != nil {
			d.startErr = fmt.Errorf("start playwright: %w", err)
			return
		}
		d.pw = pw
	})
	return d.pw, d.startErr
}

// Dial connects to endpoint, which may be an http:// discovery URL or a
// ws:// browser endpoint.
func (d *Dialer) Dial(ctx context.Context, endpoint string) (ports.BrowserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pw, err := d.start()
	if err != nil {
		return nil, err
	}

	opts := playwright.BrowserTypeConnectOverCDPOptions{}
	if d.connectTimeout > 0 {
		opts.Timeout = playwright.Float(float64(d.connectTimeout.Milliseconds()))
	}
	browser, err := pw.Chromium.ConnectOverCDP(endpoint, opts)
	if err != nil {
		return nil, fmt.Errorf("connect over cdp %s: %w", endpoint, err)
	}

	d.logger.Debug("cdp connected",
		ports.String("endpoint", endpoint),
		ports.String("version", browser.Version()),
	)
	return &Session{browser: browser, dialer: d}, nil
}

// Close stops the playwright driver, which drops every CDP connection it
// holds. The remote browser keeps running.
func (d *Dialer) Close() error {
	var err error
	d.stopOnce.Do(func() {
		if d.pw != nil {
			err = d.pw.Stop()
		}
	})
	return err
}
