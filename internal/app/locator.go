package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/bft-labs/xhspost/internal/ports"
)

// Locator picks the browser tab already showing the target site.
type Locator struct {
	host   string
	logger ports.Logger
}

// NewLocator creates a locator matching URLs that contain host.
func NewLocator(host string, logger ports.Logger) *Locator {
	return &Locator{host: host, logger: logger}
}

// Find returns the first page whose URL contains the host, or nil.
// Pages whose URL cannot be read are skipped.
func (l *Locator) Find(ctx context.Context, session ports.BrowserSession) (ports.Page, error) {
	pages, err := session.Pages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	l.logger.Info("browser tabs", ports.Int("count", len(pages)))

	for i, page := range pages {
		url, err := page.URL(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			l.logger.Warn("cannot read tab url", ports.Int("index", i), ports.Err(err))
			continue
		}
		l.logger.Debug("checking tab", ports.String("url", url))
		if strings.Contains(url, l.host) {
			l.logger.Info("found creator tab", ports.String("url", url))
			return page, nil
		}
	}
	l.logger.Info("no creator tab, a new one will be opened")
	return nil, nil
}
