package pwcdp

import (
	"context"
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/bft-labs/xhspost/internal/ports"
)

// Session implements ports.BrowserSession over a CDP-attached browser.
type Session struct {
	browser playwright.Browser
	dialer  *Dialer

	releaseOnce sync.Once
	releaseErr  error
}

// Pages returns every page across the browser's existing contexts.
func (s *Session) Pages(ctx context.Context) ([]ports.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var pages []ports.Page
	for _, bc := range s.browser.Contexts() {
		for _, p := range bc.Pages() {
			pages = append(pages, &Page{page: p})
		}
	}
	return pages, nil
}

// NewPage opens a tab in the default context so it survives disconnecting.
func (s *Session) NewPage(ctx context.Context) (ports.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	contexts := s.browser.Contexts()
	if len(contexts) == 0 {
		return nil, fmt.Errorf("browser has no default context")
	}
	p, err := contexts[0].NewPage()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &Page{page: p}, nil
}

// Release disconnects without closing the browser or any page.
// Browser.Close is never called here.
func (s *Session) Release() error {
	s.releaseOnce.Do(func() {
		s.releaseErr = s.dialer.Close()
	})
	return s.releaseErr
}
