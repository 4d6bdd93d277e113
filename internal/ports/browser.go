package ports

import (
	"context"
	"time"

	"github.com/bft-labs/xhspost/internal/domain"
)

// BrowserDialer opens a control session over a remote-debugging endpoint.
type BrowserDialer interface {
	// Dial connects to an HTTP discovery URL or a ws:// control endpoint.
	Dial(ctx context.Context, endpoint string) (BrowserSession, error)
}

// BrowserSession is a live connection to a running browser.
type BrowserSession interface {
	// Pages returns every open page across all contexts.
	Pages(ctx context.Context) ([]Page, error)

	// NewPage opens a blank tab.
	NewPage(ctx context.Context) (Page, error)

	// Release disconnects from the browser. The browser and its pages stay open.
	Release() error
}

// Page is one browser tab.
//
// Selector arguments are CSS selectors. Methods that address a single
// element use the first match.
type Page interface {
	// URL returns the current location.
	URL(ctx context.Context) (string, error)

	// Navigate loads url and waits for network idle.
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// BringToFront activates the tab.
	BringToFront(ctx context.Context) error

	// Count returns the number of elements matching selector.
	Count(ctx context.Context, selector string) (int, error)

	// Activate clicks the first element matched by f. It reports false when
	// nothing matched.
	Activate(ctx context.Context, f domain.Finder) (bool, error)

	// SetInputFiles attaches a local file to the first file input matching selector.
	SetInputFiles(ctx context.Context, selector, path string) error

	// SetValue assigns an input's value and dispatches an input event.
	SetValue(ctx context.Context, selector, value string) error

	// SetHTML replaces an element's inner HTML, dispatches an input event
	// and optionally focuses it.
	SetHTML(ctx context.Context, selector, html string, focus bool) error

	// Type focuses selector and types text with delay between keystrokes.
	Type(ctx context.Context, selector, text string, delay time.Duration) error

	// Press sends a single key to the focused element.
	Press(ctx context.Context, key string) error

	// Text returns the trimmed text content of the first match, or "" when
	// nothing matches.
	Text(ctx context.Context, selector string) (string, error)

	// WaitVisible waits up to timeout for selector to be visible.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error)

	// WaitForText waits up to timeout for the body text to satisfy cond.
	WaitForText(ctx context.Context, cond domain.TextCondition, timeout time.Duration) (bool, error)
}

// Prompter asks the operator a question and blocks for the answer.
type Prompter interface {
	Ask(prompt string) (string, error)
	Close() error
}

// Presenter renders operator-facing text blocks.
type Presenter interface {
	// Plan shows what the run is about to publish.
	Plan(req domain.UploadRequest)

	// LaunchHelp explains how to start the browser with a debugging port.
	LaunchHelp(execPath string, port int)

	// ManualUploadHelp explains how to pick the file in the system dialog.
	ManualUploadHelp()

	// Notice prints a single line.
	Notice(msg string)
}
