package pwcdp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/bft-labs/xhspost/internal/domain"
)

const (
	clickTimeout     = 5 * time.Second
	textPollInterval = time.Second
)

// Page implements ports.Page on a playwright page.
type Page struct {
	page playwright.Page
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func (p *Page) live(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.page.IsClosed() {
		return domain.ErrPageClosed
	}
	return nil
}

// URL returns the page's current URL.
func (p *Page) URL(ctx context.Context) (string, error) {
	if err := p.live(ctx); err != nil {
		return "", err
	}
	return p.page.URL(), nil
}

// Navigate loads url and waits for the network to go idle.
func (p *Page) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := p.live(ctx); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   ms(timeout),
	})
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, translate(err))
	}
	return nil
}

// BringToFront activates the tab.
func (p *Page) BringToFront(ctx context.Context) error {
	if err := p.live(ctx); err != nil {
		return err
	}
	return p.page.BringToFront()
}

// Count returns the number of elements matching selector.
func (p *Page) Count(ctx context.Context, selector string) (int, error) {
	if err := p.live(ctx); err != nil {
		return 0, err
	}
	v, err := p.page.Evaluate(jsCount, selector)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", selector, err)
	}
	return toInt(v), nil
}

// Activate clicks the first element matched by f.
func (p *Page) Activate(ctx context.Context, f domain.Finder) (bool, error) {
	if err := p.live(ctx); err != nil {
		return false, err
	}
	loc := p.page.Locator(f.Selector)
	texts, err := loc.AllTextContents()
	if err != nil {
		return false, fmt.Errorf("activate %s: %w", f.Name, translate(err))
	}
	i := firstMatching(texts, f)
	if i < 0 {
		return false, nil
	}
	_, err = loc.Nth(i).Evaluate(jsClick, nil, playwright.LocatorEvaluateOptions{
		Timeout: ms(clickTimeout),
	})
	if err != nil {
		return false, fmt.Errorf("activate %s: %w", f.Name, translate(err))
	}
	return true, nil
}

// firstMatching returns the index of the first text f accepts, or -1.
func firstMatching(texts []string, f domain.Finder) int {
	for i, text := range texts {
		if f.Matches(text) {
			return i
		}
	}
	return -1
}

// SetInputFiles attaches path to the first file input matching selector.
func (p *Page) SetInputFiles(ctx context.Context, selector, path string) error {
	if err := p.live(ctx); err != nil {
		return err
	}
	if err := p.page.Locator(selector).First().SetInputFiles(path); err != nil {
		return fmt.Errorf("set input files: %w", translate(err))
	}
	return nil
}

// SetValue assigns an input's value and dispatches an input event.
func (p *Page) SetValue(ctx context.Context, selector, value string) error {
	if err := p.live(ctx); err != nil {
		return err
	}
	v, err := p.page.Evaluate(jsSetValue, map[string]interface{}{
		"selector": selector,
		"value":    value,
	})
	if err != nil {
		return fmt.Errorf("set value %s: %w", selector, err)
	}
	if ok, _ := v.(bool); !ok {
		return fmt.Errorf("%w: %s", domain.ErrElementNotFound, selector)
	}
	return nil
}

// SetHTML replaces an element's inner HTML.
func (p *Page) SetHTML(ctx context.Context, selector, html string, focus bool) error {
	if err := p.live(ctx); err != nil {
		return err
	}
	v, err := p.page.Evaluate(jsSetHTML, map[string]interface{}{
		"selector": selector,
		"html":     html,
		"focus":    focus,
	})
	if err != nil {
		return fmt.Errorf("set html %s: %w", selector, err)
	}
	if ok, _ := v.(bool); !ok {
		return fmt.Errorf("%w: %s", domain.ErrElementNotFound, selector)
	}
	return nil
}

// Type types text into the first element matching selector.
func (p *Page) Type(ctx context.Context, selector, text string, delay time.Duration) error {
	if err := p.live(ctx); err != nil {
		return err
	}
	opts := playwright.LocatorTypeOptions{}
	if delay > 0 {
		opts.Delay = ms(delay)
	}
	if err := p.page.Locator(selector).First().Type(text, opts); err != nil {
		return fmt.Errorf("type into %s: %w", selector, translate(err))
	}
	return nil
}

// Press sends key to the focused element.
func (p *Page) Press(ctx context.Context, key string) error {
	if err := p.live(ctx); err != nil {
		return err
	}
	return p.page.Keyboard().Press(key)
}

// Text returns the trimmed text content of the first match.
func (p *Page) Text(ctx context.Context, selector string) (string, error) {
	if err := p.live(ctx); err != nil {
		return "", err
	}
	v, err := p.page.Evaluate(jsText, selector)
	if err != nil {
		return "", fmt.Errorf("text %s: %w", selector, err)
	}
	s, _ := v.(string)
	return s, nil
}

// WaitVisible waits for selector to become visible. A timeout is reported
// as (false, nil).
func (p *Page) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	if err := p.live(ctx); err != nil {
		return false, err
	}
	_, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(timeout),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return false, nil
		}
		return false, fmt.Errorf("wait for %s: %w", selector, err)
	}
	return true, nil
}

// WaitForText polls the body text until cond holds. A timeout is reported
// as (false, nil).
func (p *Page) WaitForText(ctx context.Context, cond domain.TextCondition, timeout time.Duration) (bool, error) {
	if err := p.live(ctx); err != nil {
		return false, err
	}
	read := func() (string, error) {
		if err := p.live(ctx); err != nil {
			return "", err
		}
		v, err := p.page.Evaluate(jsBodyText)
		if err != nil {
			return "", fmt.Errorf("wait for text: %w", err)
		}
		s, _ := v.(string)
		return s, nil
	}
	return pollText(ctx, read, cond, timeout, textPollInterval)
}

// pollText calls read every interval until its result satisfies cond or
// timeout elapses.
func pollText(ctx context.Context, read func() (string, error), cond domain.TextCondition, timeout, interval time.Duration) (bool, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		text, err := read()
		if err != nil {
			return false, err
		}
		if cond.Satisfied(text) {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline.C:
			return false, nil
		case <-ticker.C:
		}
	}
}

func translate(err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}

// toInt normalises numbers returned from page.Evaluate.
func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
