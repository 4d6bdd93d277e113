package osascript

import (
	"context"
	"fmt"
	"strings"

	"github.com/bft-labs/xhspost/internal/ports"
)

// WindowController implements ports.WindowController for a Chromium-family
// macOS application.
type WindowController struct {
	runner ports.HostScriptRunner
	app    string
}

// NewWindowController creates a controller for the named application.
func NewWindowController(runner ports.HostScriptRunner, app string) *WindowController {
	return &WindowController{runner: runner, app: app}
}

// quote renders s as an AppleScript string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// IsRunning asks System Events whether the application process exists.
func (w *WindowController) IsRunning(ctx context.Context) (bool, error) {
	script := fmt.Sprintf(`tell application "System Events"
  set isRunning to exists (processes where name is %s)
  return isRunning
end tell`, quote(w.app))
	return w.runBool(ctx, script)
}

// Activate brings the application to the foreground.
func (w *WindowController) Activate(ctx context.Context) error {
	script := fmt.Sprintf(`tell application %s
  activate
end tell`, quote(w.app))
	_, err := w.runner.Run(ctx, script)
	return err
}

// OpenURL activates the application and opens url.
func (w *WindowController) OpenURL(ctx context.Context, url string) error {
	script := fmt.Sprintf(`tell application %s
  activate
  open location %s
end tell`, quote(w.app), quote(url))
	_, err := w.runner.Run(ctx, script)
	return err
}

// HasTab reports whether any tab's URL contains substr.
func (w *WindowController) HasTab(ctx context.Context, substr string) (bool, error) {
	script := fmt.Sprintf(`tell application %s
  set foundTab to false
  repeat with w in windows
    repeat with t in tabs of w
      if (URL of t) contains %s then
        set foundTab to true
        exit repeat
      end if
    end repeat
    if foundTab then exit repeat
  end repeat
  return foundTab
end tell`, quote(w.app), quote(substr))
	return w.runBool(ctx, script)
}

// ActivateTab raises the window holding the first matching tab and selects it.
// It returns an error when no tab matches.
func (w *WindowController) ActivateTab(ctx context.Context, substr string) error {
	script := fmt.Sprintf(`tell application %s
  set windowIndex to 0
  set tabIndex to 0
  set windowCount to count windows
  repeat with w from 1 to windowCount
    set tabCount to count tabs of window w
    repeat with t from 1 to tabCount
      if (URL of tab t of window w) contains %s then
        set windowIndex to w
        set tabIndex to t
        exit repeat
      end if
    end repeat
    if windowIndex > 0 then exit repeat
  end repeat
  if windowIndex > 0 and tabIndex > 0 then
    set index of window windowIndex to 1
    set active tab index of window windowIndex to tabIndex
    return true
  end if
  return false
end tell`, quote(w.app), quote(substr))
	ok, err := w.runBool(ctx, script)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no tab matching %q", substr)
	}
	return nil
}

// Quit asks the application to quit.
func (w *WindowController) Quit(ctx context.Context) error {
	script := fmt.Sprintf(`tell application %s
  quit
end tell`, quote(w.app))
	_, err := w.runner.Run(ctx, script)
	return err
}

// SetClipboard replaces the clipboard contents with text.
func (w *WindowController) SetClipboard(ctx context.Context, text string) error {
	_, err := w.runner.Run(ctx, "set the clipboard to "+quote(text))
	return err
}

func (w *WindowController) runBool(ctx context.Context, script string) (bool, error) {
	out, err := w.runner.Run(ctx, script)
	if err != nil {
		return false, err
	}
	return out == "true", nil
}
