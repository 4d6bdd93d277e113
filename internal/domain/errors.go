package domain

import "errors"

// Domain errors represent error conditions in the xhspost domain.
// They can be checked with errors.Is.
var (
	// ErrMissingFilePath is returned when no video path was supplied.
	ErrMissingFilePath = errors.New("xhspost: missing file path")

	// ErrFileNotFound is returned when the video file does not exist.
	ErrFileNotFound = errors.New("xhspost: file not found")

	// ErrBrowserNotRunning is returned by port discovery when no browser process exists.
	ErrBrowserNotRunning = errors.New("xhspost: browser not running")

	// ErrBrowserNotInstalled is returned when the browser executable is missing.
	ErrBrowserNotInstalled = errors.New("xhspost: browser not installed")

	// ErrNoFreePort is returned when no debugging port in the scan range is free.
	ErrNoFreePort = errors.New("xhspost: no free debugging port")

	// ErrConnectExhausted is returned when every connection strategy failed.
	ErrConnectExhausted = errors.New("xhspost: all connection strategies failed")

	// ErrNoEndpoint is returned when the handshake carries no control endpoint.
	ErrNoEndpoint = errors.New("xhspost: no webSocketDebuggerUrl in handshake")

	// ErrElementNotFound is returned when a page element could not be located.
	ErrElementNotFound = errors.New("xhspost: element not found")

	// ErrTimeout is returned when a bounded wait expires.
	ErrTimeout = errors.New("xhspost: timeout")

	// ErrPageClosed is returned when a page handle no longer refers to a live tab.
	ErrPageClosed = errors.New("xhspost: page closed")

	// ErrInvalidTransition is returned when the publish state would move backwards.
	ErrInvalidTransition = errors.New("xhspost: invalid state transition")

	// ErrUnexpected wraps panics recovered during a run.
	ErrUnexpected = errors.New("xhspost: unexpected failure")
)
