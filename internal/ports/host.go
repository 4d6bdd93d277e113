package ports

import "context"

// HostScriptRunner executes a host automation script and returns its
// trimmed standard output.
type HostScriptRunner interface {
	Run(ctx context.Context, script string) (string, error)
}

// WindowController drives the browser application at the window level.
// Substring arguments are matched against tab URLs.
type WindowController interface {
	// IsRunning reports whether the browser application is running.
	IsRunning(ctx context.Context) (bool, error)

	// Activate brings the browser to the foreground.
	Activate(ctx context.Context) error

	// OpenURL opens url in the browser.
	OpenURL(ctx context.Context, url string) error

	// HasTab reports whether any tab's URL contains substr.
	HasTab(ctx context.Context, substr string) (bool, error)

	// ActivateTab focuses the first tab whose URL contains substr.
	ActivateTab(ctx context.Context, substr string) error

	// Quit asks the browser application to quit.
	Quit(ctx context.Context) error

	// SetClipboard replaces the system clipboard with text.
	SetClipboard(ctx context.Context, text string) error
}

// ProcessInspector queries the operating system's process and socket tables.
type ProcessInspector interface {
	// ListeningOn returns a textual listing of the processes holding port.
	// An empty string means the port is free.
	ListeningOn(ctx context.Context, port int) (string, error)

	// ProcessList returns the full process table including arguments.
	ProcessList(ctx context.Context) (string, error)
}

// ProcessStarter starts the browser. Both methods return once the process
// has been spawned; they never wait for it to exit.
type ProcessStarter interface {
	// OpenApp launches a named application through the OS launcher.
	OpenApp(ctx context.Context, app string, args []string) error

	// StartDetached starts an executable directly.
	StartDetached(path string, args []string) error

	// Exists reports whether the executable at path is present.
	Exists(path string) bool
}
