// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [HostScriptRunner]: Runs host automation scripts (AppleScript)
//   - [WindowController]: Browser window, tab and clipboard control
//   - [ProcessInspector]: Queries listening sockets and the process table
//   - [ProcessStarter]: Starts the browser application
//   - [BrowserDialer]: Opens a remote-debugging session
//   - [BrowserSession]: A connected browser; owns pages
//   - [Page]: One browser tab and the DOM operations the publisher needs
//   - [Prompter]: Blocking operator prompts
//   - [Presenter]: Operator-facing instructions and notices
//   - [RunRecorder]: Persists the last run record
//   - [Logger]: Structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement these interfaces
// with concrete implementations (osascript, playwright, readline, JSON files, zerolog).
//
// This separation enables:
//   - Testing application logic with mock implementations
//   - Swapping infrastructure without changing business logic
//   - Clear boundaries and dependency direction
package ports
