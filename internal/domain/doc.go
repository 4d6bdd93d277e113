// Package domain contains the core entities and value objects for xhspost.
//
// This package is the innermost layer. It has no dependencies on the browser,
// the operating system or logging, and holds only the rules that decide what
// gets published.
//
// # Entities
//
//   - [UploadRequest]: the video file, ordered topics and optional extra text
//   - [DebugEndpoint]: a loopback host and remote-debugging port
//   - [PublishState]: the position of a run in the publish state machine
//   - [Finder]: a data-driven element lookup strategy
//   - [Selectors]: the catalog of finders for the creator page
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
