package app

import (
	"fmt"

	"github.com/bft-labs/xhspost/internal/domain"
	"github.com/bft-labs/xhspost/internal/ports"
)

// Transition records one state change.
type Transition struct {
	From   domain.PublishState
	To     domain.PublishState
	Reason string
}

// StateTracker follows a run through the publish state machine.
// States only move forward; skipping ahead is allowed. A tracker belongs to
// a single run and is not safe for concurrent use.
type StateTracker struct {
	state   domain.PublishState
	history []Transition
	logger  ports.Logger
}

// NewStateTracker creates a tracker in StateIdle.
func NewStateTracker(logger ports.Logger) *StateTracker {
	return &StateTracker{
		state:  domain.StateIdle,
		logger: logger,
	}
}

// State returns the current state.
func (t *StateTracker) State() domain.PublishState {
	return t.state
}

// Advance moves to a later state.
// Returns ErrInvalidTransition if next is not after the current state.
func (t *StateTracker) Advance(next domain.PublishState, reason string) error {
	prev := t.state
	if next <= prev {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, prev, next)
	}
	t.state = next
	t.history = append(t.history, Transition{From: prev, To: next, Reason: reason})

	t.logger.Info("state transition",
		ports.String("from", prev.String()),
		ports.String("to", next.String()),
		ports.String("reason", reason),
	)
	return nil
}

// History returns the transitions so far, oldest first.
func (t *StateTracker) History() []Transition {
	return append([]Transition(nil), t.history...)
}
