package game

import (
	"context"
)

// Agent makes decisions for one player. MakeDecision is invoked once per
// turn with an immutable snapshot and the precomputed legal actions; the
// returned action is validated and clamped by the engine, so agents may be
// sloppy about amounts but not about responding. While a decision is
// outstanding no other state mutation occurs.
type Agent interface {
	MakeDecision(ctx context.Context, snap Snapshot, legal []LegalAction) (Action, error)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(ctx context.Context, snap Snapshot, legal []LegalAction) (Action, error)

// MakeDecision implements Agent.
func (f AgentFunc) MakeDecision(ctx context.Context, snap Snapshot, legal []LegalAction) (Action, error) {
	return f(ctx, snap, legal)
}

// Observer receives an immutable snapshot after every mutating engine step.
type Observer func(Snapshot)

// EventSink receives game events for animation and logging purposes.
type EventSink func(Event)
