package search

import (
	"context"

	"github.com/google/uuid"
)

// Scope is the cancellation token of one search session. It is checked
// before starting a provider call, before each retry attempt, and before any
// state mutation after a suspension point; work that completes after its
// scope was cancelled discards its result instead of publishing it.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newScope(parent context.Context) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context exposes the scope as a context for provider calls and waits.
func (s *Scope) Context() context.Context { return s.ctx }

// Cancelled reports whether the scope has been invalidated, either by a
// newer session, an explicit clear, or the caller's own signal.
func (s *Scope) Cancelled() bool { return s.ctx.Err() != nil }

// Err returns the cancellation cause, nil while the scope is live.
func (s *Scope) Err() error { return s.ctx.Err() }

// Cancel invalidates the scope. Safe to call more than once.
func (s *Scope) Cancel() { s.cancel() }

// TripType is the shape of the active session.
type TripType string

const (
	TripOneWay    TripType = "oneway"
	TripRoundTrip TripType = "roundtrip"
	TripMultiCity TripType = "multicity"
)

// session is one user-initiated search: a scope plus the set of legs it
// produced. Exactly one session is active per coordinator; starting a new
// one cancels its predecessor.
type session struct {
	id        uuid.UUID
	scope     *Scope
	tripType  TripType
	returnLeg *LegSearchRequest // round trip only; searched on demand
}
