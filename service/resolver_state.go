package service

import "mymesh/domain"

// ResolverState is the lifecycle state of one resolution.
// Pending is the only non-terminal state; Succeeded and Failed are absorbing.
type ResolverState int

const (
	ResolverPending ResolverState = iota
	ResolverSucceeded
	ResolverFailed
)

func (s ResolverState) String() string {
	switch s {
	case ResolverPending:
		return "pending"
	case ResolverSucceeded:
		return "succeeded"
	case ResolverFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further attempts follow.
func (s ResolverState) Terminal() bool {
	return s == ResolverSucceeded || s == ResolverFailed
}

// ResolverAction is the callback a transition asks the resolver to invoke.
type ResolverAction int

const (
	ActionNone ResolverAction = iota
	ActionDeliverSuccess
	ActionDeliverTransientFailure
	ActionDeliverFatalFailure
)

// LookupOutcome is the result of one lookup attempt.
// Err is nil on success. Fatal marks failures that must stop retrying.
type LookupOutcome struct {
	Instance domain.Instance
	Err      error
	Fatal    bool
}

// Succeeded reports whether the attempt found an instance.
func (o LookupOutcome) Succeeded() bool {
	return o.Err == nil
}

// NextResolverState is the pure transition function of a resolution.
// Terminal states absorb every outcome without action.
func NextResolverState(state ResolverState, outcome LookupOutcome) (ResolverState, ResolverAction) {
	if state.Terminal() {
		return state, ActionNone
	}
	switch {
	case outcome.Succeeded():
		return ResolverSucceeded, ActionDeliverSuccess
	case outcome.Fatal:
		return ResolverFailed, ActionDeliverFatalFailure
	default:
		return ResolverPending, ActionDeliverTransientFailure
	}
}
