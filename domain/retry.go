package domain

import "time"

const (
	DefaultInitialDelay = 100 * time.Millisecond
	DefaultPeriod       = 5000 * time.Millisecond
)

// RetryPolicy controls the timing of repeated instance lookups:
// the first attempt runs after InitialDelay and subsequent attempts every Period.
type RetryPolicy struct {
	InitialDelay time.Duration
	Period       time.Duration
}

// DefaultRetryPolicy returns the 100ms / 5000ms policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{InitialDelay: DefaultInitialDelay, Period: DefaultPeriod}
}

// Normalized returns a copy with a negative delay clamped to zero and a non-positive period replaced by DefaultPeriod.
func (p RetryPolicy) Normalized() RetryPolicy {
	if p.InitialDelay < 0 {
		p.InitialDelay = 0
	}
	if p.Period <= 0 {
		p.Period = DefaultPeriod
	}
	return p
}
