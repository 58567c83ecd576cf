package domain

import "time"

// Clock provides the current instant. Scheduling logic depends on this
// interface rather than reading time.Now directly, so tests can substitute
// a fixed instant and a single operation never observes two different "now"
// values.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by the system time in UTC.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// NewSystemClock returns a Clock backed by the system time.
func NewSystemClock() Clock {
	return SystemClock{}
}
