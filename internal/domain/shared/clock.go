package shared

import "time"

// Clock is an abstraction over the current time, allowing it to be fixed in tests
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time
type RealClock struct{}

// Now returns the current system time in UTC
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// FixedClock always returns the same instant
type FixedClock struct {
	CurrentTime time.Time
}

func (f *FixedClock) Now() time.Time {
	return f.CurrentTime
}

// NewFixedClock creates a FixedClock at t
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{CurrentTime: t}
}
