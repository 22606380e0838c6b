package clock

import "time"

// Source provides the current instant
type Source interface {
	Now() time.Time
}

// System reads the host clock
type System struct{}

// Now returns the current time
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant
type Fixed struct {
	Time time.Time
}

// Now returns the fixed time
func (f Fixed) Now() time.Time {
	return f.Time
}
