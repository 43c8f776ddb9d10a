package clock

import (
	"time"

	"leaguerank/internal/dates"
)

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
	// Today returns the day index of the current civil date.
	Today() int
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the day index of the current civil date
func (c *RealClock) Today() int {
	return dates.DayOf(time.Now())
}
