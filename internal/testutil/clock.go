package testutil

import (
	"sync"
	"time"
)

// Clock is a manually advanced clock for day-granularity tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock fixed at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Day returns local midnight offset by the given number of days from the clock's day.
func (c *Clock) Day(offset int) time.Time {
	n := c.Now().Local()
	return time.Date(n.Year(), n.Month(), n.Day()+offset, 0, 0, 0, 0, time.Local)
}
