// Package clock stamps new records with creation times.
//
// Records are listed newest first by createdAt, and the state manager
// prepends new records to its cache instead of reloading. That is only
// correct if every creation time is strictly greater than the previous one,
// so the clock here never repeats or goes backwards within a process, even
// when the wall clock does.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

// Now returns time.Now in UTC.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Monotonic wraps a Clock so that successive calls to Now strictly increase.
//
// Safe for concurrent use.
type Monotonic struct {
	mu   sync.Mutex
	src  Clock
	last time.Time
}

// NewMonotonic creates a monotonic clock reading from src.
// A nil src reads the system clock.
func NewMonotonic(src Clock) *Monotonic {
	if src == nil {
		src = System{}
	}
	return &Monotonic{src: src}
}

// Now returns the source time, or one nanosecond past the previous result if
// the source has not advanced. The monotonic reading is stripped so values
// compare the same after a round trip through storage.
func (c *Monotonic) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.src.Now().Round(0)
	if !now.After(c.last) {
		now = c.last.Add(time.Nanosecond)
	}
	c.last = now
	return now
}

// Last returns the most recent value handed out, or the zero time.
func (c *Monotonic) Last() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
