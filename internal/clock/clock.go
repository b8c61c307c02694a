// Package clock provides time sources for the game loop. The system clock
// backs normal play; the manual clock drives deterministic tests.
package clock

import (
	"sync"
	"time"

	"github.com/bunbaker/bunbakery/internal/domain"
)

// Compile-time interface checks.
var (
	_ domain.Clock = (*System)(nil)
	_ domain.Clock = (*Manual)(nil)
)

// System reads the real monotonic clock.
type System struct{}

// NewSystem creates a system clock.
func NewSystem() *System {
	return &System{}
}

// Now returns the current time with a monotonic reading.
func (c *System) Now() time.Time {
	return time.Now()
}

// Manual is a hand-advanced clock. Safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a manual clock starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the clock's current instant.
func (c *Manual) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps the clock to an absolute instant.
func (c *Manual) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
