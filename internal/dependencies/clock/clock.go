package clock

import (
	"sync"
	"time"
)

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// System implements Clock using the system clock
type System struct{}

// New creates a new system clock
func New() *System {
	return &System{}
}

// Now returns the current time
func (c *System) Now() time.Time {
	return time.Now()
}

// Mock is a controllable Clock for tests. Safe for concurrent use, since
// readers may sit on other goroutines than the test advancing it.
type Mock struct {
	mu          sync.Mutex
	currentTime time.Time
}

// Ensure Mock implements Clock
var _ Clock = (*Mock)(nil)

// NewMock creates a Mock set to the given time
func NewMock(t time.Time) *Mock {
	return &Mock{currentTime: t}
}

// Now returns the mocked current time
func (c *Mock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

// Advance moves the clock forward by the given duration
func (c *Mock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
}
