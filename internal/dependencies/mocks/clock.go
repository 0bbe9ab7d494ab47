package mocks

import (
	"time"

	"github.com/mcoot/wargame-go/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing
type MockClock struct {
	current time.Time
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock frozen at the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mock's current time
func (c *MockClock) Now() time.Time {
	return c.current
}

// Advance moves the mock clock forward
func (c *MockClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
