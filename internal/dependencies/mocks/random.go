package mocks

import (
	"github.com/mcoot/wargame-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing. Intn drains
// a queue of forced results; with an empty queue it returns 0, so an
// unqueued shuffle is still deterministic.
type MockRandom struct {
	IntnResults []int
	intnIndex   int

	IDResults []string
	idIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// ID returns the next queued identifier, or a fixed placeholder.
func (r *MockRandom) ID(length int) string {
	if r.idIndex >= len(r.IDResults) {
		return "GAMEID"
	}
	result := r.IDResults[r.idIndex]
	r.idIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueID adds values to the ID result queue
func (r *MockRandom) QueueID(values ...string) {
	r.IDResults = append(r.IDResults, values...)
}
