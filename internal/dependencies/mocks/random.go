package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/seedroom/internal/dependencies/random"
)

// MockRandom returns queued hashes in order. Once the queue is drained it
// falls back to a counter so every call still yields a distinct value.
type MockRandom struct {
	mu       sync.Mutex
	hashes   []string
	fallback int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates an empty MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Hash returns the next queued hash, or a generated "hashNNNN" value
func (r *MockRandom) Hash(length int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.hashes) > 0 {
		h := r.hashes[0]
		r.hashes = r.hashes[1:]
		return h
	}
	r.fallback++
	return fmt.Sprintf("hash%04d", r.fallback)
}

// QueueHash adds values to the result queue
func (r *MockRandom) QueueHash(values ...string) {
	r.mu.Lock()
	r.hashes = append(r.hashes, values...)
	r.mu.Unlock()
}
