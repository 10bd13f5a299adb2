package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/connectfour/internal/dependencies/ids"
)

// MockIDs is a mock implementation of IDs for testing
type MockIDs struct {
	mu sync.Mutex

	// Results is a queue of IDs to return from NewID
	Results []string
	index   int
	issued  int
}

// Ensure MockIDs implements IDs
var _ ids.IDs = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// NewID returns the next queued ID, or a numbered fallback once the queue
// is exhausted
func (m *MockIDs) NewID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued++
	if m.index >= len(m.Results) {
		return fmt.Sprintf("id-%d", m.issued)
	}
	result := m.Results[m.index]
	m.index++
	return result
}

// Queue adds values to the result queue
func (m *MockIDs) Queue(values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results = append(m.Results, values...)
}

// Reset clears all queued results
func (m *MockIDs) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results = nil
	m.index = 0
	m.issued = 0
}
