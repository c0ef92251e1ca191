package tween

import (
	"sync"
	"time"
)

// MockTimeSource provides a controllable time source for testing
type MockTimeSource struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeSource creates a new mock time source with the given start time
func NewMockTimeSource(startTime time.Time) *MockTimeSource {
	return &MockTimeSource{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeSource) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time for the mock
func (m *MockTimeSource) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *MockTimeSource) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
