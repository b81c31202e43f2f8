package mqtt

import (
	"fmt"
	"sync"

	"github.com/kilianp07/platalloc/core/events"
)

// MockPublisher records published runs. It is used in tests and when MQTT
// is disabled but a publisher is still wired.
type MockPublisher struct {
	mu   sync.Mutex
	Runs []events.RunCompleted
	Fail bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher { return &MockPublisher{} }

// PublishRun stores the run or fails when configured to.
func (m *MockPublisher) PublishRun(ev events.RunCompleted) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Runs = append(m.Runs, ev)
	return nil
}

// Count returns the number of recorded runs.
func (m *MockPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Runs)
}
