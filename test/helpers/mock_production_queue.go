package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

// MockProductionQueue records enqueued requests in memory
type MockProductionQueue struct {
	mu       sync.Mutex
	requests []*spawning.ProductionRequest

	// EnqueueErr is returned when set
	EnqueueErr error
}

// NewMockProductionQueue creates an empty queue
func NewMockProductionQueue() *MockProductionQueue {
	return &MockProductionQueue{}
}

// Enqueue implements ProductionQueue
func (m *MockProductionQueue) Enqueue(ctx context.Context, request *spawning.ProductionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.EnqueueErr != nil {
		return m.EnqueueErr
	}
	m.requests = append(m.requests, request)
	return nil
}

// Requests returns the enqueued requests in order
func (m *MockProductionQueue) Requests() []*spawning.ProductionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*spawning.ProductionRequest(nil), m.requests...)
}
