package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/colonybot/internal/application/common"
)

// MockMediator is a test double for the Mediator interface. Responses are
// scripted per request type; every Send is logged.
type MockMediator struct {
	mu        sync.Mutex
	responses map[reflect.Type]common.HandlerFunc
	callLog   []common.Request
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		responses: make(map[reflect.Type]common.HandlerFunc),
	}
}

// On scripts the reply for requests of the same type as sample
func (m *MockMediator) On(sample common.Request, fn common.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[reflect.TypeOf(sample)] = fn
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request common.Request) (common.Response, error) {
	m.mu.Lock()
	m.callLog = append(m.callLog, request)
	fn, ok := m.responses[reflect.TypeOf(request)]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
	return fn(ctx, request)
}

// Register implements the Mediator interface
func (m *MockMediator) Register(requestType reflect.Type, handler common.RequestHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[requestType] = handler.Handle
	return nil
}

// RegisterMiddleware implements the Mediator interface; middleware is ignored
func (m *MockMediator) RegisterMiddleware(middleware common.Middleware) {}

// GetCallLog returns the requests sent so far
func (m *MockMediator) GetCallLog() []common.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]common.Request{}, m.callLog...)
}

// CallTypes returns the type names of the requests sent so far
func (m *MockMediator) CallTypes() []string {
	calls := m.GetCallLog()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = reflect.TypeOf(c).Elem().Name()
	}
	return names
}
