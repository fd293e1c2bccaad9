package shared

// TickSource reports the current simulation cycle
type TickSource interface {
	CurrentTick() int
}

// MockTicks implements TickSource with a controllable tick for testing
type MockTicks struct {
	Tick int
}

// CurrentTick returns the mock's current tick
func (m *MockTicks) CurrentTick() int {
	return m.Tick
}

// Advance moves the mock tick forward by n cycles
func (m *MockTicks) Advance(n int) {
	m.Tick += n
}

// NewMockTicks creates a MockTicks starting at the given tick
func NewMockTicks(start int) *MockTicks {
	return &MockTicks{Tick: start}
}

// CounterTicks is a TickSource driven by the cycle runner
type CounterTicks struct {
	tick int
}

func NewCounterTicks(start int) *CounterTicks {
	return &CounterTicks{tick: start}
}

func (c *CounterTicks) CurrentTick() int { return c.tick }

// Next advances to the following cycle and returns it
func (c *CounterTicks) Next() int {
	c.tick++
	return c.tick
}
