package shared

import "math/rand/v2"

// RandomSource supplies the jitter used for abandonment durations and
// amortized checks
type RandomSource interface {
	// RangeInt returns an integer in [min, max]
	RangeInt(min, max int) int

	// OneIn reports true with probability 1/n
	OneIn(n int) bool
}

// RealRandom implements RandomSource using math/rand/v2
type RealRandom struct{}

func NewRealRandom() RandomSource {
	return &RealRandom{}
}

func (r *RealRandom) RangeInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.IntN(max-min+1)
}

func (r *RealRandom) OneIn(n int) bool {
	if n <= 1 {
		return true
	}
	return rand.IntN(n) == 0
}

// MockRandom returns fixed answers so tests are deterministic
type MockRandom struct {
	// Offset is added to min in RangeInt, clamped to max
	Offset int
	// Hit is returned by OneIn
	Hit bool
}

func (m *MockRandom) RangeInt(min, max int) int {
	v := min + m.Offset
	if v > max {
		return max
	}
	return v
}

func (m *MockRandom) OneIn(n int) bool {
	return m.Hit
}
