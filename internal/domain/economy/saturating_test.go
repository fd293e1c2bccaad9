package economy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colonybot/internal/domain/economy"
)

func TestSaturatingSub(t *testing.T) {
	assert.Equal(t, 3.0, economy.SaturatingSub(5, 2))
	assert.Equal(t, 0.0, economy.SaturatingSub(2, 5))
	assert.Equal(t, 0.0, economy.ClampNonNegative(-0.5))
}

func TestSaturatingAddInt(t *testing.T) {
	assert.Equal(t, 7, economy.SaturatingAddInt(3, 4, 10))
	assert.Equal(t, 10, economy.SaturatingAddInt(8, 4, 10))
	assert.Equal(t, 0, economy.SaturatingAddInt(2, -5, 10))
}

func TestCarryPartsRequired(t *testing.T) {
	tests := []struct {
		name       string
		pathLength int
		income     float64
		want       int
	}{
		{"round trip at full income", 40, 10, 16},
		{"rounds up", 10, 1, 1},
		{"no income", 40, 0, 0},
		{"no path", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, economy.CarryPartsRequired(tt.pathLength, tt.income, 50))
		})
	}
}

func TestWorkPartsRequired(t *testing.T) {
	assert.Equal(t, 5, economy.WorkPartsRequired(10, 2))
	assert.Equal(t, 6, economy.WorkPartsRequired(11, 2))
	assert.Equal(t, 0, economy.WorkPartsRequired(0, 2))
}

func TestTuning_Derived(t *testing.T) {
	// Arrange
	tuning := economy.DefaultTuning()

	// Act & Assert
	assert.Equal(t, 5.0, tuning.BaselineIncome())
	assert.Equal(t, 0.5, tuning.ContainerUpkeep())
	assert.Equal(t, 200, tuning.ReservationHorizon(40))
	assert.Equal(t, 2500, tuning.ReservationHorizon(1000))
}
