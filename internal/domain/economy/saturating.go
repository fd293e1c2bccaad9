package economy

import "math"

// ClampNonNegative floors v at zero
func ClampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// SaturatingSub returns v - d, never below zero
func SaturatingSub(v, d float64) float64 {
	return ClampNonNegative(v - d)
}

// SaturatingAddInt returns a + b capped at limit
func SaturatingAddInt(a, b, limit int) int {
	sum := a + b
	if sum > limit {
		return limit
	}
	if sum < 0 {
		return 0
	}
	return sum
}

// CarryPartsRequired returns the carrying units needed to move income per
// tick over a path of the given length, round trip included.
func CarryPartsRequired(pathLength int, income float64, carryCapacity int) int {
	if pathLength <= 0 || income <= 0 || carryCapacity <= 0 {
		return 0
	}
	return int(math.Ceil(float64(pathLength) * 2 * income / float64(carryCapacity)))
}

// WorkPartsRequired returns the harvesting units needed to saturate income
func WorkPartsRequired(income float64, harvestPower int) int {
	if income <= 0 || harvestPower <= 0 {
		return 0
	}
	return int(math.Ceil(income / float64(harvestPower)))
}
