package helpers

import (
	"context"

	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

// MockPopulation implements PopulationReader and EnergyReader for allocator
// tests
type MockPopulation struct {
	Workers      []spawning.Unit
	ColonyEnergy spawning.ColonyEnergy

	UnitsErr  error
	EnergyErr error
}

// NewMockPopulation creates a population with the given energy figures
func NewMockPopulation(available, capacity int) *MockPopulation {
	return &MockPopulation{
		ColonyEnergy: spawning.ColonyEnergy{Available: available, Capacity: capacity},
	}
}

// WithFoundation adds the home harvester and hauler that unlock spending up
// to full capacity
func (m *MockPopulation) WithFoundation() *MockPopulation {
	m.Add(spawning.Unit{Name: "harvester-0", Role: spawning.RoleSourceHarvester, BodyLength: 6})
	m.Add(spawning.Unit{Name: "hauler-0", Role: spawning.RoleHauler, BodyLength: 6})
	return m
}

// Add adds an existing worker
func (m *MockPopulation) Add(u spawning.Unit) {
	m.Workers = append(m.Workers, u)
}

// Units implements PopulationReader
func (m *MockPopulation) Units(ctx context.Context, colonyName string, filter spawning.UnitFilter) ([]spawning.Unit, error) {
	if m.UnitsErr != nil {
		return nil, m.UnitsErr
	}

	var units []spawning.Unit
	for _, u := range m.Workers {
		if filter.Matches(u) {
			units = append(units, u)
		}
	}
	return units, nil
}

// Energy implements EnergyReader
func (m *MockPopulation) Energy(ctx context.Context, colonyName string) (spawning.ColonyEnergy, error) {
	if m.EnergyErr != nil {
		return spawning.ColonyEnergy{}, m.EnergyErr
	}
	return m.ColonyEnergy, nil
}
