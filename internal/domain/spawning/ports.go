package spawning

import "context"

// Unit is an existing worker as seen by the allocator
type Unit struct {
	Name        string
	Role        string
	OutpostName string
	NodeIndex   int
	BodyLength  int
}

// UnitFilter selects existing workers by role and assignment. Empty fields
// match anything.
type UnitFilter struct {
	Role        string
	OutpostName string
	NodeIndex   *int
}

// Matches reports whether u satisfies the filter
func (f UnitFilter) Matches(u Unit) bool {
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.OutpostName != "" && u.OutpostName != f.OutpostName {
		return false
	}
	if f.NodeIndex != nil && u.NodeIndex != *f.NodeIndex {
		return false
	}
	return true
}

// PopulationReader provides read-only access to a colony's existing workers
type PopulationReader interface {
	Units(ctx context.Context, colonyName string, filter UnitFilter) ([]Unit, error)
}

// ProductionQueue is the append-only queue drained by the host's spawns
type ProductionQueue interface {
	Enqueue(ctx context.Context, request *ProductionRequest) error
}

// ColonyEnergy is the colony's spendable energy this cycle
type ColonyEnergy struct {
	Available int
	Capacity  int
}

// EnergyReader provides the colony-level energy figures
type EnergyReader interface {
	Energy(ctx context.Context, colonyName string) (ColonyEnergy, error)
}
