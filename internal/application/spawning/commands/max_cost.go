package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

// DecideMaxCostPerCreep resolves the cost ceiling of a single body. Until the
// colony has both its own harvesters and haulers it only spends what is
// available now; afterwards it spends up to full capacity. A positive caller
// ceiling wins when it is lower.
func DecideMaxCostPerCreep(energy spawning.ColonyEnergy, hasFoundation bool, callerMax int) int {
	ceiling := energy.Capacity
	if !hasFoundation {
		ceiling = energy.Available
	}

	if callerMax > 0 && callerMax < ceiling {
		ceiling = callerMax
	}
	return ceiling
}

// hasFoundation reports whether the colony has the population that keeps
// its energy income flowing
func hasFoundation(ctx context.Context, population spawning.PopulationReader, colonyName string) (bool, error) {
	for _, role := range []string{spawning.RoleSourceHarvester, spawning.RoleHauler} {
		units, err := population.Units(ctx, colonyName, spawning.UnitFilter{Role: role})
		if err != nil {
			return false, fmt.Errorf("failed to count %s units: %w", role, err)
		}
		if len(units) == 0 {
			return false, nil
		}
	}
	return true, nil
}
