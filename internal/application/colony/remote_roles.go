package colony

import (
	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

// Spawn priorities of the remote roles; lower values are served first
const (
	PriorityRemoteHarvester    = 1
	PriorityRemoteHauler       = 2
	PriorityRemoteReserver     = 3
	PriorityRemoteCoreAttacker = 4
	PriorityRemoteDismantler   = 5
)

// Per-unit body minimums. The reserver floor is the cost of one claim part
// and its move part.
const (
	minCostRemoteHarvester    = 200
	minCostRemoteHauler       = 100
	minCostRemoteReserver     = 650
	minCostRemoteDismantler   = 150
	minCostRemoteCoreAttacker = 130
)

// Workers kept per node and per outpost
const (
	maxHarvestersPerNode  = 2
	maxClearersPerOutpost = 1
)

// RemoteRoleOpts maps an outpost's requirement to allocator descriptors.
// An abandoned outpost maps to nothing; a blocked one only to its clearing
// roles because Requirement already zeroed the rest.
func RemoteRoleOpts(req economy.OutpostRequirement, reserverBaseline int, threshold float64) []spawning.SpawnRequestOpts {
	if req.Abandoned {
		return nil
	}

	var opts []spawning.SpawnRequestOpts

	for _, node := range req.Nodes {
		if node.Harvester <= 0 {
			continue
		}
		index := node.Index
		opts = append(opts, spawning.SpawnRequestOpts{
			Role:            spawning.RoleRemoteHarvester,
			ColonyName:      req.ColonyName,
			OutpostName:     req.OutpostName,
			NodeIndex:       &index,
			DefaultParts:    []spawning.BodyPart{spawning.PartMove},
			ExtraParts:      []spawning.BodyPart{spawning.PartWork, spawning.PartMove},
			PartsMultiplier: float64(node.Harvester),
			MaxCreeps:       maxHarvestersPerNode,
			MinCost:         minCostRemoteHarvester,
			Priority:        PriorityRemoteHarvester,
			Threshold:       threshold,
		})
	}

	if hauler := req.TotalHauler(); hauler > 0 {
		opts = append(opts, spawning.SpawnRequestOpts{
			Role:            spawning.RoleRemoteHauler,
			ColonyName:      req.ColonyName,
			OutpostName:     req.OutpostName,
			ExtraParts:      []spawning.BodyPart{spawning.PartCarry, spawning.PartMove},
			PartsMultiplier: float64(hauler),
			MinCost:         minCostRemoteHauler,
			Priority:        PriorityRemoteHauler,
			Threshold:       threshold,
		})
	}

	if req.Reserver > 0 {
		multiplier := 1.0
		if reserverBaseline > 0 {
			multiplier = float64(req.Reserver) / float64(reserverBaseline)
		}
		opts = append(opts, spawning.SpawnRequestOpts{
			Role:            spawning.RoleRemoteReserver,
			ColonyName:      req.ColonyName,
			OutpostName:     req.OutpostName,
			ExtraParts:      []spawning.BodyPart{spawning.PartClaim, spawning.PartMove},
			PartsMultiplier: multiplier,
			MinCreeps:       1,
			MinCost:         minCostRemoteReserver,
			Priority:        PriorityRemoteReserver,
		})
	}

	if req.CoreAttacker > 0 {
		opts = append(opts, spawning.SpawnRequestOpts{
			Role:            spawning.RoleRemoteCoreAttacker,
			ColonyName:      req.ColonyName,
			OutpostName:     req.OutpostName,
			ExtraParts:      []spawning.BodyPart{spawning.PartAttack, spawning.PartMove},
			PartsMultiplier: float64(req.CoreAttacker),
			MaxCreeps:       maxClearersPerOutpost,
			MinCost:         minCostRemoteCoreAttacker,
			Priority:        PriorityRemoteCoreAttacker,
			Threshold:       threshold,
		})
	}

	if req.Dismantler > 0 {
		opts = append(opts, spawning.SpawnRequestOpts{
			Role:            spawning.RoleRemoteDismantler,
			ColonyName:      req.ColonyName,
			OutpostName:     req.OutpostName,
			ExtraParts:      []spawning.BodyPart{spawning.PartWork, spawning.PartMove},
			PartsMultiplier: float64(req.Dismantler),
			MaxCreeps:       maxClearersPerOutpost,
			MinCost:         minCostRemoteDismantler,
			Priority:        PriorityRemoteDismantler,
			Threshold:       threshold,
		})
	}

	return opts
}
