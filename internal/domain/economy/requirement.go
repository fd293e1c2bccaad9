package economy

// NodeRequirement is the capability a single node asks for this cycle
type NodeRequirement struct {
	Index     int
	Harvester int // work units
	Hauler    int // carry units
}

// OutpostRequirement is the derived, per-cycle demand of one outpost. It has
// no persisted identity.
type OutpostRequirement struct {
	ColonyName   string
	OutpostName  string
	Abandoned    bool
	Blocked      bool
	Nodes        []NodeRequirement
	Reserver     int
	Dismantler   int
	CoreAttacker int
}

// Requirement derives the outpost's demand from the current ledger state.
// Abandoned outposts ask for nothing; blocked outposts keep only their
// clearing needs.
func (o *Outpost) Requirement() OutpostRequirement {
	req := OutpostRequirement{
		ColonyName:  o.colonyName,
		OutpostName: o.name,
		Abandoned:   o.IsAbandoned(),
		Blocked:     o.IsBlocked(),
		Nodes:       make([]NodeRequirement, len(o.nodes)),
	}

	for i, n := range o.nodes {
		req.Nodes[i].Index = n.index
	}

	if req.Abandoned {
		return req
	}

	req.Dismantler = o.dismantlerNeed
	req.CoreAttacker = o.coreAttackerNeed

	if req.Blocked {
		return req
	}

	req.Reserver = o.reserverNeed
	for i, n := range o.nodes {
		req.Nodes[i].Harvester = n.harvesterNeed
		req.Nodes[i].Hauler = n.haulerNeed
	}
	return req
}

// TotalHauler sums the hauling need of every node
func (r OutpostRequirement) TotalHauler() int {
	total := 0
	for _, n := range r.Nodes {
		total += n.Hauler
	}
	return total
}

// IsEmpty reports whether the outpost asks for nothing this cycle
func (r OutpostRequirement) IsEmpty() bool {
	if r.Reserver > 0 || r.Dismantler > 0 || r.CoreAttacker > 0 {
		return false
	}
	for _, n := range r.Nodes {
		if n.Harvester > 0 || n.Hauler > 0 {
			return false
		}
	}
	return true
}
