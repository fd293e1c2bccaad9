package economy

// OutpostData is the DTO for persisting an outpost record
type OutpostData struct {
	Name              string
	ColonyName        string
	PathLength        int
	PathsThrough      []string
	AbandonCountdown  int
	RecursedAbandon   bool
	PathCacheDisabled bool
	DangerUntil       int
	EnemyReserved     bool
	HostileCores      int
	DismantlerNeed    int
	CoreAttackerNeed  int
	Reserver          int
	Nodes             []NodeData
}

// NodeData is the DTO for persisting a node ledger
type NodeData struct {
	Index        int
	Credit       float64
	CreditChange float64
	MaxIncome    float64
	HasContainer bool
	Hauler       int
	Harvester    int
}

// ToData converts the entity to a DTO for persistence
func (o *Outpost) ToData() *OutpostData {
	nodes := make([]NodeData, len(o.nodes))
	for i, n := range o.nodes {
		nodes[i] = NodeData{
			Index:        n.index,
			Credit:       n.credit,
			CreditChange: n.creditChange,
			MaxIncome:    n.maxIncome,
			HasContainer: n.hasContainer,
			Hauler:       n.haulerNeed,
			Harvester:    n.harvesterNeed,
		}
	}

	return &OutpostData{
		Name:              o.name,
		ColonyName:        o.colonyName,
		PathLength:        o.pathLength,
		PathsThrough:      append([]string(nil), o.pathsThrough...),
		AbandonCountdown:  o.abandonCountdown,
		RecursedAbandon:   o.recursedAbandon,
		PathCacheDisabled: o.pathCacheDisabled,
		DangerUntil:       o.dangerUntil,
		EnemyReserved:     o.enemyReserved,
		HostileCores:      o.hostileCores,
		DismantlerNeed:    o.dismantlerNeed,
		CoreAttackerNeed:  o.coreAttackerNeed,
		Reserver:          o.reserverNeed,
		Nodes:             nodes,
	}
}

// OutpostFromData reconstructs an outpost from a DTO. Nodes are placed by
// their index; gaps become empty ledgers.
func OutpostFromData(data *OutpostData) *Outpost {
	count := len(data.Nodes)
	for _, nd := range data.Nodes {
		if nd.Index+1 > count {
			count = nd.Index + 1
		}
	}

	o := NewOutpost(data.Name, data.ColonyName, count, data.PathLength, data.PathsThrough)
	o.abandonCountdown = data.AbandonCountdown
	o.recursedAbandon = data.RecursedAbandon
	o.pathCacheDisabled = data.PathCacheDisabled
	o.dangerUntil = data.DangerUntil
	o.enemyReserved = data.EnemyReserved
	o.hostileCores = data.HostileCores
	o.dismantlerNeed = data.DismantlerNeed
	o.coreAttackerNeed = data.CoreAttackerNeed
	o.reserverNeed = data.Reserver

	for _, nd := range data.Nodes {
		if nd.Index < 0 {
			continue
		}
		n := o.nodes[nd.Index]
		n.credit = nd.Credit
		n.creditChange = nd.CreditChange
		n.maxIncome = nd.MaxIncome
		n.hasContainer = nd.HasContainer
		n.haulerNeed = nd.Hauler
		n.harvesterNeed = nd.Harvester
	}
	return o
}
