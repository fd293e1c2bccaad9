package economy

import (
	"fmt"
	"math"

	"github.com/andrescamacho/colonybot/internal/domain/shared"
)

// ReservationStatus describes who holds an outpost's reservation
type ReservationStatus string

const (
	ReservationNone  ReservationStatus = "UNRESERVED"
	ReservationSelf  ReservationStatus = "SELF"
	ReservationOther ReservationStatus = "OTHER"
)

// Hostile is an enemy worker seen in an outpost
type Hostile struct {
	RemainingLifetime int
	IsInvader         bool
}

// Observation is what the colony can see of an outpost this cycle
type Observation struct {
	Containers       []bool
	Hostiles         []Hostile
	Reservation      ReservationStatus
	HostileCores     int
	DismantleTargets int
}

// Outpost is the aggregate root of a remote resource site exploited by a
// colony. It owns its nodes' credit ledgers and the abandonment state.
type Outpost struct {
	name       string
	colonyName string
	nodes      []*ResourceNode

	// Steps from the colony anchor to the outpost
	pathLength int

	// Outposts whose access route traverses this one
	pathsThrough []string

	abandonCountdown  int
	recursedAbandon   bool
	pathCacheDisabled bool
	dangerUntil       int

	// Cached from the last observation; survive cycles without vision
	enemyReserved    bool
	hostileCores     int
	dismantlerNeed   int
	coreAttackerNeed int

	// Re-derived every cycle
	reserverNeed int
}

// NewOutpost creates an active outpost with nodeCount empty node ledgers
func NewOutpost(name, colonyName string, nodeCount, pathLength int, pathsThrough []string) *Outpost {
	nodes := make([]*ResourceNode, nodeCount)
	for i := range nodes {
		nodes[i] = NewResourceNode(i)
	}

	through := make([]string, len(pathsThrough))
	copy(through, pathsThrough)

	return &Outpost{
		name:         name,
		colonyName:   colonyName,
		nodes:        nodes,
		pathLength:   pathLength,
		pathsThrough: through,
	}
}

// Getters

func (o *Outpost) Name() string               { return o.name }
func (o *Outpost) ColonyName() string         { return o.colonyName }
func (o *Outpost) Nodes() []*ResourceNode     { return o.nodes }
func (o *Outpost) PathLength() int            { return o.pathLength }
func (o *Outpost) PathsThrough() []string     { return o.pathsThrough }
func (o *Outpost) AbandonCountdown() int      { return o.abandonCountdown }
func (o *Outpost) RecursedAbandon() bool      { return o.recursedAbandon }
func (o *Outpost) PathCacheDisabled() bool    { return o.pathCacheDisabled }
func (o *Outpost) DangerUntil() int           { return o.dangerUntil }
func (o *Outpost) EnemyReserved() bool        { return o.enemyReserved }
func (o *Outpost) HostileCores() int          { return o.hostileCores }
func (o *Outpost) DismantlerNeed() int        { return o.dismantlerNeed }
func (o *Outpost) CoreAttackerNeed() int      { return o.coreAttackerNeed }
func (o *Outpost) ReserverNeed() int          { return o.reserverNeed }
func (o *Outpost) IsAbandoned() bool          { return o.abandonCountdown > 0 }

// Node returns the node at index
func (o *Outpost) Node(index int) (*ResourceNode, error) {
	if index < 0 || index >= len(o.nodes) {
		return nil, shared.NewValidationError("node", fmt.Sprintf("outpost %s has no node %d", o.name, index))
	}
	return o.nodes[index], nil
}

// UpdateRoute replaces the path length and the paths-through list
func (o *Outpost) UpdateRoute(pathLength int, pathsThrough []string) {
	o.pathLength = pathLength
	o.pathsThrough = append(o.pathsThrough[:0:0], pathsThrough...)
}

// ResetCycle zeroes every per-cycle counter ahead of the prepare pass
func (o *Outpost) ResetCycle() {
	for _, n := range o.nodes {
		n.resetCycle()
	}
	o.reserverNeed = 0
}

// Abandonment

// Abandon starts or extends the countdown. A shorter countdown never replaces
// a longer one. Returns true when the countdown was raised.
func (o *Outpost) Abandon(ticks int) bool {
	if o.abandonCountdown >= ticks {
		return false
	}
	o.abandonCountdown = ticks
	o.recursedAbandon = false
	return true
}

// TickAbandonment counts the abandonment down by one cycle
func (o *Outpost) TickAbandonment() {
	if o.abandonCountdown > 0 {
		o.abandonCountdown--
	}
}

// MarkDanger records the tick until which the outpost is considered hostile
func (o *Outpost) MarkDanger(until int) {
	o.dangerUntil = until
}

func (o *Outpost) SetPathCacheDisabled(disabled bool) {
	o.pathCacheDisabled = disabled
}

// Prepare pass

// SeedIncome sets each node's income ceiling and the baseline reservation
// need. incomes is indexed by node; missing entries use fallback.
func (o *Outpost) SeedIncome(incomes []float64, fallback float64, reserverBaseline int) {
	for i, n := range o.nodes {
		income := fallback
		if i < len(incomes) {
			income = incomes[i]
		}
		n.maxIncome = ClampNonNegative(income)
	}
	o.reserverNeed = reserverBaseline
}

// ApplyReservation doubles income ceilings when the colony can afford to
// reserve, and drops the reservation need while our own reservation still
// covers the trip out.
func (o *Outpost) ApplyReservation(energyCapacity int, reservation ReservationStatus, ticksRemaining int, t Tuning) {
	if energyCapacity < t.ReservationEnergyThreshold {
		return
	}

	for _, n := range o.nodes {
		n.maxIncome *= 2
	}

	if reservation == ReservationSelf && ticksRemaining >= t.ReservationHorizon(o.pathLength) {
		o.reserverNeed = 0
	}
}

// Observe records what is visible in the outpost. It returns the danger score
// when hostiles are present; the caller abandons the outpost in that case and
// the remaining observation is not recorded.
func (o *Outpost) Observe(obs Observation, t Tuning) (dangerScore int, hostile bool) {
	for i, has := range obs.Containers {
		if i < len(o.nodes) {
			o.nodes[i].hasContainer = has
		}
	}

	if len(obs.Hostiles) > 0 {
		return LowestLifetime(obs.Hostiles), true
	}

	o.enemyReserved = obs.Reservation == ReservationOther
	o.hostileCores = obs.HostileCores
	o.coreAttackerNeed = obs.HostileCores * t.CoreAttackerPerCore

	o.dismantlerNeed = obs.DismantleTargets
	if o.dismantlerNeed > t.DismantlerCap {
		o.dismantlerNeed = t.DismantlerCap
	}
	return 0, false
}

// LowestLifetime is the remaining lifetime of the weakest hostile
func LowestLifetime(hostiles []Hostile) int {
	lowest := 0
	for i, h := range hostiles {
		if i == 0 || h.RemainingLifetime < lowest {
			lowest = h.RemainingLifetime
		}
	}
	return lowest
}

// ApplyDecay charges every node its upkeep: container repair when a container
// exists, otherwise the decay of the uncollected pile.
func (o *Outpost) ApplyDecay(t Tuning) {
	upkeep := t.ContainerUpkeep()
	for _, n := range o.nodes {
		if n.hasContainer {
			n.debit(upkeep)
			continue
		}
		n.debit(pileDecay(n.credit, t.EnergyDecay))
	}
}

func pileDecay(credit, energyDecay float64) float64 {
	if credit <= 0 || energyDecay <= 0 {
		return 0
	}
	return math.Ceil(credit / energyDecay)
}

// IsBlocked reports whether the outpost is contested: enemy reserved with a
// hostile core, or something left to dismantle.
func (o *Outpost) IsBlocked() bool {
	return (o.enemyReserved && o.hostileCores > 0) || o.dismantlerNeed > 0
}

// ApplyBlock stops all investment into a contested outpost
func (o *Outpost) ApplyBlock() {
	if !o.IsBlocked() {
		return
	}
	for _, n := range o.nodes {
		n.maxIncome = 0
	}
	o.reserverNeed = 0
}

// Settle pass

// Settle relaxes idle credit and converts this cycle's realized income into
// harvesting and hauling needs. Abandoned outposts only relax.
func (o *Outpost) Settle(t Tuning) {
	for _, n := range o.nodes {
		n.relax(t.RelaxationFactor)
	}
	if o.IsAbandoned() {
		return
	}

	for _, n := range o.nodes {
		if n.maxIncome <= 0 {
			continue
		}

		n.harvesterNeed = WorkPartsRequired(n.maxIncome, t.HarvestPower)
		if t.MaxBodySize > 0 && n.harvesterNeed > t.MaxBodySize {
			n.harvesterNeed = t.MaxBodySize
		}

		n.haulerNeed += CarryPartsRequired(o.pathLength, n.RealizedIncome(), t.CarryCapacity)
	}
}

// RecordIncome credits delivered resources to a node
func (o *Outpost) RecordIncome(index int, amount float64) error {
	if amount < 0 {
		return shared.NewValidationError("amount", "income cannot be negative")
	}
	n, err := o.Node(index)
	if err != nil {
		return err
	}
	n.addIncome(amount)
	return nil
}

// String provides human-readable representation
func (o *Outpost) String() string {
	return fmt.Sprintf("Outpost[%s, colony=%s, nodes=%d, abandon=%d]",
		o.name, o.colonyName, len(o.nodes), o.abandonCountdown)
}
