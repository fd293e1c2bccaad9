package economy

// ResourceNode is one harvestable position of an outpost with its own credit
// ledger. Credit is persisted across cycles; the remaining counters are
// re-derived every cycle.
type ResourceNode struct {
	index        int
	hasContainer bool

	credit       float64
	creditChange float64
	maxIncome    float64

	harvesterNeed int
	haulerNeed    int
}

// NewResourceNode creates a node with an empty ledger
func NewResourceNode(index int) *ResourceNode {
	return &ResourceNode{index: index}
}

// Getters

func (n *ResourceNode) Index() int            { return n.index }
func (n *ResourceNode) HasContainer() bool    { return n.hasContainer }
func (n *ResourceNode) Credit() float64       { return n.credit }
func (n *ResourceNode) CreditChange() float64 { return n.creditChange }
func (n *ResourceNode) MaxIncome() float64    { return n.maxIncome }
func (n *ResourceNode) HarvesterNeed() int    { return n.harvesterNeed }
func (n *ResourceNode) HaulerNeed() int       { return n.haulerNeed }

// resetCycle zeroes the per-cycle counters. Credit survives.
func (n *ResourceNode) resetCycle() {
	n.maxIncome = 0
	n.creditChange = 0
	n.harvesterNeed = 0
	n.haulerNeed = 0
}

// addIncome credits delivered resources to the node
func (n *ResourceNode) addIncome(amount float64) {
	n.credit += amount
	n.creditChange += amount
}

// debit charges the node's upkeep for this cycle. The node caps its own
// income by the same amount.
func (n *ResourceNode) debit(amount float64) {
	n.credit = SaturatingSub(n.credit, amount)
	n.creditChange -= amount
	n.maxIncome = SaturatingSub(n.maxIncome, amount)
}

// relax moves credit toward zero after a cycle without positive change
func (n *ResourceNode) relax(factor float64) {
	if n.creditChange > 0 {
		return
	}
	n.credit = ClampNonNegative(n.credit * factor)
}

// RealizedIncome is this cycle's positive change, capped by the ceiling
func (n *ResourceNode) RealizedIncome() float64 {
	income := ClampNonNegative(n.creditChange)
	if income > n.maxIncome {
		return n.maxIncome
	}
	return income
}
