package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colonybot/internal/domain/economy"
)

type outpostLedgerContext struct {
	tuning  economy.Tuning
	ledger  *economy.Ledger
	outpost *economy.Outpost
	raised  bool
}

func (lc *outpostLedgerContext) reset() {
	lc.tuning = economy.DefaultTuning()
	lc.ledger = nil
	lc.outpost = nil
	lc.raised = false
}

// Given steps

func (lc *outpostLedgerContext) anOutpostOfColonyWithNodesAtPathLength(name, colony string, nodes, pathLength int) error {
	lc.outpost = economy.NewOutpost(name, colony, nodes, pathLength, nil)
	lc.ledger = economy.NewLedger(colony)
	lc.ledger.Add(lc.outpost)
	return nil
}

func (lc *outpostLedgerContext) nodeHoldsCreditFromAnEarlierCycle(index int, credit float64) error {
	if err := lc.outpost.RecordIncome(index, credit); err != nil {
		return err
	}
	lc.outpost.ResetCycle()
	return nil
}

func (lc *outpostLedgerContext) nodeHasAContainer(index int) error {
	containers := make([]bool, len(lc.outpost.Nodes()))
	if index >= len(containers) {
		return fmt.Errorf("outpost has no node %d", index)
	}
	containers[index] = true
	lc.outpost.Observe(economy.Observation{Containers: containers}, lc.tuning)
	return nil
}

func (lc *outpostLedgerContext) nodeHasAnIncomeCeilingOf(index int, income float64) error {
	incomes := make([]float64, len(lc.outpost.Nodes()))
	if index >= len(incomes) {
		return fmt.Errorf("outpost has no node %d", index)
	}
	incomes[index] = income
	lc.outpost.SeedIncome(incomes, 0, 0)
	return nil
}

func (lc *outpostLedgerContext) nodeReceivesIncome(index int, amount float64) error {
	return lc.outpost.RecordIncome(index, amount)
}

func (lc *outpostLedgerContext) theOutpostIsReservedByAnEnemyWithHostileCores(cores int) error {
	lc.outpost.Observe(economy.Observation{
		Reservation:  economy.ReservationOther,
		HostileCores: cores,
	}, lc.tuning)
	return nil
}

func (lc *outpostLedgerContext) theLedgerAlsoHoldsTheseOutposts(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		name := getCellValueFromTable(table, row, "name")
		through := splitList(getCellValueFromTable(table, row, "paths_through"))
		lc.ledger.Add(economy.NewOutpost(name, lc.ledger.ColonyName(), 1, 10, through))
	}
	return nil
}

func (lc *outpostLedgerContext) theRouteOfTraversesTheOutpost(dependent string) error {
	paths := append(lc.outpost.PathsThrough(), dependent)
	lc.outpost.UpdateRoute(lc.outpost.PathLength(), paths)
	return nil
}

// When steps

func (lc *outpostLedgerContext) theDecayIsApplied() error {
	lc.outpost.ApplyDecay(lc.tuning)
	return nil
}

func (lc *outpostLedgerContext) theOutpostIsSettled() error {
	lc.outpost.Settle(lc.tuning)
	return nil
}

func (lc *outpostLedgerContext) theOutpostIsAbandonedForTicks(ticks int) error {
	lc.raised = lc.outpost.Abandon(ticks)
	return nil
}

func (lc *outpostLedgerContext) theBlockIsApplied() error {
	lc.outpost.ApplyBlock()
	return nil
}

func (lc *outpostLedgerContext) theAbandonmentIsPropagated() error {
	lc.ledger.PropagateAbandonment(lc.outpost.Name())
	return nil
}

// Then steps

func (lc *outpostLedgerContext) nodeShouldHaveCredit(index int, expected float64) error {
	node, err := lc.outpost.Node(index)
	if err != nil {
		return err
	}
	if math.Abs(node.Credit()-expected) > 1e-9 {
		return fmt.Errorf("expected node %d credit %g, got %g", index, expected, node.Credit())
	}
	return nil
}

func (lc *outpostLedgerContext) nodeShouldHaveAnIncomeCeilingOf(index int, expected float64) error {
	node, err := lc.outpost.Node(index)
	if err != nil {
		return err
	}
	if node.MaxIncome() != expected {
		return fmt.Errorf("expected node %d income ceiling %g, got %g", index, expected, node.MaxIncome())
	}
	return nil
}

func (lc *outpostLedgerContext) nodeShouldNeedHarvesterParts(index, expected int) error {
	node, err := lc.outpost.Node(index)
	if err != nil {
		return err
	}
	if node.HarvesterNeed() != expected {
		return fmt.Errorf("expected node %d to need %d harvester parts, got %d", index, expected, node.HarvesterNeed())
	}
	return nil
}

func (lc *outpostLedgerContext) nodeShouldNeedHaulerParts(index, expected int) error {
	node, err := lc.outpost.Node(index)
	if err != nil {
		return err
	}
	if node.HaulerNeed() != expected {
		return fmt.Errorf("expected node %d to need %d hauler parts, got %d", index, expected, node.HaulerNeed())
	}
	return nil
}

func (lc *outpostLedgerContext) theAbandonmentCountdownShouldBe(expected int) error {
	if lc.outpost.AbandonCountdown() != expected {
		return fmt.Errorf("expected countdown %d, got %d", expected, lc.outpost.AbandonCountdown())
	}
	return nil
}

func (lc *outpostLedgerContext) theOutpostShouldBeBlocked() error {
	if !lc.outpost.IsBlocked() {
		return fmt.Errorf("expected outpost %s to be blocked", lc.outpost.Name())
	}
	return nil
}

func (lc *outpostLedgerContext) theOutpostShouldNeedCoreAttackerParts(expected int) error {
	if lc.outpost.CoreAttackerNeed() != expected {
		return fmt.Errorf("expected %d core attacker parts, got %d", expected, lc.outpost.CoreAttackerNeed())
	}
	return nil
}

func (lc *outpostLedgerContext) theseOutpostsShouldBeAbandoned(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		name := getCellValueFromTable(table, row, "name")
		expected, err := strconv.Atoi(getCellValueFromTable(table, row, "countdown"))
		if err != nil {
			return fmt.Errorf("invalid countdown for %s: %w", name, err)
		}

		outpost, ok := lc.ledger.Outpost(name)
		if !ok {
			return fmt.Errorf("outpost %s not in ledger", name)
		}
		if outpost.AbandonCountdown() != expected {
			return fmt.Errorf("expected %s countdown %d, got %d", name, expected, outpost.AbandonCountdown())
		}
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// InitializeOutpostLedgerScenario registers the ledger arithmetic steps
func InitializeOutpostLedgerScenario(ctx *godog.ScenarioContext) {
	lc := &outpostLedgerContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		lc.reset()
		return ctx, nil
	})

	ctx.Step(`^an outpost "([^"]*)" of colony "([^"]*)" with (\d+) nodes? at path length (\d+)$`, lc.anOutpostOfColonyWithNodesAtPathLength)
	ctx.Step(`^node (\d+) holds (\d+(?:\.\d+)?) credit from an earlier cycle$`, lc.nodeHoldsCreditFromAnEarlierCycle)
	ctx.Step(`^node (\d+) has a container$`, lc.nodeHasAContainer)
	ctx.Step(`^node (\d+) has an income ceiling of (\d+(?:\.\d+)?)$`, lc.nodeHasAnIncomeCeilingOf)
	ctx.Step(`^node (\d+) receives (\d+(?:\.\d+)?) income$`, lc.nodeReceivesIncome)
	ctx.Step(`^the outpost is reserved by an enemy with (\d+) hostile cores?$`, lc.theOutpostIsReservedByAnEnemyWithHostileCores)
	ctx.Step(`^the ledger also holds these outposts:$`, lc.theLedgerAlsoHoldsTheseOutposts)
	ctx.Step(`^the route of "([^"]*)" traverses the outpost$`, lc.theRouteOfTraversesTheOutpost)

	ctx.Step(`^the decay is applied$`, lc.theDecayIsApplied)
	ctx.Step(`^the outpost is settled$`, lc.theOutpostIsSettled)
	ctx.Step(`^the outpost is abandoned for (\d+) ticks$`, lc.theOutpostIsAbandonedForTicks)
	ctx.Step(`^the block is applied$`, lc.theBlockIsApplied)
	ctx.Step(`^the abandonment is propagated$`, lc.theAbandonmentIsPropagated)

	ctx.Step(`^node (\d+) should have (\d+(?:\.\d+)?) credit$`, lc.nodeShouldHaveCredit)
	ctx.Step(`^node (\d+) should have an income ceiling of (\d+(?:\.\d+)?)$`, lc.nodeShouldHaveAnIncomeCeilingOf)
	ctx.Step(`^node (\d+) should need (\d+) harvester parts$`, lc.nodeShouldNeedHarvesterParts)
	ctx.Step(`^node (\d+) should need (\d+) hauler parts$`, lc.nodeShouldNeedHaulerParts)
	ctx.Step(`^the abandonment countdown should be (\d+)$`, lc.theAbandonmentCountdownShouldBe)
	ctx.Step(`^the outpost should be blocked$`, lc.theOutpostShouldBeBlocked)
	ctx.Step(`^the outpost should need (\d+) core attacker parts$`, lc.theOutpostShouldNeedCoreAttackerParts)
	ctx.Step(`^these outposts should be abandoned:$`, lc.theseOutpostsShouldBeAbandoned)
}
