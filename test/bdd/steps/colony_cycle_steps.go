package steps

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colonybot/internal/adapters/persistence"
	"github.com/andrescamacho/colonybot/internal/adapters/world"
	"github.com/andrescamacho/colonybot/internal/application/colony"
	"github.com/andrescamacho/colonybot/internal/application/common"
	economyCommands "github.com/andrescamacho/colonybot/internal/application/economy/commands"
	"github.com/andrescamacho/colonybot/internal/application/mediator"
	spawningCommands "github.com/andrescamacho/colonybot/internal/application/spawning/commands"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
	"github.com/andrescamacho/colonybot/internal/domain/spawning"
	"github.com/andrescamacho/colonybot/test/helpers"
)

type colonyCycleContext struct {
	colonyName string
	tuning     economy.Tuning
	world      *helpers.MockWorld
	ledgerRepo *persistence.GormLedgerRepository
	queue      *persistence.GormProductionQueue
	mediator   common.Mediator
	logger     *helpers.CaptureLogger

	// registered routes, so a later registration can extend them
	routes map[string]*economyCommands.RegisterOutpostCommand

	response *colony.RunCycleResponse
	err      error
}

func (cc *colonyCycleContext) reset() {
	cc.colonyName = ""
	cc.tuning = economy.DefaultTuning()
	cc.world = nil
	cc.ledgerRepo = persistence.NewGormLedgerRepository(helpers.SharedTestDB)
	cc.queue = persistence.NewGormProductionQueue(helpers.SharedTestDB)
	cc.mediator = nil
	cc.logger = helpers.NewCaptureLogger()
	cc.routes = make(map[string]*economyCommands.RegisterOutpostCommand)
	cc.response = nil
	cc.err = nil
}

func (cc *colonyCycleContext) loggedContext() context.Context {
	return common.WithLogger(context.Background(), cc.logger)
}

// Given steps

func (cc *colonyCycleContext) colonyWithOfEnergy(name string, available, capacity int) error {
	cc.colonyName = name
	cc.world = helpers.NewMockWorld(name, available, capacity)

	med := common.NewMediator()
	if err := mediator.RegisterHandler[*economyCommands.RegisterOutpostCommand](med,
		economyCommands.NewRegisterOutpostHandler(cc.ledgerRepo)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*economyCommands.PrepareOutpostsCommand](med,
		economyCommands.NewPrepareOutpostsHandler(cc.ledgerRepo, cc.world, shared.NewMockTicks(1000), &shared.MockRandom{}, cc.tuning)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*economyCommands.RecordNodeIncomeCommand](med,
		economyCommands.NewRecordNodeIncomeHandler(cc.ledgerRepo)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*economyCommands.SettleOutpostsCommand](med,
		economyCommands.NewSettleOutpostsHandler(cc.ledgerRepo, cc.tuning)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*spawningCommands.ConstructSpawnRequestsCommand](med,
		spawningCommands.NewConstructSpawnRequestsHandler(cc.world, cc.world, cc.queue, cc.tuning.MaxBodySize)); err != nil {
		return err
	}
	cc.mediator = med
	return nil
}

func (cc *colonyCycleContext) theColonyKeepsItsOwnHarvesterAndHauler() error {
	cc.world.AddUnit(world.UnitSnapshot{Name: "harvester-0", Colony: cc.colonyName, Role: spawning.RoleSourceHarvester, BodyLength: 6})
	cc.world.AddUnit(world.UnitSnapshot{Name: "hauler-0", Colony: cc.colonyName, Role: spawning.RoleHauler, BodyLength: 6})
	return nil
}

func (cc *colonyCycleContext) register(cmd *economyCommands.RegisterOutpostCommand) error {
	if _, err := cc.mediator.Send(cc.loggedContext(), cmd); err != nil {
		return fmt.Errorf("failed to register %s: %w", cmd.OutpostName, err)
	}
	cc.routes[cmd.OutpostName] = cmd
	return nil
}

func (cc *colonyCycleContext) theseRemoteOutposts(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		name := getCellValueFromTable(table, row, "name")
		nodes, err := strconv.Atoi(getCellValueFromTable(table, row, "nodes"))
		if err != nil {
			return fmt.Errorf("invalid nodes for %s: %w", name, err)
		}
		pathLength, err := strconv.Atoi(getCellValueFromTable(table, row, "path_length"))
		if err != nil {
			return fmt.Errorf("invalid path_length for %s: %w", name, err)
		}

		cc.world.PutRoom(helpers.RemoteRoom(name, cc.colonyName, nodes, pathLength))
		if err := cc.register(&economyCommands.RegisterOutpostCommand{
			ColonyName:   cc.colonyName,
			OutpostName:  name,
			NodeCount:    nodes,
			PathLength:   pathLength,
			PathsThrough: splitList(getCellValueFromTable(table, row, "paths_through")),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (cc *colonyCycleContext) outpostOfNodesAtPathLengthRoutesThrough(name string, nodes, pathLength int, via string) error {
	cc.world.PutRoom(helpers.RemoteRoom(name, cc.colonyName, nodes, pathLength))
	if err := cc.register(&economyCommands.RegisterOutpostCommand{
		ColonyName:  cc.colonyName,
		OutpostName: name,
		NodeCount:   nodes,
		PathLength:  pathLength,
	}); err != nil {
		return err
	}

	parent, ok := cc.routes[via]
	if !ok {
		return fmt.Errorf("outpost %s was never registered", via)
	}
	extended := *parent
	extended.PathsThrough = append(append([]string{}, parent.PathsThrough...), name)
	return cc.register(&extended)
}

func (cc *colonyCycleContext) hostilesWithTicksToLiveAreIn(lifetime int, roomName string) error {
	room, ok := cc.world.Room(roomName)
	if !ok {
		return fmt.Errorf("room %s not in world", roomName)
	}
	room.Hostiles = []world.HostileSnapshot{{Lifetime: lifetime, Invader: true}}
	return nil
}

func (cc *colonyCycleContext) roomIsNowClassified(roomName, roomType string) error {
	room, ok := cc.world.Room(roomName)
	if !ok {
		return fmt.Errorf("room %s not in world", roomName)
	}
	room.Type = roomType
	return nil
}

// When steps

func (cc *colonyCycleContext) runCycle(income []colony.NodeIncome) error {
	handler := colony.NewRunCycleHandler(cc.mediator, shared.NewMockTicks(1000), cc.tuning.ReserverBaseline, spawning.DefaultThreshold)
	resp, err := handler.Handle(cc.loggedContext(), &colony.RunCycleCommand{
		ColonyName: cc.colonyName,
		Income:     income,
	})
	cc.err = err
	if err == nil {
		cc.response = resp.(*colony.RunCycleResponse)
	}
	return nil
}

func (cc *colonyCycleContext) aCycleRunsWithTheseDeliveries(table *godog.Table) error {
	var income []colony.NodeIncome
	for _, row := range table.Rows[1:] {
		node, err := strconv.Atoi(getCellValueFromTable(table, row, "node"))
		if err != nil {
			return fmt.Errorf("invalid node: %w", err)
		}
		amount, err := strconv.ParseFloat(getCellValueFromTable(table, row, "amount"), 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		income = append(income, colony.NodeIncome{
			OutpostName: getCellValueFromTable(table, row, "outpost"),
			NodeIndex:   node,
			Amount:      amount,
		})
	}
	return cc.runCycle(income)
}

func (cc *colonyCycleContext) aCycleRunsWithoutDeliveries() error {
	return cc.runCycle(nil)
}

// Then steps

func (cc *colonyCycleContext) pending() ([]*spawning.ProductionRequest, error) {
	if cc.err != nil {
		return nil, fmt.Errorf("cycle failed: %w", cc.err)
	}
	return cc.queue.ListPending(context.Background(), cc.colonyName)
}

func (cc *colonyCycleContext) theCycleShouldSucceed() error {
	if cc.err != nil {
		return fmt.Errorf("expected cycle to succeed, got: %w", cc.err)
	}
	if err := cc.response.Err(); err != nil {
		return fmt.Errorf("expected no outpost failures, got: %w", err)
	}
	return nil
}

func (cc *colonyCycleContext) theCycleShouldHaveQueued(table *godog.Table) error {
	requests, err := cc.pending()
	if err != nil {
		return err
	}

	counts := map[string]int{}
	for _, r := range requests {
		counts[r.Role]++
	}

	expectedTotal := 0
	for _, row := range table.Rows[1:] {
		role := getCellValueFromTable(table, row, "role")
		expected, err := strconv.Atoi(getCellValueFromTable(table, row, "count"))
		if err != nil {
			return fmt.Errorf("invalid count for %s: %w", role, err)
		}
		if counts[role] != expected {
			return fmt.Errorf("expected %d %s requests, got %d", expected, role, counts[role])
		}
		expectedTotal += expected
	}

	if len(requests) != expectedTotal {
		return fmt.Errorf("expected %d requests in total, got %d (%v)", expectedTotal, len(requests), counts)
	}
	return nil
}

func (cc *colonyCycleContext) theQueuedRequestsShouldBeOrderedByPriority() error {
	requests, err := cc.pending()
	if err != nil {
		return err
	}
	for i := 1; i < len(requests); i++ {
		if requests[i].Priority < requests[i-1].Priority {
			return fmt.Errorf("request %s (priority %g) queued after %s (priority %g)",
				requests[i].Role, requests[i].Priority, requests[i-1].Role, requests[i-1].Priority)
		}
	}
	return nil
}

func (cc *colonyCycleContext) outpostShouldBeAbandonedForTicks(name string, ticks int) error {
	ledger, err := cc.ledgerRepo.Load(context.Background(), cc.colonyName)
	if err != nil {
		return err
	}
	outpost, ok := ledger.Outpost(name)
	if !ok {
		return fmt.Errorf("outpost %s not in ledger", name)
	}
	if outpost.AbandonCountdown() != ticks {
		return fmt.Errorf("expected %s abandoned for %d ticks, got %d", name, ticks, outpost.AbandonCountdown())
	}
	return nil
}

func (cc *colonyCycleContext) nothingShouldBeQueuedFor(name string) error {
	requests, err := cc.pending()
	if err != nil {
		return err
	}
	for _, r := range requests {
		if r.Memory["outpost"] == name {
			return fmt.Errorf("unexpected %s request for %s", r.Role, name)
		}
	}
	return nil
}

func (cc *colonyCycleContext) noRoleShouldBeQueued(role string) error {
	requests, err := cc.pending()
	if err != nil {
		return err
	}
	for _, r := range requests {
		if r.Role == role {
			return fmt.Errorf("unexpected %s request %s", role, r.Name)
		}
	}
	return nil
}

func (cc *colonyCycleContext) outpostShouldNoLongerBeInTheLedger(name string) error {
	ledger, err := cc.ledgerRepo.Load(context.Background(), cc.colonyName)
	if err != nil {
		return err
	}
	if _, ok := ledger.Outpost(name); ok {
		return fmt.Errorf("expected outpost %s to be removed", name)
	}
	return nil
}

// InitializeColonyCycleScenario registers steps that drive full cycles
// against the shared test database
func InitializeColonyCycleScenario(ctx *godog.ScenarioContext) {
	cc := &colonyCycleContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := helpers.TruncateAllTables(); err != nil {
			return ctx, err
		}
		cc.reset()
		return ctx, nil
	})

	ctx.Step(`^colony "([^"]*)" with (\d+) of (\d+) energy$`, cc.colonyWithOfEnergy)
	ctx.Step(`^the colony keeps its own harvester and hauler$`, cc.theColonyKeepsItsOwnHarvesterAndHauler)
	ctx.Step(`^these remote outposts:$`, cc.theseRemoteOutposts)
	ctx.Step(`^outpost "([^"]*)" of (\d+) nodes? at path length (\d+) routes through "([^"]*)"$`, cc.outpostOfNodesAtPathLengthRoutesThrough)
	ctx.Step(`^hostiles with (\d+) ticks to live are in "([^"]*)"$`, cc.hostilesWithTicksToLiveAreIn)
	ctx.Step(`^room "([^"]*)" is now classified "([^"]*)"$`, cc.roomIsNowClassified)

	ctx.Step(`^a cycle runs with these deliveries:$`, cc.aCycleRunsWithTheseDeliveries)
	ctx.Step(`^a cycle runs without deliveries$`, cc.aCycleRunsWithoutDeliveries)

	ctx.Step(`^the cycle should succeed$`, cc.theCycleShouldSucceed)
	ctx.Step(`^the cycle should have queued:$`, cc.theCycleShouldHaveQueued)
	ctx.Step(`^the queued requests should be ordered by priority$`, cc.theQueuedRequestsShouldBeOrderedByPriority)
	ctx.Step(`^outpost "([^"]*)" should be abandoned for (\d+) ticks$`, cc.outpostShouldBeAbandonedForTicks)
	ctx.Step(`^nothing should be queued for "([^"]*)"$`, cc.nothingShouldBeQueuedFor)
	ctx.Step(`^no "([^"]*)" should be queued$`, cc.noRoleShouldBeQueued)
	ctx.Step(`^outpost "([^"]*)" should no longer be in the ledger$`, cc.outpostShouldNoLongerBeInTheLedger)
}
