package colony_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type cycleFixture struct {
	world   *helpers.MockWorld
	repo    *helpers.MockLedgerRepository
	queue   *helpers.MockProductionQueue
	logger  *helpers.CaptureLogger
	handler *colony.RunCycleHandler
}

func newCycleFixture(t *testing.T) *cycleFixture {
	t.Helper()
	tuning := economy.DefaultTuning()
	ticks := shared.NewMockTicks(1000)

	f := &cycleFixture{
		world:  helpers.NewMockWorld("W1N1", 300, 800),
		repo:   helpers.NewMockLedgerRepository(),
		queue:  helpers.NewMockProductionQueue(),
		logger: helpers.NewCaptureLogger(),
	}
	f.world.AddUnit(world.UnitSnapshot{Name: "harvester-0", Colony: "W1N1", Role: spawning.RoleSourceHarvester, BodyLength: 6})
	f.world.AddUnit(world.UnitSnapshot{Name: "hauler-0", Colony: "W1N1", Role: spawning.RoleHauler, BodyLength: 6})
	f.world.PutRoom(helpers.RemoteRoom("W1N2", "W1N1", 2, 40))
	f.repo.AddOutpost(economy.NewOutpost("W1N2", "W1N1", 2, 40, nil))

	med := common.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*economyCommands.PrepareOutpostsCommand](med,
		economyCommands.NewPrepareOutpostsHandler(f.repo, f.world, ticks, &shared.MockRandom{}, tuning)))
	require.NoError(t, mediator.RegisterHandler[*economyCommands.RecordNodeIncomeCommand](med,
		economyCommands.NewRecordNodeIncomeHandler(f.repo)))
	require.NoError(t, mediator.RegisterHandler[*economyCommands.SettleOutpostsCommand](med,
		economyCommands.NewSettleOutpostsHandler(f.repo, tuning)))
	require.NoError(t, mediator.RegisterHandler[*spawningCommands.ConstructSpawnRequestsCommand](med,
		spawningCommands.NewConstructSpawnRequestsHandler(f.world, f.world, f.queue, tuning.MaxBodySize)))

	f.handler = colony.NewRunCycleHandler(med, ticks, tuning.ReserverBaseline, spawning.DefaultThreshold)
	return f
}

func (f *cycleFixture) run(t *testing.T, income ...colony.NodeIncome) *colony.RunCycleResponse {
	t.Helper()
	ctx := common.WithLogger(context.Background(), f.logger)
	resp, err := f.handler.Handle(ctx, &colony.RunCycleCommand{ColonyName: "W1N1", Income: income})
	require.NoError(t, err)
	return resp.(*colony.RunCycleResponse)
}

func countRoles(requests []*spawning.ProductionRequest) map[string]int {
	counts := map[string]int{}
	for _, r := range requests {
		counts[r.Role]++
	}
	return counts
}

func TestRunCycle_EmitsRequestsForActiveOutpost(t *testing.T) {
	// Arrange
	f := newCycleFixture(t)

	// Act
	resp := f.run(t, colony.NodeIncome{OutpostName: "W1N2", NodeIndex: 0, Amount: 10})

	// Assert
	assert.Equal(t, 1000, resp.Tick)
	assert.Equal(t, 1, resp.Processed)
	assert.NoError(t, resp.Err())
	require.Len(t, resp.Requests, 5)
	assert.Equal(t, map[string]int{
		spawning.RoleRemoteHarvester: 2,
		spawning.RoleRemoteHauler:    2,
		spawning.RoleRemoteReserver:  1,
	}, countRoles(resp.Requests))
	assert.Len(t, f.queue.Requests(), 5)
	assert.True(t, f.logger.HasMessage("Cycle complete"))
}

func TestRunCycle_DropsIncomeForUnknownOutpost(t *testing.T) {
	// Arrange
	f := newCycleFixture(t)

	// Act
	resp := f.run(t, colony.NodeIncome{OutpostName: "W9N9", NodeIndex: 0, Amount: 10})

	// Assert
	warnings := f.logger.Entries("WARNING")
	require.Len(t, warnings, 1)
	assert.Equal(t, "Income for unknown outpost dropped", warnings[0].Message)
	assert.Equal(t, 0, countRoles(resp.Requests)[spawning.RoleRemoteHauler], "no delivery, no hauling")
}

func TestRunCycle_AbandonedOutpostEmitsNothing(t *testing.T) {
	// Arrange
	f := newCycleFixture(t)
	room, _ := f.world.Room("W1N2")
	room.Hostiles = []world.HostileSnapshot{{Lifetime: 300, Invader: true}}

	// Act
	resp := f.run(t, colony.NodeIncome{OutpostName: "W1N2", NodeIndex: 0, Amount: 10})

	// Assert
	assert.Equal(t, []string{"W1N2"}, resp.Abandoned)
	assert.Empty(t, resp.Requests)
}

func TestRunCycle_PassOrder(t *testing.T) {
	// Arrange
	med := helpers.NewMockMediator()
	med.On(&economyCommands.PrepareOutpostsCommand{}, func(ctx context.Context, r common.Request) (common.Response, error) {
		return &economyCommands.PrepareOutpostsResponse{}, nil
	})
	med.On(&economyCommands.RecordNodeIncomeCommand{}, func(ctx context.Context, r common.Request) (common.Response, error) {
		return &economyCommands.RecordNodeIncomeResponse{}, nil
	})
	med.On(&economyCommands.SettleOutpostsCommand{}, func(ctx context.Context, r common.Request) (common.Response, error) {
		return &economyCommands.SettleOutpostsResponse{}, nil
	})
	handler := colony.NewRunCycleHandler(med, shared.NewMockTicks(1), 5, 0)

	// Act
	_, err := handler.Handle(context.Background(), &colony.RunCycleCommand{
		ColonyName: "W1N1",
		Income:     []colony.NodeIncome{{OutpostName: "W1N2", Amount: 1}},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{
		"PrepareOutpostsCommand",
		"RecordNodeIncomeCommand",
		"SettleOutpostsCommand",
	}, med.CallTypes())
}

func TestRunCycle_PrepareFailureAbortsCycle(t *testing.T) {
	// Arrange
	med := helpers.NewMockMediator()
	med.On(&economyCommands.PrepareOutpostsCommand{}, func(ctx context.Context, r common.Request) (common.Response, error) {
		return nil, errors.New("ledger unavailable")
	})
	handler := colony.NewRunCycleHandler(med, shared.NewMockTicks(1), 5, 0)

	// Act
	_, err := handler.Handle(context.Background(), &colony.RunCycleCommand{ColonyName: "W1N1"})

	// Assert
	assert.ErrorContains(t, err, "prepare pass failed")
	assert.Len(t, med.GetCallLog(), 1)
}
