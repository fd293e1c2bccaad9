package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonybot/internal/application/spawning/commands"
	"github.com/andrescamacho/colonybot/internal/domain/spawning"
	"github.com/andrescamacho/colonybot/test/helpers"
)

func haulerOpts(multiplier float64) spawning.SpawnRequestOpts {
	return spawning.SpawnRequestOpts{
		Role:            spawning.RoleRemoteHauler,
		ColonyName:      "W1N1",
		OutpostName:     "W1N2",
		ExtraParts:      []spawning.BodyPart{spawning.PartCarry, spawning.PartMove},
		PartsMultiplier: multiplier,
		MinCost:         100,
		Priority:        2,
	}
}

func harvesterOpts(multiplier float64) spawning.SpawnRequestOpts {
	node := 0
	return spawning.SpawnRequestOpts{
		Role:            spawning.RoleRemoteHarvester,
		ColonyName:      "W1N1",
		OutpostName:     "W1N2",
		NodeIndex:       &node,
		DefaultParts:    []spawning.BodyPart{spawning.PartMove},
		ExtraParts:      []spawning.BodyPart{spawning.PartWork, spawning.PartMove},
		PartsMultiplier: multiplier,
		MaxCreeps:       2,
		MinCost:         200,
		Priority:        1,
	}
}

func reserverOpts() spawning.SpawnRequestOpts {
	return spawning.SpawnRequestOpts{
		Role:            spawning.RoleRemoteReserver,
		ColonyName:      "W1N1",
		OutpostName:     "W1N2",
		ExtraParts:      []spawning.BodyPart{spawning.PartClaim, spawning.PartMove},
		PartsMultiplier: 1,
		MinCreeps:       1,
		MinCost:         650,
		Priority:        3,
	}
}

func construct(t *testing.T, population *helpers.MockPopulation, opts spawning.SpawnRequestOpts) (*commands.ConstructSpawnRequestsResponse, *helpers.MockProductionQueue) {
	t.Helper()
	queue := helpers.NewMockProductionQueue()
	handler := commands.NewConstructSpawnRequestsHandler(population, population, queue, 50)

	resp, err := handler.Handle(context.Background(), &commands.ConstructSpawnRequestsCommand{Opts: opts})
	require.NoError(t, err)
	return resp.(*commands.ConstructSpawnRequestsResponse), queue
}

func TestConstruct_GroupSpreadsPoolOverFullBodies(t *testing.T) {
	// Arrange
	population := helpers.NewMockPopulation(300, 800).WithFoundation()

	// Act
	resp, queue := construct(t, population, haulerOpts(16))

	// Assert
	require.Len(t, resp.Requests, 2)
	assert.Equal(t, 800, resp.Ceiling)
	for _, req := range resp.Requests {
		assert.Len(t, req.Body, 16)
		assert.Equal(t, 800, req.Cost)
		assert.Equal(t, 8, req.Tier)
	}
	assert.Len(t, queue.Requests(), 2)
	assert.False(t, resp.Starved)
}

func TestConstruct_WithoutFoundationSpendsOnlyAvailable(t *testing.T) {
	// Arrange
	population := helpers.NewMockPopulation(300, 800)

	// Act
	resp, _ := construct(t, population, haulerOpts(16))

	// Assert
	assert.Equal(t, 300, resp.Ceiling)
	require.Len(t, resp.Requests, 6)
	for _, req := range resp.Requests {
		assert.Equal(t, 300, req.Cost)
	}
}

func TestConstruct_ExistingPartsReducePool(t *testing.T) {
	tests := []struct {
		name       string
		bodyLength int
		want       int
	}{
		{"room for one more body", 20, 1},
		{"remainder below threshold", 26, 0},
		{"pool already covered", 32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			population := helpers.NewMockPopulation(300, 800).WithFoundation()
			population.Add(spawning.Unit{Name: "hauler-1", Role: spawning.RoleRemoteHauler, OutpostName: "W1N2", BodyLength: tt.bodyLength})

			// Act
			resp, _ := construct(t, population, haulerOpts(16))

			// Assert
			assert.Len(t, resp.Requests, tt.want)
			assert.Equal(t, 1, resp.Existing)
			assert.False(t, resp.Starved)
		})
	}
}

func TestConstruct_HarvesterFillsOneBody(t *testing.T) {
	// Arrange
	population := helpers.NewMockPopulation(300, 800).WithFoundation()

	// Act
	resp, _ := construct(t, population, harvesterOpts(5))

	// Assert
	require.Len(t, resp.Requests, 1)
	req := resp.Requests[0]
	assert.Len(t, req.Body, 11)
	assert.Equal(t, 800, req.Cost)
	assert.Equal(t, 5, req.Body.Count(spawning.PartWork))
	assert.Equal(t, "0", req.Memory["node"])
}

func TestConstruct_MaxCreepsCapsGroupBodies(t *testing.T) {
	// Arrange
	population := helpers.NewMockPopulation(300, 800).WithFoundation()
	population.Add(spawning.Unit{Name: "h-1", Role: spawning.RoleRemoteHarvester, OutpostName: "W1N2", NodeIndex: 0, BodyLength: 3})
	population.Add(spawning.Unit{Name: "h-2", Role: spawning.RoleRemoteHarvester, OutpostName: "W1N2", NodeIndex: 0, BodyLength: 3})

	// Act
	resp, _ := construct(t, population, harvesterOpts(10))

	// Assert
	assert.Empty(t, resp.Requests)
	assert.Equal(t, 2, resp.Existing)
}

func TestConstruct_UnaffordableCeilingStarves(t *testing.T) {
	// Arrange
	population := helpers.NewMockPopulation(300, 800).WithFoundation()
	opts := harvesterOpts(5)
	opts.MaxCostPerCreep = 150

	// Act
	resp, queue := construct(t, population, opts)

	// Assert
	assert.True(t, resp.Starved)
	assert.Empty(t, resp.Requests)
	assert.Empty(t, queue.Requests())
}

func TestConstruct_IndividualMode(t *testing.T) {
	t.Run("builds the missing worker", func(t *testing.T) {
		// Arrange
		population := helpers.NewMockPopulation(300, 800).WithFoundation()

		// Act
		resp, _ := construct(t, population, reserverOpts())

		// Assert
		require.Len(t, resp.Requests, 1)
		assert.Equal(t, spawning.Body{spawning.PartClaim, spawning.PartMove}, resp.Requests[0].Body)
		assert.Equal(t, 650, resp.Requests[0].Cost)
	})

	t.Run("existing worker satisfies minimum", func(t *testing.T) {
		// Arrange
		population := helpers.NewMockPopulation(300, 800).WithFoundation()
		population.Add(spawning.Unit{Name: "r-1", Role: spawning.RoleRemoteReserver, OutpostName: "W1N2", BodyLength: 2})

		// Act
		resp, _ := construct(t, population, reserverOpts())

		// Assert
		assert.Empty(t, resp.Requests)
		assert.False(t, resp.Starved)
	})

	t.Run("every missing worker gets a trimmed body", func(t *testing.T) {
		// Arrange
		population := helpers.NewMockPopulation(300, 550).WithFoundation()
		opts := harvesterOpts(5)
		opts.MinCreeps = 2

		// Act
		resp, queue := construct(t, population, opts)

		// Assert
		require.Len(t, resp.Requests, 2)
		for _, r := range resp.Requests {
			assert.Equal(t, 500, r.Cost)
			assert.Len(t, r.Body, 7)
			assert.Equal(t, 4, r.Tier)
			assert.GreaterOrEqual(t, r.Cost, opts.MinCost)
		}
		assert.Len(t, queue.Requests(), 2)
		assert.False(t, resp.Starved)
	})

	t.Run("capacity below minimum starves", func(t *testing.T) {
		// Arrange
		population := helpers.NewMockPopulation(300, 600).WithFoundation()

		// Act
		resp, _ := construct(t, population, reserverOpts())

		// Assert
		assert.Empty(t, resp.Requests)
		assert.True(t, resp.Starved)
	})
}

func TestConstruct_Errors(t *testing.T) {
	t.Run("invalid descriptor", func(t *testing.T) {
		// Arrange
		population := helpers.NewMockPopulation(300, 800)
		handler := commands.NewConstructSpawnRequestsHandler(population, population, helpers.NewMockProductionQueue(), 50)
		opts := haulerOpts(4)
		opts.Role = ""

		// Act
		_, err := handler.Handle(context.Background(), &commands.ConstructSpawnRequestsCommand{Opts: opts})

		// Assert
		assert.Error(t, err)
	})

	t.Run("queue failure", func(t *testing.T) {
		// Arrange
		population := helpers.NewMockPopulation(300, 800).WithFoundation()
		queue := helpers.NewMockProductionQueue()
		queue.EnqueueErr = errors.New("queue full")
		handler := commands.NewConstructSpawnRequestsHandler(population, population, queue, 50)

		// Act
		_, err := handler.Handle(context.Background(), &commands.ConstructSpawnRequestsCommand{Opts: haulerOpts(4)})

		// Assert
		assert.ErrorContains(t, err, "queue full")
	})

	t.Run("energy failure", func(t *testing.T) {
		// Arrange
		population := helpers.NewMockPopulation(300, 800)
		population.EnergyErr = errors.New("colony not visible")
		handler := commands.NewConstructSpawnRequestsHandler(population, population, helpers.NewMockProductionQueue(), 50)

		// Act
		_, err := handler.Handle(context.Background(), &commands.ConstructSpawnRequestsCommand{Opts: haulerOpts(4)})

		// Assert
		assert.ErrorContains(t, err, "colony not visible")
	})
}
