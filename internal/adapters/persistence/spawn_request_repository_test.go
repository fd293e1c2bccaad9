package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonybot/internal/adapters/persistence"
	"github.com/andrescamacho/colonybot/internal/domain/spawning"
	"github.com/andrescamacho/colonybot/test/helpers"
)

func productionRequest(id, colony, role string, priority float64) *spawning.ProductionRequest {
	return &spawning.ProductionRequest{
		ID:         id,
		Name:       role + ", T1, " + id,
		ColonyName: colony,
		Role:       role,
		Priority:   priority,
		Body:       spawning.Body{spawning.PartWork, spawning.PartMove},
		Tier:       1,
		Cost:       150,
		Memory:     map[string]string{"role": role, "colony": colony},
	}
}

func TestProductionQueue_ListPendingOrdersByPriority(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	queue := persistence.NewGormProductionQueue(db)
	ctx := context.Background()

	require.NoError(t, queue.Enqueue(ctx, productionRequest("aaaa0001", "W1N1", spawning.RoleRemoteReserver, 3)))
	require.NoError(t, queue.Enqueue(ctx, productionRequest("aaaa0002", "W1N1", spawning.RoleRemoteHarvester, 1)))
	require.NoError(t, queue.Enqueue(ctx, productionRequest("aaaa0003", "W1N1", spawning.RoleRemoteHauler, 2)))
	require.NoError(t, queue.Enqueue(ctx, productionRequest("bbbb0001", "W5N5", spawning.RoleRemoteHauler, 2)))

	// Act
	pending, err := queue.ListPending(ctx, "W1N1")

	// Assert
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, spawning.RoleRemoteHarvester, pending[0].Role)
	assert.Equal(t, spawning.RoleRemoteHauler, pending[1].Role)
	assert.Equal(t, spawning.RoleRemoteReserver, pending[2].Role)
	assert.Equal(t, spawning.Body{spawning.PartWork, spawning.PartMove}, pending[0].Body)
	assert.Equal(t, "W1N1", pending[0].Memory["colony"])
}

func TestProductionQueue_DrainRespectsLimit(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	queue := persistence.NewGormProductionQueue(db)
	ctx := context.Background()

	require.NoError(t, queue.Enqueue(ctx, productionRequest("aaaa0001", "W1N1", spawning.RoleRemoteReserver, 3)))
	require.NoError(t, queue.Enqueue(ctx, productionRequest("aaaa0002", "W1N1", spawning.RoleRemoteHarvester, 1)))
	require.NoError(t, queue.Enqueue(ctx, productionRequest("aaaa0003", "W1N1", spawning.RoleRemoteHauler, 2)))

	// Act
	drained, err := queue.Drain(ctx, "W1N1", 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, drained, 2)
	assert.Equal(t, "aaaa0002", drained[0].ID)
	assert.Equal(t, "aaaa0003", drained[1].ID)

	pending, err := queue.ListPending(ctx, "W1N1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "aaaa0001", pending[0].ID)
}

func TestProductionQueue_DrainEverything(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	queue := persistence.NewGormProductionQueue(db)
	ctx := context.Background()
	require.NoError(t, queue.Enqueue(ctx, productionRequest("aaaa0001", "W1N1", spawning.RoleRemoteHauler, 2)))

	// Act
	first, err := queue.Drain(ctx, "W1N1", 0)
	require.NoError(t, err)
	second, err := queue.Drain(ctx, "W1N1", 0)

	// Assert
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Empty(t, second)
}
