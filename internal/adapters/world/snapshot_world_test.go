package world_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonybot/internal/adapters/world"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

const snapshotYAML = `
tick: 4200
colonies:
  - name: W1N1
    map_status: normal
    energy_available: 300
    energy_capacity: 800
rooms:
  - name: W1N2
    type: REMOTE
    owner: W1N1
    map_status: normal
    visible: true
    path_length: 40
    path: [W1N1, W2N1]
    nodes:
      - {container: true, regen_capacity: 3000, regen_period: 300}
      - {regen_capacity: 1500, regen_period: 300}
    hostiles:
      - {lifetime: 120, invader: true}
    reservation: {status: SELF, ticks: 3000}
    hostile_cores: 1
    dismantle_targets: 2
units:
  - {name: h-1, colony: W1N1, role: remoteSourceHarvester, outpost: W1N2, node: 1, body_length: 7}
  - {name: r-1, colony: W1N1, role: remoteReserver, outpost: W1N2, body_length: 2}
  - {name: x-1, colony: W5N5, role: remoteReserver, outpost: W5N6, body_length: 2}
income:
  - {colony: W1N1, outpost: W1N2, node: 0, amount: 12}
  - {colony: W5N5, outpost: W5N6, node: 0, amount: 3}
`

func loadWorld(t *testing.T) *world.SnapshotWorld {
	t.Helper()
	snapshot, err := world.ParseSnapshot([]byte(snapshotYAML))
	require.NoError(t, err)
	return world.NewSnapshotWorld(snapshot)
}

func TestSnapshotWorld_Colony(t *testing.T) {
	// Arrange
	w := loadWorld(t)

	// Act
	colony, err := w.Colony(context.Background(), "W1N1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4200, w.Snapshot().Tick)
	assert.Equal(t, economy.MapStatus("normal"), colony.MapStatus)
	assert.Equal(t, 800, colony.EnergyCapacity)
	assert.True(t, colony.HasAnchor, "anchor defaults to present")

	_, err = w.Colony(context.Background(), "W9N9")
	assert.Error(t, err)
}

func TestSnapshotWorld_RoomQueries(t *testing.T) {
	// Arrange
	w := loadWorld(t)
	ctx := context.Background()

	// Act
	status, err := w.RoomStatus(ctx, "W1N2")
	require.NoError(t, err)
	node, err := w.Node(ctx, "W1N2", 0)
	require.NoError(t, err)
	hostiles, err := w.Hostiles(ctx, "W1N2")
	require.NoError(t, err)
	reservation, err := w.Reservation(ctx, "W1N2")
	require.NoError(t, err)
	structures, err := w.Structures(ctx, "W1N2")
	require.NoError(t, err)
	pathLength, err := w.PathLength(ctx, "W1N1", "W1N2")
	require.NoError(t, err)
	rooms, err := w.PathRooms(ctx, "W1N1", "W1N2")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, economy.RoomTypeRemote, status.Type)
	assert.Equal(t, "W1N1", status.OwnerColony)
	assert.True(t, w.IsVisible(ctx, "W1N2"))
	assert.True(t, node.HasContainer)
	assert.Equal(t, 3000.0, node.RegenCapacity)
	require.Len(t, hostiles, 1)
	assert.Equal(t, 120, hostiles[0].RemainingLifetime)
	assert.Equal(t, economy.ReservationSelf, reservation.Status)
	assert.Equal(t, 3000, reservation.TicksRemaining)
	assert.Equal(t, 1, structures.HostileCores)
	assert.Equal(t, 2, structures.DismantleTargets)
	assert.Equal(t, 40, pathLength)
	assert.Equal(t, []string{"W1N1", "W2N1"}, rooms)
}

func TestSnapshotWorld_UnknownRoomsReadAsNeutral(t *testing.T) {
	// Arrange
	w := loadWorld(t)
	ctx := context.Background()

	// Act
	status, err := w.RoomStatus(ctx, "W7N7")
	require.NoError(t, err)
	colonyStatus, err := w.RoomStatus(ctx, "W1N1")
	require.NoError(t, err)
	_, pathErr := w.PathLength(ctx, "W1N1", "W7N7")

	// Assert
	assert.Equal(t, economy.RoomTypeNeutral, status.Type)
	assert.Equal(t, economy.RoomTypeColony, colonyStatus.Type)
	assert.False(t, w.IsVisible(ctx, "W7N7"))
	assert.Error(t, pathErr)
}

func TestSnapshotWorld_MissingAnchor(t *testing.T) {
	// Arrange
	w := loadWorld(t)
	noAnchor := false
	w.PutColony(world.ColonySnapshot{Name: "W1N1", MapStatus: "normal", HasAnchor: &noAnchor})

	// Act
	_, err := w.PathLength(context.Background(), "W1N1", "W1N2")

	// Assert
	var anchorErr *shared.MissingAnchorError
	assert.True(t, errors.As(err, &anchorErr))
}

func TestSnapshotWorld_UnknownReservationStatus(t *testing.T) {
	// Arrange
	w := loadWorld(t)
	room, ok := w.Room("W1N2")
	require.True(t, ok)
	room.Reservation = &world.ReservationSnapshot{Status: "MAYBE"}

	// Act
	_, err := w.Reservation(context.Background(), "W1N2")

	// Assert
	assert.Error(t, err)
}

func TestSnapshotWorld_PopulationAndEnergy(t *testing.T) {
	// Arrange
	w := loadWorld(t)
	ctx := context.Background()
	node := 1

	// Act
	all, err := w.Units(ctx, "W1N1", spawning.UnitFilter{})
	require.NoError(t, err)
	harvesters, err := w.Units(ctx, "W1N1", spawning.UnitFilter{Role: spawning.RoleRemoteHarvester, OutpostName: "W1N2", NodeIndex: &node})
	require.NoError(t, err)
	energy, err := w.Energy(ctx, "W1N1")
	require.NoError(t, err)

	// Assert
	assert.Len(t, all, 2)
	require.Len(t, harvesters, 1)
	assert.Equal(t, 7, harvesters[0].BodyLength)
	assert.Equal(t, spawning.ColonyEnergy{Available: 300, Capacity: 800}, energy)
	assert.Equal(t, []world.IncomeSnapshot{{Colony: "W1N1", Outpost: "W1N2", Node: 0, Amount: 12}}, w.Income("W1N1"))
}

func TestSnapshotWorld_Replace(t *testing.T) {
	// Arrange
	w := loadWorld(t)

	// Act
	w.Replace(&world.Snapshot{Tick: 1, Colonies: []world.ColonySnapshot{{Name: "W3N3"}}})

	// Assert
	_, err := w.Colony(context.Background(), "W1N1")
	assert.Error(t, err)
	_, err = w.Colony(context.Background(), "W3N3")
	assert.NoError(t, err)
}

func TestParseSnapshot_RejectsMalformedYAML(t *testing.T) {
	_, err := world.ParseSnapshot([]byte("rooms: [unclosed"))
	assert.Error(t, err)
}
