package helpers

import (
	"context"

	"github.com/andrescamacho/colonybot/internal/adapters/world"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
)

// MockWorld serves a snapshot world and lets tests fail individual queries
// per room
type MockWorld struct {
	*world.SnapshotWorld

	RoomStatusErr  map[string]error
	NodeErr        map[string]error
	HostilesErr    map[string]error
	ReservationErr map[string]error
	PathErr        map[string]error

	// Rooms whose Node was queried, in call order
	NodeCalls []string
}

// NewMockWorld creates a world with one colony anchored at colonyName
func NewMockWorld(colonyName string, energyAvailable, energyCapacity int) *MockWorld {
	w := world.NewSnapshotWorld(&world.Snapshot{})
	w.PutColony(world.ColonySnapshot{
		Name:            colonyName,
		MapStatus:       "normal",
		EnergyAvailable: energyAvailable,
		EnergyCapacity:  energyCapacity,
	})

	return &MockWorld{
		SnapshotWorld:  w,
		RoomStatusErr:  map[string]error{},
		NodeErr:        map[string]error{},
		HostilesErr:    map[string]error{},
		ReservationErr: map[string]error{},
		PathErr:        map[string]error{},
	}
}

// RemoteRoom builds a visible remote room owned by colonyName with nodeCount
// nodes at the baseline regeneration
func RemoteRoom(name, colonyName string, nodeCount, pathLength int) world.RoomSnapshot {
	nodes := make([]world.NodeSnapshot, nodeCount)
	for i := range nodes {
		nodes[i] = world.NodeSnapshot{RegenCapacity: 1500, RegenPeriod: 300}
	}

	return world.RoomSnapshot{
		Name:       name,
		Type:       string(economy.RoomTypeRemote),
		Owner:      colonyName,
		MapStatus:  "normal",
		Visible:    true,
		PathLength: pathLength,
		Nodes:      nodes,
	}
}

// RoomStatus implements WorldQuery
func (m *MockWorld) RoomStatus(ctx context.Context, roomName string) (*economy.OutpostStatus, error) {
	if err := m.RoomStatusErr[roomName]; err != nil {
		return nil, err
	}
	return m.SnapshotWorld.RoomStatus(ctx, roomName)
}

// Node implements WorldQuery
func (m *MockWorld) Node(ctx context.Context, outpostName string, index int) (*economy.NodeInfo, error) {
	m.NodeCalls = append(m.NodeCalls, outpostName)
	if err := m.NodeErr[outpostName]; err != nil {
		return nil, err
	}
	return m.SnapshotWorld.Node(ctx, outpostName, index)
}

// Hostiles implements WorldQuery
func (m *MockWorld) Hostiles(ctx context.Context, outpostName string) ([]economy.Hostile, error) {
	if err := m.HostilesErr[outpostName]; err != nil {
		return nil, err
	}
	return m.SnapshotWorld.Hostiles(ctx, outpostName)
}

// Reservation implements WorldQuery
func (m *MockWorld) Reservation(ctx context.Context, outpostName string) (*economy.ReservationInfo, error) {
	if err := m.ReservationErr[outpostName]; err != nil {
		return nil, err
	}
	return m.SnapshotWorld.Reservation(ctx, outpostName)
}

// PathLength implements WorldQuery
func (m *MockWorld) PathLength(ctx context.Context, colonyName, outpostName string) (int, error) {
	if err := m.PathErr[outpostName]; err != nil {
		return 0, err
	}
	return m.SnapshotWorld.PathLength(ctx, colonyName, outpostName)
}
