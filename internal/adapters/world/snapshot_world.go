package world

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

// SnapshotWorld serves world queries, population and energy figures from a
// Snapshot. Rooms missing from the snapshot read as neutral and unobserved.
type SnapshotWorld struct {
	snapshot *Snapshot
	colonies map[string]*ColonySnapshot
	rooms    map[string]*RoomSnapshot
}

// NewSnapshotWorld indexes a snapshot
func NewSnapshotWorld(snapshot *Snapshot) *SnapshotWorld {
	w := &SnapshotWorld{snapshot: snapshot}
	w.reindex()
	return w
}

// Snapshot returns the underlying document
func (w *SnapshotWorld) Snapshot() *Snapshot {
	return w.snapshot
}

// Replace swaps in a freshly loaded snapshot
func (w *SnapshotWorld) Replace(snapshot *Snapshot) {
	w.snapshot = snapshot
	w.reindex()
}

func (w *SnapshotWorld) reindex() {
	w.colonies = make(map[string]*ColonySnapshot, len(w.snapshot.Colonies))
	for i := range w.snapshot.Colonies {
		c := &w.snapshot.Colonies[i]
		w.colonies[c.Name] = c
	}

	w.rooms = make(map[string]*RoomSnapshot, len(w.snapshot.Rooms))
	for i := range w.snapshot.Rooms {
		r := &w.snapshot.Rooms[i]
		w.rooms[r.Name] = r
	}
}

// PutColony adds or replaces a colony
func (w *SnapshotWorld) PutColony(c ColonySnapshot) {
	for i := range w.snapshot.Colonies {
		if w.snapshot.Colonies[i].Name == c.Name {
			w.snapshot.Colonies[i] = c
			w.reindex()
			return
		}
	}
	w.snapshot.Colonies = append(w.snapshot.Colonies, c)
	w.reindex()
}

// PutRoom adds or replaces a room
func (w *SnapshotWorld) PutRoom(r RoomSnapshot) {
	for i := range w.snapshot.Rooms {
		if w.snapshot.Rooms[i].Name == r.Name {
			w.snapshot.Rooms[i] = r
			w.reindex()
			return
		}
	}
	w.snapshot.Rooms = append(w.snapshot.Rooms, r)
	w.reindex()
}

// Room returns the room for in-place edits between cycles
func (w *SnapshotWorld) Room(name string) (*RoomSnapshot, bool) {
	r, ok := w.rooms[name]
	return r, ok
}

// AddUnit adds an existing worker
func (w *SnapshotWorld) AddUnit(u UnitSnapshot) {
	w.snapshot.Units = append(w.snapshot.Units, u)
}

// Income returns the deliveries recorded for a colony
func (w *SnapshotWorld) Income(colonyName string) []IncomeSnapshot {
	var out []IncomeSnapshot
	for _, inc := range w.snapshot.Income {
		if inc.Colony == colonyName {
			out = append(out, inc)
		}
	}
	return out
}

// WorldQuery

func (w *SnapshotWorld) Colony(ctx context.Context, colonyName string) (*economy.ColonyStatus, error) {
	c, ok := w.colonies[colonyName]
	if !ok {
		return nil, fmt.Errorf("colony %s not in world snapshot", colonyName)
	}

	return &economy.ColonyStatus{
		Name:            c.Name,
		MapStatus:       economy.MapStatus(c.MapStatus),
		EnergyAvailable: c.EnergyAvailable,
		EnergyCapacity:  c.EnergyCapacity,
		HasAnchor:       c.HasAnchor == nil || *c.HasAnchor,
	}, nil
}

func (w *SnapshotWorld) RoomStatus(ctx context.Context, roomName string) (*economy.OutpostStatus, error) {
	if c, ok := w.colonies[roomName]; ok {
		return &economy.OutpostStatus{
			Type:        economy.RoomTypeColony,
			OwnerColony: c.Name,
			MapStatus:   economy.MapStatus(c.MapStatus),
		}, nil
	}

	r, ok := w.rooms[roomName]
	if !ok {
		return &economy.OutpostStatus{Type: economy.RoomTypeNeutral}, nil
	}

	return &economy.OutpostStatus{
		Type:        economy.RoomType(r.Type),
		OwnerColony: r.Owner,
		MapStatus:   economy.MapStatus(r.MapStatus),
	}, nil
}

func (w *SnapshotWorld) IsVisible(ctx context.Context, roomName string) bool {
	r, ok := w.rooms[roomName]
	return ok && r.Visible
}

func (w *SnapshotWorld) Node(ctx context.Context, outpostName string, index int) (*economy.NodeInfo, error) {
	r, ok := w.rooms[outpostName]
	if !ok || index < 0 || index >= len(r.Nodes) {
		return &economy.NodeInfo{}, nil
	}

	n := r.Nodes[index]
	return &economy.NodeInfo{
		HasContainer:  n.Container,
		RegenCapacity: n.RegenCapacity,
		RegenPeriod:   n.RegenPeriod,
	}, nil
}

func (w *SnapshotWorld) Hostiles(ctx context.Context, outpostName string) ([]economy.Hostile, error) {
	r, ok := w.rooms[outpostName]
	if !ok {
		return nil, nil
	}

	hostiles := make([]economy.Hostile, len(r.Hostiles))
	for i, h := range r.Hostiles {
		hostiles[i] = economy.Hostile{RemainingLifetime: h.Lifetime, IsInvader: h.Invader}
	}
	return hostiles, nil
}

func (w *SnapshotWorld) Reservation(ctx context.Context, outpostName string) (*economy.ReservationInfo, error) {
	r, ok := w.rooms[outpostName]
	if !ok || r.Reservation == nil {
		return &economy.ReservationInfo{Status: economy.ReservationNone}, nil
	}

	status := economy.ReservationStatus(r.Reservation.Status)
	switch status {
	case economy.ReservationSelf, economy.ReservationOther, economy.ReservationNone:
	default:
		return nil, fmt.Errorf("outpost %s has unknown reservation status %q", outpostName, r.Reservation.Status)
	}

	return &economy.ReservationInfo{Status: status, TicksRemaining: r.Reservation.Ticks}, nil
}

func (w *SnapshotWorld) Structures(ctx context.Context, outpostName string) (*economy.StructureCounts, error) {
	r, ok := w.rooms[outpostName]
	if !ok {
		return &economy.StructureCounts{}, nil
	}
	return &economy.StructureCounts{
		HostileCores:     r.HostileCores,
		DismantleTargets: r.DismantleTargets,
	}, nil
}

func (w *SnapshotWorld) PathLength(ctx context.Context, colonyName, outpostName string) (int, error) {
	if err := w.requireAnchor(colonyName, outpostName); err != nil {
		return 0, err
	}

	r, ok := w.rooms[outpostName]
	if !ok {
		return 0, fmt.Errorf("no route from %s to %s", colonyName, outpostName)
	}
	return r.PathLength, nil
}

func (w *SnapshotWorld) PathRooms(ctx context.Context, colonyName, outpostName string) ([]string, error) {
	if err := w.requireAnchor(colonyName, outpostName); err != nil {
		return nil, err
	}

	r, ok := w.rooms[outpostName]
	if !ok {
		return nil, fmt.Errorf("no route from %s to %s", colonyName, outpostName)
	}
	return append([]string(nil), r.Path...), nil
}

func (w *SnapshotWorld) requireAnchor(colonyName, outpostName string) error {
	c, ok := w.colonies[colonyName]
	if !ok {
		return fmt.Errorf("colony %s not in world snapshot", colonyName)
	}
	if c.HasAnchor != nil && !*c.HasAnchor {
		return shared.NewMissingAnchorError(colonyName, outpostName)
	}
	return nil
}

// PopulationReader

func (w *SnapshotWorld) Units(ctx context.Context, colonyName string, filter spawning.UnitFilter) ([]spawning.Unit, error) {
	var units []spawning.Unit
	for _, u := range w.snapshot.Units {
		if u.Colony != colonyName {
			continue
		}
		unit := spawning.Unit{
			Name:        u.Name,
			Role:        u.Role,
			OutpostName: u.Outpost,
			NodeIndex:   u.Node,
			BodyLength:  u.BodyLength,
		}
		if filter.Matches(unit) {
			units = append(units, unit)
		}
	}
	return units, nil
}

// EnergyReader

func (w *SnapshotWorld) Energy(ctx context.Context, colonyName string) (spawning.ColonyEnergy, error) {
	c, ok := w.colonies[colonyName]
	if !ok {
		return spawning.ColonyEnergy{}, fmt.Errorf("colony %s not in world snapshot", colonyName)
	}
	return spawning.ColonyEnergy{Available: c.EnergyAvailable, Capacity: c.EnergyCapacity}, nil
}
