package economy

import "context"

// RoomType is the world's classification of a room
type RoomType string

const (
	RoomTypeColony      RoomType = "COLONY"
	RoomTypeRemote      RoomType = "REMOTE"
	RoomTypeNeutral     RoomType = "NEUTRAL"
	RoomTypeHighway     RoomType = "HIGHWAY"
	RoomTypeAlly        RoomType = "ALLY"
	RoomTypeEnemy       RoomType = "ENEMY"
	RoomTypeEnemyRemote RoomType = "ENEMY_REMOTE"
	RoomTypeKeeper      RoomType = "KEEPER"
)

// IsTraversable reports whether cached routes may cross a room of this type
func (t RoomType) IsTraversable() bool {
	switch t {
	case RoomTypeEnemy, RoomTypeEnemyRemote, RoomTypeKeeper:
		return false
	}
	return true
}

// MapStatus is the world's zone classification (normal, novice, respawn...)
type MapStatus string

// ColonyStatus is the colony-level view the demand model needs
type ColonyStatus struct {
	Name            string
	MapStatus       MapStatus
	EnergyAvailable int
	EnergyCapacity  int
	HasAnchor       bool
}

// OutpostStatus is the current classification of an outpost's room
type OutpostStatus struct {
	Type        RoomType
	OwnerColony string
	MapStatus   MapStatus
}

// NodeInfo describes a resource node as seen in the world
type NodeInfo struct {
	HasContainer  bool
	RegenCapacity float64
	RegenPeriod   float64
}

// ReservationInfo describes the reservation of an outpost
type ReservationInfo struct {
	Status         ReservationStatus
	TicksRemaining int
}

// StructureCounts are the hostile structures the combat subsystem reports
type StructureCounts struct {
	HostileCores     int
	DismantleTargets int
}

// WorldQuery is the read-only view of world state, provided by the host
type WorldQuery interface {
	// Colony returns the owning colony's status
	Colony(ctx context.Context, colonyName string) (*ColonyStatus, error)

	// RoomStatus returns the classification of any room by name
	RoomStatus(ctx context.Context, roomName string) (*OutpostStatus, error)

	// IsVisible reports whether the room is observable this cycle
	IsVisible(ctx context.Context, roomName string) bool

	// Node returns a node's container and regeneration figures
	Node(ctx context.Context, outpostName string, index int) (*NodeInfo, error)

	// Hostiles lists enemy workers in the outpost
	Hostiles(ctx context.Context, outpostName string) ([]Hostile, error)

	// Reservation returns who holds the outpost's reservation
	Reservation(ctx context.Context, outpostName string) (*ReservationInfo, error)

	// Structures returns counts of hostile cores and dismantle targets
	Structures(ctx context.Context, outpostName string) (*StructureCounts, error)

	// PathLength returns the route length from the colony anchor
	PathLength(ctx context.Context, colonyName, outpostName string) (int, error)

	// PathRooms lists the rooms the cached route crosses
	PathRooms(ctx context.Context, colonyName, outpostName string) ([]string, error)
}

// LedgerRepository defines the interface for colony ledger persistence
type LedgerRepository interface {
	// Load retrieves a colony's ledger; an unknown colony yields an empty ledger
	Load(ctx context.Context, colonyName string) (*Ledger, error)

	// Save persists every outpost of the ledger and deletes removed ones
	Save(ctx context.Context, ledger *Ledger) error
}
