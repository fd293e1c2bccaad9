package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot is the YAML document describing world state for one or more
// cycles
type Snapshot struct {
	Tick     int              `yaml:"tick"`
	Colonies []ColonySnapshot `yaml:"colonies"`
	Rooms    []RoomSnapshot   `yaml:"rooms"`
	Units    []UnitSnapshot   `yaml:"units"`
	Income   []IncomeSnapshot `yaml:"income"`
}

type ColonySnapshot struct {
	Name            string `yaml:"name"`
	MapStatus       string `yaml:"map_status"`
	EnergyAvailable int    `yaml:"energy_available"`
	EnergyCapacity  int    `yaml:"energy_capacity"`
	HasAnchor       *bool  `yaml:"has_anchor"` // defaults to true
}

type RoomSnapshot struct {
	Name             string               `yaml:"name"`
	Type             string               `yaml:"type"`
	Owner            string               `yaml:"owner"`
	MapStatus        string               `yaml:"map_status"`
	Visible          bool                 `yaml:"visible"`
	PathLength       int                  `yaml:"path_length"`
	Path             []string             `yaml:"path"`
	Nodes            []NodeSnapshot       `yaml:"nodes"`
	Hostiles         []HostileSnapshot    `yaml:"hostiles"`
	Reservation      *ReservationSnapshot `yaml:"reservation"`
	HostileCores     int                  `yaml:"hostile_cores"`
	DismantleTargets int                  `yaml:"dismantle_targets"`
}

type NodeSnapshot struct {
	Container     bool    `yaml:"container"`
	RegenCapacity float64 `yaml:"regen_capacity"`
	RegenPeriod   float64 `yaml:"regen_period"`
}

type HostileSnapshot struct {
	Lifetime int  `yaml:"lifetime"`
	Invader  bool `yaml:"invader"`
}

type ReservationSnapshot struct {
	Status string `yaml:"status"`
	Ticks  int    `yaml:"ticks"`
}

type UnitSnapshot struct {
	Name       string `yaml:"name"`
	Colony     string `yaml:"colony"`
	Role       string `yaml:"role"`
	Outpost    string `yaml:"outpost"`
	Node       int    `yaml:"node"`
	BodyLength int    `yaml:"body_length"`
}

// IncomeSnapshot is a delivery credited to a node during the cycle
type IncomeSnapshot struct {
	Colony  string  `yaml:"colony"`
	Outpost string  `yaml:"outpost"`
	Node    int     `yaml:"node"`
	Amount  float64 `yaml:"amount"`
}

// LoadSnapshot reads a snapshot file
func LoadSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world snapshot: %w", err)
	}
	return ParseSnapshot(raw)
}

// ParseSnapshot decodes a snapshot document
func ParseSnapshot(raw []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("world snapshot: %w", err)
	}
	return &s, nil
}

// Marshal encodes the snapshot back to YAML
func (s *Snapshot) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
