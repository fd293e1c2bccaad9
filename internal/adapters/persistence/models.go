package persistence

import (
	"time"
)

// OutpostModel represents the outposts table
type OutpostModel struct {
	ColonyName        string    `gorm:"column:colony_name;primaryKey;not null"`
	Name              string    `gorm:"column:name;primaryKey;not null"`
	PathLength        int       `gorm:"column:path_length;not null;default:0"`
	PathsThrough      string    `gorm:"column:paths_through;type:text"` // JSON array as text
	AbandonCountdown  int       `gorm:"column:abandon_countdown;not null;default:0"`
	RecursedAbandon   bool      `gorm:"column:recursed_abandon;not null;default:false"`
	PathCacheDisabled bool      `gorm:"column:path_cache_disabled;not null;default:false"`
	DangerUntil       int       `gorm:"column:danger_until;not null;default:0"`
	EnemyReserved     bool      `gorm:"column:enemy_reserved;not null;default:false"`
	HostileCores      int       `gorm:"column:hostile_cores;not null;default:0"`
	DismantlerNeed    int       `gorm:"column:dismantler_need;not null;default:0"`
	CoreAttackerNeed  int       `gorm:"column:core_attacker_need;not null;default:0"`
	Reserver          int       `gorm:"column:reserver;not null;default:0"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (OutpostModel) TableName() string {
	return "outposts"
}

// ResourceNodeModel represents the resource_nodes table
type ResourceNodeModel struct {
	ColonyName   string  `gorm:"column:colony_name;primaryKey;not null"`
	OutpostName  string  `gorm:"column:outpost_name;primaryKey;not null"`
	NodeIndex    int     `gorm:"column:node_index;primaryKey;not null"`
	Credit       float64 `gorm:"column:credit;not null;default:0"`
	CreditChange float64 `gorm:"column:credit_change;not null;default:0"`
	MaxIncome    float64 `gorm:"column:max_income;not null;default:0"`
	HasContainer bool    `gorm:"column:has_container;not null;default:false"`
	Hauler       int     `gorm:"column:hauler;not null;default:0"`
	Harvester    int     `gorm:"column:harvester;not null;default:0"`
}

func (ResourceNodeModel) TableName() string {
	return "resource_nodes"
}

// SpawnRequestModel represents the spawn_requests table
type SpawnRequestModel struct {
	ID         string     `gorm:"column:id;primaryKey;not null"`
	Name       string     `gorm:"column:name;not null"`
	ColonyName string     `gorm:"column:colony_name;not null;index:idx_spawn_requests_pending,priority:1"`
	Role       string     `gorm:"column:role;not null"`
	Priority   float64    `gorm:"column:priority;not null"`
	Body       string     `gorm:"column:body;type:text;not null"` // JSON array as text
	Tier       int        `gorm:"column:tier;not null"`
	Cost       int        `gorm:"column:cost;not null"`
	Memory     string     `gorm:"column:memory;type:text"` // JSON object as text
	Status     string     `gorm:"column:status;not null;default:'pending';index:idx_spawn_requests_pending,priority:2"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null"`
	DrainedAt  *time.Time `gorm:"column:drained_at"`
}

func (SpawnRequestModel) TableName() string {
	return "spawn_requests"
}

// AllModels lists every model migrated at startup
func AllModels() []interface{} {
	return []interface{}{
		&OutpostModel{},
		&ResourceNodeModel{},
		&SpawnRequestModel{},
	}
}
