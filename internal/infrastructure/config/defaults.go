package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "colonybot.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "colonybot"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "colonybot"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	setEconomyDefaults(&cfg.Economy)

	// Spawning defaults
	if cfg.Spawning.MaxBodySize == 0 {
		cfg.Spawning.MaxBodySize = spawning.MaxBodySize
	}
	if cfg.Spawning.DefaultThreshold == 0 {
		cfg.Spawning.DefaultThreshold = spawning.DefaultThreshold
	}

	// Cycle defaults
	if cfg.Cycle.Burst == 0 {
		cfg.Cycle.Burst = 1
	}
	if cfg.Cycle.LockFile == "" {
		cfg.Cycle.LockFile = filepath.Join(os.TempDir(), "colonybot-cycle.pid")
	}
}

func setEconomyDefaults(c *EconomyConfig) {
	d := economy.DefaultTuning()

	if c.RelaxationFactor == 0 {
		c.RelaxationFactor = d.RelaxationFactor
	}
	if c.PathCheckOneIn == 0 {
		c.PathCheckOneIn = d.PathCheckOneIn
	}
	if c.ReservationEnergyThreshold == 0 {
		c.ReservationEnergyThreshold = d.ReservationEnergyThreshold
	}
	if c.ReserverBaseline == 0 {
		c.ReserverBaseline = d.ReserverBaseline
	}
	if c.ReservationStepTicks == 0 {
		c.ReservationStepTicks = d.ReservationStepTicks
	}
	if c.ReservationTicksCap == 0 {
		c.ReservationTicksCap = d.ReservationTicksCap
	}
	if c.AbandonJitter == 0 {
		c.AbandonJitter = d.AbandonJitter
	}
	if c.DismantlerCap == 0 {
		c.DismantlerCap = d.DismantlerCap
	}
	if c.CoreAttackerPerCore == 0 {
		c.CoreAttackerPerCore = d.CoreAttackerPerCore
	}
	if c.SourceCapacity == 0 {
		c.SourceCapacity = d.SourceCapacity
	}
	if c.SourceRegenTicks == 0 {
		c.SourceRegenTicks = d.SourceRegenTicks
	}
	if c.ContainerDecay == 0 {
		c.ContainerDecay = d.ContainerDecay
	}
	if c.ContainerDecayTicks == 0 {
		c.ContainerDecayTicks = d.ContainerDecayTicks
	}
	if c.RepairPower == 0 {
		c.RepairPower = d.RepairPower
	}
	if c.EnergyDecay == 0 {
		c.EnergyDecay = d.EnergyDecay
	}
	if c.CarryCapacity == 0 {
		c.CarryCapacity = d.CarryCapacity
	}
	if c.HarvestPower == 0 {
		c.HarvestPower = d.HarvestPower
	}
}
