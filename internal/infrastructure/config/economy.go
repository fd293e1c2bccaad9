package config

import "github.com/andrescamacho/colonybot/internal/domain/economy"

// EconomyConfig holds the tuned constants of the demand model
type EconomyConfig struct {
	RelaxationFactor           float64 `mapstructure:"relaxation_factor" validate:"gt=0,lte=1"`
	PathCheckOneIn             int     `mapstructure:"path_check_one_in" validate:"min=1"`
	ReservationEnergyThreshold int     `mapstructure:"reservation_energy_threshold" validate:"min=0"`
	ReserverBaseline           int     `mapstructure:"reserver_baseline" validate:"min=0"`
	ReservationStepTicks       int     `mapstructure:"reservation_step_ticks" validate:"min=0"`
	ReservationTicksCap        int     `mapstructure:"reservation_ticks_cap" validate:"min=0"`
	AbandonJitter              int     `mapstructure:"abandon_jitter" validate:"min=0"`
	DismantlerCap              int     `mapstructure:"dismantler_cap" validate:"min=0"`
	CoreAttackerPerCore        int     `mapstructure:"core_attacker_per_core" validate:"min=0"`
	SourceCapacity             float64 `mapstructure:"source_capacity" validate:"min=0"`
	SourceRegenTicks           float64 `mapstructure:"source_regen_ticks" validate:"gt=0"`
	ContainerDecay             float64 `mapstructure:"container_decay" validate:"min=0"`
	ContainerDecayTicks        float64 `mapstructure:"container_decay_ticks" validate:"gt=0"`
	RepairPower                float64 `mapstructure:"repair_power" validate:"gt=0"`
	EnergyDecay                float64 `mapstructure:"energy_decay" validate:"gt=0"`
	CarryCapacity              int     `mapstructure:"carry_capacity" validate:"min=1"`
	HarvestPower               int     `mapstructure:"harvest_power" validate:"min=1"`
}

// Tuning converts the section into the domain's tuning constants
func (c EconomyConfig) Tuning(maxBodySize int) economy.Tuning {
	return economy.Tuning{
		RelaxationFactor:           c.RelaxationFactor,
		PathCheckOneIn:             c.PathCheckOneIn,
		ReservationEnergyThreshold: c.ReservationEnergyThreshold,
		ReserverBaseline:           c.ReserverBaseline,
		ReservationStepTicks:       c.ReservationStepTicks,
		ReservationTicksCap:        c.ReservationTicksCap,
		AbandonJitter:              c.AbandonJitter,
		DismantlerCap:              c.DismantlerCap,
		CoreAttackerPerCore:        c.CoreAttackerPerCore,
		SourceCapacity:             c.SourceCapacity,
		SourceRegenTicks:           c.SourceRegenTicks,
		ContainerDecay:             c.ContainerDecay,
		ContainerDecayTicks:        c.ContainerDecayTicks,
		RepairPower:                c.RepairPower,
		EnergyDecay:                c.EnergyDecay,
		CarryCapacity:              c.CarryCapacity,
		HarvestPower:               c.HarvestPower,
		MaxBodySize:                maxBodySize,
	}
}
