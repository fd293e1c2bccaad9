package economy

// Tuning holds the constants of the demand model. The defaults mirror the
// host game's published values; the relaxation factor and the path check
// rate are tuned and have no derivation.
type Tuning struct {
	RelaxationFactor           float64
	PathCheckOneIn             int
	ReservationEnergyThreshold int
	ReserverBaseline           int
	ReservationStepTicks       int
	ReservationTicksCap        int
	AbandonJitter              int
	DismantlerCap              int
	CoreAttackerPerCore        int
	SourceCapacity             float64
	SourceRegenTicks           float64
	ContainerDecay             float64
	ContainerDecayTicks        float64
	RepairPower                float64
	EnergyDecay                float64
	CarryCapacity              int
	HarvestPower               int
	MaxBodySize                int
}

// DefaultTuning returns the reference constants
func DefaultTuning() Tuning {
	return Tuning{
		RelaxationFactor:           0.999,
		PathCheckOneIn:             20,
		ReservationEnergyThreshold: 650,
		ReserverBaseline:           5,
		ReservationStepTicks:       5,
		ReservationTicksCap:        2500,
		AbandonJitter:              100,
		DismantlerCap:              8,
		CoreAttackerPerCore:        8,
		SourceCapacity:             1500,
		SourceRegenTicks:           300,
		ContainerDecay:             5000,
		ContainerDecayTicks:        100,
		RepairPower:                100,
		EnergyDecay:                1000,
		CarryCapacity:              50,
		HarvestPower:               2,
		MaxBodySize:                50,
	}
}

// BaselineIncome is the per-tick regeneration of an unreserved node
func (t Tuning) BaselineIncome() float64 {
	if t.SourceRegenTicks <= 0 {
		return 0
	}
	return t.SourceCapacity / t.SourceRegenTicks
}

// ContainerUpkeep is the credit a container costs to repair each tick
func (t Tuning) ContainerUpkeep() float64 {
	denom := t.ContainerDecayTicks * t.RepairPower
	if denom <= 0 {
		return 0
	}
	return t.ContainerDecay / denom
}

// ReservationHorizon is how many reservation ticks must remain before a new
// reservation worker is unnecessary.
func (t Tuning) ReservationHorizon(pathLength int) int {
	horizon := pathLength * t.ReservationStepTicks
	if horizon > t.ReservationTicksCap {
		return t.ReservationTicksCap
	}
	return horizon
}
