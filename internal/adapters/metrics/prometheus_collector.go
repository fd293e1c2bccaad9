package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "colonybot"
	// Subsystem for cycle metrics
	subsystem = "cycle"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalEconomyCollector is the singleton economy metrics collector
	// Set by SetGlobalEconomyCollector() when metrics are enabled
	globalEconomyCollector EconomyMetricsRecorder

	// globalSpawningCollector is the singleton spawning metrics collector
	// Set by SetGlobalSpawningCollector() when metrics are enabled
	globalSpawningCollector SpawningMetricsRecorder
)

// EconomyMetricsRecorder defines the interface for recording demand model events
type EconomyMetricsRecorder interface {
	RecordOutpostAbandoned(colony string, reason string)
	RecordOutpostRemoved(colony string, reason string)
	RecordOutpostFailure(colony string)
	RecordNodeLedger(colony, outpost string, node int, credit, maxIncome float64)
	RecordOutpostNeeds(colony, outpost string, hauler, harvester, reserver int)
}

// SpawningMetricsRecorder defines the interface for recording allocator events
type SpawningMetricsRecorder interface {
	RecordSpawnRequest(colony, role string, tier, cost int)
	RecordStarvation(colony, role string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalEconomyCollector sets the global economy metrics collector
func SetGlobalEconomyCollector(collector EconomyMetricsRecorder) {
	globalEconomyCollector = collector
}

// SetGlobalSpawningCollector sets the global spawning metrics collector
func SetGlobalSpawningCollector(collector SpawningMetricsRecorder) {
	globalSpawningCollector = collector
}

// RecordOutpostAbandoned records an outpost entering abandonment globally
func RecordOutpostAbandoned(colony string, reason string) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordOutpostAbandoned(colony, reason)
	}
}

// RecordOutpostRemoved records an outpost dropped from the ledger globally
func RecordOutpostRemoved(colony string, reason string) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordOutpostRemoved(colony, reason)
	}
}

// RecordOutpostFailure records an outpost that could not be processed globally
func RecordOutpostFailure(colony string) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordOutpostFailure(colony)
	}
}

// RecordNodeLedger records a node's settled ledger values globally
func RecordNodeLedger(colony, outpost string, node int, credit, maxIncome float64) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordNodeLedger(colony, outpost, node, credit, maxIncome)
	}
}

// RecordOutpostNeeds records an outpost's derived worker needs globally
func RecordOutpostNeeds(colony, outpost string, hauler, harvester, reserver int) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordOutpostNeeds(colony, outpost, hauler, harvester, reserver)
	}
}

// RecordSpawnRequest records an emitted production request globally
func RecordSpawnRequest(colony, role string, tier, cost int) {
	if globalSpawningCollector != nil {
		globalSpawningCollector.RecordSpawnRequest(colony, role, tier, cost)
	}
}

// RecordStarvation records a requirement that could not afford any body globally
func RecordStarvation(colony, role string) {
	if globalSpawningCollector != nil {
		globalSpawningCollector.RecordStarvation(colony, role)
	}
}
