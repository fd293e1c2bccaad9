package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// EconomyMetricsCollector exposes the state of the outpost ledgers
type EconomyMetricsCollector struct {
	abandonedTotal *prometheus.CounterVec
	removedTotal   *prometheus.CounterVec
	failuresTotal  *prometheus.CounterVec

	nodeCredit    *prometheus.GaugeVec
	nodeMaxIncome *prometheus.GaugeVec

	haulerNeed    *prometheus.GaugeVec
	harvesterNeed *prometheus.GaugeVec
	reserverNeed  *prometheus.GaugeVec
}

// NewEconomyMetricsCollector creates a new economy metrics collector
func NewEconomyMetricsCollector() *EconomyMetricsCollector {
	return &EconomyMetricsCollector{
		abandonedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "economy",
				Name:      "outposts_abandoned_total",
				Help:      "Outposts put into abandonment by colony and reason",
			},
			[]string{"colony", "reason"},
		),
		removedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "economy",
				Name:      "outposts_removed_total",
				Help:      "Outposts dropped from the ledger by colony and reason",
			},
			[]string{"colony", "reason"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "economy",
				Name:      "outpost_failures_total",
				Help:      "Outposts whose cycle was aborted",
			},
			[]string{"colony"},
		),

		nodeCredit: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "economy",
				Name:      "node_credit",
				Help:      "Accumulated credit per resource node",
			},
			[]string{"colony", "outpost", "node"},
		),
		nodeMaxIncome: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "economy",
				Name:      "node_max_income",
				Help:      "Income ceiling per resource node for the last cycle",
			},
			[]string{"colony", "outpost", "node"},
		),

		haulerNeed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "economy",
				Name:      "outpost_hauler_need",
				Help:      "Carry parts needed by an outpost",
			},
			[]string{"colony", "outpost"},
		),
		harvesterNeed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "economy",
				Name:      "outpost_harvester_need",
				Help:      "Work parts needed by an outpost",
			},
			[]string{"colony", "outpost"},
		),
		reserverNeed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "economy",
				Name:      "outpost_reserver_need",
				Help:      "Claim parts needed by an outpost",
			},
			[]string{"colony", "outpost"},
		),
	}
}

// Register registers all economy metrics with the Prometheus registry
func (c *EconomyMetricsCollector) Register() error {
	return register(
		c.abandonedTotal,
		c.removedTotal,
		c.failuresTotal,
		c.nodeCredit,
		c.nodeMaxIncome,
		c.haulerNeed,
		c.harvesterNeed,
		c.reserverNeed,
	)
}

func (c *EconomyMetricsCollector) RecordOutpostAbandoned(colony string, reason string) {
	c.abandonedTotal.WithLabelValues(colony, reason).Inc()
}

func (c *EconomyMetricsCollector) RecordOutpostRemoved(colony string, reason string) {
	c.removedTotal.WithLabelValues(colony, reason).Inc()
}

func (c *EconomyMetricsCollector) RecordOutpostFailure(colony string) {
	c.failuresTotal.WithLabelValues(colony).Inc()
}

func (c *EconomyMetricsCollector) RecordNodeLedger(colony, outpost string, node int, credit, maxIncome float64) {
	index := strconv.Itoa(node)
	c.nodeCredit.WithLabelValues(colony, outpost, index).Set(credit)
	c.nodeMaxIncome.WithLabelValues(colony, outpost, index).Set(maxIncome)
}

func (c *EconomyMetricsCollector) RecordOutpostNeeds(colony, outpost string, hauler, harvester, reserver int) {
	c.haulerNeed.WithLabelValues(colony, outpost).Set(float64(hauler))
	c.harvesterNeed.WithLabelValues(colony, outpost).Set(float64(harvester))
	c.reserverNeed.WithLabelValues(colony, outpost).Set(float64(reserver))
}
