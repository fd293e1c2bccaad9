package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SpawningMetricsCollector tracks production requests emitted by the allocator
type SpawningMetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestCost     *prometheus.HistogramVec
	requestTier     *prometheus.HistogramVec
	starvationTotal *prometheus.CounterVec
}

// NewSpawningMetricsCollector creates a new spawning metrics collector
func NewSpawningMetricsCollector() *SpawningMetricsCollector {
	return &SpawningMetricsCollector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "spawning",
				Name:      "requests_total",
				Help:      "Production requests emitted by colony and role",
			},
			[]string{"colony", "role"},
		),
		requestCost: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "spawning",
				Name:      "request_cost",
				Help:      "Energy cost distribution of emitted bodies",
				Buckets:   []float64{200, 300, 550, 800, 1300, 1800, 2300, 5600, 10000},
			},
			[]string{"role"},
		),
		requestTier: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "spawning",
				Name:      "request_tier",
				Help:      "Tier distribution of emitted bodies",
				Buckets:   prometheus.LinearBuckets(1, 3, 10),
			},
			[]string{"role"},
		),
		starvationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "spawning",
				Name:      "starved_total",
				Help:      "Requirements that could not afford a body",
			},
			[]string{"colony", "role"},
		),
	}
}

// Register registers all spawning metrics with the Prometheus registry
func (c *SpawningMetricsCollector) Register() error {
	return register(c.requestsTotal, c.requestCost, c.requestTier, c.starvationTotal)
}

func (c *SpawningMetricsCollector) RecordSpawnRequest(colony, role string, tier, cost int) {
	c.requestsTotal.WithLabelValues(colony, role).Inc()
	c.requestCost.WithLabelValues(role).Observe(float64(cost))
	c.requestTier.WithLabelValues(role).Observe(float64(tier))
}

func (c *SpawningMetricsCollector) RecordStarvation(colony, role string) {
	c.starvationTotal.WithLabelValues(colony, role).Inc()
}
