package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonybot/internal/adapters/metrics"
	"github.com/andrescamacho/colonybot/internal/application/mediator"
)

type sampleCommand struct{}

func counterValue(t *testing.T, family, command, status string) float64 {
	t.Helper()
	families, err := metrics.GetRegistry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["command"] == command && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	middleware := metrics.PrometheusMiddleware(collector)

	ok := func(ctx context.Context, r mediator.Request) (mediator.Response, error) { return "done", nil }
	fail := func(ctx context.Context, r mediator.Request) (mediator.Response, error) { return nil, errors.New("boom") }

	// Act
	resp, err := middleware(context.Background(), &sampleCommand{}, ok)
	require.NoError(t, err)
	_, failErr := middleware(context.Background(), &sampleCommand{}, fail)

	// Assert
	assert.Equal(t, "done", resp)
	assert.EqualError(t, failErr, "boom")
	assert.Equal(t, 1.0, counterValue(t, "colonybot_cycle_commands_total", "sampleCommand", "success"))
	assert.Equal(t, 1.0, counterValue(t, "colonybot_cycle_commands_total", "sampleCommand", "error"))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	// Arrange
	middleware := metrics.PrometheusMiddleware(nil)
	called := false

	// Act
	_, err := middleware(context.Background(), &sampleCommand{}, func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		called = true
		return nil, nil
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRecordFunctions_NoopWithoutCollectors(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.RecordOutpostAbandoned("W1N1", "hostiles")
		metrics.RecordNodeLedger("W1N1", "W1N2", 0, 10, 5)
		metrics.RecordSpawnRequest("W1N1", "hauler", 2, 300)
		metrics.RecordStarvation("W1N1", "hauler")
	})
}

func TestNewServer_RequiresRegistry(t *testing.T) {
	// Arrange
	metrics.Registry = nil

	// Act
	_, err := metrics.NewServer("localhost", 9090, "/metrics")

	// Assert
	assert.Error(t, err)
}
