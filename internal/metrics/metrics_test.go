package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample holds the value of one gathered series.
type sample struct {
	value float64
	count uint64
}

// gather returns the series named name whose labels include want.
func gather(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) sample {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, m := range family.GetMetric() {
			for _, label := range m.GetLabel() {
				if v, ok := want[label.GetName()]; ok && v != label.GetValue() {
					continue metrics
				}
			}
			switch {
			case m.GetCounter() != nil:
				return sample{value: m.GetCounter().GetValue()}
			case m.GetGauge() != nil:
				return sample{value: m.GetGauge().GetValue()}
			case m.GetHistogram() != nil:
				return sample{count: m.GetHistogram().GetSampleCount()}
			}
		}
	}
	t.Fatalf("series %s %v not gathered", name, want)
	return sample{}
}

func TestObserveOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOperation("wipe", nil)
	m.ObserveOperation("wipe", nil)
	m.ObserveOperation("wipe", errors.New("boom"))

	assert.Equal(t, 2.0, gather(t, reg, "leaderboard_operations_total", map[string]string{"op": "wipe", "outcome": OutcomeOK}).value)
	assert.Equal(t, 1.0, gather(t, reg, "leaderboard_operations_total", map[string]string{"op": "wipe", "outcome": OutcomeError}).value)
}

func TestObserveRebuild(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRebuild(time.Now(), 4, 2)

	assert.Equal(t, 4.0, gather(t, reg, "leaderboard_students", nil).value)
	assert.Equal(t, 2.0, gather(t, reg, "leaderboard_competitions", nil).value)
	assert.Equal(t, uint64(1), gather(t, reg, "leaderboard_rebuild_duration_seconds", nil).count)
}

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("/leaderboard.v1.LeaderboardService/Wipe", "ok")

	assert.Equal(t, 1.0, gather(t, reg, "leaderboard_rpc_requests_total",
		map[string]string{"procedure": "/leaderboard.v1.LeaderboardService/Wipe", "code": "ok"}).value)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("wipe", nil)
		m.ObserveRebuild(time.Now(), 1, 1)
		m.ObserveRequest("/x", "ok")
	})
}
