// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leaderboard"

// Outcome labels for Operations.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Operations      *prometheus.CounterVec
	RebuildDuration prometheus.Histogram
	Students        prometheus.Gauge
	Competitions    prometheus.Gauge
	Requests        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Leaderboard operations by name and outcome.",
		}, []string{"op", "outcome"}),
		RebuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Time spent rebuilding the roster from the store.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		Students: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "students",
			Help:      "Students in the roster after the last rebuild.",
		}),
		Competitions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "competitions",
			Help:      "Competitions in the catalog after the last rebuild.",
		}),
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC requests by procedure and result code.",
		}, []string{"procedure", "code"}),
	}
}

// ObserveOperation counts one operation.
func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.Operations.WithLabelValues(op, outcome).Inc()
}

// ObserveRebuild records a finished rebuild and the resulting sizes.
func (m *Metrics) ObserveRebuild(start time.Time, students, competitions int) {
	if m == nil {
		return
	}
	m.RebuildDuration.Observe(time.Since(start).Seconds())
	m.Students.Set(float64(students))
	m.Competitions.Set(float64(competitions))
}

// ObserveRequest counts one RPC by procedure and Connect code.
func (m *Metrics) ObserveRequest(procedure, code string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(procedure, code).Inc()
}
