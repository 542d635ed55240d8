package install

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/clusterup/internal/config"
)

// Metrics records run, phase and task outcomes. A nil *Metrics records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal     *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
	tasksTotal    *prometheus.CounterVec
}

// NewMetrics creates metrics registered on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "clusterup",
				Subsystem: "install",
				Name:      "runs_total",
				Help:      "Total number of install runs by method and result",
			},
			[]string{"method", "result"},
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "clusterup",
				Subsystem: "install",
				Name:      "phase_duration_seconds",
				Help:      "Duration of install phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~1h
			},
			[]string{"phase", "result"},
		),
		tasksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "clusterup",
				Subsystem: "install",
				Name:      "tasks_total",
				Help:      "Total number of per-machine tasks by kind, role and result",
			},
			[]string{"kind", "role", "result"},
		),
	}
	m.registry.MustRegister(m.runsTotal, m.phaseDuration, m.tasksTotal)
	return m
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

func (m *Metrics) recordRun(method config.InstallMethod, err error) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(string(method), result(err)).Inc()
}

func (m *Metrics) recordPhase(phase string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase, result(err)).Observe(d.Seconds())
}

func (m *Metrics) recordTask(kind, role string, err error) {
	if m == nil {
		return
	}
	m.tasksTotal.WithLabelValues(kind, role, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
