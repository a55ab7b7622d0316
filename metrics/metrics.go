// Package metrics records translation runs for node_exporter's textfile
// collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"motion2constatus/translate"
)

const namespace = "motion2constatus"

type Metrics struct {
	registry *prometheus.Registry

	translated  prometheus.Counter
	failures    *prometheus.CounterVec
	lastSuccess prometheus.Gauge
	duration    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		translated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_translated_total",
			Help:      "Motion configuration files translated and written.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Aborted translation runs by failure kind.",
		}, []string{"kind"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that completed without error.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last translation run.",
		}),
	}
	m.registry.MustRegister(m.translated, m.failures, m.lastSuccess, m.duration)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Translated(src, out string) {
	m.translated.Inc()
}

func (m *Metrics) Failed(src string, err error) {
	m.failures.WithLabelValues(translate.Kind(err)).Inc()
}

// RunFinished records the end of a run that started at start.
func (m *Metrics) RunFinished(start time.Time, err error) {
	now := time.Now()
	m.duration.Set(now.Sub(start).Seconds())
	if err == nil {
		m.lastSuccess.Set(float64(now.Unix()))
	}
}

// WriteTextfile atomically writes the current values to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
