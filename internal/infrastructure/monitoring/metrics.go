package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeOK labels successful imports and calls.
const OutcomeOK = "ok"

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Import metrics
	Imports        *prometheus.CounterVec
	ImportDuration prometheus.Histogram

	// Call metrics
	Calls        *prometheus.CounterVec
	CallDuration *prometheus.HistogramVec

	// Category metrics
	CategoriesActive prometheus.Gauge
}

// NewMetrics creates a new metrics collector on its own registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		Imports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launcher_script_imports_total",
				Help: "Total number of script module imports",
			},
			[]string{"outcome"},
		),
		ImportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "launcher_script_import_duration_seconds",
				Help:    "Script module import duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),

		Calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launcher_script_calls_total",
				Help: "Total number of calls into script modules",
			},
			[]string{"function", "outcome"},
		),
		CallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "launcher_script_call_duration_seconds",
				Help:    "Script call duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"function"},
		),

		CategoriesActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "launcher_categories_active",
				Help: "Number of script-backed categories currently open",
			},
		),
	}
}

// Registry returns the registry the collectors are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordImport records a module import
func (m *Metrics) RecordImport(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Imports.WithLabelValues(outcome).Inc()
	m.ImportDuration.Observe(duration.Seconds())
}

// RecordCall records a call into a script function
func (m *Metrics) RecordCall(function, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Calls.WithLabelValues(function, outcome).Inc()
	m.CallDuration.WithLabelValues(function).Observe(duration.Seconds())
}

// IncCategoriesActive increments the open category gauge
func (m *Metrics) IncCategoriesActive() {
	if m == nil {
		return
	}
	m.CategoriesActive.Inc()
}

// DecCategoriesActive decrements the open category gauge
func (m *Metrics) DecCategoriesActive() {
	if m == nil {
		return
	}
	m.CategoriesActive.Dec()
}

// Timer measures a script call
type Timer struct {
	start    time.Time
	metrics  *Metrics
	function string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, function string) *Timer {
	return &Timer{
		start:    time.Now(),
		metrics:  metrics,
		function: function,
	}
}

// Stop stops the timer and records the call
func (t *Timer) Stop(outcome string) {
	t.metrics.RecordCall(t.function, outcome, time.Since(t.start))
}
