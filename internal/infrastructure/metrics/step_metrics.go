package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "travel_assistant"

// StepMetrics records provider call outcomes and latencies.
// It implements services.StepObserver.
type StepMetrics struct {
	registry *prometheus.Registry

	steps    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
}

// NewStepMetrics creates the collectors and registers them on a fresh registry
// together with the Go runtime and process collectors.
func NewStepMetrics() *StepMetrics {
	m := &StepMetrics{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "step_total",
				Help:      "Provider calls by workflow step and outcome",
			},
			[]string{"step", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "step_duration_seconds",
				Help:      "Duration of provider calls by workflow step",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"step"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Itinerary workflow runs by whether any step degraded",
			},
			[]string{"degraded"},
		),
	}

	m.registry.MustRegister(
		m.steps,
		m.duration,
		m.runs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveStep records one provider call.
func (m *StepMetrics) ObserveStep(step, outcome string, seconds float64) {
	m.steps.WithLabelValues(step, outcome).Inc()
	if seconds > 0 {
		m.duration.WithLabelValues(step).Observe(seconds)
	}
}

// ObserveRun records one completed workflow run.
func (m *StepMetrics) ObserveRun(degraded bool) {
	label := "false"
	if degraded {
		label = "true"
	}
	m.runs.WithLabelValues(label).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *StepMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
