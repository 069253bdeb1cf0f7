package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors. A nil *Metrics is
// safe to use everywhere and records nothing.
type Metrics struct {
	StepRenders         *prometheus.CounterVec
	ValidationFailures  *prometheus.CounterVec
	NavigationDecisions *prometheus.CounterVec
	Completions         *prometheus.CounterVec
	OptionFetchFailures prometheus.Counter
	SubmitDuration      *prometheus.HistogramVec
}

// NewMetrics creates and registers the engine collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StepRenders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwise_step_renders_total",
				Help: "Step views rendered, by form.",
			},
			[]string{"form"},
		),
		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwise_validation_failures_total",
				Help: "Step submissions rejected by validation, by form.",
			},
			[]string{"form"},
		),
		NavigationDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwise_navigation_decisions_total",
				Help: "Routing outcomes after successful submissions, by kind (redirect, completed, terminated).",
			},
			[]string{"form", "kind"},
		),
		Completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwise_completions_total",
				Help: "Wizards completed, by form.",
			},
			[]string{"form"},
		),
		OptionFetchFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "formwise_option_fetch_failures_total",
				Help: "Option source fetches that degraded to an empty list.",
			},
		),
		SubmitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "formwise_submit_duration_seconds",
				Help:    "Time spent handling a step submission.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"form"},
		),
	}

	reg.MustRegister(
		m.StepRenders,
		m.ValidationFailures,
		m.NavigationDecisions,
		m.Completions,
		m.OptionFetchFailures,
		m.SubmitDuration,
	)
	return m
}

// RenderObserved records a step render. Nil-safe.
func (m *Metrics) RenderObserved(form string) {
	if m == nil {
		return
	}
	m.StepRenders.WithLabelValues(form).Inc()
}

// ValidationFailed records a rejected submission. Nil-safe.
func (m *Metrics) ValidationFailed(form string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(form).Inc()
}

// Decided records a routing outcome. Nil-safe.
func (m *Metrics) Decided(form, kind string) {
	if m == nil {
		return
	}
	m.NavigationDecisions.WithLabelValues(form, kind).Inc()
}

// Completed records a finished wizard. Nil-safe.
func (m *Metrics) Completed(form string) {
	if m == nil {
		return
	}
	m.Completions.WithLabelValues(form).Inc()
}

// OptionFetchFailed records a degraded option fetch. Nil-safe.
func (m *Metrics) OptionFetchFailed() {
	if m == nil {
		return
	}
	m.OptionFetchFailures.Inc()
}

// ObserveSubmit records the duration of a submission. Nil-safe.
func (m *Metrics) ObserveSubmit(form string, seconds float64) {
	if m == nil {
		return
	}
	m.SubmitDuration.WithLabelValues(form).Observe(seconds)
}
