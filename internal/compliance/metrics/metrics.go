package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance module.
type Metrics struct {
	// Evaluations by outcome ("clean", "violations")
	Evaluations *prometheus.CounterVec

	// Violations found, by type and severity
	Violations *prometheus.CounterVec

	// Rule-set cache lookups by result ("hit", "miss", "error")
	RuleSetCacheLookups *prometheus.CounterVec

	// Full evaluation latency including entry loading
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance with all compliance metrics registered.
func New() *Metrics {
	return &Metrics{
		Evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shiftwise_compliance_evaluations_total",
			Help: "Total compliance evaluations by outcome",
		}, []string{"outcome"}),

		Violations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shiftwise_compliance_violations_total",
			Help: "Total violations detected by type and severity",
		}, []string{"type", "severity"}),

		RuleSetCacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shiftwise_compliance_ruleset_cache_lookups_total",
			Help: "Rule-set cache lookups by result",
		}, []string{"result"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shiftwise_compliance_evaluate_duration_seconds",
			Help:    "Duration of full compliance evaluation including entry loading",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementEvaluation records an evaluation outcome.
func (m *Metrics) IncrementEvaluation(outcome string) {
	if m != nil {
		m.Evaluations.WithLabelValues(outcome).Inc()
	}
}

// IncrementViolation records a detected violation.
func (m *Metrics) IncrementViolation(violationType, severity string) {
	if m != nil {
		m.Violations.WithLabelValues(violationType, severity).Inc()
	}
}

// IncrementCacheLookup records a rule-set cache lookup result.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.RuleSetCacheLookups.WithLabelValues(result).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
