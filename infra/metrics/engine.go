package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records scheduling engine activity in Prometheus collectors.
type EngineMetrics struct {
	plansGenerated       prometheus.Counter
	conflictsDetected    prometheus.Counter
	scenarioRuns         prometheus.Counter
	monteCarloIterations prometheus.Counter
	computeLatency       *prometheus.HistogramVec
}

// NewEngineMetrics registers the engine collectors on reg. A nil registerer
// defaults to the global Prometheus registerer.
func NewEngineMetrics(reg prometheus.Registerer) (*EngineMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &EngineMetrics{
		plansGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "takt_plans_generated_total",
			Help: "Number of takt grids generated",
		}),
		conflictsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "takt_conflicts_detected_total",
			Help: "Number of trade-stacking conflicts reported",
		}),
		scenarioRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "takt_scenario_runs_total",
			Help: "Number of what-if scenario evaluations",
		}),
		monteCarloIterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "takt_montecarlo_iterations_total",
			Help: "Number of Monte Carlo iterations executed",
		}),
		computeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "takt_compute_latency_seconds",
			Help:    "Latency of engine computations by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	for _, c := range []prometheus.Collector{
		m.plansGenerated, m.conflictsDetected, m.scenarioRuns,
		m.monteCarloIterations, m.computeLatency,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return m, nil
}

// PlanGenerated counts one grid generation.
func (m *EngineMetrics) PlanGenerated() {
	if m != nil {
		m.plansGenerated.Inc()
	}
}

// ConflictsDetected counts reported stacking conflicts.
func (m *EngineMetrics) ConflictsDetected(n int) {
	if m != nil && n > 0 {
		m.conflictsDetected.Add(float64(n))
	}
}

// ScenarioRun counts one what-if evaluation.
func (m *EngineMetrics) ScenarioRun() {
	if m != nil {
		m.scenarioRuns.Inc()
	}
}

// MonteCarloIterations counts executed iterations.
func (m *EngineMetrics) MonteCarloIterations(n int) {
	if m != nil {
		m.monteCarloIterations.Add(float64(n))
	}
}

// ObserveLatency records the duration of one operation.
func (m *EngineMetrics) ObserveLatency(operation string, d time.Duration) {
	if m != nil {
		m.computeLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
