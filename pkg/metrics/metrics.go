// Package metrics exports property run statistics as Prometheus metrics.
//
// A Collector observes runs through the property.Observer hooks. Each
// Collector owns its registry, so several can live in one process.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/nomagicln/propcheck/pkg/property"
)

const namespace = "propcheck"

// Collector records trial and run outcomes.
type Collector struct {
	property.BaseObserver

	registry *prometheus.Registry

	// RunsTotal counts finished runs. Labels: test, status.
	RunsTotal *prometheus.CounterVec

	// TrialsTotal counts decided and rejected trials. Labels: test, outcome.
	TrialsTotal *prometheus.CounterVec

	// ShrinkEvaluationsTotal counts candidates re-run while minimizing. Labels: test.
	ShrinkEvaluationsTotal *prometheus.CounterVec

	// RunDurationSeconds measures whole runs. Labels: test.
	RunDurationSeconds *prometheus.HistogramVec
}

// NewCollector creates a Collector registered on a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of property runs by test and status",
			},
			[]string{"test", "status"},
		),
		TrialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trials_total",
				Help:      "Total number of trials by test and outcome",
			},
			[]string{"test", "outcome"},
		),
		ShrinkEvaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "shrink",
				Name:      "evaluations_total",
				Help:      "Total number of candidates evaluated while minimizing",
			},
			[]string{"test"},
		),
		RunDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of property runs in seconds",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"test"},
		),
	}
	c.registry.MustRegister(c.RunsTotal, c.TrialsTotal, c.ShrinkEvaluationsTotal, c.RunDurationSeconds)
	return c
}

// Registry exposes the collector's registry, e.g. for promhttp.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) TrialRejected(name, _ string) {
	c.TrialsTotal.WithLabelValues(name, "rejected").Inc()
}

func (c *Collector) TrialPassed(name string) {
	c.TrialsTotal.WithLabelValues(name, "passed").Inc()
}

func (c *Collector) TrialFailed(name string, failure property.Failure) {
	c.TrialsTotal.WithLabelValues(name, "failed").Inc()
	c.ShrinkEvaluationsTotal.WithLabelValues(name).Add(float64(failure.Evaluated))
}

func (c *Collector) RunFinished(result property.Result) {
	c.RunsTotal.WithLabelValues(result.Name, result.Status.String()).Inc()
	c.RunDurationSeconds.WithLabelValues(result.Name).Observe(result.Duration.Seconds())
}

// WriteText writes every metric in the Prometheus text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
