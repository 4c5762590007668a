package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomagicln/propcheck/pkg/logging"
	"github.com/nomagicln/propcheck/pkg/property"
)

func TestCollector_Events(t *testing.T) {
	c := NewCollector()

	c.TrialPassed("p")
	c.TrialPassed("p")
	c.TrialRejected("p", "label")
	c.TrialFailed("p", property.Failure{Evaluated: 12})
	c.RunFinished(property.Result{Name: "p", Status: property.StatusFailed, Duration: 20 * time.Millisecond})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.TrialsTotal.WithLabelValues("p", "passed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.TrialsTotal.WithLabelValues("p", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.TrialsTotal.WithLabelValues("p", "failed")))
	assert.Equal(t, 12.0, testutil.ToFloat64(c.ShrinkEvaluationsTotal.WithLabelValues("p")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RunsTotal.WithLabelValues("p", "failed")))
}

func TestCollector_ObservesARun(t *testing.T) {
	c := NewCollector()
	identity := func(x int) int { return x }

	res := property.TestThat1(identity, "be even").
		Named("identity").
		Proving(func(r int) bool { return r%2 == 0 }).
		WithSeed(1).
		WithLogger(logging.Discard()).
		WithObserver(c).
		Execute()

	assert.Equal(t, float64(res.Passed), testutil.ToFloat64(c.TrialsTotal.WithLabelValues("identity", "passed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RunsTotal.WithLabelValues("identity", "failed")))
	assert.Equal(t, float64(res.Failures[0].Evaluated), testutil.ToFloat64(c.ShrinkEvaluationsTotal.WithLabelValues("identity")))
}

func TestCollector_WriteText(t *testing.T) {
	c := NewCollector()
	c.RunFinished(property.Result{Name: "p", Status: property.StatusPassed})

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	assert.Contains(t, buf.String(), `propcheck_runs_total{status="passed",test="p"} 1`)
	assert.Contains(t, buf.String(), "# TYPE propcheck_run_duration_seconds histogram")
}

func TestCollectors_AreIndependent(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.TrialPassed("x")
	assert.Equal(t, 0, testutil.CollectAndCount(b.TrialsTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(a.TrialsTotal))
}
