package cli

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nomagicln/propcheck/pkg/history"
	"github.com/nomagicln/propcheck/pkg/property"
)

func TestRenderer_Result(t *testing.T) {
	t.Run("passed", func(t *testing.T) {
		var buf bytes.Buffer
		NewPlainRenderer(&buf).Result(property.Result{
			Name: "p", Invariant: "hold", Status: property.StatusPassed, Passed: 3, Attempts: 4, Rejected: 1,
		})
		out := buf.String()
		assert.Contains(t, out, "PASS p\n")
		assert.Contains(t, out, "3 passed, 1 rejected, 0 failed in 4 attempts")
		assert.Contains(t, out, "p did not fail to hold")
		assert.NotContains(t, out, "replay")
	})

	t.Run("failed", func(t *testing.T) {
		var buf bytes.Buffer
		NewPlainRenderer(&buf).Result(property.Result{
			Name:   "p",
			Status: property.StatusFailed,
			Seed:   9,
			Failures: []property.Failure{
				{Original: "(40)", Arguments: "(1)", Evaluated: 6, Message: "Test p failed; (1) -> 1 did not hold"},
				{Original: "(3)", Arguments: "(3)", Message: "Test p failed; (3) -> 3 did not hold"},
			},
			Duration: 1500 * time.Microsecond,
		})
		out := buf.String()
		assert.Contains(t, out, "FAIL p\n")
		assert.Contains(t, out, "Test p failed; (1) -> 1 did not hold")
		assert.Contains(t, out, "shrunk from (40) (6 candidates evaluated)")
		assert.NotContains(t, out, "shrunk from (3)")
		assert.Contains(t, out, "replay with --seed 9")
		assert.Contains(t, out, "1.5ms")
	})

	t.Run("exhausted", func(t *testing.T) {
		var buf bytes.Buffer
		NewPlainRenderer(&buf).Result(property.Result{
			Name:      "p",
			Status:    property.StatusExhausted,
			Exhausted: &property.ExhaustedError{Test: "p", Attempts: 10},
		})
		assert.Contains(t, buf.String(), "EXHAUSTED p\n")
		assert.Contains(t, buf.String(), "even after 10 attempts")
	})

	t.Run("invalid", func(t *testing.T) {
		var buf bytes.Buffer
		NewPlainRenderer(&buf).Result(property.Result{
			Name:    "p",
			Status:  property.StatusInvalid,
			Invalid: errors.New("test p cannot run: minimum_tests must be at least 1"),
		})
		assert.Contains(t, buf.String(), "INVALID p\n")
		assert.Contains(t, buf.String(), "minimum_tests must be at least 1")
		assert.NotContains(t, buf.String(), "replay")
	})
}

func TestRenderer_Summary(t *testing.T) {
	var buf bytes.Buffer
	NewPlainRenderer(&buf).Summary([]property.Result{
		{Status: property.StatusPassed},
		{Status: property.StatusFailed},
	})
	assert.Equal(t, "\n1/2 properties held\n", buf.String())
}

func TestRenderer_List(t *testing.T) {
	var buf bytes.Buffer
	NewPlainRenderer(&buf).List([]string{"a", "long-name"}, []string{"first", "second"})
	assert.Equal(t, "Properties\n  a          first\n  long-name  second\n", buf.String())
}

func TestRenderer_History(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainRenderer(&buf)

	r.History(nil)
	assert.Equal(t, "No runs recorded.\n", buf.String())

	buf.Reset()
	r.History([]history.Entry{{
		Test: "p", Status: "failed", Seed: 5, Passed: 2, Failures: 1,
		RecordedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local),
	}})
	assert.Contains(t, buf.String(), "2024-03-01 12:00:00  FAILED    p  seed=5 passed=2 rejected=0 failures=1")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	assert.False(t, IsTerminal(f))
	assert.False(t, NewRenderer(f).color)
}
