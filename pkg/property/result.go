package property

import (
	"fmt"
	"time"
)

// Status is the overall outcome of a run.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusExhausted
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusExhausted:
		return "exhausted"
	case StatusInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Failure describes one invariant violation, after minimization when enabled.
type Failure struct {
	// Original is the generated failing argument list.
	Original string
	// Arguments is the reported argument list, minimized when enabled.
	Arguments string
	// Result is the function's result for Arguments.
	Result string
	// Evaluated counts candidates re-run while minimizing.
	Evaluated int
	// Message is the text handed to the failure reporter.
	Message string
}

// Result is the structured outcome of one run. Invalid is set when the run
// configuration was rejected before any trial.
type Result struct {
	Name      string
	Invariant string
	Seed      uint64
	Status    Status

	Target   int
	MaxTests int
	Attempts int
	Passed   int
	Rejected int

	Failures  []Failure
	Exhausted *ExhaustedError
	Invalid   error
	Duration  time.Duration
}

// OK reports whether the property held.
func (r Result) OK() bool {
	return r.Status == StatusPassed
}

// Messages returns the reporter payloads of the run: the success message when
// the property held, otherwise one message per failure or the exhaustion message.
func (r Result) Messages() []string {
	switch r.Status {
	case StatusPassed:
		return []string{successMessage(r.Name, r.Invariant)}
	case StatusExhausted:
		return []string{r.Exhausted.Error()}
	case StatusInvalid:
		return []string{r.Invalid.Error()}
	default:
		out := make([]string, len(r.Failures))
		for i, f := range r.Failures {
			out[i] = f.Message
		}
		return out
	}
}
