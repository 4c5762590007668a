package property

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/nomagicln/propcheck/pkg/args"
	"github.com/nomagicln/propcheck/pkg/config"
	"github.com/nomagicln/propcheck/pkg/constraint"
	"github.com/nomagicln/propcheck/pkg/gen"
	"github.com/nomagicln/propcheck/pkg/logging"
	"github.com/nomagicln/propcheck/pkg/shrink"
)

// Runnable is a fully declared property plus its run configuration.
type Runnable[A args.Tuple, R any] struct {
	name        string
	will        string
	model       args.Model[A]
	call        func(A) R
	constraints constraint.Set[A]
	holds       func(A, R) bool

	cfg       config.RunConfig
	rand      *gen.Rand
	logger    *logging.Logger
	observers observers
}

func newRunnable[A args.Tuple, R any](name, will string, model args.Model[A], call func(A) R, constraints constraint.Set[A], holds func(A, R) bool) *Runnable[A, R] {
	return &Runnable[A, R]{
		name:        name,
		will:        will,
		model:       model,
		call:        call,
		constraints: constraints,
		holds:       holds,
		cfg:         config.Default(),
		logger:      logging.New(logging.Failures, logging.WriterSink(os.Stdout)),
	}
}

// MinimumNumberOfTests sets how many trials must pass.
func (r *Runnable[A, R]) MinimumNumberOfTests(n int) *Runnable[A, R] {
	r.cfg.MinimumTests = n
	return r
}

// Log sets the verbosity.
func (r *Runnable[A, R]) Log(level logging.Level) *Runnable[A, R] {
	r.cfg.LogLevel = level
	return r
}

// ContinueAfterFailure keeps running trials after a failure.
func (r *Runnable[A, R]) ContinueAfterFailure() *Runnable[A, R] {
	r.cfg.ContinueAfterFailure = true
	return r
}

// MinimizeFailingCases enables or disables shrinking.
func (r *Runnable[A, R]) MinimizeFailingCases(minimize bool) *Runnable[A, R] {
	r.cfg.Minimize = minimize
	return r
}

// MaximumMinimizationDepth bounds the shrink search.
func (r *Runnable[A, R]) MaximumMinimizationDepth(depth int) *Runnable[A, R] {
	r.cfg.MaxMinimizationDepth = depth
	return r
}

// WithSeed makes the run reproducible.
func (r *Runnable[A, R]) WithSeed(seed uint64) *Runnable[A, R] {
	r.cfg.Seed = seed
	return r
}

// WithRand draws from rng instead of a freshly seeded source. It takes
// precedence over WithSeed.
func (r *Runnable[A, R]) WithRand(rng *gen.Rand) *Runnable[A, R] {
	r.rand = rng
	return r
}

// WithLogger routes log messages to l and adopts its level.
func (r *Runnable[A, R]) WithLogger(l *logging.Logger) *Runnable[A, R] {
	r.logger = l
	r.cfg.LogLevel = l.Level()
	return r
}

// WithObserver adds a trial event observer.
func (r *Runnable[A, R]) WithObserver(o Observer) *Runnable[A, R] {
	r.observers = append(r.observers, o)
	return r
}

// WithConfig replaces the whole run configuration.
func (r *Runnable[A, R]) WithConfig(cfg config.RunConfig) *Runnable[A, R] {
	r.cfg = cfg
	return r
}

// Name returns the test name.
func (r *Runnable[A, R]) Name() string {
	return r.name
}

// Run executes the property and hands every failure message to onFailure.
// It reports whether the property held.
func (r *Runnable[A, R]) Run(onFailure func(string)) bool {
	result := r.Execute()
	if !result.OK() {
		for _, msg := range result.Messages() {
			onFailure(msg)
		}
	}
	return result.OK()
}

// RunOnSuccess executes the property and calls onSuccess only when it held.
// Failures still reach the log sink.
func (r *Runnable[A, R]) RunOnSuccess(onSuccess func(string)) bool {
	result := r.Execute()
	if result.OK() {
		onSuccess(successMessage(result.Name, result.Invariant))
	}
	return result.OK()
}

// Check runs the property inside a Go test, failing t on every failure.
func (r *Runnable[A, R]) Check(t testing.TB) {
	t.Helper()
	result := r.Execute()
	if result.OK() {
		return
	}
	for _, msg := range result.Messages() {
		t.Error(msg)
	}
	if result.Status != StatusInvalid {
		t.Logf("replay with seed %d", result.Seed)
	}
}

// Execute runs the trial loop and returns the structured outcome.
func (r *Runnable[A, R]) Execute() Result {
	if err := r.cfg.Validate(); err != nil {
		return r.invalid(err)
	}

	start := time.Now()
	rng := r.source()
	log := r.logger.WithLevel(r.cfg.LogLevel)
	result := Result{
		Name:      r.name,
		Invariant: r.will,
		Seed:      rng.Seed(),
		Target:    r.cfg.MinimumTests,
		MaxTests:  r.cfg.MaxTests(),
	}
	r.observers.runStarted(r.name, result.Seed)

	generator := r.constraints.Generator(r.model.Gen())
	decided := 0
	for result.Attempts < result.MaxTests && decided < result.Target {
		result.Attempts++
		arguments := generator.Another(rng)

		var rejected *RejectedError
		var violated *InvariantError
		err := r.trial(arguments)
		switch {
		case err == nil:
			decided++
			result.Passed++
			r.observers.trialPassed(r.name)
			log.Logf(logging.All, "Test %s passed with %s", r.name, args.Format(arguments))
		case errors.As(err, &rejected):
			result.Rejected++
			r.observers.trialRejected(r.name, rejected.Constraint)
			log.Logf(logging.All, "%s", rejected.Error())
		case errors.As(err, &violated):
			decided++
			failure := r.report(rng, log, arguments, violated)
			result.Failures = append(result.Failures, failure)
			r.observers.trialFailed(r.name, failure)
			log.Logf(logging.Failures, "%s", failure.Message)
		}

		if len(result.Failures) > 0 && !r.cfg.ContinueAfterFailure {
			break
		}
	}

	switch {
	case len(result.Failures) > 0:
		result.Status = StatusFailed
	case decided < result.Target:
		result.Status = StatusExhausted
		result.Exhausted = &ExhaustedError{Test: r.name, Attempts: result.Attempts}
		log.Logf(logging.Failures, "%s", result.Exhausted.Error())
	default:
		result.Status = StatusPassed
		log.Logf(logging.Successes, "%s", successMessage(r.name, r.will))
	}

	result.Duration = time.Since(start)
	r.observers.runFinished(result)
	return result
}

// invalid reports a configuration that cannot run as a failed result.
func (r *Runnable[A, R]) invalid(err error) Result {
	result := Result{
		Name:      r.name,
		Invariant: r.will,
		Status:    StatusInvalid,
		Target:    r.cfg.MinimumTests,
		Invalid:   fmt.Errorf("test %s cannot run: %w", r.name, err),
	}
	r.observers.runStarted(r.name, 0)
	r.logger.WithLevel(logging.Failures).Logf(logging.Failures, "%s", result.Invalid.Error())
	r.observers.runFinished(result)
	return result
}

func (r *Runnable[A, R]) source() *gen.Rand {
	switch {
	case r.rand != nil:
		return r.rand
	case r.cfg.Seed != 0:
		return gen.NewRand(r.cfg.Seed)
	default:
		return gen.NewRand(gen.Default().Uint64())
	}
}

// trial decides one argument list.
func (r *Runnable[A, R]) trial(arguments A) error {
	if c, rejected := r.constraints.Rejection(arguments); rejected {
		return &RejectedError{Test: r.name, Arguments: args.Format(arguments), Constraint: c.String()}
	}
	outcome, ok := r.observe(arguments)
	if ok {
		return nil
	}
	return &InvariantError{Test: r.name, Arguments: args.Format(arguments), Result: outcome, Invariant: r.will}
}

// observe calls the function and checks the invariant. A panic in either
// counts as a violation.
func (r *Runnable[A, R]) observe(arguments A) (outcome string, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			outcome = fmt.Sprintf("panic(%v)", p)
			ok = false
		}
	}()
	res := r.call(arguments)
	return fmt.Sprintf("%#v", res), r.holds(arguments, res)
}

// report minimizes a failing argument list when enabled and renders the failure.
func (r *Runnable[A, R]) report(rng *gen.Rand, log *logging.Logger, failing A, violated *InvariantError) Failure {
	failure := Failure{
		Original:  violated.Arguments,
		Arguments: violated.Arguments,
		Result:    violated.Result,
		Message:   violated.Error(),
	}
	if !r.cfg.Minimize {
		return failure
	}

	log.Logf(logging.All, "Minimizing failing arguments of %s", r.name)
	m := shrink.New(
		func(a A) bool {
			_, ok := r.observe(a)
			return ok
		},
		r.model,
		shrink.WithConstraints(r.constraints),
		shrink.WithMaxDepth[A](r.cfg.MaxMinimizationDepth),
		shrink.WithRand[A](rng),
		shrink.WithLogger[A](log),
	)
	minimized := m.Minimize(failing)
	outcome, _ := r.observe(minimized)

	minimal := &InvariantError{Test: r.name, Arguments: args.Format(minimized), Result: outcome, Invariant: r.will}
	failure.Arguments = minimal.Arguments
	failure.Result = minimal.Result
	failure.Message = minimal.Error()
	failure.Evaluated = m.Evaluated()
	return failure
}
