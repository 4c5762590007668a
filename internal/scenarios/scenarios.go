// Package scenarios holds the built-in demonstration properties run by the CLI.
package scenarios

import (
	"fmt"
	"sort"

	"github.com/nomagicln/propcheck/pkg/args"
	"github.com/nomagicln/propcheck/pkg/config"
	"github.com/nomagicln/propcheck/pkg/constraint"
	"github.com/nomagicln/propcheck/pkg/logging"
	"github.com/nomagicln/propcheck/pkg/property"
)

// Options configures a scenario run.
type Options struct {
	Config    config.RunConfig
	Logger    *logging.Logger
	Observers []property.Observer

	// Reject is an optional joint constraint expression, see constraint.ParseExpression.
	Reject string
}

// Scenario is a named, runnable property.
type Scenario struct {
	Name      string
	Invariant string
	// ExpectFailure marks scenarios that demonstrate a failing property.
	ExpectFailure bool

	run func(Options) (property.Result, error)
}

// Run executes the scenario.
func (s Scenario) Run(opts Options) (property.Result, error) {
	return s.run(opts)
}

var registry = map[string]Scenario{}

func register(s Scenario) {
	if _, exists := registry[s.Name]; exists {
		panic(fmt.Sprintf("scenarios: duplicate scenario %q", s.Name))
	}
	registry[s.Name] = s
}

// Lookup returns the scenario called name.
func Lookup(name string) (Scenario, bool) {
	s, ok := registry[name]
	return s, ok
}

// All returns every scenario sorted by name.
func All() []Scenario {
	out := make([]Scenario, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every scenario name, sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}

// prepare applies the --reject expression to a declared test.
func prepare[A args.Tuple, T, R, M any](t *property.Test[A, T, R, M], opts Options) (*property.Test[A, T, R, M], error) {
	if opts.Reject == "" {
		return t, nil
	}
	c, err := constraint.Expression[A](opts.Reject)
	if err != nil {
		return nil, err
	}
	return t.WithConstraint(func(M) constraint.Constraint[A] { return c }), nil
}

// execute applies run options and runs.
func execute[A args.Tuple, R any](r *property.Runnable[A, R], opts Options) property.Result {
	r.WithConfig(opts.Config)
	if opts.Logger != nil {
		r.WithLogger(opts.Logger.WithLevel(opts.Config.LogLevel))
	}
	for _, o := range opts.Observers {
		r.WithObserver(o)
	}
	return r.Execute()
}
