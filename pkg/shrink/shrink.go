// Package shrink searches for a smaller argument list that still fails a property.
//
// The search branches over shrink candidates but never more than depth+1 ways,
// and only spends depth budget when a level makes no progress. Every random
// choice uses the injected Rand, so results replay from a seed.
package shrink

import (
	"github.com/nomagicln/propcheck/pkg/args"
	"github.com/nomagicln/propcheck/pkg/constraint"
	"github.com/nomagicln/propcheck/pkg/gen"
	"github.com/nomagicln/propcheck/pkg/logging"
)

// Minimizer finds a locally minimal failing argument list.
type Minimizer[A args.Tuple] struct {
	passes      func(A) bool
	model       args.Model[A]
	constraints constraint.Set[A]
	maxDepth    int
	rand        *gen.Rand
	log         *logging.Logger

	visited   map[uint64][]A
	evaluated int
}

// Option configures a Minimizer.
type Option[A args.Tuple] func(*Minimizer[A])

// WithConstraints discards candidates the constraints do not admit.
func WithConstraints[A args.Tuple](constraints constraint.Set[A]) Option[A] {
	return func(m *Minimizer[A]) {
		m.constraints = constraints
	}
}

// WithMaxDepth bounds the recursion. Defaults to 3.
func WithMaxDepth[A args.Tuple](depth int) Option[A] {
	return func(m *Minimizer[A]) {
		m.maxDepth = depth
	}
}

// WithRand sets the random source used for strategies and tie-breaks.
func WithRand[A args.Tuple](r *gen.Rand) Option[A] {
	return func(m *Minimizer[A]) {
		m.rand = r
	}
}

// WithLogger traces the search at the All level.
func WithLogger[A args.Tuple](l *logging.Logger) Option[A] {
	return func(m *Minimizer[A]) {
		m.log = l
	}
}

// New creates a Minimizer. passes reports whether the property holds for an
// argument list; the Minimizer looks for lists where it returns false.
func New[A args.Tuple](passes func(A) bool, model args.Model[A], opts ...Option[A]) *Minimizer[A] {
	m := &Minimizer[A]{
		passes:   passes,
		model:    model,
		maxDepth: 3,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rand == nil {
		m.rand = gen.Default()
	}
	return m
}

// Evaluated is the number of candidates the property was re-run on.
func (m *Minimizer[A]) Evaluated() int {
	return m.evaluated
}

// Minimize returns the smallest failing argument list found from failing,
// or failing itself when nothing smaller fails.
func (m *Minimizer[A]) Minimize(failing A) A {
	m.visited = make(map[uint64][]A)
	m.evaluated = 0
	m.markVisited(failing)

	leaves := m.minimizeRecursively(0, failing)
	best, ok := gen.Pick(m.rand, m.keepSmallest(leaves))
	if !ok {
		return failing
	}
	return best
}

func (m *Minimizer[A]) minimizeRecursively(depth int, current A) []A {
	log := m.log.Indent(depth)
	log.Logf(logging.All, "Minimizing %s", m.model.Format(current))
	if depth >= m.maxDepth {
		log.Logf(logging.All, "Reached max depth")
		return []A{current}
	}

	candidates := m.candidates(current)
	log.Logf(logging.All, "Minimized arguments: %s", m.formatAll(candidates))

	stillFailing := make([]A, 0, len(candidates))
	for _, c := range candidates {
		m.evaluated++
		if !m.passes(c) {
			stillFailing = append(stillFailing, c)
		}
	}

	smallest := m.keepSmallest(stillFailing)
	log.Logf(logging.All, "Removed large arguments: %s", m.formatAll(smallest))

	if len(smallest) == 0 {
		log.Logf(logging.All, "No smaller failing arguments, going deeper")
		return m.minimizeRecursively(depth+1, current)
	}

	// Progress was made, so stay at this depth.
	best := gen.Sample(m.rand, smallest, depth+1)
	log.Logf(logging.All, "Recursing with: %s", m.formatAll(best))
	var out []A
	for _, next := range best {
		out = append(out, m.minimizeRecursively(depth, next)...)
	}
	return out
}

// candidates returns admissible, unvisited shrink candidates strictly smaller than current.
func (m *Minimizer[A]) candidates(current A) []A {
	size := m.model.Size(current)
	var out []A
	for _, c := range m.model.Candidates(m.rand, current) {
		if m.constraints != nil && !m.constraints.Admits(c) {
			continue
		}
		if m.model.Size(c) >= size {
			continue
		}
		if m.wasVisited(c) {
			continue
		}
		m.markVisited(c)
		out = append(out, c)
	}
	return out
}

func (m *Minimizer[A]) keepSmallest(items []A) []A {
	if len(items) == 0 {
		return nil
	}
	smallest := m.model.Size(items[0])
	for _, it := range items[1:] {
		if s := m.model.Size(it); s < smallest {
			smallest = s
		}
	}
	out := make([]A, 0, len(items))
	for _, it := range items {
		if m.model.Size(it) == smallest {
			out = append(out, it)
		}
	}
	return out
}

func (m *Minimizer[A]) wasVisited(a A) bool {
	for _, seen := range m.visited[m.model.Hash(a)] {
		if m.model.Equal(seen, a) {
			return true
		}
	}
	return false
}

func (m *Minimizer[A]) markVisited(a A) {
	h := m.model.Hash(a)
	m.visited[h] = append(m.visited[h], a)
}

func (m *Minimizer[A]) formatAll(items []A) string {
	if !m.log.Enabled(logging.All) {
		return ""
	}
	out := "["
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += m.model.Format(it)
	}
	return out + "]"
}
