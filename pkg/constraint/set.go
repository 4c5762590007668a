package constraint

import "github.com/nomagicln/propcheck/pkg/gen"

// Set is an ordered list of constraints declared on one test.
type Set[A any] []Constraint[A]

// Generator transforms base through every constraint in declaration order.
// A later replacement of a slot wraps, and therefore overrides, an earlier one.
func (s Set[A]) Generator(base gen.Gen[A]) gen.Gen[A] {
	g := base
	for _, c := range s {
		g = c.Transform(g)
	}
	return g
}

// Rejection returns the first constraint that rejects a.
func (s Set[A]) Rejection(a A) (Constraint[A], bool) {
	for _, c := range s {
		if c.Rejects(a) {
			return c, true
		}
	}
	return Constraint[A]{}, false
}

// Rejects reports whether any constraint rejects a.
func (s Set[A]) Rejects(a A) bool {
	_, rejected := s.Rejection(a)
	return rejected
}

// Admits reports whether a is a valid candidate during minimization: nothing
// rejects it and every slot conforms to the last replacement declared for it.
func (s Set[A]) Admits(a A) bool {
	if s.Rejects(a) {
		return false
	}
	last := make(map[int]Constraint[A])
	for _, c := range s {
		if c.replaces() {
			last[c.slot] = c
		}
	}
	for _, c := range last {
		if !c.Conforms(a) {
			return false
		}
	}
	return true
}
