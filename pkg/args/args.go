// Package args models the argument list of a function under test.
//
// Each arity from one to four is its own product type so every slot keeps its
// static type. Tuples are values: shrinking and constraints always build new ones.
package args

import (
	"github.com/nomagicln/propcheck/pkg/gen"
)

// Tuple is implemented by every argument list.
type Tuple interface {
	// Values returns the slots in positional order.
	Values() []any
}

// One is a single-argument list.
type One[A any] struct {
	First A
}

// Tuple returns the canonical form passed to invariants: the bare value.
func (o One[A]) Tuple() A { return o.First }

func (o One[A]) Values() []any { return []any{o.First} }

// Two is a two-argument list.
type Two[A, B any] struct {
	First  A
	Second B
}

func (t Two[A, B]) Tuple() gen.Pair[A, B] {
	return gen.Pair[A, B]{First: t.First, Second: t.Second}
}

func (t Two[A, B]) Values() []any { return []any{t.First, t.Second} }

// Three is a three-argument list.
type Three[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

func (t Three[A, B, C]) Tuple() gen.Triple[A, B, C] {
	return gen.Triple[A, B, C]{First: t.First, Second: t.Second, Third: t.Third}
}

func (t Three[A, B, C]) Values() []any { return []any{t.First, t.Second, t.Third} }

// Four is a four-argument list.
type Four[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

func (f Four[A, B, C, D]) Tuple() gen.Quad[A, B, C, D] {
	return gen.Quad[A, B, C, D]{First: f.First, Second: f.Second, Third: f.Third, Fourth: f.Fourth}
}

func (f Four[A, B, C, D]) Values() []any { return []any{f.First, f.Second, f.Third, f.Fourth} }
