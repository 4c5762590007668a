package constraint

import (
	"github.com/nomagicln/propcheck/pkg/args"
	"github.com/nomagicln/propcheck/pkg/gen"
)

// Slot builds constraints on one argument of A.
type Slot[A, T any] struct {
	index int
	lens  args.Lens[A, T]
}

// NewSlot creates a builder for the zero-based slot index focused by lens.
func NewSlot[A, T any](index int, lens args.Lens[A, T]) Slot[A, T] {
	return Slot[A, T]{index: index, lens: lens}
}

// Not rejects tuples whose slot equals value.
func (s Slot[A, T]) Not(value T) Constraint[A] {
	return Constraint[A]{
		kind:   Reject,
		slot:   s.index,
		reject: func(a A) bool { return equal(s.lens.Get(a), value) },
	}
}

// NotWhere rejects tuples whose slot satisfies predicate.
func (s Slot[A, T]) NotWhere(predicate func(T) bool) Constraint[A] {
	return Constraint[A]{
		kind:   Reject,
		slot:   s.index,
		reject: func(a A) bool { return predicate(s.lens.Get(a)) },
	}
}

// MustMeet rejects tuples whose slot does not satisfy predicate.
func (s Slot[A, T]) MustMeet(predicate func(T) bool) Constraint[A] {
	return Constraint[A]{
		kind:   Require,
		slot:   s.index,
		reject: func(a A) bool { return !predicate(s.lens.Get(a)) },
	}
}

// MustBe forces the slot to value. It rejects nothing.
func (s Slot[A, T]) MustBe(value T) Constraint[A] {
	return Constraint[A]{
		kind: ReplaceConst,
		slot: s.index,
		transform: func(g gen.Gen[A]) gen.Gen[A] {
			return gen.Map(g, func(a A) A { return s.lens.Set(a, value) })
		},
		conforms: func(a A) bool { return equal(s.lens.Get(a), value) },
	}
}

// ProducedBy draws the slot from custom instead. It rejects nothing.
func (s Slot[A, T]) ProducedBy(custom gen.Gen[T]) Constraint[A] {
	return Constraint[A]{
		kind:      Replace,
		slot:      s.index,
		transform: s.replaceWith(custom),
	}
}

func (s Slot[A, T]) replaceWith(custom gen.Gen[T]) func(gen.Gen[A]) gen.Gen[A] {
	return func(g gen.Gen[A]) gen.Gen[A] {
		return gen.FlatMap(g, func(a A) gen.Gen[A] {
			return gen.Map(custom, func(v T) A { return s.lens.Set(a, v) })
		})
	}
}

// MustBeIn draws the slot from the closed range [lo, hi]. It rejects nothing.
// Panics if the range is empty.
func MustBeIn[A any, T gen.Number](s Slot[A, T], lo, hi T) Constraint[A] {
	return Constraint[A]{
		kind:      Replace,
		slot:      s.index,
		transform: s.replaceWith(gen.FromRange(lo, hi)),
		conforms: func(a A) bool {
			v := s.lens.Get(a)
			return v >= lo && v <= hi
		},
	}
}

// Joint builds constraints over a whole argument list.
type Joint[A args.Tuple] struct{}

// Not rejects tuples equal to combination.
func (Joint[A]) Not(combination A) Constraint[A] {
	return Constraint[A]{
		kind:   Reject,
		slot:   AllSlots,
		reject: func(a A) bool { return equal(a, combination) },
	}
}

// NotWhere rejects tuples satisfying predicate.
func (Joint[A]) NotWhere(predicate func(A) bool) Constraint[A] {
	return Constraint[A]{
		kind:   Reject,
		slot:   AllSlots,
		reject: predicate,
	}
}

// MustMeet rejects tuples not satisfying predicate.
func (Joint[A]) MustMeet(predicate func(A) bool) Constraint[A] {
	return Constraint[A]{
		kind:   Require,
		slot:   AllSlots,
		reject: func(a A) bool { return !predicate(a) },
	}
}

// Maker1 exposes the constraint builders of single-argument functions.
type Maker1[A any] struct{}

func (Maker1[A]) First() Slot[args.One[A], A] { return NewSlot(0, args.First1[A]()) }

// Maker2 exposes the constraint builders of two-argument functions.
type Maker2[A, B any] struct{}

func (Maker2[A, B]) First() Slot[args.Two[A, B], A]  { return NewSlot(0, args.First2[A, B]()) }
func (Maker2[A, B]) Second() Slot[args.Two[A, B], B] { return NewSlot(1, args.Second2[A, B]()) }
func (Maker2[A, B]) All() Joint[args.Two[A, B]]      { return Joint[args.Two[A, B]]{} }

// Maker3 exposes the constraint builders of three-argument functions.
type Maker3[A, B, C any] struct{}

func (Maker3[A, B, C]) First() Slot[args.Three[A, B, C], A] {
	return NewSlot(0, args.First3[A, B, C]())
}

func (Maker3[A, B, C]) Second() Slot[args.Three[A, B, C], B] {
	return NewSlot(1, args.Second3[A, B, C]())
}

func (Maker3[A, B, C]) Third() Slot[args.Three[A, B, C], C] {
	return NewSlot(2, args.Third3[A, B, C]())
}

func (Maker3[A, B, C]) All() Joint[args.Three[A, B, C]] { return Joint[args.Three[A, B, C]]{} }

// Maker4 exposes the constraint builders of four-argument functions.
type Maker4[A, B, C, D any] struct{}

func (Maker4[A, B, C, D]) First() Slot[args.Four[A, B, C, D], A] {
	return NewSlot(0, args.First4[A, B, C, D]())
}

func (Maker4[A, B, C, D]) Second() Slot[args.Four[A, B, C, D], B] {
	return NewSlot(1, args.Second4[A, B, C, D]())
}

func (Maker4[A, B, C, D]) Third() Slot[args.Four[A, B, C, D], C] {
	return NewSlot(2, args.Third4[A, B, C, D]())
}

func (Maker4[A, B, C, D]) Fourth() Slot[args.Four[A, B, C, D], D] {
	return NewSlot(3, args.Fourth4[A, B, C, D]())
}

func (Maker4[A, B, C, D]) All() Joint[args.Four[A, B, C, D]] {
	return Joint[args.Four[A, B, C, D]]{}
}
