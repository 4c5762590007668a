package args

import (
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/nomagicln/propcheck/pkg/arbitrary"
	"github.com/nomagicln/propcheck/pkg/gen"
)

// Model describes how to generate, measure, shrink and compare argument lists of type A.
type Model[A Tuple] struct {
	arity  int
	gen    gen.Gen[A]
	size   func(A) int
	shrink func(r *gen.Rand, a A) []A
}

// Arity is the number of slots.
func (m Model[A]) Arity() int { return m.arity }

// Gen is the aggregate generator.
func (m Model[A]) Gen() gen.Gen[A] { return m.gen }

// Size sums the slot sizes.
func (m Model[A]) Size(a A) int { return m.size(a) }

// Candidates returns, for every slot, a copy of a with that slot replaced by
// one of its shrink candidates.
func (m Model[A]) Candidates(r *gen.Rand, a A) []A { return m.shrink(r, a) }

// Equal compares two argument lists structurally, unexported fields included.
func (m Model[A]) Equal(a, b A) bool {
	return cmp.Equal(a, b, exportAll)
}

// Hash returns a structural hash of a. Values hashstructure cannot walk fall
// back to hashing their Go-syntax representation.
func (m Model[A]) Hash(a A) uint64 {
	h, err := hashstructure.Hash(a, hashstructure.FormatV2, nil)
	if err == nil {
		return h
	}
	f := fnv.New64a()
	_, _ = fmt.Fprintf(f, "%#v", a)
	return f.Sum64()
}

// Format renders a in its canonical tuple form.
func (m Model[A]) Format(a A) string {
	return Format(a)
}

// Format renders an argument list: the bare value for one slot, "(v1, v2, ...)" otherwise.
func Format(t Tuple) string {
	values := t.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%#v", v)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// NewOne builds the model for single-argument functions.
func NewOne[A any](ta arbitrary.Type[A]) Model[One[A]] {
	first := First1[A]()
	return Model[One[A]]{
		arity: 1,
		gen:   gen.Map(ta.Gen, func(a A) One[A] { return One[A]{First: a} }),
		size:  func(o One[A]) int { return ta.SizeOf(o.First) },
		shrink: func(r *gen.Rand, o One[A]) []One[A] {
			return slotCandidates(r, o, first, ta)
		},
	}
}

// NewTwo builds the model for two-argument functions.
func NewTwo[A, B any](ta arbitrary.Type[A], tb arbitrary.Type[B]) Model[Two[A, B]] {
	first, second := First2[A, B](), Second2[A, B]()
	return Model[Two[A, B]]{
		arity: 2,
		gen: gen.Map(gen.Combine(ta.Gen, tb.Gen), func(p gen.Pair[A, B]) Two[A, B] {
			return Two[A, B]{First: p.First, Second: p.Second}
		}),
		size: func(t Two[A, B]) int { return sum(ta.SizeOf(t.First), tb.SizeOf(t.Second)) },
		shrink: func(r *gen.Rand, t Two[A, B]) []Two[A, B] {
			out := slotCandidates(r, t, first, ta)
			return append(out, slotCandidates(r, t, second, tb)...)
		},
	}
}

// NewThree builds the model for three-argument functions.
func NewThree[A, B, C any](ta arbitrary.Type[A], tb arbitrary.Type[B], tc arbitrary.Type[C]) Model[Three[A, B, C]] {
	first, second, third := First3[A, B, C](), Second3[A, B, C](), Third3[A, B, C]()
	return Model[Three[A, B, C]]{
		arity: 3,
		gen: gen.Map(gen.Combine3(gen.Combine(ta.Gen, tb.Gen), tc.Gen), func(t gen.Triple[A, B, C]) Three[A, B, C] {
			return Three[A, B, C]{First: t.First, Second: t.Second, Third: t.Third}
		}),
		size: func(t Three[A, B, C]) int {
			return sum(ta.SizeOf(t.First), tb.SizeOf(t.Second), tc.SizeOf(t.Third))
		},
		shrink: func(r *gen.Rand, t Three[A, B, C]) []Three[A, B, C] {
			out := slotCandidates(r, t, first, ta)
			out = append(out, slotCandidates(r, t, second, tb)...)
			return append(out, slotCandidates(r, t, third, tc)...)
		},
	}
}

// NewFour builds the model for four-argument functions.
func NewFour[A, B, C, D any](ta arbitrary.Type[A], tb arbitrary.Type[B], tc arbitrary.Type[C], td arbitrary.Type[D]) Model[Four[A, B, C, D]] {
	first, second, third, fourth := First4[A, B, C, D](), Second4[A, B, C, D](), Third4[A, B, C, D](), Fourth4[A, B, C, D]()
	combined := gen.Combine4(gen.Combine3(gen.Combine(ta.Gen, tb.Gen), tc.Gen), td.Gen)
	return Model[Four[A, B, C, D]]{
		arity: 4,
		gen: gen.Map(combined, func(q gen.Quad[A, B, C, D]) Four[A, B, C, D] {
			return Four[A, B, C, D]{First: q.First, Second: q.Second, Third: q.Third, Fourth: q.Fourth}
		}),
		size: func(f Four[A, B, C, D]) int {
			return sum(ta.SizeOf(f.First), tb.SizeOf(f.Second), tc.SizeOf(f.Third), td.SizeOf(f.Fourth))
		},
		shrink: func(r *gen.Rand, f Four[A, B, C, D]) []Four[A, B, C, D] {
			out := slotCandidates(r, f, first, ta)
			out = append(out, slotCandidates(r, f, second, tb)...)
			out = append(out, slotCandidates(r, f, third, tc)...)
			return append(out, slotCandidates(r, f, fourth, td)...)
		},
	}
}

// sum adds slot sizes, saturating at math.MaxInt.
func sum(sizes ...int) int {
	total := 0
	for _, s := range sizes {
		if s > math.MaxInt-total {
			return math.MaxInt
		}
		total += s
	}
	return total
}

func slotCandidates[S, T any](r *gen.Rand, s S, lens Lens[S, T], t arbitrary.Type[T]) []S {
	values := t.Candidates(r, lens.Get(s))
	out := make([]S, len(values))
	for i, v := range values {
		out[i] = lens.Set(s, v)
	}
	return out
}
