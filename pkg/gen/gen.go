// Package gen provides composable random value generators.
//
// A Gen is stateless: all state lives in the *Rand threaded through Another, so
// the same Gen can be shared freely between tests and replayed from a seed.
package gen

// Gen produces values of type V.
type Gen[V any] struct {
	draw func(r *Rand) V
}

// New wraps a draw function as a Gen.
func New[V any](draw func(r *Rand) V) Gen[V] {
	return Gen[V]{draw: draw}
}

// Another draws one value.
func (g Gen[V]) Another(r *Rand) V {
	return g.draw(r)
}

// Generate draws count values.
func (g Gen[V]) Generate(r *Rand, count int) []V {
	values := make([]V, 0, count)
	for i := 0; i < count; i++ {
		values = append(values, g.draw(r))
	}
	return values
}

// Just always produces value.
func Just[V any](value V) Gen[V] {
	return New(func(*Rand) V { return value })
}

// FromSlice draws uniformly from items. Panics if items is empty.
func FromSlice[V any](items []V) Gen[V] {
	if len(items) == 0 {
		panic("gen: FromSlice called with no items")
	}
	snapshot := append([]V(nil), items...)
	return New(func(r *Rand) V {
		return snapshot[r.IntN(len(snapshot))]
	})
}

// Map transforms every drawn value. Each call to the result draws from g exactly once.
func Map[V, T any](g Gen[V], mapping func(V) T) Gen[T] {
	return New(func(r *Rand) T {
		return mapping(g.draw(r))
	})
}

// FlatMap lets a drawn value choose the generator for the final value.
func FlatMap[V, T any](g Gen[V], mapping func(V) Gen[T]) Gen[T] {
	return New(func(r *Rand) T {
		return mapping(g.draw(r)).draw(r)
	})
}

// Pair is the result of combining two generators.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is a flattened combination of three generators.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Quad is a flattened combination of four generators.
type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Combine draws from a then b and pairs the results.
func Combine[A, B any](a Gen[A], b Gen[B]) Gen[Pair[A, B]] {
	return New(func(r *Rand) Pair[A, B] {
		first := a.draw(r)
		second := b.draw(r)
		return Pair[A, B]{First: first, Second: second}
	})
}

// Combine3 extends a combined pair with a third generator, flattening the result.
func Combine3[A, B, C any](ab Gen[Pair[A, B]], c Gen[C]) Gen[Triple[A, B, C]] {
	return Map(Combine(ab, c), func(p Pair[Pair[A, B], C]) Triple[A, B, C] {
		return Triple[A, B, C]{First: p.First.First, Second: p.First.Second, Third: p.Second}
	})
}

// Combine4 extends a combined triple with a fourth generator, flattening the result.
func Combine4[A, B, C, D any](abc Gen[Triple[A, B, C]], d Gen[D]) Gen[Quad[A, B, C, D]] {
	return Map(Combine(abc, d), func(p Pair[Triple[A, B, C], D]) Quad[A, B, C, D] {
		return Quad[A, B, C, D]{First: p.First.First, Second: p.First.Second, Third: p.First.Third, Fourth: p.Second}
	})
}
