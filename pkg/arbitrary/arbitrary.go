// Package arbitrary describes values the engine can generate, measure and shrink.
package arbitrary

import (
	"math"
	"math/bits"

	"github.com/nomagicln/propcheck/pkg/gen"
)

// Strategy maps a value to a structurally smaller one of the same type.
type Strategy[T any] func(T) T

// Type bundles everything the engine needs to know about T.
type Type[T any] struct {
	// Gen produces random instances.
	Gen gen.Gen[T]

	// Size is a non-negative measure used only to compare values of the same type.
	Size func(T) int

	// Shrinks lists the strategies applicable to a value. Strategies may be
	// randomized, so they receive the run's Rand.
	Shrinks func(r *gen.Rand, v T) []Strategy[T]
}

// Candidates applies every shrink strategy to v.
func (t Type[T]) Candidates(r *gen.Rand, v T) []T {
	if t.Shrinks == nil {
		return nil
	}
	strategies := t.Shrinks(r, v)
	out := make([]T, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, s(v))
	}
	return out
}

// SizeOf reports v's size, treating a missing Size as zero.
func (t Type[T]) SizeOf(v T) int {
	if t.Size == nil {
		return 0
	}
	return t.Size(v)
}

// WithGen returns a copy of t drawing from g instead.
func (t Type[T]) WithGen(g gen.Gen[T]) Type[T] {
	t.Gen = g
	return t
}

// Int draws from the full int range. Shrinks by halving and decrementing.
func Int() Type[int] {
	return Type[int]{
		Gen:  gen.FromRange(math.MinInt, math.MaxInt),
		Size: func(v int) int { return absInt(int64(v)) },
		Shrinks: func(*gen.Rand, int) []Strategy[int] {
			return []Strategy[int]{
				func(v int) int { return v / 2 },
				func(v int) int { return v - 1 },
			}
		},
	}
}

// Int64 is Int for int64 values.
func Int64() Type[int64] {
	return Type[int64]{
		Gen:  gen.FromRange[int64](math.MinInt64, math.MaxInt64),
		Size: func(v int64) int { return absInt(v) },
		Shrinks: func(*gen.Rand, int64) []Strategy[int64] {
			return []Strategy[int64]{
				func(v int64) int64 { return v / 2 },
				func(v int64) int64 { return v - 1 },
			}
		},
	}
}

// Float64 draws from [-1e6, 1e6]. Shrinks by halving and truncating toward zero.
func Float64() Type[float64] {
	return Type[float64]{
		Gen: gen.FromRange(-1e6, 1e6),
		Size: func(v float64) int {
			a := math.Abs(v)
			if math.IsNaN(a) || a >= math.MaxInt {
				return math.MaxInt
			}
			return int(a)
		},
		Shrinks: func(*gen.Rand, float64) []Strategy[float64] {
			return []Strategy[float64]{
				func(v float64) float64 { return v / 2 },
				math.Trunc,
			}
		},
	}
}

// Bool draws true or false. true is larger and shrinks to false.
func Bool() Type[bool] {
	return Type[bool]{
		Gen: gen.New(func(r *gen.Rand) bool { return r.Bool() }),
		Size: func(v bool) int {
			if v {
				return 1
			}
			return 0
		},
		Shrinks: func(_ *gen.Rand, v bool) []Strategy[bool] {
			if !v {
				return nil
			}
			return []Strategy[bool]{func(bool) bool { return false }}
		},
	}
}

func absInt(v int64) int {
	if v == math.MinInt64 {
		return math.MaxInt
	}
	if v < 0 {
		v = -v
	}
	if bits.UintSize == 32 && v > math.MaxInt32 {
		return math.MaxInt
	}
	return int(v)
}

// log2 is floor(log2(n)) for n >= 1 and 0 otherwise.
func log2(n int) int {
	if n < 1 {
		return 0
	}
	return bits.Len(uint(n)) - 1
}
