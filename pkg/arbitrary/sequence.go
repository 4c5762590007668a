package arbitrary

import (
	"github.com/nomagicln/propcheck/pkg/gen"
)

const (
	maxStringLength = 10
	maxSliceLength  = 9
	alphabet        = "abcdefghijklmnopqrstuvwxyz"
)

// String draws lowercase strings of up to 10 letters.
// Shrinking removes floor(log2(n)) distinct random runes, one per candidate.
func String() Type[string] {
	return Type[string]{
		Gen: gen.New(func(r *gen.Rand) string {
			n := r.IntN(maxStringLength + 1)
			b := make([]byte, n)
			for i := range b {
				b[i] = alphabet[r.IntN(len(alphabet))]
			}
			return string(b)
		}),
		Size: func(s string) int { return len([]rune(s)) },
		Shrinks: func(r *gen.Rand, s string) []Strategy[string] {
			n := len([]rune(s))
			if n == 0 {
				return nil
			}
			positions := gen.SampleIndices(r, n, log2(n))
			strategies := make([]Strategy[string], 0, len(positions))
			for _, pos := range positions {
				strategies = append(strategies, func(v string) string {
					return removeRune(v, pos)
				})
			}
			return strategies
		},
	}
}

// StringFrom is String drawing from a caller-supplied generator.
func StringFrom(g gen.Gen[string]) Type[string] {
	return String().WithGen(g)
}

// SliceOf draws slices of up to 9 elements of elem.
// Shrinking removes one random position per candidate, floor(log2(n))+1 candidates.
func SliceOf[T any](elem Type[T]) Type[[]T] {
	return Type[[]T]{
		Gen: gen.New(func(r *gen.Rand) []T {
			n := r.IntN(maxSliceLength + 1)
			out := make([]T, n)
			for i := range out {
				out[i] = elem.Gen.Another(r)
			}
			return out
		}),
		Size: func(v []T) int { return len(v) },
		Shrinks: func(r *gen.Rand, v []T) []Strategy[[]T] {
			if len(v) == 0 {
				return nil
			}
			count := log2(len(v)) + 1
			strategies := make([]Strategy[[]T], 0, count)
			for i := 0; i < count; i++ {
				pos := r.IntN(len(v))
				strategies = append(strategies, func(s []T) []T {
					return removeAt(s, pos)
				})
			}
			return strategies
		},
	}
}

func removeRune(s string, pos int) string {
	runes := []rune(s)
	if pos < 0 || pos >= len(runes) {
		return s
	}
	return string(append(runes[:pos:pos], runes[pos+1:]...))
}

func removeAt[T any](s []T, pos int) []T {
	if pos < 0 || pos >= len(s) {
		return s
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:pos]...)
	return append(out, s[pos+1:]...)
}
