// Package proptest provides gopter parameters and generators for the engine's law tests.
package proptest

import (
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// TestParameters returns the standard test parameters for property tests.
// Default: 1000 iterations for a good balance between coverage and speed.
func TestParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 1000
	return params
}

// FastTestParameters returns parameters for property tests that run the
// engine itself inside every check.
func FastTestParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	return params
}

// Seed generates seeds for gen.NewRand.
func Seed() gopter.Gen {
	return gen.UInt64()
}

// Bounds generates ordered [lo, hi] pairs within [min, max] as a two-element slice.
func Bounds(min, max int) gopter.Gen {
	return gopter.CombineGens(gen.IntRange(min, max), gen.IntRange(min, max)).
		Map(func(values []any) []int {
			lo, hi := values[0].(int), values[1].(int)
			if lo > hi {
				lo, hi = hi, lo
			}
			return []int{lo, hi}
		})
}

// SmallInt generates integers in [-1000, 1000].
func SmallInt() gopter.Gen {
	return gen.IntRange(-1000, 1000)
}

// AlphaString generates random lowercase strings.
func AlphaString() gopter.Gen {
	return gen.AlphaString()
}

// Depth generates minimization depths.
func Depth() gopter.Gen {
	return gen.IntRange(0, 4)
}
