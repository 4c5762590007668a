package args

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"

	"github.com/nomagicln/propcheck/internal/proptest"
)

// checkLensLaws verifies get-set, set-get and set-set for one lens.
func checkLensLaws[S comparable, T comparable](l Lens[S, T], s S, v1, v2 T) bool {
	return l.Set(s, l.Get(s)) == s &&
		l.Get(l.Set(s, v1)) == v1 &&
		l.Set(l.Set(s, v1), v2) == l.Set(s, v2)
}

// TestPropertyLensLaws checks the accessor laws for every slot lens.
func TestPropertyLensLaws(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property test in short mode")
	}

	properties := gopter.NewProperties(proptest.TestParameters())

	properties.Property("arity 1 and 2 lenses are lawful", prop.ForAll(
		func(a, b, v1, v2 int) bool {
			return checkLensLaws(First1[int](), One[int]{a}, v1, v2) &&
				checkLensLaws(First2[int, int](), Two[int, int]{a, b}, v1, v2) &&
				checkLensLaws(Second2[int, int](), Two[int, int]{a, b}, v1, v2)
		},
		proptest.SmallInt(), proptest.SmallInt(), proptest.SmallInt(), proptest.SmallInt(),
	))

	properties.Property("arity 3 lenses are lawful", prop.ForAll(
		func(a, b int, c string, v1, v2 int) bool {
			s := Three[int, int, string]{a, b, c}
			return checkLensLaws(First3[int, int, string](), s, v1, v2) &&
				checkLensLaws(Second3[int, int, string](), s, v1, v2) &&
				checkLensLaws(Third3[int, int, string](), s, c+"x", c+"y")
		},
		proptest.SmallInt(), proptest.SmallInt(), proptest.AlphaString(), proptest.SmallInt(), proptest.SmallInt(),
	))

	properties.Property("arity 4 lenses are lawful", prop.ForAll(
		func(a, b, c, d, v1, v2 int) bool {
			s := Four[int, int, int, int]{a, b, c, d}
			return checkLensLaws(First4[int, int, int, int](), s, v1, v2) &&
				checkLensLaws(Second4[int, int, int, int](), s, v1, v2) &&
				checkLensLaws(Third4[int, int, int, int](), s, v1, v2) &&
				checkLensLaws(Fourth4[int, int, int, int](), s, v1, v2)
		},
		proptest.SmallInt(), proptest.SmallInt(), proptest.SmallInt(),
		proptest.SmallInt(), proptest.SmallInt(), proptest.SmallInt(),
	))

	properties.TestingRun(t)
}
