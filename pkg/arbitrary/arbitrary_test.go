package arbitrary

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomagicln/propcheck/pkg/gen"
)

func TestInt_Candidates(t *testing.T) {
	r := gen.NewRand(1)
	assert.Equal(t, []int{5, 9}, Int().Candidates(r, 10))
	assert.Equal(t, []int{-5, -11}, Int().Candidates(r, -10))
	assert.Equal(t, 10, Int().SizeOf(-10))
}

func TestInt_SizeSaturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, Int().SizeOf(math.MinInt))
	assert.Equal(t, math.MaxInt, Int64().SizeOf(math.MinInt64))
}

func TestFloat64(t *testing.T) {
	r := gen.NewRand(2)
	ty := Float64()
	assert.Equal(t, []float64{1.25, 2}, ty.Candidates(r, 2.5))
	assert.Equal(t, 2, ty.SizeOf(-2.9))
	for _, v := range ty.Gen.Generate(r, 100) {
		assert.True(t, v >= -1e6 && v <= 1e6)
	}
}

func TestBool(t *testing.T) {
	r := gen.NewRand(3)
	assert.Equal(t, []bool{false}, Bool().Candidates(r, true))
	assert.Empty(t, Bool().Candidates(r, false))
	assert.Equal(t, 1, Bool().SizeOf(true))
	assert.Equal(t, 0, Bool().SizeOf(false))
}

func TestString_Generation(t *testing.T) {
	r := gen.NewRand(4)
	for _, s := range String().Gen.Generate(r, 200) {
		require.LessOrEqual(t, len(s), 10)
		for _, c := range s {
			require.True(t, c >= 'a' && c <= 'z', "unexpected rune %q", c)
		}
	}
}

func TestString_CandidatesRemoveOneRune(t *testing.T) {
	r := gen.NewRand(5)
	s := "abcdefgh"
	candidates := String().Candidates(r, s)
	require.Len(t, candidates, 3) // floor(log2(8))
	seen := map[string]bool{}
	for _, c := range candidates {
		assert.Equal(t, utf8.RuneCountInString(s)-1, utf8.RuneCountInString(c))
		seen[c] = true
	}
	assert.Len(t, seen, 3, "positions must be distinct")

	assert.Empty(t, String().Candidates(r, ""))
	assert.Empty(t, String().Candidates(r, "a"))
}

func TestSliceOf(t *testing.T) {
	r := gen.NewRand(6)
	ty := SliceOf(Int())
	for _, v := range ty.Gen.Generate(r, 100) {
		require.LessOrEqual(t, len(v), 9)
	}

	candidates := ty.Candidates(r, []int{1, 2, 3, 4})
	require.Len(t, candidates, 3) // floor(log2(4)) + 1
	for _, c := range candidates {
		assert.Len(t, c, 3)
	}
	assert.Empty(t, ty.Candidates(r, nil))
}

func TestRemoveAt_DoesNotAlias(t *testing.T) {
	original := []int{1, 2, 3}
	out := removeAt(original, 0)
	assert.Equal(t, []int{2, 3}, out)
	assert.Equal(t, []int{1, 2, 3}, original)
}

func TestWithGen(t *testing.T) {
	ty := Int().WithGen(gen.Just(7))
	assert.Equal(t, 7, ty.Gen.Another(gen.NewRand(1)))
	assert.Equal(t, 7, ty.SizeOf(7))
}

func TestRegistry(t *testing.T) {
	_, ok := Lookup[int]()
	assert.True(t, ok)
	_, ok = Lookup[[]string]()
	assert.True(t, ok)

	type point struct{ X, Y int }
	assert.Panics(t, func() { For[point]() })

	Register(Type[point]{Gen: gen.Just(point{1, 2})})
	assert.Equal(t, point{1, 2}, For[point]().Gen.Another(gen.NewRand(1)))
}

func TestLog2(t *testing.T) {
	assert.Equal(t, 0, log2(0))
	assert.Equal(t, 0, log2(1))
	assert.Equal(t, 1, log2(3))
	assert.Equal(t, 3, log2(8))
	assert.Equal(t, 3, log2(10))
}
