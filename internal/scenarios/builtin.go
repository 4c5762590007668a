package scenarios

import (
	"math"
	"slices"
	"strings"

	"github.com/nomagicln/propcheck/pkg/arbitrary"
	"github.com/nomagicln/propcheck/pkg/args"
	"github.com/nomagicln/propcheck/pkg/constraint"
	"github.com/nomagicln/propcheck/pkg/gen"
	"github.com/nomagicln/propcheck/pkg/property"
)

func init() {
	register(Scenario{Name: "increment-positive", Invariant: "always return a positive number", run: runIncrementPositive})
	register(Scenario{Name: "identity-even", Invariant: "always return an even number", ExpectFailure: true, run: runIdentityEven})
	register(Scenario{Name: "broken-reverse", Invariant: "reverse every string", ExpectFailure: true, run: runBrokenReverse})
	register(Scenario{Name: "overridden-range", Invariant: "only see the last declared range", run: runOverriddenRange})
	register(Scenario{Name: "add-commutes", Invariant: "not depend on argument order", run: runAddCommutes})
	register(Scenario{Name: "clamp-in-range", Invariant: "stay within the bounds", run: runClampInRange})
	register(Scenario{Name: "max-of-four", Invariant: "be at least every argument", run: runMaxOfFour})
	register(Scenario{Name: "sort-idempotent", Invariant: "be idempotent", run: runSortIdempotent})
}

// Increment returns x + 1.
func Increment(x int) int { return x + 1 }

// Identity returns x.
func Identity(x int) int { return x }

// BrokenReverse reverses s, except that strings containing 'f' come back unchanged.
func BrokenReverse(s string) string {
	if strings.ContainsRune(s, 'f') {
		return s
	}
	return Reverse(s)
}

// Reverse reverses s rune by rune.
func Reverse(s string) string {
	runes := []rune(s)
	slices.Reverse(runes)
	return string(runes)
}

// Add returns a + b.
func Add(a, b int) int { return a + b }

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi int) int { return min(max(x, lo), hi) }

// MaxOfFour returns the largest argument.
func MaxOfFour(a, b, c, d int) int { return max(a, b, c, d) }

// SortInts returns a sorted copy of values.
func SortInts(values []int) []int {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}

func runIncrementPositive(opts Options) (property.Result, error) {
	t, err := prepare(property.TestThat1(Increment, "always return a positive number").
		Named("increment-positive").
		WithConstraint(func(m constraint.Maker1[int]) constraint.Constraint[args.One[int]] {
			return constraint.MustBeIn(m.First(), 0, math.MaxInt-1)
		}), opts)
	if err != nil {
		return property.Result{}, err
	}
	return execute(t.Proving(func(r int) bool { return r > 0 }), opts), nil
}

func runIdentityEven(opts Options) (property.Result, error) {
	t, err := prepare(property.TestThat1(Identity, "always return an even number").
		Named("identity-even"), opts)
	if err != nil {
		return property.Result{}, err
	}
	return execute(t.Proving(func(r int) bool { return r%2 == 0 }), opts), nil
}

func runBrokenReverse(opts Options) (property.Result, error) {
	withF := gen.Map(arbitrary.String().Gen, func(s string) string { return s + "f" })
	t, err := prepare(property.TestThat1(BrokenReverse, "reverse every string").
		Named("broken-reverse").
		WithConstraint(func(m constraint.Maker1[string]) constraint.Constraint[args.One[string]] {
			return m.First().ProducedBy(withF).Labeled("always contains f")
		}), opts)
	if err != nil {
		return property.Result{}, err
	}
	return execute(t.ProvingAll(func(s, r string) bool { return Reverse(r) == s }), opts), nil
}

func runOverriddenRange(opts Options) (property.Result, error) {
	t, err := prepare(property.TestThat1(Identity, "only see the last declared range").
		Named("overridden-range").
		WithConstraints(func(m constraint.Maker1[int]) []constraint.Constraint[args.One[int]] {
			return []constraint.Constraint[args.One[int]]{
				constraint.MustBeIn(m.First(), 0, 9),
				constraint.MustBeIn(m.First(), 100, 200),
			}
		}), opts)
	if err != nil {
		return property.Result{}, err
	}
	return execute(t.Proving(func(r int) bool { return r >= 100 && r <= 200 }), opts), nil
}

func runAddCommutes(opts Options) (property.Result, error) {
	t, err := prepare(property.TestThat2(Add, "not depend on argument order").Named("add-commutes"), opts)
	if err != nil {
		return property.Result{}, err
	}
	return execute(t.ProvingAll(func(in gen.Pair[int, int], r int) bool {
		return r == Add(in.Second, in.First)
	}), opts), nil
}

func runClampInRange(opts Options) (property.Result, error) {
	t, err := prepare(property.TestThat3(Clamp, "stay within the bounds").
		Named("clamp-in-range").
		WithConstraint(func(m constraint.Maker3[int, int, int]) constraint.Constraint[args.Three[int, int, int]] {
			return m.All().MustMeet(func(a args.Three[int, int, int]) bool { return a.Second <= a.Third }).
				Labeled("lower bound must not exceed upper bound")
		}), opts)
	if err != nil {
		return property.Result{}, err
	}
	return execute(t.ProvingAll(func(in gen.Triple[int, int, int], r int) bool {
		return r >= in.Second && r <= in.Third
	}), opts), nil
}

func runMaxOfFour(opts Options) (property.Result, error) {
	t, err := prepare(property.TestThat4(MaxOfFour, "be at least every argument").Named("max-of-four"), opts)
	if err != nil {
		return property.Result{}, err
	}
	return execute(t.ProvingAll(func(in gen.Quad[int, int, int, int], r int) bool {
		return r >= in.First && r >= in.Second && r >= in.Third && r >= in.Fourth
	}), opts), nil
}

func runSortIdempotent(opts Options) (property.Result, error) {
	t, err := prepare(property.TestThat1(SortInts, "be idempotent").Named("sort-idempotent"), opts)
	if err != nil {
		return property.Result{}, err
	}
	return execute(t.Proving(func(sorted []int) bool {
		return slices.Equal(SortInts(sorted), sorted)
	}), opts), nil
}
