// Package property declares and runs property-based tests.
//
// A test starts from the function under test and a description of what it
// will do:
//
//	ok := property.TestThat1(increment, "always be positive").
//		WithConstraint(func(m constraint.Maker1[int]) constraint.Constraint[args.One[int]] {
//			return constraint.MustBeIn(m.First(), 0, math.MaxInt-1)
//		}).
//		Proving(func(r int) bool { return r > 0 }).
//		Run(func(msg string) { t.Error(msg) })
//
// Argument types are resolved through arbitrary.For; use the TestThatUsing
// variants to pass descriptions explicitly.
package property

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/nomagicln/propcheck/pkg/arbitrary"
	"github.com/nomagicln/propcheck/pkg/args"
	"github.com/nomagicln/propcheck/pkg/constraint"
	"github.com/nomagicln/propcheck/pkg/gen"
)

// Test is a declared property awaiting its invariant.
// A is the argument list, T its canonical tuple form, R the result and M the
// constraint maker handed to WithConstraint.
type Test[A args.Tuple, T, R, M any] struct {
	name        string
	will        string
	model       args.Model[A]
	canonical   func(A) T
	call        func(A) R
	maker       M
	constraints constraint.Set[A]
}

// Named overrides the name derived from the function.
func (t *Test[A, T, R, M]) Named(name string) *Test[A, T, R, M] {
	t.name = name
	return t
}

// WithConstraint adds one constraint built from the maker.
func (t *Test[A, T, R, M]) WithConstraint(build func(M) constraint.Constraint[A]) *Test[A, T, R, M] {
	t.constraints = append(t.constraints, build(t.maker))
	return t
}

// WithConstraints adds several constraints in order.
func (t *Test[A, T, R, M]) WithConstraints(build func(M) []constraint.Constraint[A]) *Test[A, T, R, M] {
	t.constraints = append(t.constraints, build(t.maker)...)
	return t
}

// Proving sets an invariant over the result alone.
func (t *Test[A, T, R, M]) Proving(invariant func(R) bool) *Runnable[A, R] {
	return t.runnable(func(_ A, r R) bool { return invariant(r) })
}

// ProvingAll sets an invariant over the canonical arguments and the result.
func (t *Test[A, T, R, M]) ProvingAll(invariant func(T, R) bool) *Runnable[A, R] {
	return t.runnable(func(a A, r R) bool { return invariant(t.canonical(a), r) })
}

func (t *Test[A, T, R, M]) runnable(holds func(A, R) bool) *Runnable[A, R] {
	return newRunnable(t.name, t.will, t.model, t.call, t.constraints, holds)
}

// TestThat1 declares a property of a single-argument function.
func TestThat1[A, R any](fn func(A) R, will string) *Test[args.One[A], A, R, constraint.Maker1[A]] {
	return TestThatUsing1(arbitrary.For[A](), fn, will)
}

// TestThatUsing1 is TestThat1 with an explicit argument description.
func TestThatUsing1[A, R any](ta arbitrary.Type[A], fn func(A) R, will string) *Test[args.One[A], A, R, constraint.Maker1[A]] {
	return &Test[args.One[A], A, R, constraint.Maker1[A]]{
		name:      functionName(fn),
		will:      will,
		model:     args.NewOne(ta),
		canonical: args.One[A].Tuple,
		call:      func(a args.One[A]) R { return fn(a.First) },
	}
}

// TestThat2 declares a property of a two-argument function.
func TestThat2[A, B, R any](fn func(A, B) R, will string) *Test[args.Two[A, B], gen.Pair[A, B], R, constraint.Maker2[A, B]] {
	return TestThatUsing2(arbitrary.For[A](), arbitrary.For[B](), fn, will)
}

// TestThatUsing2 is TestThat2 with explicit argument descriptions.
func TestThatUsing2[A, B, R any](ta arbitrary.Type[A], tb arbitrary.Type[B], fn func(A, B) R, will string) *Test[args.Two[A, B], gen.Pair[A, B], R, constraint.Maker2[A, B]] {
	return &Test[args.Two[A, B], gen.Pair[A, B], R, constraint.Maker2[A, B]]{
		name:      functionName(fn),
		will:      will,
		model:     args.NewTwo(ta, tb),
		canonical: args.Two[A, B].Tuple,
		call:      func(a args.Two[A, B]) R { return fn(a.First, a.Second) },
	}
}

// TestThat3 declares a property of a three-argument function.
func TestThat3[A, B, C, R any](fn func(A, B, C) R, will string) *Test[args.Three[A, B, C], gen.Triple[A, B, C], R, constraint.Maker3[A, B, C]] {
	return TestThatUsing3(arbitrary.For[A](), arbitrary.For[B](), arbitrary.For[C](), fn, will)
}

// TestThatUsing3 is TestThat3 with explicit argument descriptions.
func TestThatUsing3[A, B, C, R any](ta arbitrary.Type[A], tb arbitrary.Type[B], tc arbitrary.Type[C], fn func(A, B, C) R, will string) *Test[args.Three[A, B, C], gen.Triple[A, B, C], R, constraint.Maker3[A, B, C]] {
	return &Test[args.Three[A, B, C], gen.Triple[A, B, C], R, constraint.Maker3[A, B, C]]{
		name:      functionName(fn),
		will:      will,
		model:     args.NewThree(ta, tb, tc),
		canonical: args.Three[A, B, C].Tuple,
		call:      func(a args.Three[A, B, C]) R { return fn(a.First, a.Second, a.Third) },
	}
}

// TestThat4 declares a property of a four-argument function.
func TestThat4[A, B, C, D, R any](fn func(A, B, C, D) R, will string) *Test[args.Four[A, B, C, D], gen.Quad[A, B, C, D], R, constraint.Maker4[A, B, C, D]] {
	return TestThatUsing4(arbitrary.For[A](), arbitrary.For[B](), arbitrary.For[C](), arbitrary.For[D](), fn, will)
}

// TestThatUsing4 is TestThat4 with explicit argument descriptions.
func TestThatUsing4[A, B, C, D, R any](ta arbitrary.Type[A], tb arbitrary.Type[B], tc arbitrary.Type[C], td arbitrary.Type[D], fn func(A, B, C, D) R, will string) *Test[args.Four[A, B, C, D], gen.Quad[A, B, C, D], R, constraint.Maker4[A, B, C, D]] {
	return &Test[args.Four[A, B, C, D], gen.Quad[A, B, C, D], R, constraint.Maker4[A, B, C, D]]{
		name:      functionName(fn),
		will:      will,
		model:     args.NewFour(ta, tb, tc, td),
		canonical: args.Four[A, B, C, D].Tuple,
		call:      func(a args.Four[A, B, C, D]) R { return fn(a.First, a.Second, a.Third, a.Fourth) },
	}
}

// functionName returns the short name of fn, e.g. "scenarios.increment".
func functionName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "property"
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "property"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
