// Package constraint restricts which argument lists a property test may use.
//
// A constraint either rejects generated tuples or replaces how one slot is
// generated. Constraints are declarative values built once per test.
package constraint

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"

	"github.com/nomagicln/propcheck/pkg/gen"
)

// Kind tags what a constraint does.
type Kind int

const (
	// Reject discards tuples matching a predicate.
	Reject Kind = iota
	// Require discards tuples not matching a predicate.
	Require
	// Replace draws a slot from another generator.
	Replace
	// ReplaceConst forces a slot to a constant.
	ReplaceConst
)

func (k Kind) String() string {
	switch k {
	case Reject:
		return "reject"
	case Require:
		return "require"
	case Replace:
		return "replace"
	case ReplaceConst:
		return "replace-const"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// AllSlots is the slot index of joint constraints.
const AllSlots = -1

// Constraint restricts argument lists of type A.
type Constraint[A any] struct {
	kind      Kind
	slot      int
	label     string
	reject    func(A) bool
	transform func(gen.Gen[A]) gen.Gen[A]
	conforms  func(A) bool
}

// Kind returns the constraint's variant.
func (c Constraint[A]) Kind() Kind { return c.kind }

// Slot returns the zero-based slot index, or AllSlots.
func (c Constraint[A]) Slot() int { return c.slot }

// Label returns the diagnostic label, possibly empty.
func (c Constraint[A]) Label() string { return c.label }

// Labeled returns a copy of c carrying label.
func (c Constraint[A]) Labeled(label string) Constraint[A] {
	c.label = label
	return c
}

// Rejects reports whether a must be discarded.
func (c Constraint[A]) Rejects(a A) bool {
	return c.reject != nil && c.reject(a)
}

// Transform applies the constraint's generation policy to g.
func (c Constraint[A]) Transform(g gen.Gen[A]) gen.Gen[A] {
	if c.transform == nil {
		return g
	}
	return c.transform(g)
}

// Conforms reports whether a could have been produced by a replacement
// constraint. Constraints without a checkable policy accept everything.
func (c Constraint[A]) Conforms(a A) bool {
	return c.conforms == nil || c.conforms(a)
}

func (c Constraint[A]) replaces() bool {
	return c.kind == Replace || c.kind == ReplaceConst
}

func (c Constraint[A]) describe() string {
	if c.label != "" {
		return c.label
	}
	if c.slot == AllSlots {
		return c.kind.String() + " on all arguments"
	}
	return fmt.Sprintf("%s on argument %d", c.kind, c.slot+1)
}

// String renders the label, or a generated description when unlabeled.
func (c Constraint[A]) String() string {
	return c.describe()
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

func equal[T any](a, b T) bool {
	return cmp.Equal(a, b, exportAll)
}
