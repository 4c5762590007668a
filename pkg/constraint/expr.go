package constraint

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/vulcand/predicate"

	"github.com/nomagicln/propcheck/pkg/args"
)

// valuesPredicate is the predicate type produced by expression parsing.
type valuesPredicate func([]any) bool

// Expr builds a joint rejector from a predicate expression over the positional
// argument values. Arguments are numbered from 1.
//
// Supported functions:
//   - ArgEquals(i, "text"): fmt.Sprint of argument i equals text
//   - ArgContains(i, "text"): fmt.Sprint of argument i contains text
//   - ArgLess(i, n), ArgGreater(i, n): numeric comparison
//   - ArgLenLess(i, n), ArgLenGreater(i, n): length of a string, slice, array or map
//   - Logical operators: && (and), || (or), ! (not)
//
// Example: ArgLess(1, 0) || ArgContains(2, "x")
func (Joint[A]) Expr(expression string) (Constraint[A], error) {
	return Expression[A](expression)
}

// Expression is Joint.Expr for any argument list type.
func Expression[A args.Tuple](expression string) (Constraint[A], error) {
	match, err := ParseExpression(expression)
	if err != nil {
		return Constraint[A]{}, err
	}
	return Constraint[A]{
		kind:   Reject,
		slot:   AllSlots,
		label:  expression,
		reject: func(a A) bool { return match(a.Values()) },
	}, nil
}

// ParseExpression compiles expression into a predicate over positional values.
func ParseExpression(expression string) (func([]any) bool, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty constraint expression")
	}

	parser, err := predicate.NewParser(predicate.Def{
		Functions: expressionFunctions(),
		Operators: predicate.Operators{
			AND: func(a, b valuesPredicate) valuesPredicate {
				return func(v []any) bool { return a(v) && b(v) }
			},
			OR: func(a, b valuesPredicate) valuesPredicate {
				return func(v []any) bool { return a(v) || b(v) }
			},
			NOT: func(a valuesPredicate) valuesPredicate {
				return func(v []any) bool { return !a(v) }
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	pred, err := parser.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid constraint expression: %w", err)
	}

	fn, ok := pred.(valuesPredicate)
	if !ok {
		return nil, fmt.Errorf("constraint expression must evaluate to boolean, got %T", pred)
	}
	return fn, nil
}

func expressionFunctions() map[string]any {
	return map[string]any{
		"ArgEquals": func(i int, text string) valuesPredicate {
			return onArg(i, func(v any) bool { return fmt.Sprint(v) == text })
		},
		"ArgContains": func(i int, text string) valuesPredicate {
			return onArg(i, func(v any) bool { return strings.Contains(fmt.Sprint(v), text) })
		},
		"ArgLess": func(i, n int) valuesPredicate {
			return onArg(i, func(v any) bool {
				f, ok := numeric(v)
				return ok && f < float64(n)
			})
		},
		"ArgGreater": func(i, n int) valuesPredicate {
			return onArg(i, func(v any) bool {
				f, ok := numeric(v)
				return ok && f > float64(n)
			})
		},
		"ArgLenLess": func(i, n int) valuesPredicate {
			return onArg(i, func(v any) bool {
				l, ok := length(v)
				return ok && l < n
			})
		},
		"ArgLenGreater": func(i, n int) valuesPredicate {
			return onArg(i, func(v any) bool {
				l, ok := length(v)
				return ok && l > n
			})
		},
	}
}

// onArg lifts a check on one value. Out-of-range positions never match.
func onArg(i int, check func(any) bool) valuesPredicate {
	return func(values []any) bool {
		if i < 1 || i > len(values) {
			return false
		}
		return check(values[i-1])
	}
}

func numeric(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func length(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len(), true
	default:
		return 0, false
	}
}
