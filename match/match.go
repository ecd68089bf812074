// Package match provides argument specifiers for standin behaviors and
// verifications. This package is designed to be dot-imported alongside gomega
// matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/standin/match"
//	)
//
//	dbl.When("Store", Exactly("key"), BeAny).Return(nil)
package match

import (
	"fmt"

	"github.com/toejough/standin/internal/core"
)

// Spec is one argument specifier: a literal, a typed or untyped wildcard, or
// a predicate. Plain values in a specifier list become literals on their own;
// the constructors here cover everything else.
type Spec = core.ArgSpec

// BeAny is a specifier that matches any value of any type.
// Useful when you don't care about a particular argument.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny = core.AnySpec()

// Exactly returns a literal specifier for value. Plain values in a specifier
// list are literals already; Exactly pins the rare value that would otherwise
// be taken for a matcher or specifier.
func Exactly(value any) Spec {
	return core.LiteralSpec(value)
}

// Any returns a specifier matching any value assignable to T.
//
// Example:
//
//	dbl.When("Load", Any[string]()).Return(data, nil)
func Any[T any]() Spec {
	return core.AnyOfType(core.TypeOf[T]())
}

// Satisfy returns a specifier that uses a predicate function to check for a
// match. The predicate should return nil if the value matches, or an error
// describing the mismatch if it does not. Values not assignable to T never
// reach the predicate.
//
// Example:
//
//	dbl.When("Add", Satisfy(func(x int) error {
//	    if x < 0 { return fmt.Errorf("expected positive, got %d", x) }
//	    return nil
//	})).Return(0)
func Satisfy[T any](predicate func(T) error) Spec {
	if predicate == nil {
		panic("match: Satisfy requires a predicate")
	}

	check := func(arg any) error {
		value, ok := arg.(T)
		if !ok {
			if arg != nil {
				return fmt.Errorf("expected %T, got %T", value, arg)
			}
			// An untyped nil argument reaches the predicate as T's zero
			// value, the typed nil it stands for.
		}

		return predicate(value)
	}

	return core.PredicateSpec(core.TypeOf[T](), core.FuncLabel(predicate), check)
}

// Matching bridges a gomega-compatible matcher into a specifier. Matchers can
// also be passed directly in specifier lists; Matching makes the conversion
// explicit, and is the only way to use a matcher as a value inside a larger
// expression that expects a Spec.
func Matching(m core.Matcher) Spec {
	return core.MatcherSpec(m)
}
