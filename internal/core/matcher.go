package core

import (
	"errors"
	"reflect"
)

// Matcher is the structural interface bridged into the specifier union. It is
// satisfied by gomega's matchers, so any of those can be passed directly where
// a specifier is expected.
type Matcher interface {
	// Match returns whether the actual value matches, or an error if the match
	// could not be evaluated.
	Match(actual any) (success bool, err error)
	// FailureMessage describes why the actual value failed to match.
	FailureMessage(actual any) string
}

// MatcherSpec adapts a Matcher into a predicate specifier over any argument
// type. A matcher error counts as a non-match; resolution and verification
// must never abort a test from inside a match attempt.
func MatcherSpec(m Matcher) ArgSpec {
	if m == nil {
		panic("standin: MatcherSpec requires a non-nil matcher")
	}

	return predicateSpec{
		t:     anyType,
		label: typeLabel(reflect.TypeOf(m)),
		check: func(arg any) error {
			success, err := m.Match(arg)
			if err != nil {
				return err
			}

			if !success {
				return errors.New(m.FailureMessage(arg))
			}

			return nil
		},
	}
}

//nolint:gochecknoglobals // Fixed type constant
var anyType = reflect.TypeOf((*any)(nil)).Elem()
