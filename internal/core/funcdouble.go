package core

import (
	"fmt"
	"reflect"
)

// FuncMember is the member name a function double registers its calls under.
// A func type has exactly one callable shape, so every func double has
// exactly this one member.
const FuncMember = "Call"

// FuncOf builds a detached function double of func type T: the returned value
// is a real T whose calls are recorded on the returned Double and answered
// from its configured behaviors, exactly like an interface member. Verify and
// configure it under the FuncMember name.
func FuncOf[T any](name string) (T, *Double) {
	return funcDouble[T](NewDouble(name))
}

// ReportingFuncOf is FuncOf bound to the test's registry: the double shares
// the reporter's journal and supports MustVerify. Repeated calls with the
// same reporter and name return fresh wrappers over the same double, and must
// agree on the func type.
func ReportingFuncOf[T any](t TestReporter, name string) (T, *Double) {
	dbl := DoubleFor(t, name)

	var shape T

	// NewSignature rejects non-func types, which covers ReportingFuncOf[int]
	// and friends.
	sig := NewSignature(FuncMember, shape)

	if dbl.Has(FuncMember) {
		if existing := dbl.Signature(FuncMember); !existing.Equal(sig) {
			panic(fmt.Sprintf("standin: %s is already a func double of %s, not %s", name, existing, sig))
		}

		return makeRelay[T](dbl, reflect.TypeOf(shape)), dbl
	}

	dbl.Register(sig)

	return makeRelay[T](dbl, reflect.TypeOf(shape)), dbl
}

func funcDouble[T any](dbl *Double) (T, *Double) {
	var shape T

	sig := NewSignature(FuncMember, shape)
	dbl.Register(sig)

	return makeRelay[T](dbl, reflect.TypeOf(shape)), dbl
}

// makeRelay builds the typed func that forwards every call into the engine.
func makeRelay[T any](dbl *Double, funcType reflect.Type) T {
	relay := func(args []reflect.Value) []reflect.Value {
		// MakeFunc hands a variadic tail over as one trailing slice value,
		// which is exactly the engine's argument convention.
		results := dbl.Invoke(FuncMember, unreflectValues(args)...)

		out := make([]reflect.Value, len(results))
		for i, result := range results {
			out[i] = callValue(result, funcType.Out(i))
		}

		return out
	}

	// Depending on MakeFunc to return the correct type, as documented. If it
	// failed to, the only thing we'd do is panic anyway.
	return reflect.MakeFunc(funcType, relay).Interface().(T) //nolint:forcetypeassert
}

// unreflectValues returns the actual values of the reflected values.
func unreflectValues(rArgs []reflect.Value) []any {
	if len(rArgs) == 0 {
		return nil
	}

	args := make([]any, len(rArgs))
	for i := range rArgs {
		args[i] = rArgs[i].Interface()
	}

	return args
}
