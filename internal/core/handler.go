package core

import (
	"fmt"
	"reflect"
)

// Action is the arity-erased response of a configured behavior. Running it
// with the call's arguments produces the member's results; a panic action
// panics instead, and the panic propagates to the caller of the double.
//
// Erasing arity here means the resolver, ledger, and dispatcher never deal in
// per-shape generics: every member, whatever its signature, resolves to an
// Action over []any.
type Action struct {
	run   func(args []any) []any
	label string
}

// Run produces the results for one invocation.
func (a Action) Run(args []any) []any { return a.run(args) }

// String names the action for failure messages.
func (a Action) String() string { return a.label }

// zero reports an unset Action; the resolver treats it as "no behavior".
func (a Action) zero() bool { return a.run == nil }

// ReturnAction builds an action that returns fixed values. The value count
// must equal the signature's result count and each value must be assignable to
// its declared result type; nil is accepted for nillable results. Mismatches
// panic at configuration time.
func ReturnAction(sig Signature, values ...any) Action {
	results := sig.Results()
	if len(values) != len(results) {
		panic(fmt.Sprintf("standin: %s returns %d values, but %d were configured",
			sig, len(results), len(values)))
	}

	for i, value := range values {
		validateResultValue(sig, i, value)
	}

	// Copy so a caller-held slice cannot mutate the configured response later.
	stored := append([]any(nil), values...)

	return Action{
		run:   func([]any) []any { return stored },
		label: "return " + renderArgs(stored),
	}
}

// DoAction builds an action that invokes fn with the call's arguments and
// returns fn's results. The func may cover just a leading subset of the
// member's parameters and results: extra arguments are dropped, and result
// positions fn does not produce are filled by default synthesis. A variadic
// member's tail arrives as its slice value, so fn declares a slice parameter
// for it; variadic fns themselves are rejected.
func DoAction(sig Signature, fn any) Action {
	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()

	if fnType.Kind() != reflect.Func {
		panic(fmt.Sprintf("standin: %s: Do requires a func, got %s", sig, typeLabel(reflect.TypeOf(fn))))
	}

	if fnType.IsVariadic() {
		panic(fmt.Sprintf("standin: %s: Do fn must take the variadic tail as a slice, not declare its own variadic",
			sig))
	}

	numIn := fnType.NumIn()
	if numIn > sig.Arity() {
		panic(fmt.Sprintf("standin: %s takes %d args, but the Do fn wants %d", sig, sig.Arity(), numIn))
	}

	for i := range numIn {
		if !sig.Param(i).AssignableTo(fnType.In(i)) {
			panic(fmt.Sprintf("standin: %s: Do fn arg %d is %s, want a type assignable from %s",
				sig, i, typeLabel(fnType.In(i)), typeLabel(sig.Param(i))))
		}
	}

	results := sig.Results()

	numOut := fnType.NumOut()
	if numOut > len(results) {
		panic(fmt.Sprintf("standin: %s returns %d values, but the Do fn returns %d", sig, len(results), numOut))
	}

	for i := range numOut {
		if !fnType.Out(i).AssignableTo(results[i].Type) {
			panic(fmt.Sprintf("standin: %s: Do fn result %d is %s, want a type assignable to %s",
				sig, i, typeLabel(fnType.Out(i)), typeLabel(results[i].Type)))
		}
	}

	// Invoke validates arity before resolution, so args always covers numIn.
	run := func(args []any) []any {
		in := make([]reflect.Value, numIn)
		for i := range in {
			in[i] = callValue(args[i], fnType.In(i))
		}

		out := fnValue.Call(in)

		produced := make([]any, 0, len(results))
		for _, value := range out {
			produced = append(produced, value.Interface())
		}

		// Fill whatever fn left unproduced the same way an unconfigured call
		// would be filled.
		return append(produced, synthesizeResults(sig)[numOut:]...)
	}

	return Action{run: run, label: "invoke " + FuncLabel(fn)}
}

// PanicAction builds an action that panics with the given value when the
// member is invoked. The panic propagates out of the double to the caller
// under test.
func PanicAction(value any) Action {
	if isNil(value) {
		panic("standin: Panic requires a non-nil value")
	}

	return Action{
		run:   func([]any) []any { panic(value) },
		label: "panic " + renderValue(value),
	}
}

// validateResultValue checks one configured return value against its declared
// result position.
func validateResultValue(sig Signature, pos int, value any) {
	resultType := sig.Results()[pos].Type

	if isNil(value) {
		if !isNillableKind(resultType.Kind()) {
			panic(fmt.Sprintf("standin: %s: return value %d is nil, but result type %s cannot be nil",
				sig, pos, typeLabel(resultType)))
		}

		return
	}

	valueType := reflect.TypeOf(value)
	if !valueType.AssignableTo(resultType) {
		panic(fmt.Sprintf("standin: %s: return value %d has type %s, want %s",
			sig, pos, typeLabel(valueType), typeLabel(resultType)))
	}
}

// callValue converts a recorded argument back into a reflect.Value suitable
// for calling a func whose parameter has the wanted type. Untyped nil needs
// the explicit zero value; reflect.ValueOf(nil) is unusable in a call.
func callValue(arg any, want reflect.Type) reflect.Value {
	if isUntypedNil(arg) {
		return reflect.Zero(want)
	}

	return reflect.ValueOf(arg)
}

// ValueAs converts one value from an Invoke result slice to the declared
// result type T, by the same rules the function-double relay applies: a nil
// configured for a nillable result becomes T's zero value, and values whose
// dynamic type differs from T but is assignable (a bidirectional channel
// configured for a receive-only result) convert. Generated adapters use it to
// hand results back in their concrete types.
func ValueAs[T any](v any) T {
	want := TypeOf[T]()

	got := callValue(v, want)
	if got.Type() != want {
		got = got.Convert(want)
	}

	result, _ := got.Interface().(T)

	return result
}
