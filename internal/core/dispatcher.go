package core

import (
	"fmt"
	"reflect"
)

// callbackEntry is one observer hook on a member: an optional argument filter
// plus the side effect to run.
type callbackEntry struct {
	filter specList // nil fires on every invocation
	run    func(args []any)
}

// dispatcher holds each member's observer hooks in registration order. Hooks
// are side-effect only: they see the arguments, they never influence the
// resolved response.
type dispatcher struct {
	hooks map[string][]callbackEntry // by signature key
}

func newDispatcher() *dispatcher {
	return &dispatcher{hooks: make(map[string][]callbackEntry)}
}

// observe appends a hook for the signature. A nil filter fires
// unconditionally.
func (d *dispatcher) observe(sig Signature, filter specList, run func(args []any)) {
	key := sig.Key()
	d.hooks[key] = append(d.hooks[key], callbackEntry{filter: filter, run: run})
}

// snapshot copies one member's hooks for firing outside the owner's lock.
func (d *dispatcher) snapshot(sig Signature) []callbackEntry {
	return append([]callbackEntry(nil), d.hooks[sig.Key()]...)
}

// fire runs every hook whose filter accepts the arguments, in registration
// order. A panicking hook aborts the rest of the dispatch and the resolution
// that would have followed; the panic belongs to the caller of the double.
func fire(hooks []callbackEntry, args []any) {
	for _, hook := range hooks {
		if hook.filter != nil && !hook.filter.matches(args) {
			continue
		}

		hook.run(args)
	}
}

// callbackRunner validates an observer func against the member and erases it
// to run over []any. The func returns nothing; like a Do fn it may cover just
// a leading subset of the member's parameters, and a variadic member's tail
// arrives as its slice value.
func callbackRunner(sig Signature, fn any) func(args []any) {
	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()

	if fnType.Kind() != reflect.Func {
		panic(fmt.Sprintf("standin: %s: callback requires a func, got %s",
			sig, typeLabel(reflect.TypeOf(fn))))
	}

	if fnType.IsVariadic() {
		panic(fmt.Sprintf("standin: %s: callback fn must take the variadic tail as a slice, not declare its own variadic",
			sig))
	}

	if fnType.NumOut() != 0 {
		panic(fmt.Sprintf("standin: %s: callback fn must not return values; use a behavior for responses", sig))
	}

	numIn := fnType.NumIn()
	if numIn > sig.Arity() {
		panic(fmt.Sprintf("standin: %s takes %d args, but the callback fn wants %d", sig, sig.Arity(), numIn))
	}

	for i := range numIn {
		if !sig.Param(i).AssignableTo(fnType.In(i)) {
			panic(fmt.Sprintf("standin: %s: callback fn arg %d is %s, want a type assignable from %s",
				sig, i, typeLabel(fnType.In(i)), typeLabel(sig.Param(i))))
		}
	}

	// Invoke validates arity before hooks fire, so args always covers numIn.
	return func(args []any) {
		in := make([]reflect.Value, numIn)
		for i := range in {
			in[i] = callValue(args[i], fnType.In(i))
		}

		fnValue.Call(in)
	}
}
