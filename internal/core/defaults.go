package core

import "reflect"

// synthesizeResults produces a full default result list for a signature. This
// is the engine's last resort: an unconfigured call never errors, it gets
// these. Each call synthesizes fresh values, so deferred results are never
// shared between invocations.
func synthesizeResults(sig Signature) []any {
	results := sig.Results()

	out := make([]any, len(results))
	for i, def := range results {
		out[i] = synthesizeResult(def)
	}

	return out
}

// synthesizeResult produces the default for one result position from its
// precomputed shape.
func synthesizeResult(def ResultDef) any {
	switch def.Shape {
	case ShapeValue:
		return reflect.Zero(def.Type).Interface()
	case ShapeReference:
		// Typed nil, so adapters can assert back to the declared type.
		return reflect.Zero(def.Type).Interface()
	case ShapeDeferredUnit, ShapeDeferredValue:
		return completedChan(def.Type)
	default:
		panic("unable to synthesize default for unknown result shape")
	}
}

// completedChan builds an already-closed channel of the declared channel type.
// Receives complete immediately with the element type's zero value, which is
// what makes a deferred result read as "already done" to the caller.
func completedChan(chanType reflect.Type) any {
	// MakeChan needs a bidirectional type; convert to the declared direction
	// after closing.
	bidi := reflect.ChanOf(reflect.BothDir, chanType.Elem())

	ch := reflect.MakeChan(bidi, 0)
	ch.Close()

	return ch.Convert(chanType).Interface()
}

// synthesisAction wraps default synthesis as a resolver action.
func synthesisAction(sig Signature) Action {
	return Action{
		run:   func([]any) []any { return synthesizeResults(sig) },
		label: "synthesize defaults",
	}
}
