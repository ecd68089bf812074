// Package standin provides record-and-verify test doubles for Go.
// A double stands in for an interface or function dependency: it records
// every call made against it, answers each call from configured behaviors
// (or synthesizes a sensible default), and answers count and order
// verification queries afterwards.
//
// This is the public API entry point. Implementation lives in internal/core.
package standin

import (
	"reflect"

	"github.com/toejough/standin/internal/core"
)

// Action is an arity-erased response, built by a Stub terminal.
type Action = core.Action

// As converts one value from an Invoke result slice to the declared result
// type T. A nil configured for a nillable result becomes T's zero value, and
// assignable values with a different dynamic type (a bidirectional channel
// standing in for a receive-only result) convert. Generated adapters use it
// to hand results back in their concrete types.
func As[T any](v any) T {
	return core.ValueAs[T](v)
}

// Double is one test double: call recording, behavior resolution, observer
// hooks, and verification for one contract instance.
type Double = core.Double

// NewDouble creates a detached double with a private journal and no reporter.
// Use DoubleFor to bind one to a test instead.
func NewDouble(name string) *Double {
	return core.NewDouble(name)
}

// NewReportingDouble creates a double that reports MustVerify failures through
// t and records on the given journal. Passing the same journal to several
// doubles puts their calls in one order, which is what cross-double order
// verification consumes.
func NewReportingDouble(name string, t TestReporter, journal *Journal) *Double {
	return core.NewReportingDouble(name, t, journal)
}

// FuncMember is the member name a function double registers its calls under.
const FuncMember = core.FuncMember

// FuncOf builds a detached function double of func type T: a real T whose
// calls are recorded on the returned Double under the FuncMember name.
func FuncOf[T any](name string) (T, *Double) {
	return core.FuncOf[T](name)
}

// Invocation is one recorded call: member signature, arguments, and order.
type Invocation = core.Invocation

// Journal orders invocations across every double attached to it.
type Journal = core.Journal

// NewJournal returns an empty journal.
func NewJournal() *Journal {
	return core.NewJournal()
}

// Matcher is the gomega-compatible matching interface; values implementing it
// can be passed directly wherever an argument specifier is expected.
type Matcher = core.Matcher

// OrderError is the failure reported by order verification.
type OrderError = core.OrderError

// ResultDef describes one declared result position of a member.
type ResultDef = core.ResultDef

// ResultShape classifies a result position for default synthesis.
type ResultShape = core.ResultShape

// Result shapes, decided once per signature at construction.
const (
	ShapeValue         = core.ShapeValue
	ShapeReference     = core.ShapeReference
	ShapeDeferredUnit  = core.ShapeDeferredUnit
	ShapeDeferredValue = core.ShapeDeferredValue
)

// Signature is the identity of a contract member.
type Signature = core.Signature

// NewSignature builds the signature for the named member from a value of the
// member's func type, usually a typed nil func:
//
//	sig := standin.NewSignature("GetValue", (func(key string) (string, error))(nil))
func NewSignature(name string, shape any) Signature {
	return core.NewSignature(name, shape)
}

// Spec is one argument specifier: a literal, a typed or untyped wildcard, or
// a predicate. The match package provides the constructors.
type Spec = core.ArgSpec

// Step names one expected invocation in a cross-double order verification.
type Step = core.Step

// Called builds a Step: the named double's member, optionally constrained to
// matching arguments. An empty double name matches any double.
func Called(double, member string, specs ...any) Step {
	step := Step{Double: double, Member: member}
	if len(specs) > 0 {
		step.Filter = core.CoerceSpecs(specs)
	}

	return step
}

// Stub is a behavior under construction, started by Double.When or
// Double.Fallback and completed by Return, Do, or Panic.
type Stub = core.Stub

// TestReporter is the minimal interface standin needs from test frameworks.
type TestReporter = core.TestReporter

// Threshold is a totalizing predicate over an observed invocation count.
type Threshold = core.Threshold

// NewThreshold builds a custom threshold from a description and a predicate.
func NewThreshold(describe string, pass func(count int) bool) Threshold {
	return core.NewThreshold(describe, pass)
}

// AtLeast expects n or more invocations.
func AtLeast(n int) Threshold { return core.AtLeast(n) }

// AtLeastOnce expects one or more invocations.
func AtLeastOnce() Threshold { return core.AtLeastOnce() }

// AtMost expects n or fewer invocations.
func AtMost(n int) Threshold { return core.AtMost(n) }

// Never expects zero invocations.
func Never() Threshold { return core.Never() }

// Once expects exactly one invocation.
func Once() Threshold { return core.Once() }

// Times expects exactly n invocations.
func Times(n int) Threshold { return core.Times(n) }

// TypeOf returns the reflect.Type for T, for signature type arguments.
func TypeOf[T any]() reflect.Type {
	return core.TypeOf[T]()
}

// VerificationError is the failure reported by count verification.
type VerificationError = core.VerificationError
