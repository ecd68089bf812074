package core

import (
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// ArgSpec is one position of a behavior's argument specifier list. It is a
// closed union: a specifier is exactly one of literal, any-of-type, or
// predicate. The union is sealed so resolution can switch over the three cases
// without a default branch that guesses at foreign implementations.
//
// Plain values passed to the public setup API are wrapped as literal
// specifiers automatically; the other cases come from the match package's
// constructors.
type ArgSpec interface {
	// Matches reports whether a concrete argument satisfies the specifier.
	Matches(arg any) bool
	// Wildcard reports whether the specifier can accept more than one value.
	// A behavior whose specifiers are all non-wildcard is an exact behavior.
	Wildcard() bool
	// Render returns the specifier's stable display form, used in descriptor
	// keys and failure messages.
	Render() string

	// validate panics when the specifier cannot apply to the parameter type.
	// It runs at registration, never during a call.
	validate(sig Signature, pos int)
	// sealed keeps the union closed to this package.
	sealed()
}

// LiteralSpec returns a specifier matching arguments deeply equal to value.
// Equality is nil-tolerant: a typed nil literal matches an untyped nil
// argument and vice versa. Funcs compare by identity.
func LiteralSpec(value any) ArgSpec {
	return literalSpec{value: value, rendered: renderValue(value)}
}

// AnySpec returns a specifier matching any argument of any type.
func AnySpec() ArgSpec {
	return anySpec{}
}

// AnyOfType returns a specifier matching any argument assignable to t. A nil
// argument matches when t is nillable.
func AnyOfType(t reflect.Type) ArgSpec {
	if t == nil {
		panic("standin: AnyOfType requires a non-nil type; use AnySpec for untyped matching")
	}

	return anySpec{t: t}
}

// PredicateSpec returns a specifier that accepts an argument when check
// returns nil. The argType is the predicate's declared argument type;
// arguments not assignable to it are rejected before check runs, so check
// never sees a foreign type. The label names the predicate in keys and
// failure messages.
func PredicateSpec(argType reflect.Type, label string, check func(arg any) error) ArgSpec {
	if argType == nil || check == nil {
		panic("standin: PredicateSpec requires an argument type and a check func")
	}

	return predicateSpec{t: argType, label: label, check: check}
}

// CoerceSpecs converts a mixed specifier list from the public API into the
// union: ArgSpec values pass through, duck-typed matchers are bridged, and
// anything else becomes a literal.
func CoerceSpecs(raw []any) []ArgSpec {
	specs := make([]ArgSpec, len(raw))

	for i, item := range raw {
		switch spec := item.(type) {
		case ArgSpec:
			specs[i] = spec
		case Matcher:
			specs[i] = MatcherSpec(spec)
		default:
			specs[i] = LiteralSpec(item)
		}
	}

	return specs
}

// literalSpec matches a single value.
type literalSpec struct {
	value    any
	rendered string
}

func (s literalSpec) Matches(arg any) bool { return equalValues(s.value, arg) }
func (s literalSpec) Wildcard() bool       { return false }
func (s literalSpec) Render() string       { return s.rendered }
func (s literalSpec) sealed()              {}

func (s literalSpec) validate(sig Signature, pos int) {
	param := sig.Param(pos)

	if isNil(s.value) {
		if !isNillableKind(param.Kind()) {
			panic(fmt.Sprintf("standin: %s: literal for arg %d is nil, but parameter type %s cannot be nil",
				sig, pos, typeLabel(param)))
		}

		return
	}

	valueType := reflect.TypeOf(s.value)
	if !valueType.AssignableTo(param) {
		panic(fmt.Sprintf("standin: %s: literal for arg %d has type %s, want %s",
			sig, pos, typeLabel(valueType), typeLabel(param)))
	}
}

// anySpec matches anything, optionally constrained to a type.
type anySpec struct {
	t reflect.Type // nil means unconstrained
}

func (s anySpec) Matches(arg any) bool {
	if s.t == nil {
		return true
	}

	if isNil(arg) {
		return isNillableKind(s.t.Kind())
	}

	return reflect.TypeOf(arg).AssignableTo(s.t)
}

func (s anySpec) Wildcard() bool { return true }

func (s anySpec) Render() string {
	if s.t == nil {
		return "<any>"
	}

	return "<any " + typeLabel(s.t) + ">"
}

func (s anySpec) sealed() {}

func (s anySpec) validate(sig Signature, pos int) {
	if s.t == nil {
		return
	}

	param := sig.Param(pos)

	// Some value must be able to satisfy both the constraint and the
	// parameter, in either direction, or the behavior could never match.
	if !s.t.AssignableTo(param) && !param.AssignableTo(s.t) {
		panic(fmt.Sprintf("standin: %s: any-of-type for arg %d wants %s, but parameter type is %s",
			sig, pos, typeLabel(s.t), typeLabel(param)))
	}
}

// predicateSpec matches when a user check accepts the argument.
type predicateSpec struct {
	t     reflect.Type
	label string
	check func(arg any) error
}

func (s predicateSpec) Matches(arg any) bool {
	if isNil(arg) {
		if !isNillableKind(s.t.Kind()) {
			return false
		}
	} else if !reflect.TypeOf(arg).AssignableTo(s.t) {
		return false
	}

	return s.check(arg) == nil
}

func (s predicateSpec) Wildcard() bool { return true }

func (s predicateSpec) Render() string {
	if s.label != "" {
		return "<satisfying " + s.label + ">"
	}

	return "<satisfying " + typeLabel(s.t) + " predicate>"
}

func (s predicateSpec) sealed() {}

func (s predicateSpec) validate(sig Signature, pos int) {
	param := sig.Param(pos)

	if !param.AssignableTo(s.t) && !s.t.AssignableTo(param) {
		panic(fmt.Sprintf("standin: %s: predicate for arg %d checks %s, but parameter type is %s",
			sig, pos, typeLabel(s.t), typeLabel(param)))
	}
}

// specList is a validated specifier list for one behavior registration.
type specList []ArgSpec

// validateSpecs checks a specifier list against a signature at registration
// time. Length must equal the signature's arity; each specifier must be able
// to apply to its parameter type. Violations panic, in line with treating
// setup mistakes as programming errors rather than test outcomes.
func validateSpecs(sig Signature, specs []ArgSpec) specList {
	if len(specs) != sig.Arity() {
		panic(fmt.Sprintf("standin: %s takes %d args, but %d specifiers were given",
			sig, sig.Arity(), len(specs)))
	}

	for i, spec := range specs {
		spec.validate(sig, i)
	}

	return specList(specs)
}

// exact reports whether every position is a literal, making the list eligible
// for the exact-match table.
func (l specList) exact() bool {
	for _, spec := range l {
		if spec.Wildcard() {
			return false
		}
	}

	return true
}

// matches reports whether every position accepts its argument. Lists only
// compare against argument slices of their own length; the resolver guarantees
// that by construction.
func (l specList) matches(args []any) bool {
	for i, spec := range l {
		if !spec.Matches(args[i]) {
			return false
		}
	}

	return true
}

// render joins the positions into the display form used in descriptor keys and
// failure messages.
func (l specList) render() string {
	out := "["

	for i, spec := range l {
		if i > 0 {
			out += ", "
		}

		out += spec.Render()
	}

	return out + "]"
}

// specRender is the canonical value renderer for descriptor keys. Map keys are
// sorted and pointer addresses suppressed so equal values always render
// equally across runs. Methods are ignored for the same reason: a String()
// implementation is free to be nondeterministic, the raw structure is not.
//
//nolint:gochecknoglobals // Shared renderer config, never mutated after init
var specRender = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	SpewKeys:                true,
	DisableMethods:          true,
	DisablePointerMethods:   true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// renderValue renders a concrete value in canonical display form.
func renderValue(v any) string {
	return specRender.Sprintf("%#v", v)
}

// renderArgs renders a concrete argument slice the same way a list of literal
// specifiers for those values would render, which is what makes exact-table
// lookups line up.
func renderArgs(args []any) string {
	out := "["

	for i, arg := range args {
		if i > 0 {
			out += ", "
		}

		out += renderValue(arg)
	}

	return out + "]"
}
