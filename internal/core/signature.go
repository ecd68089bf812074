package core

import (
	"fmt"
	"reflect"
	"strings"
)

// ResultShape classifies one declared result position of a member for default
// synthesis. The shape is decided once, when the signature is built, so the
// resolve path never inspects type metadata per call.
type ResultShape uint8

const (
	// ShapeValue is a non-nillable result (numeric, bool, string, struct, array).
	ShapeValue ResultShape = iota
	// ShapeReference is a nillable result (pointer, map, slice, func, interface).
	ShapeReference
	// ShapeDeferredUnit is a receivable channel of struct{}, a unit of work with
	// no payload. Synthesis produces an already-completed (closed) channel.
	ShapeDeferredUnit
	// ShapeDeferredValue is a receivable channel of any other element type.
	// Synthesis produces a closed channel, so receives complete immediately with
	// the element type's zero value.
	ShapeDeferredValue
)

// ResultDef describes one declared result position of a member.
type ResultDef struct {
	Type  reflect.Type
	Shape ResultShape
}

// Signature is the identity of a contract member, independent of argument
// values: name, ordered parameter types, and (for instantiated generic
// contracts) ordered type arguments. Signatures are immutable; build one per
// member shape and reuse it. Two signatures are equal iff all identity fields
// are equal.
type Signature struct {
	name     string
	params   []reflect.Type
	variadic bool
	results  []ResultDef
	typeArgs []reflect.Type
	key      string
}

// NewSignature builds the signature for the named member. The shape argument
// must be a value of the member's func type; a typed nil func is the usual way
// to provide one:
//
//	sig := core.NewSignature("GetValue", (func(key string) (string, error))(nil))
//
// NewSignature panics if shape is not a func: passing anything else is a
// programming mistake in the test, not a runtime condition.
func NewSignature(name string, shape any) Signature {
	funcType := reflect.TypeOf(shape)
	if funcType == nil || funcType.Kind() != reflect.Func {
		panic(fmt.Sprintf("standin: signature for %q must be built from a func value, got %s",
			name, typeLabel(funcType)))
	}

	params := make([]reflect.Type, funcType.NumIn())
	for i := range params {
		params[i] = funcType.In(i)
	}

	results := make([]ResultDef, funcType.NumOut())
	for i := range results {
		out := funcType.Out(i)
		results[i] = ResultDef{Type: out, Shape: classifyResult(out)}
	}

	sig := Signature{
		name:     name,
		params:   params,
		variadic: funcType.IsVariadic(),
		results:  results,
	}
	sig.key = sig.renderKey()

	return sig
}

// WithTypeArgs returns a copy of the signature carrying the given type
// arguments, for members of instantiated generic contracts. Distinct type
// arguments yield distinct signatures even when the parameter types erase to
// the same shapes.
func (s Signature) WithTypeArgs(args ...reflect.Type) Signature {
	s.typeArgs = args
	s.key = s.renderKey()

	return s
}

// Name returns the member name.
func (s Signature) Name() string { return s.name }

// Arity returns the number of declared parameters. For variadic members the
// variadic tail counts as one slice-typed parameter.
func (s Signature) Arity() int { return len(s.params) }

// Param returns the declared type of the parameter at index i.
func (s Signature) Param(i int) reflect.Type { return s.params[i] }

// Variadic reports whether the member's final parameter is variadic. The
// engine always carries the variadic tail as its slice value in one argument
// position, so arity and specifier lists line up positionally.
func (s Signature) Variadic() bool { return s.variadic }

// Results returns the declared result definitions, in order.
func (s Signature) Results() []ResultDef { return s.results }

// Key returns the stable identity key of the signature, suitable for use as a
// map key.
func (s Signature) Key() string { return s.key }

// Equal reports whether two signatures identify the same member shape.
func (s Signature) Equal(o Signature) bool { return s.key == o.key }

// String returns the key; signatures render as "Name(params)[typeargs]".
func (s Signature) String() string { return s.key }

// TypeOf returns the reflect.Type for T. It keeps WithTypeArgs call sites free
// of reflect boilerplate:
//
//	sig = sig.WithTypeArgs(core.TypeOf[int]())
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// classifyResult decides a result position's shape once, at signature build
// time. Receivable channels are deferred work: struct{} elements carry no
// payload, everything else is a deferred value. Send-only channels cannot be
// completed by the engine, so they stay plain references.
func classifyResult(t reflect.Type) ResultShape {
	if t.Kind() == reflect.Chan && t.ChanDir() != reflect.SendDir {
		if t.Elem() == reflect.TypeOf(struct{}{}) {
			return ShapeDeferredUnit
		}

		return ShapeDeferredValue
	}

	if isNillableKind(t.Kind()) {
		return ShapeReference
	}

	return ShapeValue
}

// renderKey builds the identity key from the identity fields: member name,
// parameter types (with a variadic marker), and type arguments. Results are
// not part of identity: a contract cannot declare two members differing only
// in results.
func (s Signature) renderKey() string {
	var b strings.Builder

	b.WriteString(s.name)
	b.WriteByte('(')

	for i, p := range s.params {
		if i > 0 {
			b.WriteString(", ")
		}

		if s.variadic && i == len(s.params)-1 {
			b.WriteString("...")
			b.WriteString(typeLabel(p.Elem()))

			continue
		}

		b.WriteString(typeLabel(p))
	}

	b.WriteByte(')')

	if len(s.typeArgs) > 0 {
		b.WriteByte('[')

		for i, a := range s.typeArgs {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(typeLabel(a))
		}

		b.WriteByte(']')
	}

	return b.String()
}

// typeLabel names a type for keys and failure messages. Unnamed types fall
// back to their full string form; a nil type (untyped nil shape) reads as
// "nil".
func typeLabel(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	if t.Name() != "" {
		return t.Name()
	}

	return t.String()
}

// isNillableKind reports whether values of the kind can be nil: chan, func,
// interface, map, pointer, and slice kinds can.
func isNillableKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	case reflect.Invalid, reflect.Bool, reflect.Int,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64, reflect.Uint, reflect.Uint8,
		reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128, reflect.Array,
		reflect.String, reflect.Struct, reflect.UnsafePointer:
		return false
	default:
		// Only reachable if the reflect package grows a new kind.
		panic("unable to check nillability for unknown kind " + kind.String())
	}
}
