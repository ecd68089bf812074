package core

import (
	"reflect"
	"runtime"
	"strings"
)

// equalValues is the engine's argument equality: reflect.DeepEqual with two
// adjustments. Typed and untyped nil compare equal, because a caller passing a
// nil map and a setup written with untyped nil mean the same thing. Funcs
// compare by identity via their runtime name, since DeepEqual refuses to
// compare funcs at all.
func equalValues(expected, actual any) bool {
	if isNil(expected) && isNil(actual) {
		return true
	}

	if isNil(expected) || isNil(actual) {
		return false
	}

	expectedValue := reflect.ValueOf(expected)
	actualValue := reflect.ValueOf(actual)

	if expectedValue.Kind() == reflect.Func && actualValue.Kind() == reflect.Func {
		return funcName(expectedValue) == funcName(actualValue)
	}

	return reflect.DeepEqual(expected, actual)
}

// isNil reports whether the value is nil in either sense.
func isNil(value any) bool {
	return isUntypedNil(value) || isTypedNil(value)
}

func isTypedNil(value any) bool {
	reflectValue := reflect.ValueOf(value)

	return isNillableKind(reflectValue.Kind()) && reflectValue.IsNil()
}

func isUntypedNil(value any) bool {
	return value == nil
}

func funcName(value reflect.Value) string {
	return runtime.FuncForPC(value.Pointer()).Name()
}

// FuncLabel names a func value for keys and failure messages. The "-fm"
// suffix the runtime appends to method values carries no meaning for a
// reader, so it is trimmed.
func FuncLabel(fn any) string {
	return strings.TrimSuffix(funcName(reflect.ValueOf(fn)), "-fm")
}
