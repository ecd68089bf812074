//nolint:testpackage // Tests internal functions
package run

import (
	"testing"
)

func TestRun_GenericInterface(t *testing.T) {
	t.Parallel()

	loader := newFakePackageLoader()
	loader.addSource(t, ".", `package store

type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
}
`)

	fileSys := runStandgen(t, []string{"standgen", "Cache"}, envFor("store", "cache.go"), loader)

	content := generatedContent(t, fileSys, "generated_CacheDouble.go")
	assertContainsAll(t, content, []string{
		"type CacheDouble[K comparable, V any] struct {",
		"func NewCacheDouble[K comparable, V any](t standin.TestReporter) *CacheDouble[K, V] {",
		`dbl := standin.DoubleFor(t, "Cache[" + standin.TypeOf[K]().String() + "," + standin.TypeOf[V]().String() + "]")`,
		`standin.NewSignature("Get", (func(key K) (V, bool))(nil)),`,
		`standin.NewSignature("Set", (func(key K, value V))(nil)),`,
		"return &CacheDouble[K, V]{Double: dbl}",
		"func (d *CacheDouble[K, V]) Interface() Cache[K, V] {",
		"return cacheStandin[K, V]{double: d.Double}",
		"func (d *CacheDouble[K, V]) OnGet(specs ...any) *standin.Stub {",
		"func (d *CacheDouble[K, V]) VerifySet(threshold standin.Threshold, specs ...any) {",
	})
}

func TestRun_GenericInterface_Relay(t *testing.T) {
	t.Parallel()

	loader := newFakePackageLoader()
	loader.addSource(t, ".", `package store

type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
}
`)

	fileSys := runStandgen(t, []string{"standgen", "Cache"}, envFor("store", "cache.go"), loader)

	// Each instantiation registers under its own name, and the relay hands
	// results back in the instantiated types.
	content := generatedContent(t, fileSys, "generated_CacheDouble.go")
	assertContainsAll(t, content, []string{
		"type cacheStandin[K comparable, V any] struct {",
		"func (s cacheStandin[K, V]) Get(key K) (V, bool) {",
		`results := s.double.Invoke("Get", key)`,
		"return standin.As[V](results[0]), standin.As[bool](results[1])",
		"func (s cacheStandin[K, V]) Set(key K, value V) {",
		`s.double.Invoke("Set", key, value)`,
	})
}

func TestRun_GenericFuncType(t *testing.T) {
	t.Parallel()

	loader := newFakePackageLoader()
	loader.addSource(t, ".", `package store

type Mapper[T any] func(item T) string
`)

	fileSys := runStandgen(t, []string{"standgen", "Mapper"}, envFor("store", "mapper.go"), loader)

	content := generatedContent(t, fileSys, "generated_MapperDouble.go")
	assertContainsAll(t, content, []string{
		"type MapperDouble[T any] struct {",
		"fn Mapper[T]",
		"func NewMapperDouble[T any](t standin.TestReporter) *MapperDouble[T] {",
		`fn, dbl := standin.FuncFor[Mapper[T]](t, "Mapper[" + standin.TypeOf[T]().String() + "]")`,
		"func (d *MapperDouble[T]) Func() Mapper[T] {",
		"func (d *MapperDouble[T]) On(specs ...any) *standin.Stub {",
		"func (d *MapperDouble[T]) Called(specs ...any) standin.Step {",
	})
}
