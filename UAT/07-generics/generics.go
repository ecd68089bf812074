package generics

// Cache demonstrates doubles for parameterized contracts. Each instantiation
// gets its own double identity.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
}

// Warm copies entries the cache does not hold yet and reports how many it
// added.
func Warm[K comparable, V any](cache Cache[K, V], entries map[K]V) int {
	added := 0

	for key, value := range entries {
		if _, ok := cache.Get(key); ok {
			continue
		}

		cache.Set(key, value)

		added++
	}

	return added
}
