package stubbing

import "fmt"

// Store demonstrates the core stubbing features of standin.
// It covers single and multiple return values, void methods, and variadic
// arguments.
type Store interface {
	// Get demonstrates multiple return values.
	Get(key string) (string, error)

	// Put demonstrates a single error return.
	Put(key, value string) error

	// Close demonstrates a void method.
	Close()

	// Notify demonstrates variadic arguments.
	Notify(event string, ids ...int) bool
}

// CopyEntry copies one entry to a new key, announces the copy, and releases
// the store.
func CopyEntry(store Store, from, to string) error {
	defer store.Close()

	value, err := store.Get(from)
	if err != nil {
		return fmt.Errorf("reading %s: %w", from, err)
	}

	err = store.Put(to, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", to, err)
	}

	_ = store.Notify("copied", 1)

	return nil
}
