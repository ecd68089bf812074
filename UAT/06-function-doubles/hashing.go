package hashing

import "fmt"

// Hasher summarizes a payload to a comparable fingerprint.
type Hasher func(data []byte) (uint64, error)

// Dedupe returns the payloads whose fingerprints have not been seen before,
// preserving input order.
func Dedupe(items [][]byte, hash Hasher) ([][]byte, error) {
	seen := make(map[uint64]bool)

	var unique [][]byte

	for _, item := range items {
		sum, err := hash(item)
		if err != nil {
			return nil, fmt.Errorf("fingerprinting %q: %w", item, err)
		}

		if seen[sum] {
			continue
		}

		seen[sum] = true

		unique = append(unique, item)
	}

	return unique, nil
}
