package embedded

import "fmt"

// Closer releases a held resource.
type Closer interface {
	Close() error
}

// Reader pulls batches of records from a feed.
type Reader interface {
	Read(limit int) ([]string, error)
}

// Feed demonstrates embedded interface expansion: the generated double
// declares Read and Close alongside Name.
type Feed interface {
	Reader
	Closer

	// Name identifies the feed in error messages.
	Name() string
}

// Drain reads batches of up to limit records until the feed is exhausted,
// then closes it. Errors are labeled with the feed's name.
func Drain(feed Feed, limit int) ([]string, error) {
	var records []string

	for {
		batch, err := feed.Read(limit)
		if err != nil {
			_ = feed.Close()

			return nil, fmt.Errorf("draining %s: %w", feed.Name(), err)
		}

		if len(batch) == 0 {
			break
		}

		records = append(records, batch...)
	}

	if err := feed.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", feed.Name(), err)
	}

	return records, nil
}
