package defaults

import "fmt"

// Tracker demonstrates default synthesis: unconfigured calls answer with
// type-correct zero values, and channel results arrive already completed.
type Tracker interface {
	Status(job string) (int, error)
	Done(job string) <-chan struct{}
	Progress(job string) <-chan int
	Labels() map[string]string
}

// AwaitAll waits for every job to finish and returns the sum of their exit
// statuses.
func AwaitAll(tracker Tracker, jobs []string) (int, error) {
	total := 0

	for _, job := range jobs {
		<-tracker.Done(job)

		status, err := tracker.Status(job)
		if err != nil {
			return 0, fmt.Errorf("status of %s: %w", job, err)
		}

		total += status
	}

	return total, nil
}
