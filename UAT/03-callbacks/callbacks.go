package callbacks

import "fmt"

// Recorder demonstrates observer hooks: side-effect callbacks that see calls
// without answering them.
type Recorder interface {
	Event(name string, level int)
	Flush() error
}

// RunJob records each step at its one-based position and flushes the record
// once the job completes.
func RunJob(rec Recorder, steps []string) error {
	for i, step := range steps {
		rec.Event(step, i+1)
	}

	err := rec.Flush()
	if err != nil {
		return fmt.Errorf("flushing job record: %w", err)
	}

	return nil
}
