package core

import (
	"fmt"
	"strings"
)

// Threshold is a totalizing predicate over an observed invocation count. The
// engine asks it exactly two things: does the count pass, and how should the
// expectation read in a failure. Any integer predicate works; the constructors
// below cover the common cases.
type Threshold struct {
	describe string
	pass     func(count int) bool
}

// NewThreshold builds a custom threshold. The description completes the
// sentence "expected calls ...", e.g. "an even number of times".
func NewThreshold(describe string, pass func(count int) bool) Threshold {
	if pass == nil {
		panic("standin: NewThreshold requires a predicate")
	}

	return Threshold{describe: describe, pass: pass}
}

// Times expects exactly n invocations.
func Times(n int) Threshold {
	return NewThreshold(fmt.Sprintf("exactly %d time(s)", n), func(count int) bool { return count == n })
}

// Once expects exactly one invocation.
func Once() Threshold {
	return NewThreshold("exactly once", func(count int) bool { return count == 1 })
}

// Never expects zero invocations.
func Never() Threshold {
	return NewThreshold("never", func(count int) bool { return count == 0 })
}

// AtLeast expects n or more invocations.
func AtLeast(n int) Threshold {
	return NewThreshold(fmt.Sprintf("at least %d time(s)", n), func(count int) bool { return count >= n })
}

// AtLeastOnce expects one or more invocations.
func AtLeastOnce() Threshold {
	return NewThreshold("at least once", func(count int) bool { return count >= 1 })
}

// AtMost expects n or fewer invocations.
func AtMost(n int) Threshold {
	return NewThreshold(fmt.Sprintf("at most %d time(s)", n), func(count int) bool { return count <= n })
}

// VerificationError reports a failed verification: which member, what was
// expected, and what the ledger actually holds. Callers distinguish
// verification failures from other errors with errors.As.
type VerificationError struct {
	Double   string
	Member   string
	Expected string       // threshold description
	Filter   string       // rendered specifier list, empty when unfiltered
	Count    int          // invocations that passed the filter
	Observed []Invocation // every invocation of the member, filtered or not
}

func (e *VerificationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s.%s: expected calls", e.Double, e.Member)

	if e.Filter != "" {
		fmt.Fprintf(&b, " matching %s", e.Filter)
	}

	fmt.Fprintf(&b, " %s, counted %d", e.Expected, e.Count)

	if len(e.Observed) == 0 {
		b.WriteString("; the member was never invoked")

		return b.String()
	}

	fmt.Fprintf(&b, " among %d invocation(s):", len(e.Observed))

	for _, inv := range e.Observed {
		b.WriteString("\n\t")
		b.WriteString(inv.String())
	}

	return b.String()
}

// countMatching tallies ledger entries for the signature that pass the
// filter. It also collects every invocation of the member, filtered or not,
// so failures can show what actually happened. Runs on a ledger snapshot;
// filter predicates are user code and must not run under the double's lock.
func countMatching(entries []Invocation, sig Signature, filter specList) (int, []Invocation) {
	count := 0

	var observed []Invocation

	for _, entry := range entries {
		if !entry.Sig.Equal(sig) {
			continue
		}

		observed = append(observed, entry)

		if filter == nil || filter.matches(entry.Args) {
			count++
		}
	}

	return count, observed
}
