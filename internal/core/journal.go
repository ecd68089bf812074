package core

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Journal orders invocations across every double attached to it. Doubles
// created for the same reporter share one journal (see registry.go), so a
// test can assert on the interleaving of calls between collaborators, not
// just on per-double counts.
type Journal struct {
	mu      sync.Mutex
	seq     uint64
	entries []Invocation
}

// NewJournal returns an empty journal. Doubles built without a reporter get a
// private one of these; doubles built for a reporter share the reporter's.
func NewJournal() *Journal {
	return &Journal{}
}

// record stamps the invocation with the journal's next sequence number and
// the current time, appends it, and returns the stamped entry for the
// double's own ledger.
func (j *Journal) record(inv Invocation) Invocation {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.seq++
	inv.Seq = j.seq
	inv.At = time.Now()
	j.entries = append(j.entries, inv)

	return inv
}

// Snapshot copies every entry across all attached doubles, in call order.
func (j *Journal) Snapshot() []Invocation {
	j.mu.Lock()
	defer j.mu.Unlock()

	return append([]Invocation(nil), j.entries...)
}

// Step names one expected invocation in a cross-double order assertion. An
// empty Double matches any double; a nil Filter matches any arguments.
type Step struct {
	Double string
	Member string
	Filter []ArgSpec
}

func (s Step) matches(inv Invocation) bool {
	if s.Double != "" && s.Double != inv.Double {
		return false
	}

	if s.Member != inv.Sig.Name() {
		return false
	}

	if s.Filter == nil {
		return true
	}

	if len(s.Filter) != len(inv.Args) {
		return false
	}

	return specList(s.Filter).matches(inv.Args)
}

func (s Step) String() string {
	name := s.Member
	if s.Double != "" {
		name = s.Double + "." + name
	}

	if s.Filter == nil {
		return name
	}

	return name + " " + specList(s.Filter).render()
}

// VerifyOrder checks that the journal contains the steps as a subsequence:
// each step must match an entry recorded after the entry the previous step
// matched. Unrelated invocations may interleave freely. The error is an
// *OrderError naming the first step that could not be placed.
func (j *Journal) VerifyOrder(steps ...Step) error {
	// Match on a snapshot; step filters are user code and must not run under
	// the journal's lock.
	entries := j.Snapshot()

	next := 0

	for position, step := range steps {
		matched := false

		for ; next < len(entries); next++ {
			if step.matches(entries[next]) {
				matched = true
				next++

				break
			}
		}

		if !matched {
			return &OrderError{Position: position, Step: step, Entries: entries}
		}
	}

	return nil
}

// OrderError reports a cross-double order verification failure.
type OrderError struct {
	Position int  // zero-based index of the step that could not be placed
	Step     Step // the step itself
	Entries  []Invocation
}

func (e *OrderError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "order step %d (%s) was not observed in sequence", e.Position+1, e.Step)

	if len(e.Entries) == 0 {
		b.WriteString("; nothing was invoked")

		return b.String()
	}

	fmt.Fprintf(&b, "; journal holds %d invocation(s):", len(e.Entries))

	for _, inv := range e.Entries {
		b.WriteString("\n\t")
		b.WriteString(inv.String())
	}

	return b.String()
}
