package core

import "time"

// Invocation is one recorded call on a double: which member, with which
// arguments, and where it fell in the observed order. Seq comes from the
// journal shared by every double attached to the same reporter, so entries
// from different doubles order against each other.
type Invocation struct {
	Sig    Signature
	Args   []any
	Seq    uint64
	At     time.Time
	Double string
}

// String renders the invocation for failure messages, as
// "double.Member(arg, arg)".
func (inv Invocation) String() string {
	out := inv.Double + "." + inv.Sig.Name() + "("

	for i, arg := range inv.Args {
		if i > 0 {
			out += ", "
		}

		out += renderValue(arg)
	}

	return out + ")"
}

// ledger is the append-only invocation record of one double. The owning
// Double serializes access; the ledger itself carries no lock.
type ledger struct {
	entries []Invocation
}

func (l *ledger) record(inv Invocation) {
	l.entries = append(l.entries, inv)
}

// snapshot copies the entries so callers can filter and match outside the
// owner's lock.
func (l *ledger) snapshot() []Invocation {
	return append([]Invocation(nil), l.entries...)
}
