package core

import (
	"sync"
)

// DoubleFor returns the named double for the given test, creating it if
// needed. Repeated calls with the same TestReporter and name return the same
// instance, and every double created for one TestReporter records into one
// shared journal. This enables order verification across collaborating
// doubles in the same test.
//
// If the TestReporter supports Cleanup (like *testing.T), the test's doubles
// and journal are automatically dropped from the registry when the test
// completes.
func DoubleFor(t TestReporter, name string) *Double {
	registryMu.Lock()
	defer registryMu.Unlock()

	sess := sessionLocked(t)

	dbl, ok := sess.doubles[name]
	if !ok {
		dbl = NewReportingDouble(name, t, sess.journal)
		sess.doubles[name] = dbl
	}

	return dbl
}

// JournalFor returns the journal shared by all of the test's doubles,
// creating the test's session if needed.
func JournalFor(t TestReporter) *Journal {
	registryMu.Lock()
	defer registryMu.Unlock()

	return sessionLocked(t).journal
}

// sessionLocked finds or creates the reporter's session. Callers hold
// registryMu.
func sessionLocked(t TestReporter) *session {
	if sess, ok := registry[t]; ok {
		return sess
	}

	sess := &session{journal: NewJournal(), doubles: make(map[string]*Double)}
	registry[t] = sess

	// Register cleanup if the TestReporter supports it
	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			registryMu.Lock()
			delete(registry, t)
			registryMu.Unlock()
		})
	}

	return sess
}

// session ties one test's doubles to their shared journal.
type session struct {
	journal *Journal
	doubles map[string]*Double
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter]*session)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
