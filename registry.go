package standin

import (
	"github.com/toejough/standin/internal/core"
)

// DoubleFor returns the named double for the given test, creating it if
// needed. Repeated calls with the same TestReporter and name return the same
// instance, and all of one test's doubles record into one shared journal, so
// call order can be verified across them. If the TestReporter supports
// Cleanup (like *testing.T), the test's doubles are dropped automatically
// when the test completes.
func DoubleFor(t TestReporter, name string) *Double {
	return core.DoubleFor(t, name)
}

// FuncFor builds a function double of func type T bound to the test's
// registry: it shares the test's journal and supports MustVerify. Repeated
// calls with the same reporter and name return wrappers over the same double.
func FuncFor[T any](t TestReporter, name string) (T, *Double) {
	return core.ReportingFuncOf[T](t, name)
}

// JournalFor returns the journal shared by all of the test's doubles.
func JournalFor(t TestReporter) *Journal {
	return core.JournalFor(t)
}

// VerifyOrder fails the test unless the test's journal contains the steps as
// a subsequence: each step observed after the previous one, with unrelated
// invocations free to interleave.
func VerifyOrder(t TestReporter, steps ...Step) {
	t.Helper()

	if err := core.JournalFor(t).VerifyOrder(steps...); err != nil {
		t.Fatalf("%s", err)
	}
}
